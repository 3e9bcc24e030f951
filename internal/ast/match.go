package ast

import "strings"

// MatchCase is one `pattern [if guard] -> result` arm of a Match
// expression.
type MatchCase struct {
	At      Position
	Pattern Expression
	Guard   Expression // nil if the case has no guard
	Result  Expression
}

func (c *MatchCase) String() string {
	s := c.Pattern.String()
	if c.Guard != nil {
		s += " if " + c.Guard.String()
	}
	return s + " -> " + c.Result.String()
}

// Match is the `match subject { case0; case1; ... }` expression. Lowering
// replaces it with a block that materializes the subject, emits an
// if-tree per case, and threads the chosen result into a
// `__match_result_N` temporary (spec §4.4 "Match expression").
type Match struct {
	ExprBase
	Subject Expression
	Cases   []*MatchCase
}

func (m *Match) String() string {
	parts := make([]string, len(m.Cases))
	for i, c := range m.Cases {
		parts[i] = c.String()
	}
	return "match " + m.Subject.String() + " { " + strings.Join(parts, "; ") + " }"
}

// DecompositionMember is one `name: pattern` (or positional `pattern`, with
// Name left empty) element of a ClassDecomposition.
type DecompositionMember struct {
	Name    string
	Pattern Expression
}

// ClassDecomposition is a pattern of the form `ClassName(p0, p1, ...)` or,
// for an enumeration variant, `VariantName(p0, p1, ...)`. Type-checking it
// produces either a static (no-op) or a dynamic cast-and-compare
// depending on whether the subject's static type already matches, or, for
// enum variants, a `$tag` comparison (spec §4.4 "Patterns").
type ClassDecomposition struct {
	ExprBase
	ClassName string
	Members   []DecompositionMember

	// IsEnumVariant is set once the pattern is known to name an
	// enumeration variant rather than an ordinary class.
	IsEnumVariant bool
	// EnumVariantName is the tag identifier to compare against, set when
	// IsEnumVariant is true.
	EnumVariantName string
}

func (c *ClassDecomposition) String() string {
	parts := make([]string, len(c.Members))
	for i, m := range c.Members {
		parts[i] = m.Pattern.String()
	}
	return c.ClassName + "(" + strings.Join(parts, ", ") + ")"
}

// TypedPattern is `T name`: a casted-subject type test that also binds the
// cast result to name if present (spec §4.4 "Patterns").
type TypedPattern struct {
	ExprBase
	TypeName string
	BindName string // empty if the pattern only tests the type
}

func (t *TypedPattern) String() string {
	if t.BindName == "" {
		return t.TypeName
	}
	return t.TypeName + " " + t.BindName
}
