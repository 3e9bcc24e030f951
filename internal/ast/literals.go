package ast

import (
	"strconv"
	"strings"
)

// IntLiteral is a decimal integer literal. It implements types.IntegerLiteral
// so the type model's byte-narrowing rule (spec §4.1, §8: "0-255 is
// byte-compatible") can see the literal's value without internal/types
// importing internal/ast.
type IntLiteral struct {
	ExprBase
	Value int64
}

func (l *IntLiteral) String() string            { return strconv.FormatInt(l.Value, 10) }
func (l *IntLiteral) IntegerLiteralValue() int64 { return l.Value }

// FloatLiteral is a floating-point literal.
type FloatLiteral struct {
	ExprBase
	Value float64
}

func (l *FloatLiteral) String() string { return strconv.FormatFloat(l.Value, 'g', -1, 64) }

// CharLiteral is a single-character literal.
type CharLiteral struct {
	ExprBase
	Value rune
}

func (l *CharLiteral) String() string { return "'" + string(l.Value) + "'" }

// StringLiteral is a double-quoted string literal.
type StringLiteral struct {
	ExprBase
	Value string
}

func (l *StringLiteral) String() string { return strconv.Quote(l.Value) }

// BoolLiteral is `true` or `false`.
type BoolLiteral struct {
	ExprBase
	Value bool
}

func (l *BoolLiteral) String() string { return strconv.FormatBool(l.Value) }

// ArrayLiteral is `[e0, e1, ...]`. An empty array literal's element type is
// implicit (types.Implicit) until CalculateCommonType or a declared array
// type resolves it (spec §8, "empty array literal yields an implicit
// element type").
type ArrayLiteral struct {
	ExprBase
	Elements []Expression
}

func (l *ArrayLiteral) String() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// NullLiteral is the `null` literal, assignable to any reference type.
type NullLiteral struct {
	ExprBase
}

func (l *NullLiteral) String() string { return "null" }

// ThisExpr is the `this` receiver reference inside an instance method.
type ThisExpr struct {
	ExprBase
}

func (l *ThisExpr) String() string { return "this" }

// Placeholder is the `_` wildcard type/pattern marker.
type Placeholder struct {
	ExprBase
}

func (p *Placeholder) String() string { return "_" }

// Wildcard is the `..` rest-of-array pattern marker.
type Wildcard struct {
	ExprBase
}

func (w *Wildcard) String() string { return ".." }
