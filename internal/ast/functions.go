package ast

import "strings"

// Param is one formal argument of a method, lambda, or anonymous function.
type Param struct {
	Name     string
	TypeName string
}

// Lambda is a caller-supplied block at a call site whose callee declares a
// lambda signature (spec §4.4 "MethodCall", §9 "Lambda inlining vs. closure
// capture"). It is never a first-class value: the pass driver either
// inlines it into the call site or splices it into a generated while-loop
// (Array.each). By the time TypeCheckAndTransform finishes, no Lambda node
// remains in the tree — only the inlined statements it was replaced by.
type Lambda struct {
	ExprBase
	Params []Param
	Body   *Block
}

func (l *Lambda) String() string {
	parts := make([]string, len(l.Params))
	for i, p := range l.Params {
		parts[i] = "|" + p.TypeName + " " + p.Name + "|"
	}
	return strings.Join(parts, "") + " " + l.Body.String()
}

// AnonymousFunction is `{ |args| ... }` used where a first-class function
// value is expected. Closure conversion always lifts it into a generated
// `$Closure$N` class implementing the matching closure interface
// (spec §4.6 "Closure generation").
type AnonymousFunction struct {
	ExprBase
	Params []Param
	Body   *Block

	// ClosureClassName is set once closure conversion has generated the
	// capturing class for this literal.
	ClosureClassName string
}

func (f *AnonymousFunction) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = "|" + p.TypeName + " " + p.Name + "|"
	}
	return strings.Join(parts, "") + " " + f.Body.String()
}

// Yield is `yield(e)` inside a lambda-declaring method's body. When the
// method is inlined it is replaced by a copy of the calling lambda block,
// with the block's first parameter first assigned the yielded value when
// one is given (spec §4.4 "MethodCall").
type Yield struct {
	ExprBase
	Value Expression // nil for a bare `yield`
}

func (y *Yield) String() string {
	if y.Value == nil {
		return "yield"
	}
	return "yield(" + y.Value.String() + ")"
}
