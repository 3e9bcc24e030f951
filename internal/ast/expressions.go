package ast

import "strings"

// NamedEntity is an unresolved identifier as the parser left it; name
// binding lookup replaces uses of it with a LocalVariable, ClassName, or
// Member once the referenced binding is known.
type NamedEntity struct {
	ExprBase
	Name string
}

func (n *NamedEntity) String() string { return n.Name }

// LocalVariable references a resolved local (parameter, `var`, or pattern
// binding) by the bindings.Binding it was looked up against.
type LocalVariable struct {
	ExprBase
	Name    string
	Binding interface{} // *bindings.Binding; interface{} avoids an import cycle with internal/bindings
}

func (n *LocalVariable) String() string { return n.Name }

// ClassName references a class by name, used where a type rather than a
// value is expected (static method call receiver, `is` test, etc).
type ClassName struct {
	ExprBase
	Name string
}

func (n *ClassName) String() string { return n.Name }

// MemberKind distinguishes the two things a Member expression can denote.
type MemberKind int

const (
	DataMemberAccess MemberKind = iota
	MethodCallAccess
)

// Member is a resolved reference to a data member or a method call,
// scoped against a receiver that MemberSelector supplies.
type Member struct {
	ExprBase
	Kind      MemberKind
	Name      string
	Arguments []Expression // only meaningful when Kind == MethodCallAccess

	// LambdaBlock is the caller-supplied lambda (block plus its declared
	// parameter names) when Name resolves to a method with a lambda
	// signature, or to a built-in method like Array.each (spec §4.4
	// "MethodCall"); nil otherwise. It is inlined at the call site, never
	// passed by value.
	LambdaBlock *Lambda
}

func (m *Member) String() string {
	if m.Kind == DataMemberAccess {
		return m.Name
	}
	parts := make([]string, len(m.Arguments))
	for i, a := range m.Arguments {
		parts[i] = a.String()
	}
	return m.Name + "(" + strings.Join(parts, ", ") + ")"
}

// MemberSelector is `a.b`: select member b of the value produced by a.
// Transformation may collapse it into b's own WrappedStatement or Temporary
// when b was inlined (spec §4.4 "MemberSelector").
type MemberSelector struct {
	ExprBase
	Receiver Expression
	Member   Expression
}

func (s *MemberSelector) String() string { return s.Receiver.String() + "." + s.Member.String() }

// BinaryOp enumerates the binary operators the parser can produce.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpAnd
	OpOr
	OpAddAssign
	OpSubAssign
	OpMulAssign
	OpDivAssign
	OpModAssign
	OpAssign
	OpRange
)

var binaryOpSymbols = map[BinaryOp]string{
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpMod: "%",
	OpEq: "==", OpNe: "!=", OpLt: "<", OpLe: "<=", OpGt: ">", OpGe: ">=",
	OpAnd: "&&", OpOr: "||",
	OpAddAssign: "+=", OpSubAssign: "-=", OpMulAssign: "*=", OpDivAssign: "/=", OpModAssign: "%=",
	OpAssign: "=", OpRange: "..",
}

func (op BinaryOp) String() string { return binaryOpSymbols[op] }

// Binary is a two-operand expression. String/array operators are rewritten
// into method calls during type-check-and-transform (spec §4.4 "Binary
// expression"); by the time the back end sees the tree, Op is never OpAdd,
// OpEq, OpNe, or OpAddAssign on a string or array operand.
type Binary struct {
	ExprBase
	Op    BinaryOp
	Left  Expression
	Right Expression
}

func (b *Binary) String() string {
	return "(" + b.Left.String() + " " + b.Op.String() + " " + b.Right.String() + ")"
}

// UnaryOp enumerates the unary operators the parser can produce.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpNot
)

func (op UnaryOp) String() string {
	if op == OpNot {
		return "!"
	}
	return "-"
}

// Unary is a one-operand expression (`-x`, `!x`).
type Unary struct {
	ExprBase
	Op      UnaryOp
	Operand Expression
}

func (u *Unary) String() string { return u.Op.String() + u.Operand.String() }

// HeapAllocation is `new Foo(args...)`. Ctor resolution rewrites Name to
// the concrete class's `<Name>_init`; allocating a process interface
// rewrites the whole expression into a ProcessProxyAllocation instead
// (spec §4.4 "Heap allocation", SPEC_FULL.md §C.2).
type HeapAllocation struct {
	ExprBase
	ClassName string
	Arguments []Expression

	// ConcreteClass, once generic-argument inference has run, names the
	// concrete instantiation to allocate instead of the generic class.
	ConcreteClass string
}

func (h *HeapAllocation) String() string {
	parts := make([]string, len(h.Arguments))
	for i, a := range h.Arguments {
		parts[i] = a.String()
	}
	return "new " + h.ClassName + "(" + strings.Join(parts, ", ") + ")"
}

// ProcessProxyAllocation replaces a HeapAllocation of a process interface
// type once the allocator has recognized it as such (SPEC_FULL.md §C.2,
// Open Question 2). orbitc models the proxy's contract only; generating
// its body is an external collaborator's job.
type ProcessProxyAllocation struct {
	ExprBase
	InterfaceName   string
	ProcessNameArg  Expression // optional; nil if the proxy spawns an anonymous process
	ConstructorArgs []Expression
}

func (p *ProcessProxyAllocation) String() string {
	return p.InterfaceName + "_Proxy(...)"
}

// ArrayAllocation is `new T[n]`, optionally literal-initialized.
type ArrayAllocation struct {
	ExprBase
	ElementTypeName string
	Capacity        Expression
	Initializer     *ArrayLiteral // nil unless literal-initialized
}

func (a *ArrayAllocation) String() string {
	return "new " + a.ElementTypeName + "[" + a.Capacity.String() + "]"
}

// ArraySubscript is `a[i]`. If Index is a Binary with Op == OpRange this
// is rewritten into a `slice(lo,hi)` Member call during type-check
// (spec §4.4 "Array subscript").
type ArraySubscript struct {
	ExprBase
	Subject Expression
	Index   Expression
}

func (s *ArraySubscript) String() string { return s.Subject.String() + "[" + s.Index.String() + "]" }

// TypeCast is `(T) e`. CastKind is decided during type-check (spec §4.4
// "TypeCast").
type CastKind int

const (
	StaticCast CastKind = iota
	DynamicCast
)

type TypeCast struct {
	ExprBase
	TargetTypeName string
	Operand        Expression
	Kind           CastKind
}

func (c *TypeCast) String() string { return "(" + c.TargetTypeName + ") " + c.Operand.String() }

// Temporary references a VariableDeclaration synthesized by a lowering
// pass (match subject, inlined-call return value, pattern-binding
// initializer) rather than one written by the source.
type Temporary struct {
	ExprBase
	Declaration *VariableDeclaration
}

func (t *Temporary) String() string { return t.Declaration.Name }

// WrappedStatement is an expression whose evaluation is really a block: the
// product of inlining a void-returning method call, a match used only for
// its side effects, or a defer rewrite (spec §4.4, §9 "Statement-expression
// duality").
type WrappedStatement struct {
	ExprBase
	Block *Block
}

func (w *WrappedStatement) String() string { return w.Block.String() }
