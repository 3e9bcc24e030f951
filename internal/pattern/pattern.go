package pattern

import "github.com/fenlang/orbitc/internal/ast"

// Pattern is one match-case pattern. It can test whether it — together
// with the coverage accumulated by earlier cases — makes a match
// exhaustive, and can lower itself into a comparison expression plus the
// variable declarations and temporaries it introduces (spec §4.5,
// grounded on Pattern.h's Pattern/SimplePattern/ArrayPattern/
// ClassDecompositionPattern/TypedPattern hierarchy).
type Pattern interface {
	Clone() Pattern

	// IsMatchExhaustive reports whether this case, with no guard present,
	// leaves coverage empty, or is irrefutable against a type-matched
	// subject.
	IsMatchExhaustive(subject ast.Expression, coverage *MatchCoverage, guardPresent bool) bool

	// GenerateComparisonExpression lowers the pattern into the boolean
	// expression a case's `if` tests, or nil if the pattern is
	// irrefutable and needs no test.
	GenerateComparisonExpression(subject ast.Expression) ast.Expression

	// VariablesCreatedByPattern returns the declarations this pattern's
	// bindings introduce (SimplePattern name bindings, decomposed member
	// bindings, a TypedPattern's bound name).
	VariablesCreatedByPattern() []*ast.VariableDeclaration

	// TemporariesCreatedByPattern returns synthetic temporaries the
	// pattern needed while generating its comparison (e.g. a casted-
	// subject temporary for a class-decomposition or typed pattern).
	TemporariesCreatedByPattern() []*ast.VariableDeclaration
}

// base holds the declarations/temporaries a pattern accumulates while
// generating its comparison expression, mirroring Pattern.h's protected
// declarations/temporaries lists.
type base struct {
	declarations []*ast.VariableDeclaration
	temporaries  []*ast.VariableDeclaration
}

func (b *base) VariablesCreatedByPattern() []*ast.VariableDeclaration    { return b.declarations }
func (b *base) TemporariesCreatedByPattern() []*ast.VariableDeclaration { return b.temporaries }

func (b *base) addDeclaration(d *ast.VariableDeclaration) { b.declarations = append(b.declarations, d) }
func (b *base) addTemporary(d *ast.VariableDeclaration)   { b.temporaries = append(b.temporaries, d) }

// cloneInto copies b's accumulated declarations/temporaries into other,
// the way Pattern.cloneVariableDeclarations copies between C++ instances.
func (b *base) cloneInto(other *base) {
	other.declarations = append([]*ast.VariableDeclaration(nil), b.declarations...)
	other.temporaries = append([]*ast.VariableDeclaration(nil), b.temporaries...)
}

// and combines two comparison expressions with &&, skipping either side
// that is nil (an irrefutable sub-comparison).
func and(left, right ast.Expression) ast.Expression {
	switch {
	case left == nil:
		return right
	case right == nil:
		return left
	default:
		return &ast.Binary{Op: ast.OpAnd, Left: left, Right: right}
	}
}
