package pattern

import "github.com/fenlang/orbitc/internal/ast"

// TypedPattern is `T name`: the same casted-subject type test a
// ClassDecompositionPattern's type check produces, optionally binding the
// cast result to name (spec §4.5, Pattern.h's TypedPattern).
type TypedPattern struct {
	base
	TypeName                 string
	BindName                 string
	SubjectMatchesStatically bool
}

func (p *TypedPattern) Clone() Pattern {
	clone := &TypedPattern{TypeName: p.TypeName, BindName: p.BindName, SubjectMatchesStatically: p.SubjectMatchesStatically}
	p.base.cloneInto(&clone.base)
	return clone
}

// IsMatchExhaustive: a type test against a type other than "all" never
// closes out the synthetic "all" coverage case by itself (spec §4.5:
// "all other types require an irrefutable final case").
func (p *TypedPattern) IsMatchExhaustive(subject ast.Expression, coverage *MatchCoverage, guardPresent bool) bool {
	return false
}

func (p *TypedPattern) GenerateComparisonExpression(subject ast.Expression) ast.Expression {
	if p.SubjectMatchesStatically {
		if p.BindName != "" {
			p.addDeclaration(&ast.VariableDeclaration{Name: p.BindName, Form: ast.ImplicitDecl, Initializer: subject})
		}
		return nil
	}

	cast := &ast.TypeCast{TargetTypeName: p.TypeName, Operand: subject, Kind: ast.DynamicCast}
	castTemp := &ast.VariableDeclaration{Name: "__pattern_subject", Form: ast.ImplicitDecl, Initializer: cast}
	p.addTemporary(castTemp)
	castedSubject := &ast.Temporary{Declaration: castTemp}

	if p.BindName != "" {
		p.addDeclaration(&ast.VariableDeclaration{Name: p.BindName, Form: ast.ImplicitDecl, Initializer: castedSubject})
	}

	assign := &ast.Binary{Op: ast.OpAssign, Left: castedSubject, Right: cast}
	return &ast.Binary{Op: ast.OpNe, Left: assign, Right: &ast.NullLiteral{}}
}
