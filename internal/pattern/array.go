package pattern

import "github.com/fenlang/orbitc/internal/ast"

// ArrayPattern is `[e0, e1, ..]`: a length test (equality with no
// wildcard, `>=` with one) plus, per element, a comparison or named-entity
// binding against `subject[i]` (spec §4.5, Pattern.h's ArrayPattern).
type ArrayPattern struct {
	base
	Elements   []ast.Expression
	WildcardAt int // index of the Wildcard element, -1 if none
}

func lengthOf(subject ast.Expression) ast.Expression {
	return &ast.MemberSelector{
		Receiver: subject,
		Member:   &ast.Member{Kind: ast.MethodCallAccess, Name: "length"},
	}
}

func (p *ArrayPattern) Clone() Pattern {
	clone := &ArrayPattern{
		Elements:   append([]ast.Expression(nil), p.Elements...),
		WildcardAt: p.WildcardAt,
	}
	p.base.cloneInto(&clone.base)
	return clone
}

// isIrrefutable reports whether the pattern is a bare `[..]`, matching any
// array regardless of length or contents.
func (p *ArrayPattern) isIrrefutable() bool {
	return len(p.Elements) == 1 && p.WildcardAt == 0
}

func (p *ArrayPattern) IsMatchExhaustive(subject ast.Expression, coverage *MatchCoverage, guardPresent bool) bool {
	if guardPresent || !p.isIrrefutable() {
		return false
	}
	coverage.MarkAllCovered()
	return true
}

func (p *ArrayPattern) GenerateComparisonExpression(subject ast.Expression) ast.Expression {
	if p.isIrrefutable() {
		return nil
	}
	length := lengthOf(subject)

	var cmp ast.Expression
	if p.WildcardAt < 0 {
		cmp = &ast.Binary{Op: ast.OpEq, Left: length, Right: &ast.IntLiteral{Value: int64(len(p.Elements))}}
	} else {
		minLen := len(p.Elements) - 1
		cmp = &ast.Binary{Op: ast.OpGe, Left: length, Right: &ast.IntLiteral{Value: int64(minLen)}}
	}

	postCount := 0
	if p.WildcardAt >= 0 {
		postCount = len(p.Elements) - p.WildcardAt - 1
	}

	for i, e := range p.Elements {
		if i == p.WildcardAt {
			continue
		}
		var idx ast.Expression
		if p.WildcardAt >= 0 && i > p.WildcardAt {
			distanceFromEnd := postCount - (i - p.WildcardAt - 1)
			idx = &ast.Binary{Op: ast.OpSub, Left: length, Right: &ast.IntLiteral{Value: int64(distanceFromEnd)}}
		} else {
			idx = &ast.IntLiteral{Value: int64(i)}
		}

		access := &ast.ArraySubscript{Subject: subject, Index: idx}
		if named, ok := e.(*ast.NamedEntity); ok {
			p.addDeclaration(&ast.VariableDeclaration{
				Name:        named.Name,
				Form:        ast.ImplicitDecl,
				Initializer: access,
			})
			continue
		}
		cmp = and(cmp, &ast.Binary{Op: ast.OpEq, Left: access, Right: e})
	}
	return cmp
}
