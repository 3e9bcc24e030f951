package pattern

import "github.com/fenlang/orbitc/internal/ast"

// SimplePattern wraps any pattern expression that isn't an array pattern,
// class decomposition, or typed pattern: a literal compared for equality,
// a named entity that binds (unless it resolves to a static data member),
// or a placeholder/wildcard that always matches (spec §4.5, Pattern.h's
// SimplePattern).
type SimplePattern struct {
	base
	Expr ast.Expression

	// bindName is set when Expr is a NamedEntity that does not resolve to
	// a static data member: the pattern binds subject to a new local of
	// this name instead of comparing.
	bindName string

	// irrefutable is set for a placeholder/wildcard pattern, or a plain
	// binding: it always matches and contributes no comparison.
	irrefutable bool
}

func newSimplePattern(expr ast.Expression, bindName string, irrefutable bool) *SimplePattern {
	return &SimplePattern{Expr: expr, bindName: bindName, irrefutable: irrefutable}
}

func (p *SimplePattern) Clone() Pattern {
	clone := &SimplePattern{Expr: p.Expr, bindName: p.bindName, irrefutable: p.irrefutable}
	p.base.cloneInto(&clone.base)
	return clone
}

func (p *SimplePattern) IsMatchExhaustive(subject ast.Expression, coverage *MatchCoverage, guardPresent bool) bool {
	if p.irrefutable {
		if !guardPresent {
			coverage.MarkAllCovered()
		}
		return !guardPresent
	}
	if guardPresent {
		return false
	}
	if lit, ok := p.Expr.(*ast.BoolLiteral); ok {
		if lit.Value {
			coverage.MarkCaseAsCovered("true")
		} else {
			coverage.MarkCaseAsCovered("false")
		}
	}
	return coverage.AreAllCasesCovered()
}

func (p *SimplePattern) GenerateComparisonExpression(subject ast.Expression) ast.Expression {
	if p.irrefutable {
		if p.bindName != "" {
			p.addDeclaration(&ast.VariableDeclaration{
				Name:        p.bindName,
				Form:        ast.ImplicitDecl,
				Initializer: subject,
			})
		}
		return nil
	}
	return &ast.Binary{Op: ast.OpEq, Left: subject, Right: p.Expr}
}
