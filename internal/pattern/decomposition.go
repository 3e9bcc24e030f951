package pattern

import "github.com/fenlang/orbitc/internal/ast"

type classDecompositionMember struct {
	Name    string
	Pattern Pattern
}

// ClassDecompositionPattern is `ClassName(p0, p1, ...)`: a type test (or,
// for an enumeration variant, a `$tag` test) plus, per member, a recursive
// sub-pattern (spec §4.5, Pattern.h's ClassDecompositionPattern).
type ClassDecompositionPattern struct {
	base
	ClassName       string
	IsEnumVariant   bool
	EnumVariantName string

	// SubjectMatchesStatically is set when the subject's static type
	// already equals ClassName: no cast-and-compare is generated, only
	// the member tests (spec §4.4 "Class-decomposition pattern").
	SubjectMatchesStatically bool

	Members []classDecompositionMember
}

func (p *ClassDecompositionPattern) Clone() Pattern {
	clone := &ClassDecompositionPattern{
		ClassName:                p.ClassName,
		IsEnumVariant:            p.IsEnumVariant,
		EnumVariantName:          p.EnumVariantName,
		SubjectMatchesStatically: p.SubjectMatchesStatically,
		Members:                  make([]classDecompositionMember, len(p.Members)),
	}
	for i, m := range p.Members {
		clone.Members[i] = classDecompositionMember{Name: m.Name, Pattern: m.Pattern.Clone()}
	}
	p.base.cloneInto(&clone.base)
	return clone
}

func (p *ClassDecompositionPattern) IsMatchExhaustive(subject ast.Expression, coverage *MatchCoverage, guardPresent bool) bool {
	if guardPresent || !p.IsEnumVariant {
		return false
	}
	coverage.MarkCaseAsCovered(p.EnumVariantName)
	return coverage.AreAllCasesCovered()
}

func (p *ClassDecompositionPattern) memberAccess(subject ast.Expression, memberName string) ast.Expression {
	if p.IsEnumVariant {
		variantAccess := &ast.MemberSelector{Receiver: subject, Member: &ast.Member{Name: "$" + p.EnumVariantName}}
		return &ast.MemberSelector{Receiver: variantAccess, Member: &ast.Member{Name: "$" + memberName}}
	}
	return &ast.MemberSelector{Receiver: subject, Member: &ast.Member{Name: memberName}}
}

func (p *ClassDecompositionPattern) generateTagComparison(subject ast.Expression) ast.Expression {
	tag := &ast.MemberSelector{Receiver: subject, Member: &ast.Member{Name: "$tag"}}
	tagConstant := &ast.MemberSelector{
		Receiver: &ast.ClassName{Name: p.ClassName},
		Member:   &ast.Member{Name: "$" + p.EnumVariantName + "Tag"},
	}
	return &ast.Binary{Op: ast.OpEq, Left: tag, Right: tagConstant}
}

func (p *ClassDecompositionPattern) inheritNested(sub Pattern) {
	p.declarations = append(p.declarations, sub.VariablesCreatedByPattern()...)
	p.temporaries = append(p.temporaries, sub.TemporariesCreatedByPattern()...)
}

func (p *ClassDecompositionPattern) GenerateComparisonExpression(subject ast.Expression) ast.Expression {
	castedSubject := subject
	var typeTest ast.Expression

	switch {
	case p.IsEnumVariant:
		typeTest = p.generateTagComparison(subject)
	case !p.SubjectMatchesStatically:
		cast := &ast.TypeCast{TargetTypeName: p.ClassName, Operand: subject, Kind: ast.DynamicCast}
		castTemp := &ast.VariableDeclaration{Name: "__pattern_subject", Form: ast.ImplicitDecl, Initializer: cast}
		p.addTemporary(castTemp)
		castedSubject = &ast.Temporary{Declaration: castTemp}
		assign := &ast.Binary{Op: ast.OpAssign, Left: castedSubject, Right: cast}
		typeTest = &ast.Binary{Op: ast.OpNe, Left: assign, Right: &ast.NullLiteral{}}
	}

	cmp := typeTest
	for _, m := range p.Members {
		access := p.memberAccess(castedSubject, m.Name)
		memberCmp := m.Pattern.GenerateComparisonExpression(access)
		p.inheritNested(m.Pattern)
		cmp = and(cmp, memberCmp)
	}
	return cmp
}
