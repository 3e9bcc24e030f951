package pattern

import (
	"fmt"

	"github.com/fenlang/orbitc/internal/ast"
	"github.com/fenlang/orbitc/internal/bindings"
	"github.com/fenlang/orbitc/internal/defs"
)

// Create builds the Pattern a pattern expression denotes (spec §4.5,
// Pattern::create). scope is consulted to tell a named-entity binding
// apart from a comparison against a static data member, and to recognize
// an enumeration variant's class-decomposition pattern.
func Create(expr ast.Expression, scope *bindings.Scope) (Pattern, error) {
	switch e := expr.(type) {
	case *ast.Placeholder:
		return newSimplePattern(e, "", true), nil
	case *ast.Wildcard:
		return newSimplePattern(e, "", true), nil
	case *ast.NamedEntity:
		if isStaticDataMemberReference(e.Name, scope) {
			return newSimplePattern(e, "", false), nil
		}
		return newSimplePattern(e, e.Name, true), nil
	case *ast.ArrayLiteral:
		return newArrayPattern(e)
	case *ast.ClassDecomposition:
		return newClassDecompositionPattern(e, scope)
	case *ast.TypedPattern:
		return &TypedPattern{TypeName: e.TypeName, BindName: e.BindName}, nil
	default:
		return newSimplePattern(e, "", false), nil
	}
}

func isStaticDataMemberReference(name string, scope *bindings.Scope) bool {
	b, ok := scope.Lookup(name)
	if !ok || b.Kind != bindings.DataMember {
		return false
	}
	dm, ok := b.Definition.(*defs.DataMemberDefinition)
	return ok && dm.Static
}

func newArrayPattern(lit *ast.ArrayLiteral) (*ArrayPattern, error) {
	p := &ArrayPattern{Elements: lit.Elements, WildcardAt: -1}
	wildcards := 0
	for i, e := range lit.Elements {
		if _, ok := e.(*ast.Wildcard); ok {
			wildcards++
			p.WildcardAt = i
		}
	}
	if wildcards > 1 {
		return nil, fmt.Errorf("array pattern may contain at most one wildcard (\"..\")")
	}
	return p, nil
}

func newClassDecompositionPattern(e *ast.ClassDecomposition, scope *bindings.Scope) (*ClassDecompositionPattern, error) {
	p := &ClassDecompositionPattern{
		ClassName:       e.ClassName,
		IsEnumVariant:   e.IsEnumVariant,
		EnumVariantName: e.EnumVariantName,
	}
	if b, ok := scope.Lookup(e.ClassName); ok && b.Kind == bindings.Class {
		if cls, ok := b.Definition.(*defs.ClassDefinition); ok && cls.IsEnumerationVariant() {
			p.IsEnumVariant = true
			if p.EnumVariantName == "" {
				p.EnumVariantName = e.ClassName
			}
		}
	}

	p.Members = make([]classDecompositionMember, len(e.Members))
	for i, m := range e.Members {
		sub, err := Create(m.Pattern, scope)
		if err != nil {
			return nil, fmt.Errorf("member %q of %s: %w", m.Name, e.ClassName, err)
		}
		p.Members[i] = classDecompositionMember{Name: m.Name, Pattern: sub}
	}
	return p, nil
}
