// Package bindings implements Fen's scoped symbol tables: the chain of
// class, method-overload, data-member, local-object, generic-parameter, and
// label bindings the semantic passes consult and mutate (spec §4.2).
package bindings

import (
	"github.com/fenlang/orbitc/internal/ast"
	"github.com/fenlang/orbitc/internal/types"
)

// EntityKind is the variant of entity a Binding names (spec §3 "Name
// binding").
type EntityKind int

const (
	LocalObject EntityKind = iota
	Class
	Method
	DataMember
	GenericTypeParameter
	Label
)

func (k EntityKind) String() string {
	switch k {
	case LocalObject:
		return "local object"
	case Class:
		return "class"
	case Method:
		return "method"
	case DataMember:
		return "data member"
	case GenericTypeParameter:
		return "generic type parameter"
	case Label:
		return "label"
	default:
		return "unknown"
	}
}

// Binding is one entry of a Scope: the kind of entity it names, plus
// whichever payload that kind carries. Method bindings carry an ordered
// overload list rather than a single Definition (spec §3: "Method bindings
// carry an ordered overload list").
type Binding struct {
	Kind EntityKind

	// Definition is set for Class, DataMember, and GenericTypeParameter
	// bindings.
	Definition types.Definition

	// LocalObject is set for LocalObject bindings.
	LocalObject *ast.VariableDeclaration

	// Overloads is set for Method bindings; every element's DefinitionName
	// is the same method name this binding is keyed under.
	Overloads []types.Definition
}

func newClassBinding(def types.Definition) *Binding {
	return &Binding{Kind: Class, Definition: def}
}

func newDataMemberBinding(def types.Definition) *Binding {
	return &Binding{Kind: DataMember, Definition: def}
}

func newGenericTypeParameterBinding(def types.Definition) *Binding {
	return &Binding{Kind: GenericTypeParameter, Definition: def}
}

func newLocalObjectBinding(decl *ast.VariableDeclaration) *Binding {
	return &Binding{Kind: LocalObject, LocalObject: decl}
}

func newMethodBinding(def types.Definition) *Binding {
	return &Binding{Kind: Method, Overloads: []types.Definition{def}}
}

func newLabelBinding() *Binding {
	return &Binding{Kind: Label}
}

// IsReferencingType reports whether this binding's payload contributes a
// usable type when referenced as a value: a LocalObject's declared type, or
// a DataMember's declared type. Class and GenericTypeParameter bindings are
// not values.
func (b *Binding) IsReferencingType() bool {
	switch b.Kind {
	case LocalObject, DataMember:
		return true
	default:
		return false
	}
}

// VariableType returns the Type a reference to this binding carries, or nil
// if the binding is not a value (see IsReferencingType).
func (b *Binding) VariableType() *types.Type {
	switch b.Kind {
	case LocalObject:
		if b.LocalObject != nil {
			return b.LocalObject.ResolvedType()
		}
	case DataMember:
		if dm, ok := b.Definition.(interface{ ResolvedType() *types.Type }); ok {
			return dm.ResolvedType()
		}
	}
	return nil
}
