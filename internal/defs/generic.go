package defs

import (
	"github.com/fenlang/orbitc/internal/ast"
	"github.com/fenlang/orbitc/internal/types"
)

// GenericTypeParameterDefinition is a symbolic type variable declared on a
// class (spec GLOSSARY "Generic type parameter"). Binding it to a concrete
// Type is what MakeGenericTypesConcrete does when cloning a generic class
// for a specific instantiation (spec §4.6 pass 3).
type GenericTypeParameterDefinition struct {
	Base
	Concrete *types.Type
}

// NewGenericTypeParameter constructs an unbound generic type parameter.
func NewGenericTypeParameter(name string, at ast.Position) *GenericTypeParameterDefinition {
	g := &GenericTypeParameterDefinition{}
	g.Name = name
	g.At = at
	g.kind = GenericTypeParameterKind
	return g
}

func (g *GenericTypeParameterDefinition) ConcreteType() *types.Type      { return g.Concrete }
func (g *GenericTypeParameterDefinition) SetConcreteType(t *types.Type) { g.Concrete = t }

// Clone copies g; the clone starts unbound regardless of whether g itself
// was bound, since binding happens per-instantiation.
func (g *GenericTypeParameterDefinition) Clone() *GenericTypeParameterDefinition {
	clone := NewGenericTypeParameter(g.Name, g.At)
	clone.Enclosing = g.Enclosing
	clone.Imported = g.Imported
	return clone
}

// ForwardDeclarationDefinition stands in for a class definition that has
// not been fully generated yet, used to break recursive generic
// instantiation cycles (spec §9 "Cyclic / recursive types").
type ForwardDeclarationDefinition struct {
	Base
	// Target is filled in once the real class has been generated.
	Target *ClassDefinition
}

func NewForwardDeclaration(name string, at ast.Position) *ForwardDeclarationDefinition {
	f := &ForwardDeclarationDefinition{}
	f.Name = name
	f.At = at
	f.kind = ForwardDeclarationKind
	return f
}

func (f *ForwardDeclarationDefinition) String() string { return "class " + f.Name + ";" }
