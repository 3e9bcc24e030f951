package defs

import (
	"testing"

	"github.com/fenlang/orbitc/internal/ast"
	"github.com/fenlang/orbitc/internal/types"
)

func TestGenericTypeParameterCloneStartsUnbound(t *testing.T) {
	g := NewGenericTypeParameter("T", ast.Position{})
	g.SetConcreteType(types.Create(types.Int))

	clone := g.Clone()
	if clone.ConcreteType() != nil {
		t.Fatal("expected a fresh clone to start unbound")
	}
	if clone.Name != "T" {
		t.Fatalf("expected clone to keep the name T, got %q", clone.Name)
	}
}

func TestClassIsGenericUntilAllParametersBound(t *testing.T) {
	c := newTestClass(t, "Box", nil, ClassProperties{})
	t1 := NewGenericTypeParameter("T", ast.Position{})
	u1 := NewGenericTypeParameter("U", ast.Position{})
	c.GenericParameters = []*GenericTypeParameterDefinition{t1, u1}

	if !c.IsGeneric() {
		t.Fatal("expected Box<T, U> to be generic before binding")
	}
	t1.SetConcreteType(types.Create(types.Int))
	if !c.IsGeneric() {
		t.Fatal("expected Box to still be generic with U unbound")
	}
	u1.SetConcreteType(types.Create(types.Bool))
	if c.IsGeneric() {
		t.Fatal("expected Box to be concrete once both parameters are bound")
	}
}

func TestForwardDeclarationTargetLinksToRealClass(t *testing.T) {
	fwd := NewForwardDeclaration("Node", ast.Position{})
	if fwd.Target != nil {
		t.Fatal("expected a fresh forward declaration to have no target")
	}
	real := newTestClass(t, "Node", nil, ClassProperties{})
	fwd.Target = real
	if fwd.Target.Name != "Node" {
		t.Fatalf("expected target name Node, got %q", fwd.Target.Name)
	}
}
