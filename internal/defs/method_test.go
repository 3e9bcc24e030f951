package defs

import (
	"testing"

	"github.com/fenlang/orbitc/internal/ast"
	"github.com/fenlang/orbitc/internal/types"
)

func TestIsCompatibleChecksArityAndTypes(t *testing.T) {
	m := NewMethod("add", types.Create(types.Int), Public, false, ast.Position{})
	arg := &ast.VariableDeclaration{Name: "n", TypeName: "int"}
	arg.SetResolvedType(types.Create(types.Int))
	m.AddArgument(arg)

	if !m.IsCompatible([]*types.Type{types.Create(types.Int)}) {
		t.Error("expected a matching int argument to be compatible")
	}
	if m.IsCompatible([]*types.Type{types.Create(types.Int), types.Create(types.Int)}) {
		t.Error("expected a wrong arity call to be incompatible")
	}
	if m.IsCompatible([]*types.Type{types.Create(types.Bool)}) {
		t.Error("expected a bool argument against an int parameter to be incompatible")
	}
}

func TestImplementsRequiresMatchingNameArgsAndReturn(t *testing.T) {
	abstractMethod := NewMethod("run", types.Create(types.Void), Public, false, ast.Position{})
	override := NewMethod("run", types.Create(types.Void), Public, false, ast.Position{})
	if !override.Implements(abstractMethod) {
		t.Error("expected a matching override to implement the abstract method")
	}

	wrongReturn := NewMethod("run", types.Create(types.Int), Public, false, ast.Position{})
	if wrongReturn.Implements(abstractMethod) {
		t.Error("expected a mismatched return type to not implement the abstract method")
	}
}

func TestArgumentTypesEqualFallsBackToTypeNameBeforeResolution(t *testing.T) {
	a := NewMethod("f", nil, Public, false, ast.Position{})
	a.AddArgument(&ast.VariableDeclaration{Name: "x", TypeName: "int"})
	b := NewMethod("f", nil, Public, false, ast.Position{})
	b.AddArgument(&ast.VariableDeclaration{Name: "y", TypeName: "int"})
	if !a.ArgumentTypesEqual(b) {
		t.Error("expected same-named unresolved argument types to compare equal")
	}

	c := NewMethod("f", nil, Public, false, ast.Position{})
	c.AddArgument(&ast.VariableDeclaration{Name: "z", TypeName: "string"})
	if a.ArgumentTypesEqual(c) {
		t.Error("expected differently-typed unresolved arguments to compare unequal")
	}
}
