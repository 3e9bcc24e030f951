package sema

import (
	"testing"

	"github.com/fenlang/orbitc/internal/ast"
	"github.com/fenlang/orbitc/internal/defs"
	"github.com/fenlang/orbitc/internal/types"
)

func funIntInt() *types.Type {
	ft := types.Create(types.Function)
	sig := types.NewFunctionSignature(types.Create(types.Int))
	sig.AddArgument(types.Create(types.Int))
	ft.Signature = sig
	return ft
}

func TestFunctionTypedMembersConvertToClosureInterface(t *testing.T) {
	tree := New()
	cls := declClass(t, tree, "Callbacks", nil, defs.ClassProperties{})

	dm := defs.NewDataMember("onChange", funIntInt(), defs.Public, false, false, ast.Position{})
	cls.AppendMember(dm)

	handler := defs.NewMethod("setHandler", types.Void_(), defs.Public, false, ast.Position{})
	handler.AddArgument(&ast.VariableDeclaration{Name: "fn", Type: funIntInt(), Form: ast.TypedDecl})
	cls.AppendMember(handler)

	tree.RunConvertClosureTypes()

	if dm.Type.IsFunction() {
		t.Fatal("data member still carries a function type after conversion")
	}
	iface, ok := types.AsClass(dm.Type.Definition)
	if !ok {
		t.Fatal("converted type has no class definition")
	}
	ifaceClass, ok := iface.(*defs.ClassDefinition)
	if !ok || !ifaceClass.IsInterface() || !ifaceClass.IsClosure() {
		t.Fatalf("converted type should reference a closure interface, got %v", iface)
	}

	argType := handler.Arguments[0].Type
	if argType.IsFunction() {
		t.Fatal("argument still carries a function type after conversion")
	}
	if argType.Definition != dm.Type.Definition {
		t.Fatal("identical signatures must share one generated interface")
	}

	registered := false
	for _, d := range tree.GlobalDefinitions {
		if d == defs.Definition(ifaceClass) {
			registered = true
		}
	}
	if !registered {
		t.Fatal("generated interface not registered among global definitions")
	}
}

func TestDeferAddClosureArgumentConverts(t *testing.T) {
	tree := New()
	tree.RunConvertClosureTypes()

	addClosure := findMethodOn(tree.DeferClass, "addClosure")
	if addClosure == nil {
		t.Fatal("Defer.addClosure missing")
	}
	arg := addClosure.Arguments[0].Type
	if arg.IsFunction() {
		t.Fatal("addClosure argument still a function type")
	}
	if arg.Definition != types.Definition(tree.NoArgsClosureIface) {
		t.Fatalf("addClosure argument should reference the bootstrap fun void() interface, got %v", arg.Definition)
	}
}

func TestConvertClosureTypesIsIdempotent(t *testing.T) {
	tree := New()
	cls := declClass(t, tree, "Callbacks", nil, defs.ClassProperties{})
	cls.AppendMember(defs.NewDataMember("onChange", funIntInt(), defs.Public, false, false, ast.Position{}))

	tree.RunConvertClosureTypes()
	defsAfterFirst := len(tree.GlobalDefinitions)
	tree.RunConvertClosureTypes()
	if got := len(tree.GlobalDefinitions); got != defsAfterFirst {
		t.Fatalf("second run generated more interfaces: %d, was %d", got, defsAfterFirst)
	}
}
