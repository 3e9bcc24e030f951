package backend

import (
	"testing"

	"github.com/fenlang/orbitc/internal/ast"
	"github.com/fenlang/orbitc/internal/defs"
	"github.com/fenlang/orbitc/internal/sema"
)

func TestBuildRenamesMainFreeFunction(t *testing.T) {
	tree := sema.New()
	main := defs.NewMethod("main", nil, defs.Public, true, ast.Position{})
	main.Body = &ast.Block{}
	if err := tree.GlobalFunctions.AddMethod(main); err != nil {
		t.Fatalf("AddMethod(main): %v", err)
	}

	contract := Build(tree, "demo", nil)
	if contract.ModuleName != "demo" {
		t.Fatalf("ModuleName = %q, want demo", contract.ModuleName)
	}
	if main.Name != "_main_" {
		t.Fatalf("expected main renamed to _main_, got %q", main.Name)
	}
}

func TestBuildLeavesLibraryModuleWithoutMainAlone(t *testing.T) {
	tree := sema.New()
	helper := defs.NewMethod("helper", nil, defs.Public, true, ast.Position{})
	helper.Body = &ast.Block{}
	if err := tree.GlobalFunctions.AddMethod(helper); err != nil {
		t.Fatalf("AddMethod(helper): %v", err)
	}

	Build(tree, "lib", nil)
	if helper.Name != "helper" {
		t.Fatalf("a library module's free functions must not be renamed, got %q", helper.Name)
	}
}

func TestBuildPreservesGlobalDefinitionOrder(t *testing.T) {
	tree := sema.New()
	a, err := defs.NewClass("A", nil, nil, tree.GlobalScope, defs.ClassProperties{}, ast.Position{})
	if err != nil {
		t.Fatalf("NewClass(A): %v", err)
	}
	tree.StartClass(a)
	tree.FinishClass()

	b, err := defs.NewClass("B", nil, []*defs.ClassDefinition{a}, tree.GlobalScope, defs.ClassProperties{}, ast.Position{})
	if err != nil {
		t.Fatalf("NewClass(B): %v", err)
	}
	tree.StartClass(b)
	tree.FinishClass()

	contract := Build(tree, "demo", []string{"runtime"})
	if len(contract.Header) < 2 {
		t.Fatalf("expected at least the two user classes in Header, got %d", len(contract.Header))
	}
	idxA, idxB := -1, -1
	for i, d := range contract.Header {
		switch d.DefinitionName() {
		case "A":
			idxA = i
		case "B":
			idxB = i
		}
	}
	if idxA == -1 || idxB == -1 || idxA >= idxB {
		t.Fatalf("expected A before B (B inherits A), got A@%d B@%d", idxA, idxB)
	}
	if len(contract.Dependencies) != 1 || contract.Dependencies[0] != "runtime" {
		t.Fatalf("expected Dependencies to be passed through, got %v", contract.Dependencies)
	}
}

func TestMangledNameUsesFullConstructedName(t *testing.T) {
	scope := tree(t).GlobalScope
	c, err := defs.NewClass("List", []*defs.GenericTypeParameterDefinition{defs.NewGenericTypeParameter("T", ast.Position{})}, nil, scope, defs.ClassProperties{}, ast.Position{})
	if err != nil {
		t.Fatalf("NewClass: %v", err)
	}
	// A plain (non-instantiated) class mangles to its bare name.
	if got := MangledName(c); got != "List" {
		t.Fatalf("MangledName(List) = %q, want List", got)
	}
}

func tree(t *testing.T) *sema.Tree {
	t.Helper()
	return sema.New()
}
