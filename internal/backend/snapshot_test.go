package backend

import (
	"testing"

	"github.com/fenlang/orbitc/internal/ast"
	"github.com/fenlang/orbitc/internal/defs"
	"github.com/gkampitakis/go-snaps/snaps"
)

// The header/impl partition is a plain slice of mangled names in
// declaration order; asserting it field-by-field buys nothing that a
// pinned snapshot doesn't, and a snapshot also catches an unintended
// reorder that individual index checks would miss.
func TestBuildSnapshotsHeaderAndImplementationPartition(t *testing.T) {
	tr := tree(t)
	base, err := defs.NewClass("Animal", nil, nil, tr.GlobalScope, defs.ClassProperties{}, ast.Position{})
	if err != nil {
		t.Fatalf("NewClass(Animal): %v", err)
	}
	tr.StartClass(base)
	tr.FinishClass()

	derived, err := defs.NewClass("Dog", nil, []*defs.ClassDefinition{base}, tr.GlobalScope, defs.ClassProperties{}, ast.Position{})
	if err != nil {
		t.Fatalf("NewClass(Dog): %v", err)
	}
	tr.StartClass(derived)
	tr.FinishClass()

	main := defs.NewMethod("main", nil, defs.Public, true, ast.Position{})
	main.Body = &ast.Block{}
	if err := tr.GlobalFunctions.AddMethod(main); err != nil {
		t.Fatalf("AddMethod(main): %v", err)
	}

	contract := Build(tr, "petshop", []string{"runtime"})
	contract.BuildID = "fixed-build-id"

	headerNames := make([]string, len(contract.Header))
	for i, d := range contract.Header {
		headerNames[i] = MangledName(d)
	}
	implNames := make([]string, len(contract.Implementation))
	for i, d := range contract.Implementation {
		implNames[i] = MangledName(d)
	}

	snaps.MatchSnapshot(t, "header partition", headerNames)
	snaps.MatchSnapshot(t, "implementation partition", implNames)
	snaps.MatchSnapshot(t, "forward declaration order", ForwardDeclarationOrder(contract))
}
