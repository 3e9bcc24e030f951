package backend

import (
	"testing"

	"github.com/fenlang/orbitc/internal/ast"
	"github.com/fenlang/orbitc/internal/bindings"
	"github.com/fenlang/orbitc/internal/defs"
	"github.com/fenlang/orbitc/internal/lower"
	"github.com/fenlang/orbitc/internal/types"
)

func TestDefaultRuntimeSymbolsMatchLowerConstants(t *testing.T) {
	sym := DefaultRuntimeSymbols()
	if sym.CloneMethod != lower.CloneMethodName {
		t.Errorf("CloneMethod = %q, want %q", sym.CloneMethod, lower.CloneMethodName)
	}
	if sym.DeepCopyMethod != lower.DeepCopyMethodName {
		t.Errorf("DeepCopyMethod = %q, want %q", sym.DeepCopyMethod, lower.DeepCopyMethodName)
	}
	if sym.EnumTagField != lower.EnumTagFieldName {
		t.Errorf("EnumTagField = %q, want %q", sym.EnumTagField, lower.EnumTagFieldName)
	}
	if sym.DeferClassName != "Defer" {
		t.Errorf("DeferClassName = %q, want Defer", sym.DeferClassName)
	}
}

func buildShapeEnum(t *testing.T) *defs.ClassDefinition {
	t.Helper()
	scope := bindings.New()
	enumClass, err := defs.NewClass("Shape", nil, nil, scope, defs.ClassProperties{IsEnumeration: true, IsMessage: true, IsGenerated: true}, ast.Position{})
	if err != nil {
		t.Fatalf("NewClass: %v", err)
	}
	enumClass.GenerateEmptyDeepCopy()

	squareField := &ast.VariableDeclaration{Name: "$0", TypeName: "int", Type: types.Create(types.Int), Form: ast.TypedDecl, PrimaryCtorArg: true}
	refField := &ast.VariableDeclaration{Name: "$0", TypeName: "object", Form: ast.TypedDecl, PrimaryCtorArg: true}
	refTy := types.Create(types.Object)
	refField.Type = refTy
	enumClass.RawVariants = []defs.RawVariant{
		{Name: "Square", Fields: []*ast.VariableDeclaration{squareField}},
		{Name: "Holder", Fields: []*ast.VariableDeclaration{refField}},
		{Name: "Point"},
	}

	gen := lower.NewEnumGenerator(enumClass)
	if err := gen.GenerateVariantsFromRaw(); err != nil {
		t.Fatalf("GenerateVariantsFromRaw: %v", err)
	}
	return enumClass
}

func TestEnumLayoutRecoversTagsAndDataClasses(t *testing.T) {
	enumClass := buildShapeEnum(t)
	layout := EnumLayout(enumClass)
	if len(layout) != 3 {
		t.Fatalf("expected 3 variant layouts, got %d: %+v", len(layout), layout)
	}
	if layout[0].Name != "Square" || layout[0].Tag != 0 || layout[0].DataClassName != "$SquareData" {
		t.Fatalf("unexpected Square layout: %+v", layout[0])
	}
	if layout[0].OwnsReferences {
		t.Fatalf("Square's int field is not a reference, OwnsReferences should be false")
	}
	if layout[1].Name != "Holder" || !layout[1].OwnsReferences {
		t.Fatalf("Holder carries an object field, OwnsReferences should be true: %+v", layout[1])
	}
	if layout[2].Name != "Point" || layout[2].DataClassName != "" {
		t.Fatalf("Point carries no fields, expected no data class: %+v", layout[2])
	}
}
