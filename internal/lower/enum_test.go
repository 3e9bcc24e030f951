package lower

import (
	"testing"

	"github.com/fenlang/orbitc/internal/ast"
	"github.com/fenlang/orbitc/internal/bindings"
	"github.com/fenlang/orbitc/internal/defs"
	"github.com/fenlang/orbitc/internal/types"
)

func TestEnumGeneratorVariantShapes(t *testing.T) {
	scope := bindings.New()
	enumClass, err := defs.NewClass("Shape", nil, nil, scope, defs.ClassProperties{IsEnumeration: true, IsGenerated: true}, ast.Position{})
	if err != nil {
		t.Fatalf("NewClass: %v", err)
	}
	enumClass.AppendMember(defs.NewDataMember(EnumTagFieldName, types.Create(types.Int), defs.Public, false, false, ast.Position{}))

	gen := NewEnumGenerator(enumClass)
	squareField := &ast.VariableDeclaration{Name: "$0", TypeName: "int", Type: types.Create(types.Int), Form: ast.TypedDecl, PrimaryCtorArg: true}
	if err := gen.GenerateVariant("Square", []*ast.VariableDeclaration{squareField}, ast.Position{}); err != nil {
		t.Fatalf("GenerateVariant(Square): %v", err)
	}
	if err := gen.GenerateVariant("Point", nil, ast.Position{}); err != nil {
		t.Fatalf("GenerateVariant(Point): %v", err)
	}

	variants := gen.Variants()
	if len(variants) != 2 {
		t.Fatalf("expected 2 variants, got %d", len(variants))
	}
	if variants[0].Tag != 0 || variants[1].Tag != 1 {
		t.Fatalf("expected dense source-order tags, got %+v", variants)
	}
	if variants[0].DataClassName != "$SquareData" {
		t.Fatalf("expected $SquareData, got %q", variants[0].DataClassName)
	}
	if variants[1].DataClassName != "" {
		t.Fatalf("Point should carry no data class, got %q", variants[1].DataClassName)
	}

	ctor := findMethod(enumClass, "Square")
	if ctor == nil || !ctor.IsEnumCtor || len(ctor.Body.Statements) != 4 {
		t.Fatalf("expected a 4-statement Square constructor (decl, tag, field, return), got %+v", ctor)
	}

	names := gen.VariantNames()
	if names[0] != "Square" || names[1] != "Point" {
		t.Fatalf("unexpected variant name order: %v", names)
	}
}

func TestEnumGeneratorDeepCopyCoversEveryVariant(t *testing.T) {
	scope := bindings.New()
	enumClass, _ := defs.NewClass("Shape", nil, nil, scope, defs.ClassProperties{IsEnumeration: true, IsMessage: true, IsGenerated: true}, ast.Position{})
	enumClass.AppendMember(defs.NewDataMember(EnumTagFieldName, types.Create(types.Int), defs.Public, false, false, ast.Position{}))
	enumClass.GenerateEmptyDeepCopy()

	gen := NewEnumGenerator(enumClass)
	_ = gen.GenerateVariant("Circle", []*ast.VariableDeclaration{{Name: "$0", Type: types.Create(types.Int), Form: ast.TypedDecl}}, ast.Position{})
	_ = gen.GenerateVariant("Point", nil, ast.Position{})

	gen.GenerateDeepCopyMethod(scope)

	deepCopy := findMethod(enumClass, DeepCopyMethodName)
	if deepCopy == nil || deepCopy.Body == nil || len(deepCopy.Body.Statements) != 1 {
		t.Fatalf("expected a single return statement in _deepCopy body, got %+v", deepCopy)
	}
	ret, ok := deepCopy.Body.Statements[0].(*ast.Return)
	if !ok {
		t.Fatalf("expected return, got %T", deepCopy.Body.Statements[0])
	}
	match, ok := ret.Expr.(*ast.Match)
	if !ok || len(match.Cases) != 2 {
		t.Fatalf("expected a match with 2 cases, got %#v", ret.Expr)
	}
}
