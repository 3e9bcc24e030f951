package sema

import (
	"testing"

	"github.com/fenlang/orbitc/internal/ast"
	"github.com/fenlang/orbitc/internal/defs"
	"github.com/fenlang/orbitc/internal/errors"
	"github.com/fenlang/orbitc/internal/types"
)

// checkSingleExpr type-checks `stmt` as the sole statement of a fresh
// method body and returns the statement list it lowered into.
func checkSingleExpr(t *testing.T, tree *Tree, expr ast.Expression) []ast.Statement {
	t.Helper()
	cls := declClass(t, tree, "Host", nil, defs.ClassProperties{})
	m := declMethod(t, cls, "run", types.Void_(), &ast.ExpressionStatement{Expr: expr})
	tree.RunTypeCheckAndTransform()
	return m.Body.Statements
}

func TestStringPlusRewritesToConcat(t *testing.T) {
	tree := New()
	stmts := checkSingleExpr(t, tree, &ast.Binary{
		Op:    ast.OpAdd,
		Left:  &ast.StringLiteral{Value: "a"},
		Right: &ast.StringLiteral{Value: "b"},
	})
	if len(tree.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", tree.Errors())
	}

	expr := stmts[0].(*ast.ExpressionStatement).Expr
	sel, ok := expr.(*ast.MemberSelector)
	if !ok {
		t.Fatalf("expected a.concat(b) selector, got %T", expr)
	}
	call := sel.Member.(*ast.Member)
	if call.Name != "concat" || len(call.Arguments) != 1 {
		t.Fatalf("expected concat(right), got %v", call)
	}
	if rt := sel.ResolvedType(); rt == nil || !rt.IsString() {
		t.Fatalf("string + string must stay string, got %v", rt)
	}
}

func TestStringEqualityRewritesToEqualsCall(t *testing.T) {
	for op, want := range map[ast.BinaryOp]string{ast.OpEq: "equals", ast.OpNe: "notEquals"} {
		tree := New()
		stmts := checkSingleExpr(t, tree, &ast.Binary{
			Op:    op,
			Left:  &ast.StringLiteral{Value: "a"},
			Right: &ast.StringLiteral{Value: "b"},
		})

		expr := stmts[0].(*ast.ExpressionStatement).Expr
		sel, ok := expr.(*ast.MemberSelector)
		if !ok {
			t.Fatalf("%v: expected selector, got %T", op, expr)
		}
		call := sel.Member.(*ast.Member)
		if call.Name != want {
			t.Fatalf("%v rewrote to %q, want %q", op, call.Name, want)
		}
		if rt := sel.ResolvedType(); rt == nil || !rt.IsBool() {
			t.Fatalf("%v must produce bool, got %v", op, rt)
		}
	}
}

func TestCompoundAssignDecomposes(t *testing.T) {
	tree := New()
	cls := declClass(t, tree, "Host", nil, defs.ClassProperties{})
	m := declMethod(t, cls, "run", types.Void_(),
		intDecl("x", &ast.IntLiteral{Value: 1}),
		&ast.ExpressionStatement{Expr: &ast.Binary{
			Op:    ast.OpSubAssign,
			Left:  &ast.NamedEntity{Name: "x"},
			Right: &ast.IntLiteral{Value: 2},
		}},
	)
	tree.RunTypeCheckAndTransform()
	if len(tree.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", tree.Errors())
	}

	expr := m.Body.Statements[1].(*ast.ExpressionStatement).Expr
	assign, ok := expr.(*ast.Binary)
	if !ok || assign.Op != ast.OpAssign {
		t.Fatalf("expected x = (x - 2), got %v", expr)
	}
	inner, ok := assign.Right.(*ast.Binary)
	if !ok || inner.Op != ast.OpSub {
		t.Fatalf("expected decomposed subtraction on the right, got %v", assign.Right)
	}
}

func TestEnumEqualityIsRejected(t *testing.T) {
	tree := New()
	declClass(t, tree, "Shape", nil, defs.ClassProperties{IsEnumeration: true})
	enumType := types.CreateNamed("Shape")
	enumType.SetDefinition(tree.LookupClass("Shape"))

	cls := declClass(t, tree, "Host", nil, defs.ClassProperties{})
	declMethod(t, cls, "run", types.Void_(),
		&ast.VarDeclarationStmt{Decl: &ast.VariableDeclaration{Name: "s", Type: enumType, Form: ast.TypedDecl}},
		&ast.ExpressionStatement{Expr: &ast.Binary{
			Op:    ast.OpEq,
			Left:  &ast.NamedEntity{Name: "s"},
			Right: &ast.NamedEntity{Name: "s"},
		}},
	)
	tree.RunTypeCheckAndTransform()
	if !hasErrorKind(tree.Errors(), errors.Typing) {
		t.Fatalf("expected enum-equality error, got %v", tree.Errors())
	}
}

func TestAssignmentToConstantIsRejected(t *testing.T) {
	tree := New()
	constInt := types.Create(types.Int)
	constInt.Constant = true

	cls := declClass(t, tree, "Host", nil, defs.ClassProperties{})
	declMethod(t, cls, "run", types.Void_(),
		&ast.VarDeclarationStmt{Decl: &ast.VariableDeclaration{Name: "c", Type: constInt, Form: ast.TypedDecl, Constant: true, Initializer: &ast.IntLiteral{Value: 1}}},
		&ast.ExpressionStatement{Expr: &ast.Binary{
			Op:    ast.OpAssign,
			Left:  &ast.NamedEntity{Name: "c"},
			Right: &ast.IntLiteral{Value: 2},
		}},
	)
	tree.RunTypeCheckAndTransform()
	if !hasErrorKind(tree.Errors(), errors.Structural) {
		t.Fatalf("expected constant-assignment error, got %v", tree.Errors())
	}
}

func TestComparisonProducesBool(t *testing.T) {
	tree := New()
	stmts := checkSingleExpr(t, tree, &ast.Binary{
		Op:    ast.OpLt,
		Left:  &ast.IntLiteral{Value: 1},
		Right: &ast.IntLiteral{Value: 2},
	})
	expr := stmts[0].(*ast.ExpressionStatement).Expr
	if rt := expr.ResolvedType(); rt == nil || !rt.IsBool() {
		t.Fatalf("comparison resolved to %v, want bool", rt)
	}
}

func TestStaticAndDynamicCastClassification(t *testing.T) {
	tree := New()
	base := declClass(t, tree, "Animal", nil, defs.ClassProperties{})
	declClass(t, tree, "Dog", []*defs.ClassDefinition{base}, defs.ClassProperties{})

	dogType := types.CreateNamed("Dog")
	dogType.SetDefinition(tree.LookupClass("Dog"))
	dogType.Reference = true
	animalType := types.CreateNamed("Animal")
	animalType.SetDefinition(base)
	animalType.Reference = true

	cls := declClass(t, tree, "Host", nil, defs.ClassProperties{})
	up := &ast.TypeCast{TargetTypeName: "Animal", Operand: &ast.NamedEntity{Name: "d"}}
	down := &ast.TypeCast{TargetTypeName: "Dog", Operand: &ast.NamedEntity{Name: "a"}}
	declMethod(t, cls, "run", types.Void_(),
		&ast.VarDeclarationStmt{Decl: &ast.VariableDeclaration{Name: "d", Type: dogType, Form: ast.TypedDecl}},
		&ast.VarDeclarationStmt{Decl: &ast.VariableDeclaration{Name: "a", Type: animalType, Form: ast.TypedDecl}},
		&ast.ExpressionStatement{Expr: up},
		&ast.ExpressionStatement{Expr: down},
	)
	tree.RunTypeCheckAndTransform()
	if len(tree.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", tree.Errors())
	}
	if up.Kind != ast.StaticCast {
		t.Error("upcast must be static")
	}
	if down.Kind != ast.DynamicCast {
		t.Error("downcast must be dynamic")
	}
}

func TestNumericCastIsStaticAndUnrelatedCastErrors(t *testing.T) {
	tree := New()
	cls := declClass(t, tree, "Host", nil, defs.ClassProperties{})
	numeric := &ast.TypeCast{TargetTypeName: "byte", Operand: &ast.IntLiteral{Value: 300}}
	bad := &ast.TypeCast{TargetTypeName: "bool", Operand: &ast.StringLiteral{Value: "x"}}
	declMethod(t, cls, "run", types.Void_(),
		&ast.ExpressionStatement{Expr: numeric},
		&ast.ExpressionStatement{Expr: bad},
	)
	tree.RunTypeCheckAndTransform()

	if numeric.Kind != ast.StaticCast {
		t.Error("numeric narrowing cast must be static")
	}
	if !hasErrorKind(tree.Errors(), errors.Typing) {
		t.Fatalf("expected a cast error for string->bool, got %v", tree.Errors())
	}
}
