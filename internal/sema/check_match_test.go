package sema

import (
	"testing"

	"github.com/fenlang/orbitc/internal/ast"
	"github.com/fenlang/orbitc/internal/defs"
	"github.com/fenlang/orbitc/internal/errors"
	"github.com/fenlang/orbitc/internal/types"
)

func boolMatchOn(cases ...*ast.MatchCase) (*ast.VarDeclarationStmt, *ast.ExpressionStatement) {
	decl := &ast.VarDeclarationStmt{Decl: &ast.VariableDeclaration{
		Name: "flag", Type: types.Create(types.Bool), Form: ast.TypedDecl, Initializer: &ast.BoolLiteral{Value: true},
	}}
	m := &ast.Match{Subject: &ast.NamedEntity{Name: "flag"}, Cases: cases}
	return decl, &ast.ExpressionStatement{Expr: m}
}

func TestBoolMatchMissingCaseIsNonExhaustive(t *testing.T) {
	tree := New()
	cls := declClass(t, tree, "Host", nil, defs.ClassProperties{})
	decl, stmt := boolMatchOn(
		&ast.MatchCase{Pattern: &ast.BoolLiteral{Value: true}, Result: &ast.IntLiteral{Value: 1}},
	)
	declMethod(t, cls, "run", types.Void_(), decl, stmt)

	tree.RunTypeCheckAndTransform()
	if !hasErrorKind(tree.Errors(), errors.Pattern) {
		t.Fatalf("expected non-exhaustive-match error, got %v", tree.Errors())
	}
}

func TestBoolMatchWithBothCasesIsExhaustive(t *testing.T) {
	tree := New()
	cls := declClass(t, tree, "Host", nil, defs.ClassProperties{})
	decl, stmt := boolMatchOn(
		&ast.MatchCase{Pattern: &ast.BoolLiteral{Value: true}, Result: &ast.IntLiteral{Value: 1}},
		&ast.MatchCase{Pattern: &ast.BoolLiteral{Value: false}, Result: &ast.IntLiteral{Value: 0}},
	)
	declMethod(t, cls, "run", types.Void_(), decl, stmt)

	tree.RunTypeCheckAndTransform()
	if len(tree.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", tree.Errors())
	}
}

func TestWildcardFinalCaseIsExhaustive(t *testing.T) {
	tree := New()
	cls := declClass(t, tree, "Host", nil, defs.ClassProperties{})
	m := declMethod(t, cls, "run", types.Void_(),
		intDecl("n", &ast.IntLiteral{Value: 2}),
		&ast.ExpressionStatement{Expr: &ast.Match{
			Subject: &ast.NamedEntity{Name: "n"},
			Cases: []*ast.MatchCase{
				{Pattern: &ast.IntLiteral{Value: 1}, Result: &ast.IntLiteral{Value: 10}},
				{Pattern: &ast.Placeholder{}, Result: &ast.IntLiteral{Value: 0}},
			},
		}},
	)

	tree.RunTypeCheckAndTransform()
	if len(tree.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", tree.Errors())
	}

	// lowering: n decl, __match_result_1 decl, if-chain, trailing temporary
	// statement for the match's (unused) value.
	stmts := m.Body.Statements
	var resultDecl *ast.VarDeclarationStmt
	var chain *ast.If
	for _, s := range stmts {
		switch v := s.(type) {
		case *ast.VarDeclarationStmt:
			if v.Decl.Name == "__match_result_1" {
				resultDecl = v
			}
		case *ast.If:
			chain = v
		}
	}
	if resultDecl == nil {
		t.Fatalf("missing match result temp; statements: %v", stmts)
	}
	if resultDecl.Decl.Type == nil || resultDecl.Decl.Type.Kind != types.Int {
		t.Fatalf("match result typed %v, want int", resultDecl.Decl.Type)
	}
	if chain == nil {
		t.Fatalf("missing lowered if-chain; statements: %v", stmts)
	}
	// the final irrefutable case runs bare: the chain's else branch is a
	// block, not another if.
	if _, ok := chain.ElseBranch.(*ast.Block); !ok {
		t.Fatalf("final wildcard case should lower to a bare block, got %T", chain.ElseBranch)
	}
}

func TestSpecificCasesWithoutWildcardAreNonExhaustive(t *testing.T) {
	tree := New()
	cls := declClass(t, tree, "Host", nil, defs.ClassProperties{})
	declMethod(t, cls, "run", types.Void_(),
		intDecl("n", &ast.IntLiteral{Value: 2}),
		&ast.ExpressionStatement{Expr: &ast.Match{
			Subject: &ast.NamedEntity{Name: "n"},
			Cases: []*ast.MatchCase{
				{Pattern: &ast.IntLiteral{Value: 1}, Result: &ast.IntLiteral{Value: 10}},
				{Pattern: &ast.IntLiteral{Value: 2}, Result: &ast.IntLiteral{Value: 20}},
			},
		}},
	)

	tree.RunTypeCheckAndTransform()
	if !hasErrorKind(tree.Errors(), errors.Pattern) {
		t.Fatalf("expected non-exhaustive-match error, got %v", tree.Errors())
	}
}

func TestCaseAfterExhaustiveOneIsUnreachable(t *testing.T) {
	tree := New()
	cls := declClass(t, tree, "Host", nil, defs.ClassProperties{})
	declMethod(t, cls, "run", types.Void_(),
		intDecl("n", &ast.IntLiteral{Value: 2}),
		&ast.ExpressionStatement{Expr: &ast.Match{
			Subject: &ast.NamedEntity{Name: "n"},
			Cases: []*ast.MatchCase{
				{Pattern: &ast.Placeholder{}, Result: &ast.IntLiteral{Value: 0}},
				{Pattern: &ast.IntLiteral{Value: 1}, Result: &ast.IntLiteral{Value: 10}},
			},
		}},
	)

	tree.RunTypeCheckAndTransform()
	if !hasErrorKind(tree.Errors(), errors.Pattern) {
		t.Fatalf("expected unreachable-case error, got %v", tree.Errors())
	}
}

// TestMatchCaseBindsVariablesForGuardAndResult is spec §8 scenario 3:
// `match s { Rectangle(w,h) if w==h -> 1; Rectangle(w,h) -> 2; Square(n) -> n }`.
// The bound variables must resolve inside the guard and the result, and the
// guard must lower to an if nested after the binding declarations.
func TestMatchCaseBindsVariablesForGuardAndResult(t *testing.T) {
	tree := New()
	enum := declClass(t, tree, "Shape", nil, defs.ClassProperties{IsEnumeration: true})
	enum.RawVariants = []defs.RawVariant{{Name: "Square"}, {Name: "Rectangle"}}
	enumType := types.CreateNamed("Shape")
	enumType.SetDefinition(enum)

	rectangle := func() *ast.ClassDecomposition {
		return &ast.ClassDecomposition{
			ClassName: "Shape", IsEnumVariant: true, EnumVariantName: "Rectangle",
			Members: []ast.DecompositionMember{
				{Name: "0", Pattern: &ast.NamedEntity{Name: "w"}},
				{Name: "1", Pattern: &ast.NamedEntity{Name: "h"}},
			},
		}
	}
	square := &ast.ClassDecomposition{
		ClassName: "Shape", IsEnumVariant: true, EnumVariantName: "Square",
		Members: []ast.DecompositionMember{
			{Name: "0", Pattern: &ast.NamedEntity{Name: "n"}},
		},
	}

	cls := declClass(t, tree, "Host", nil, defs.ClassProperties{})
	m := declMethod(t, cls, "run", types.Void_(),
		&ast.VarDeclarationStmt{Decl: &ast.VariableDeclaration{Name: "s", Type: enumType, Form: ast.TypedDecl}},
		&ast.ExpressionStatement{Expr: &ast.Match{
			Subject: &ast.NamedEntity{Name: "s"},
			Cases: []*ast.MatchCase{
				{
					Pattern: rectangle(),
					Guard:   &ast.Binary{Op: ast.OpEq, Left: &ast.NamedEntity{Name: "w"}, Right: &ast.NamedEntity{Name: "h"}},
					Result:  &ast.IntLiteral{Value: 1},
				},
				{Pattern: rectangle(), Result: &ast.IntLiteral{Value: 2}},
				{Pattern: square, Result: &ast.NamedEntity{Name: "n"}},
			},
		}},
	)

	tree.RunTypeCheckAndTransform()
	if len(tree.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", tree.Errors())
	}

	var root *ast.If
	for _, s := range m.Body.Statements {
		if v, ok := s.(*ast.If); ok {
			root = v
		}
	}
	if root == nil {
		t.Fatalf("missing lowered if-chain; statements: %v", m.Body.Statements)
	}

	// case 1: the guard nests after `var w`/`var h`, never in the outer
	// tag comparison (an OpAnd here would mean the guard was merged).
	if outer, ok := root.Condition.(*ast.Binary); !ok || outer.Op != ast.OpEq {
		t.Fatalf("outer condition should be the bare $tag comparison, got %v", root.Condition)
	}
	caseBody := root.Then.Statements
	if len(caseBody) != 3 {
		t.Fatalf("case body should be [var w, var h, guarded if], got %v", caseBody)
	}
	wDecl, ok := caseBody[0].(*ast.VarDeclarationStmt)
	if !ok || wDecl.Decl.Name != "w" {
		t.Fatalf("first case statement should declare w, got %v", caseBody[0])
	}
	hDecl, ok := caseBody[1].(*ast.VarDeclarationStmt)
	if !ok || hDecl.Decl.Name != "h" {
		t.Fatalf("second case statement should declare h, got %v", caseBody[1])
	}
	guardIf, ok := caseBody[2].(*ast.If)
	if !ok {
		t.Fatalf("guard should lower to a nested if, got %T", caseBody[2])
	}
	guardCmp, ok := guardIf.Condition.(*ast.Binary)
	if !ok || guardCmp.Op != ast.OpEq {
		t.Fatalf("guard condition should be w==h, got %v", guardIf.Condition)
	}
	if _, ok := guardCmp.Left.(*ast.LocalVariable); !ok {
		t.Fatalf("guard's w must resolve against the pattern binding, got %T", guardCmp.Left)
	}

	// case 3: the bound n flows into the result expression.
	second, ok := root.ElseBranch.(*ast.If)
	if !ok {
		t.Fatalf("second case missing, got %T", root.ElseBranch)
	}
	third, ok := second.ElseBranch.(*ast.If)
	if !ok {
		t.Fatalf("third case missing, got %T", second.ElseBranch)
	}
	thirdBody := third.Then.Statements
	assign, ok := thirdBody[len(thirdBody)-1].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("third case should end with the result assignment, got %T", thirdBody[len(thirdBody)-1])
	}
	bin, ok := assign.Expr.(*ast.Binary)
	if !ok || bin.Op != ast.OpAssign {
		t.Fatalf("expected result assignment, got %v", assign.Expr)
	}
	if _, ok := bin.Right.(*ast.LocalVariable); !ok {
		t.Fatalf("result's n must resolve against the pattern binding, got %T", bin.Right)
	}
}

func TestEnumMatchRequiresEveryVariant(t *testing.T) {
	tree := New()
	enum := declClass(t, tree, "Shape", nil, defs.ClassProperties{IsEnumeration: true})
	enum.RawVariants = []defs.RawVariant{{Name: "Square"}, {Name: "Circle"}}
	enumType := types.CreateNamed("Shape")
	enumType.SetDefinition(enum)

	cls := declClass(t, tree, "Host", nil, defs.ClassProperties{})
	declMethod(t, cls, "run", types.Void_(),
		&ast.VarDeclarationStmt{Decl: &ast.VariableDeclaration{Name: "s", Type: enumType, Form: ast.TypedDecl}},
		&ast.ExpressionStatement{Expr: &ast.Match{
			Subject: &ast.NamedEntity{Name: "s"},
			Cases: []*ast.MatchCase{
				{Pattern: &ast.ClassDecomposition{ClassName: "Square", IsEnumVariant: true, EnumVariantName: "Square"}, Result: &ast.IntLiteral{Value: 1}},
			},
		}},
	)

	tree.RunTypeCheckAndTransform()
	if !hasErrorKind(tree.Errors(), errors.Pattern) {
		t.Fatalf("expected non-exhaustive enum match error, got %v", tree.Errors())
	}
}
