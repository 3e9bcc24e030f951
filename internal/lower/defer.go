package lower

import "github.com/fenlang/orbitc/internal/ast"

// DeferFieldName is the synthesized stack-lifetime object every block that
// uses `defer` gets at its front (spec §4.4 "Defer").
const DeferFieldName = "$defer"

// NeedsDeferDeclaration reports whether block has at least one Defer
// statement and has not already had its `$defer` declaration injected.
func NeedsDeferDeclaration(block *ast.Block) bool {
	for _, s := range block.Statements {
		switch v := s.(type) {
		case *ast.Defer:
			return true
		case *ast.VarDeclarationStmt:
			if v.Decl.Name == DeferFieldName {
				return false
			}
		}
	}
	return false
}

// InjectDeferDeclaration prepends `var $defer: Defer` to block (spec §4.4:
// "On first use in an outer block, injects at the block's front a
// declaration of a `$defer` object").
func InjectDeferDeclaration(block *ast.Block, at ast.Position) {
	decl := &ast.VariableDeclaration{Name: DeferFieldName, TypeName: "Defer", Form: ast.TypedDecl, At: at}
	stmt := &ast.VarDeclarationStmt{Decl: decl}
	block.Statements = append([]ast.Statement{stmt}, block.Statements...)
}

// LowerDeferStatement rewrites `defer { body }` into
// `$defer.addClosure({ |...| body })` — an anonymous function wrapping the
// deferred block, passed to the block-scoped Defer object's addClosure
// method (spec §4.4 "Defer"). The runtime's Defer destructor is what
// actually runs the registered closures in reverse order at scope exit;
// orbitc only needs to produce the call.
func LowerDeferStatement(d *ast.Defer) ast.Statement {
	fn := &ast.AnonymousFunction{Body: d.Body}
	call := &ast.Member{
		Kind:      ast.MethodCallAccess,
		Name:      "addClosure",
		Arguments: []ast.Expression{fn},
	}
	return &ast.ExpressionStatement{Expr: &ast.MemberSelector{
		Receiver: &ast.NamedEntity{Name: DeferFieldName},
		Member:   call,
	}}
}
