package lower

import "github.com/fenlang/orbitc/internal/ast"

// CloneBlock deep-copies b so a lambda-signature method's body can be
// spliced into more than one call site without call sites sharing mutable
// AST state (spec §4.4 "MethodCall": "the body is cloned and spliced into
// the call site").
func CloneBlock(b *ast.Block) *ast.Block {
	if b == nil {
		return nil
	}
	out := &ast.Block{StmtBase: b.StmtBase, Statements: make([]ast.Statement, len(b.Statements))}
	for i, s := range b.Statements {
		out.Statements[i] = CloneStatement(s)
	}
	return out
}

// CloneStatement deep-copies one statement node, recursing into any nested
// blocks/expressions. Statement kinds that never appear inside a
// lambda-signature method body (ConstructorCall, Label, Jump as source
// text) pass through as themselves since they carry no mutable children an
// inlined copy would need independent.
func CloneStatement(s ast.Statement) ast.Statement {
	switch v := s.(type) {
	case nil:
		return nil
	case *ast.VarDeclarationStmt:
		return &ast.VarDeclarationStmt{StmtBase: v.StmtBase, Decl: cloneDecl(v.Decl)}
	case *ast.ExpressionStatement:
		return &ast.ExpressionStatement{StmtBase: v.StmtBase, Expr: CloneExpression(v.Expr)}
	case *ast.If:
		var elseBranch ast.Statement
		if v.ElseBranch != nil {
			elseBranch = CloneStatement(v.ElseBranch)
		}
		return &ast.If{StmtBase: v.StmtBase, Condition: CloneExpression(v.Condition), Then: CloneBlock(v.Then), ElseBranch: elseBranch}
	case *ast.While:
		return &ast.While{StmtBase: v.StmtBase, Condition: CloneExpression(v.Condition), Body: CloneBlock(v.Body), NoFallThrough: v.NoFallThrough}
	case *ast.For:
		var init, post ast.Statement
		if v.Init != nil {
			init = CloneStatement(v.Init)
		}
		if v.Post != nil {
			post = CloneStatement(v.Post)
		}
		var cond ast.Expression
		if v.Condition != nil {
			cond = CloneExpression(v.Condition)
		}
		return &ast.For{StmtBase: v.StmtBase, Init: init, Condition: cond, Post: post, Body: CloneBlock(v.Body)}
	case *ast.Return:
		var expr ast.Expression
		if v.Expr != nil {
			expr = CloneExpression(v.Expr)
		}
		return &ast.Return{StmtBase: v.StmtBase, Expr: expr}
	case *ast.Defer:
		return &ast.Defer{StmtBase: v.StmtBase, Body: CloneBlock(v.Body)}
	case *ast.Block:
		return CloneBlock(v)
	default:
		return s
	}
}

func cloneDecl(d *ast.VariableDeclaration) *ast.VariableDeclaration {
	if d == nil {
		return nil
	}
	out := *d
	if d.Initializer != nil {
		out.Initializer = CloneExpression(d.Initializer)
	}
	if d.Type != nil {
		out.Type = d.Type.Clone()
	}
	return &out
}

// CloneExpression deep-copies one expression node. Already-resolved leaf
// nodes (literals, ClassName) are immutable enough to share, but anything
// carrying nested expressions is copied so two inlined occurrences never
// alias each other's subtree.
func CloneExpression(e ast.Expression) ast.Expression {
	switch v := e.(type) {
	case nil:
		return nil
	case *ast.Binary:
		return &ast.Binary{ExprBase: v.ExprBase, Op: v.Op, Left: CloneExpression(v.Left), Right: CloneExpression(v.Right)}
	case *ast.Unary:
		return &ast.Unary{ExprBase: v.ExprBase, Op: v.Op, Operand: CloneExpression(v.Operand)}
	case *ast.MemberSelector:
		return &ast.MemberSelector{ExprBase: v.ExprBase, Receiver: CloneExpression(v.Receiver), Member: CloneExpression(v.Member)}
	case *ast.Member:
		args := make([]ast.Expression, len(v.Arguments))
		for i, a := range v.Arguments {
			args[i] = CloneExpression(a)
		}
		var lambda *ast.Lambda
		if v.LambdaBlock != nil {
			lambda = &ast.Lambda{ExprBase: v.LambdaBlock.ExprBase, Params: v.LambdaBlock.Params, Body: CloneBlock(v.LambdaBlock.Body)}
		}
		return &ast.Member{ExprBase: v.ExprBase, Kind: v.Kind, Name: v.Name, Arguments: args, LambdaBlock: lambda}
	case *ast.HeapAllocation:
		args := make([]ast.Expression, len(v.Arguments))
		for i, a := range v.Arguments {
			args[i] = CloneExpression(a)
		}
		return &ast.HeapAllocation{ExprBase: v.ExprBase, ClassName: v.ClassName, Arguments: args, ConcreteClass: v.ConcreteClass}
	case *ast.ArrayAllocation:
		return &ast.ArrayAllocation{ExprBase: v.ExprBase, ElementTypeName: v.ElementTypeName, Capacity: CloneExpression(v.Capacity), Initializer: v.Initializer}
	case *ast.ArraySubscript:
		return &ast.ArraySubscript{ExprBase: v.ExprBase, Subject: CloneExpression(v.Subject), Index: CloneExpression(v.Index)}
	case *ast.TypeCast:
		return &ast.TypeCast{ExprBase: v.ExprBase, TargetTypeName: v.TargetTypeName, Operand: CloneExpression(v.Operand), Kind: v.Kind}
	case *ast.ArrayLiteral:
		elems := make([]ast.Expression, len(v.Elements))
		for i, el := range v.Elements {
			elems[i] = CloneExpression(el)
		}
		return &ast.ArrayLiteral{ExprBase: v.ExprBase, Elements: elems}
	case *ast.Yield:
		var val ast.Expression
		if v.Value != nil {
			val = CloneExpression(v.Value)
		}
		return &ast.Yield{ExprBase: v.ExprBase, Value: val}
	case *ast.NamedEntity:
		out := *v
		return &out
	default:
		return e
	}
}

// RewriteInlinedReturnsAndYields rewrites clone in place so it can serve as
// an inlined lambda-signature method body (spec §4.4 "MethodCall", §4.7
// "lambdas remain only as bodies inlined into call sites"):
//
//   - a `return expr` becomes `retval = expr; jump endLabel` (the Jump
//     skips the rest of the clone rather than falling through, since a
//     return in the original method may appear anywhere, not only in tail
//     position); `return` with no value just jumps.
//   - a bare `yield(...)` statement is replaced by a fresh clone of
//     lambdaBody (the caller-supplied lambda block), binding lambdaParams'
//     first name to the yielded value first when one was given, so a
//     method yielding more than once still gets an independent copy of the
//     caller's block at each call.
//
// clone is left ending in an ast.Label named endLabel, which the jumps
// above target; the caller splices clone's statements directly into the
// call site.
func RewriteInlinedReturnsAndYields(clone *ast.Block, retval *ast.VariableDeclaration, endLabel string, lambdaBody *ast.Block, lambdaParams []ast.Param) {
	clone.Statements = rewriteStatementList(clone.Statements, retval, endLabel, lambdaBody, lambdaParams)
	clone.Statements = append(clone.Statements, &ast.Label{Name: endLabel})
}

func rewriteBlock(b *ast.Block, retval *ast.VariableDeclaration, endLabel string, lambdaBody *ast.Block, lambdaParams []ast.Param) *ast.Block {
	if b == nil {
		return nil
	}
	b.Statements = rewriteStatementList(b.Statements, retval, endLabel, lambdaBody, lambdaParams)
	return b
}

func rewriteStatementList(stmts []ast.Statement, retval *ast.VariableDeclaration, endLabel string, lambdaBody *ast.Block, lambdaParams []ast.Param) []ast.Statement {
	var out []ast.Statement
	for _, s := range stmts {
		out = append(out, rewriteStatement(s, retval, endLabel, lambdaBody, lambdaParams)...)
	}
	return out
}

func rewriteStatement(s ast.Statement, retval *ast.VariableDeclaration, endLabel string, lambdaBody *ast.Block, lambdaParams []ast.Param) []ast.Statement {
	switch v := s.(type) {
	case *ast.Return:
		var out []ast.Statement
		if v.Expr != nil && retval != nil {
			out = append(out, &ast.ExpressionStatement{StmtBase: v.StmtBase, Expr: &ast.Binary{
				Op:    ast.OpAssign,
				Left:  &ast.NamedEntity{Name: retval.Name},
				Right: v.Expr,
			}})
		}
		out = append(out, &ast.Jump{StmtBase: v.StmtBase, Label: endLabel})
		return out

	case *ast.ExpressionStatement:
		if y, ok := v.Expr.(*ast.Yield); ok {
			return spliceYield(v, y, lambdaBody, lambdaParams)
		}
		return []ast.Statement{v}

	case *ast.If:
		v.Then = rewriteBlock(v.Then, retval, endLabel, lambdaBody, lambdaParams)
		if v.ElseBranch != nil {
			rewritten := rewriteStatement(v.ElseBranch, retval, endLabel, lambdaBody, lambdaParams)
			if len(rewritten) == 1 {
				v.ElseBranch = rewritten[0]
			} else {
				v.ElseBranch = &ast.Block{Statements: rewritten}
			}
		}
		return []ast.Statement{v}

	case *ast.While:
		v.Body = rewriteBlock(v.Body, retval, endLabel, lambdaBody, lambdaParams)
		return []ast.Statement{v}

	case *ast.For:
		v.Body = rewriteBlock(v.Body, retval, endLabel, lambdaBody, lambdaParams)
		return []ast.Statement{v}

	case *ast.Block:
		return []ast.Statement{rewriteBlock(v, retval, endLabel, lambdaBody, lambdaParams)}

	default:
		return []ast.Statement{s}
	}
}

// spliceYield replaces a `yield(value)` statement with an independent clone
// of the caller's lambda block, first assigning value into the lambda's
// declared parameter when one was yielded (spec §4.4 "yield": "rewrites
// itself into the calling lambda block").
func spliceYield(stmt *ast.ExpressionStatement, y *ast.Yield, lambdaBody *ast.Block, lambdaParams []ast.Param) []ast.Statement {
	body := CloneBlock(lambdaBody)
	var out []ast.Statement
	if y.Value != nil && len(lambdaParams) > 0 {
		out = append(out, &ast.ExpressionStatement{StmtBase: stmt.StmtBase, Expr: &ast.Binary{
			Op:    ast.OpAssign,
			Left:  &ast.NamedEntity{Name: lambdaParams[0].Name},
			Right: y.Value,
		}})
	}
	if body != nil {
		out = append(out, body.Statements...)
	}
	return out
}
