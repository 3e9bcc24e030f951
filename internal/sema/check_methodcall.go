package sema

import (
	"strconv"

	"github.com/fenlang/orbitc/internal/ast"
	"github.com/fenlang/orbitc/internal/bindings"
	"github.com/fenlang/orbitc/internal/defs"
	"github.com/fenlang/orbitc/internal/errors"
	"github.com/fenlang/orbitc/internal/lower"
	"github.com/fenlang/orbitc/internal/types"
)

// checkMethodCall resolves call against recv's type (recvType nil meaning
// an implicit-this call), implementing the full §4.4 "MethodCall"
// contract: argument checking, overload dispatch, positional
// generic-argument inference, built-in Array-method handling (including
// Array.each's while-loop lowering), and lambda-signature inlining.
func (c *checker) checkMethodCall(recv ast.Expression, recvType *types.Type, call *ast.Member) ([]ast.Statement, ast.Expression) {
	var pre []ast.Statement
	argTypes := make([]*types.Type, len(call.Arguments))
	for i, a := range call.Arguments {
		argPre, newArg := c.checkExpr(a)
		call.Arguments[i] = newArg
		pre = append(pre, argPre...)
		if newArg != nil {
			argTypes[i] = newArg.ResolvedType()
		}
	}

	// array types carry no class definition of their own; every method call
	// on one is a built-in Array method resolved against the element type
	// (spec §4.4 "MethodCall" array-method handling).
	if recvType != nil && recvType.IsArray() {
		return c.checkArrayBuiltinCall(recv, recvType, call, pre, argTypes)
	}

	class := c.receiverClass(recv, recvType)
	if class == nil {
		c.tree.addError(errors.New(errors.Resolution, "cannot resolve receiver for "+call.Name, call.Pos()))
		call.SetResolvedType(types.Void_())
		return pre, call
	}

	if class == c.tree.ArrayClass {
		return c.checkArrayBuiltinCall(recv, recvType, call, pre, argTypes)
	}

	method, _, ok := c.resolveOverload(class, call.Name, argTypes, call.Pos())
	if !ok {
		c.tree.addError(errors.New(errors.Resolution, "no matching overload for "+call.Name+"(...) on "+class.Name, call.Pos()))
		call.SetResolvedType(types.Void_())
		return pre, call
	}

	if call.LambdaBlock != nil {
		if method.LambdaSig != nil {
			return c.inlineLambdaCall(method, call, pre)
		}
		// a trailing lambda block handed to a method without a declared
		// lambda signature (Defer.addClosure) is really a closure value
		// (spec §9 "Lambda inlining vs. closure capture").
		fn := &ast.AnonymousFunction{Params: call.LambdaBlock.Params, Body: call.LambdaBlock.Body}
		closureVal, err := c.anonymousFunctionToClosureValue(fn, c.tree.nextClosureName(), call.Pos())
		if err != nil {
			c.tree.addError(errors.New(errors.Typing, err.Error(), call.Pos()))
		} else {
			call.Arguments = append(call.Arguments, closureVal)
		}
		call.LambdaBlock = nil
	}

	call.SetResolvedType(method.ReturnType)
	return pre, call
}

// resolveOverload finds the first overload of name on class (or an
// ancestor) compatible with argTypes, instantiating class when it is still
// an unbound generic template and a concrete binding can be inferred
// positionally from argTypes (spec §4.4 "MethodCall" overload collection
// and positional generic-argument inference).
func (c *checker) resolveOverload(class *defs.ClassDefinition, name string, argTypes []*types.Type, at ast.Position) (*defs.MethodDefinition, *defs.ClassDefinition, bool) {
	b, ok := class.Scope.Lookup(name)
	if !ok || b.Kind != bindings.Method {
		return nil, nil, false
	}
	for _, d := range b.Overloads {
		if m, ok := d.(*defs.MethodDefinition); ok && m.IsCompatible(argTypes) {
			return m, class, true
		}
	}
	for _, d := range b.Overloads {
		m, ok := d.(*defs.MethodDefinition)
		if !ok {
			continue
		}
		owner := defs.EnclosingClass(m)
		if owner == nil || !owner.IsGeneric() {
			continue
		}
		concrete := c.tree.inferGenericInstantiation(owner, m, argTypes, at)
		if concrete == nil {
			continue
		}
		cb, ok := concrete.Scope.LookupLocal(name)
		if !ok || cb.Kind != bindings.Method {
			continue
		}
		for _, cd := range cb.Overloads {
			if cm, ok := cd.(*defs.MethodDefinition); ok && cm.IsCompatible(argTypes) {
				return cm, concrete, true
			}
		}
	}
	return nil, nil, false
}

// checkArrayBuiltinCall substitutes Array's "T" placeholder argument and
// return types with recvType's concrete element type before validating the
// call, and routes Array.each through its own while-loop lowering instead
// of leaving a lambda-carrying call for the back end to see (spec §4.4
// "MethodCall" array-method handling, §4.7 "lambdas remain only as bodies
// inlined into call sites").
func (c *checker) checkArrayBuiltinCall(recv ast.Expression, recvType *types.Type, call *ast.Member, pre []ast.Statement, argTypes []*types.Type) ([]ast.Statement, ast.Expression) {
	elem := types.CreateArrayElementType(recvType)
	if elem == nil {
		elem = types.Create(types.Object)
	}

	if call.Name == "each" {
		return c.lowerEachCall(recv, recvType, elem, call, pre)
	}

	switch call.Name {
	case "length", "capacity":
		call.SetResolvedType(types.Create(types.Int))

	case "append":
		if len(argTypes) == 1 && argTypes[0] != nil && !types.AreInitializable(elem, argTypes[0]) {
			c.tree.addError(errors.New(errors.Typing, "append argument does not match array element type", call.Pos()))
		}
		call.SetResolvedType(types.Void_())

	case "appendAll", "concat":
		arrElem := types.ArrayOf(elem)
		if len(argTypes) == 1 && argTypes[0] != nil && !types.AreInitializable(arrElem, argTypes[0]) {
			c.tree.addError(errors.New(errors.Typing, call.Name+" argument does not match array type", call.Pos()))
		}
		if call.Name == "concat" {
			call.SetResolvedType(recvType)
		} else {
			call.SetResolvedType(types.Void_())
		}

	case "slice":
		call.SetResolvedType(recvType)

	default:
		c.tree.addError(errors.New(errors.Resolution, "unknown Array method "+call.Name, call.Pos()))
		call.SetResolvedType(types.Void_())
	}
	return pre, call
}

// lowerEachCall rewrites `xs.each |e| { ... }` into
//
//	var __arrayN = xs
//	var __iN = 0
//	while (__iN < __arrayN.length()) {
//	    var e = __arrayN[__iN]
//	    ...
//	    __iN += 1
//	}
//
// (spec §4.4 "MethodCall", scenario 6; §4.7 "lambdas remain only as bodies
// inlined into call sites"). N is unique per occurrence within the
// enclosing method so successive or nested each-calls never collide.
func (c *checker) lowerEachCall(recv ast.Expression, recvType, elem *types.Type, call *ast.Member, pre []ast.Statement) ([]ast.Statement, ast.Expression) {
	if call.LambdaBlock == nil || len(call.LambdaBlock.Params) != 1 {
		c.tree.addError(errors.New(errors.Structural, "each requires a single-parameter lambda block", call.Pos()))
		return pre, call
	}

	c.eachSeq++
	suffix := strconv.Itoa(c.eachSeq)
	arrName := "__array" + suffix
	idxName := "__i" + suffix
	paramName := call.LambdaBlock.Params[0].Name

	arrDecl := &ast.VariableDeclaration{Name: arrName, Type: recvType.Clone(), Form: ast.TypedDecl, Initializer: recv}
	idxType := types.Create(types.Int)
	idxType.Constant = false
	idxDecl := &ast.VariableDeclaration{Name: idxName, Type: idxType, Form: ast.TypedDecl, Initializer: &ast.IntLiteral{Value: 0}}
	elemDecl := &ast.VariableDeclaration{
		Name: paramName,
		Type: elem.Clone(),
		Form: ast.TypedDecl,
		Initializer: &ast.ArraySubscript{
			Subject: &ast.NamedEntity{Name: arrName},
			Index:   &ast.NamedEntity{Name: idxName},
		},
	}

	body := call.LambdaBlock.Body
	body.Statements = append([]ast.Statement{&ast.VarDeclarationStmt{Decl: elemDecl}}, body.Statements...)
	body.Statements = append(body.Statements, &ast.ExpressionStatement{Expr: &ast.Binary{
		Op:    ast.OpAddAssign,
		Left:  &ast.NamedEntity{Name: idxName},
		Right: &ast.IntLiteral{Value: 1},
	}})

	lengthCall := &ast.Member{Kind: ast.MethodCallAccess, Name: "length"}
	cond := &ast.Binary{
		Op:   ast.OpLt,
		Left: &ast.NamedEntity{Name: idxName},
		Right: &ast.MemberSelector{
			Receiver: &ast.NamedEntity{Name: arrName},
			Member:   lengthCall,
		},
	}

	whileStmt := &ast.While{Condition: cond, Body: body}
	wrapped := &ast.Block{Statements: []ast.Statement{
		&ast.VarDeclarationStmt{Decl: arrDecl},
		&ast.VarDeclarationStmt{Decl: idxDecl},
		whileStmt,
	}}
	c.checkBlock(wrapped)

	result := &ast.WrappedStatement{Block: wrapped}
	result.SetResolvedType(types.Void_())
	return pre, result
}

// inlineLambdaCall splices method's body in place of call, binding method's
// own arguments and call.LambdaBlock's parameter into fresh locals ahead
// of the cloned body (spec §4.4 "MethodCall": "the body is cloned and
// spliced into the call site", §9 "Lambda inlining"). A void-returning
// method collapses into a WrappedStatement; otherwise its retval temp
// becomes the inlined expression's result, with every `return` inside the
// clone rewritten to assign into it and every `yield(...)` replaced by a
// copy of the lambda block (spec §4.4
// "yield", §4.7).
func (c *checker) inlineLambdaCall(method *defs.MethodDefinition, call *ast.Member, pre []ast.Statement) ([]ast.Statement, ast.Expression) {
	if method.Body == nil {
		c.tree.addError(errors.New(errors.Structural, "lambda-signature method "+method.Name+" has no body to inline", call.Pos()))
		call.SetResolvedType(types.Void_())
		return pre, call
	}

	clone := lower.CloneBlock(method.Body)
	isVoid := method.ReturnType == nil || method.ReturnType.IsVoid()

	var retval *ast.VariableDeclaration
	if !isVoid {
		retType := method.ReturnType.Clone()
		retType.Constant = false
		retval = &ast.VariableDeclaration{Name: "__lambda_result", Type: retType, Form: ast.TypedDecl}
		_ = c.ctx.Bindings.InsertLocalObject(retval)
	}

	lambdaParams := call.LambdaBlock.Params
	var binder []ast.Statement
	for i, p := range method.Arguments {
		if i >= len(call.Arguments) {
			break
		}
		binder = append(binder, &ast.VarDeclarationStmt{Decl: &ast.VariableDeclaration{
			Name:        p.Name,
			Type:        p.ResolvedType(),
			Form:        ast.TypedDecl,
			Initializer: call.Arguments[i],
		}})
	}
	for i, p := range lambdaParams {
		if i >= len(method.LambdaSig.Arguments) {
			break
		}
		paramType := method.LambdaSig.Arguments[i].Clone()
		paramType.Constant = false
		binder = append(binder, &ast.VarDeclarationStmt{Decl: &ast.VariableDeclaration{
			Name: p.Name,
			Type: paramType,
			Form: ast.TypedDecl,
		}})
	}

	c.inlineSeq++
	endLabel := "__lambda_end" + strconv.Itoa(c.inlineSeq)
	lower.RewriteInlinedReturnsAndYields(clone, retval, endLabel, call.LambdaBlock.Body, lambdaParams)

	body := &ast.Block{Statements: append(binder, clone.Statements...)}
	c.checkBlock(body)

	if isVoid {
		result := &ast.WrappedStatement{Block: body}
		result.SetResolvedType(types.Void_())
		return pre, result
	}

	decl := &ast.VarDeclarationStmt{Decl: retval}
	prelude := append([]ast.Statement{decl}, body.Statements...)
	result := &ast.Temporary{Declaration: retval}
	result.SetResolvedType(retval.ResolvedType())
	return append(pre, prelude...), result
}
