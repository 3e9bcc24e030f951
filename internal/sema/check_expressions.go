package sema

import (
	"github.com/fenlang/orbitc/internal/ast"
	"github.com/fenlang/orbitc/internal/bindings"
	"github.com/fenlang/orbitc/internal/defs"
	"github.com/fenlang/orbitc/internal/errors"
	"github.com/fenlang/orbitc/internal/lower"
	"github.com/fenlang/orbitc/internal/types"
)

// checkExpr walks e, recursively checking and transforming its children,
// resolving names and call sites, and returns any prelude statements a
// nested lowering (Match, Array.each, an inlined lambda) produced that
// must run immediately before the statement using e's result (spec §4.6
// "TypeCheckAndTransform").
func (c *checker) checkExpr(e ast.Expression) ([]ast.Statement, ast.Expression) {
	switch v := e.(type) {
	case nil:
		return nil, nil

	case *ast.IntLiteral:
		v.SetResolvedType(types.Create(types.Int))
		return nil, v

	case *ast.FloatLiteral:
		v.SetResolvedType(types.Create(types.Float))
		return nil, v

	case *ast.CharLiteral:
		v.SetResolvedType(types.Create(types.Char))
		return nil, v

	case *ast.StringLiteral:
		v.SetResolvedType(types.Create(types.String))
		return nil, v

	case *ast.BoolLiteral:
		v.SetResolvedType(types.Create(types.Bool))
		return nil, v

	case *ast.NullLiteral:
		v.SetResolvedType(types.NullType())
		return nil, v

	case *ast.ThisExpr:
		if cls := c.ctx.ClassDefinition(); cls != nil {
			v.SetResolvedType(selfReferenceType(cls))
		}
		return nil, v

	case *ast.NamedEntity:
		return nil, c.resolveNamedEntity(v)

	case *ast.Match:
		temp, prelude, errs := c.lowerMatch(v)
		for _, err := range errs {
			c.tree.addError(err)
		}
		return prelude, temp

	case *ast.Binary:
		return c.checkBinary(v)

	case *ast.Unary:
		pre, operand := c.checkExpr(v.Operand)
		v.Operand = operand
		if operand != nil {
			v.SetResolvedType(operand.ResolvedType())
		}
		return pre, v

	case *ast.MemberSelector:
		return c.checkMemberSelector(v)

	case *ast.Member:
		if v.Kind == ast.MethodCallAccess {
			return c.checkMethodCall(&ast.ThisExpr{}, nil, v)
		}
		return nil, c.checkDataMemberAccess(nil, v)

	case *ast.HeapAllocation:
		return c.checkHeapAllocation(v)

	case *ast.ArrayAllocation:
		pre, cap := c.checkExpr(v.Capacity)
		v.Capacity = cap
		elem := types.CreateNamed(v.ElementTypeName)
		if cls := c.tree.LookupClass(v.ElementTypeName); cls != nil {
			elem.SetDefinition(cls)
		}
		v.SetResolvedType(types.ArrayOf(elem))
		return pre, v

	case *ast.TypeCast:
		return c.checkTypeCast(v)

	case *ast.ArraySubscript:
		return c.checkArraySubscript(v)

	case *ast.ArrayLiteral:
		var pre []ast.Statement
		var common *types.Type
		for i, el := range v.Elements {
			elPre, newEl := c.checkExpr(el)
			v.Elements[i] = newEl
			pre = append(pre, elPre...)
			if newEl != nil {
				common = types.CalculateCommonType(common, newEl.ResolvedType())
			}
		}
		if common == nil {
			common = types.Create(types.Implicit)
		}
		v.SetResolvedType(types.ArrayOf(common))
		return pre, v

	case *ast.AnonymousFunction:
		class, err := c.anonymousFunctionToClosureValue(v, c.tree.nextClosureName(), v.Pos())
		if err != nil {
			c.tree.addError(errors.New(errors.Typing, err.Error(), v.Pos()))
			return nil, v
		}
		return nil, class

	default:
		return nil, e
	}
}

// resolveNamedEntity turns an unresolved identifier into the concrete
// LocalVariable, ClassName, or (implicit-this) data-member Member the
// binding it names resolves against (spec §4.4 "MethodCall" name
// resolution; §4.2 "Name binding").
func (c *checker) resolveNamedEntity(v *ast.NamedEntity) ast.Expression {
	b, ok := c.ctx.Lookup(v.Name)
	if !ok {
		if cls := c.tree.LookupClass(v.Name); cls != nil {
			return &ast.ClassName{ExprBase: v.ExprBase, Name: v.Name}
		}
		c.tree.addError(errors.New(errors.Resolution, "undefined name "+v.Name, v.Pos()))
		return v
	}
	switch b.Kind {
	case bindings.LocalObject:
		lv := &ast.LocalVariable{ExprBase: v.ExprBase, Name: v.Name, Binding: b}
		lv.SetResolvedType(b.VariableType())
		return lv
	case bindings.DataMember:
		m := &ast.Member{ExprBase: v.ExprBase, Kind: ast.DataMemberAccess, Name: v.Name}
		m.SetResolvedType(b.VariableType())
		return m
	case bindings.Class:
		return &ast.ClassName{ExprBase: v.ExprBase, Name: v.Name}
	default:
		return v
	}
}

// checkMemberSelector checks a.b: once a's type is known, b resolves
// against it rather than independently against the enclosing scope (spec
// §4.4 "MemberSelector"), fixing the previous blind-recursion walk that
// never connected a receiver's type to its member.
func (c *checker) checkMemberSelector(v *ast.MemberSelector) ([]ast.Statement, ast.Expression) {
	recvPre, recv := c.checkExpr(v.Receiver)
	v.Receiver = recv
	var recvType *types.Type
	if recv != nil {
		recvType = recv.ResolvedType()
	}

	member, ok := v.Member.(*ast.Member)
	if !ok {
		memberPre, newMember := c.checkExpr(v.Member)
		v.Member = newMember
		return append(recvPre, memberPre...), v
	}

	if member.Kind == ast.MethodCallAccess {
		pre, result := c.checkMethodCall(v.Receiver, recvType, member)
		pre = append(recvPre, pre...)
		// an inlined call collapses the whole selector into its block or
		// temporary (spec §4.4 "MemberSelector"); a plain resolved call
		// keeps its receiver.
		if result == ast.Expression(member) {
			v.Member = member
			v.SetResolvedType(member.ResolvedType())
			return pre, v
		}
		return pre, result
	}

	v.Member = c.checkDataMemberAccess(recvType, member)
	v.SetResolvedType(v.Member.ResolvedType())
	return recvPre, v
}

// receiverClass resolves the ClassDefinition a call or data-member access
// is scoped against: the class a ClassName literally names (static
// access), the class recvType references, or (both nil) the enclosing
// method's own class for an implicit-this access.
func (c *checker) receiverClass(recv ast.Expression, recvType *types.Type) *defs.ClassDefinition {
	if cn, ok := recv.(*ast.ClassName); ok {
		return c.tree.LookupClass(cn.Name)
	}
	if recvType == nil {
		return c.ctx.ClassDefinition()
	}
	cls, ok := recvType.Class()
	if !ok {
		return nil
	}
	def, _ := cls.(*defs.ClassDefinition)
	return def
}

// checkDataMemberAccess resolves m as a data-member reference against
// recvType (nil meaning implicit-this).
func (c *checker) checkDataMemberAccess(recvType *types.Type, m *ast.Member) ast.Expression {
	cls := c.receiverClass(nil, recvType)
	if cls == nil {
		m.SetResolvedType(types.Void_())
		return m
	}
	b, ok := cls.Scope.Lookup(m.Name)
	if !ok || b.Kind != bindings.DataMember {
		c.tree.addError(errors.New(errors.Resolution, "no data member "+m.Name+" on "+cls.Name, m.Pos()))
		m.SetResolvedType(types.Void_())
		return m
	}
	m.SetResolvedType(b.VariableType())
	return m
}

// checkHeapAllocation recurses into constructor arguments and, when
// v.ClassName names a process interface, rewrites the whole allocation into
// a ProcessProxyAllocation carrying the interface name and arguments instead of
// guessing at the proxy's generated internals (Tree.cpp's
// HeapAllocationExpression lowering, SPEC_FULL.md §C.2, Open Question 2).
// The first argument is treated as the optional spawn-name argument when
// the interface's only process implementor takes one; every other argument
// passes through as the proxy's forwarded constructor arguments.
func (c *checker) checkHeapAllocation(v *ast.HeapAllocation) ([]ast.Statement, ast.Expression) {
	var pre []ast.Statement
	argTypes := make([]*types.Type, len(v.Arguments))
	for i, a := range v.Arguments {
		argPre, newArg := c.checkExpr(a)
		v.Arguments[i] = newArg
		pre = append(pre, argPre...)
		if newArg != nil {
			argTypes[i] = newArg.ResolvedType()
		}
	}

	if iface := c.tree.LookupClass(v.ClassName); iface != nil && iface.IsInterface() && iface.IsProcess() {
		contract := defs.NewProxyContract(iface, len(v.Arguments) > 0)
		var nameArg ast.Expression
		ctorArgs := v.Arguments
		if contract.HasProcessNameArg {
			nameArg, ctorArgs = v.Arguments[0], v.Arguments[1:]
		}
		return pre, defs.ProcessProxyAllocationFor(contract, nameArg, ctorArgs, v.Pos())
	}

	if cls := c.tree.LookupClass(v.ClassName); cls != nil && cls.IsGeneric() {
		ctorName := v.ClassName + "_init"
		if b, ok := cls.Scope.LookupLocal(ctorName); ok && b.Kind == bindings.Method {
			for _, d := range b.Overloads {
				m, ok := d.(*defs.MethodDefinition)
				if !ok {
					continue
				}
				if concrete := c.tree.inferGenericInstantiation(cls, m, argTypes, v.Pos()); concrete != nil {
					v.ConcreteClass = concrete.Name
					break
				}
			}
		}
	}

	named := types.CreateNamed(v.ClassName)
	if cls := c.tree.LookupClass(v.ClassName); cls != nil {
		named.SetDefinition(cls)
		if !cls.IsGeneric() && !cls.IsGenerated() {
			for _, m := range cls.Methods {
				if m.IsAbstract() {
					c.tree.addError(errors.New(errors.Structural, "cannot instantiate "+cls.Name+": method "+m.Name+" is abstract", v.Pos()))
					break
				}
			}
		}
	}
	v.SetResolvedType(named)
	return pre, v
}

// checkTypeCast resolves `(T) e`'s target type and classifies the cast
// (spec §4.4 "TypeCast"): upcasts, equal types, and object<->interface are
// static; other class-hierarchy-consistent casts are dynamic; numeric
// built-in conversions are static; anything else is a typing error.
func (c *checker) checkTypeCast(v *ast.TypeCast) ([]ast.Statement, ast.Expression) {
	pre, operand := c.checkExpr(v.Operand)
	v.Operand = operand
	target := types.CreateNamed(v.TargetTypeName)
	if cls := c.tree.LookupClass(v.TargetTypeName); cls != nil {
		target.SetDefinition(cls)
	}
	v.Kind = c.classifyCast(target, operand, v.Pos())
	v.SetResolvedType(target)
	return pre, v
}

func (c *checker) classifyCast(target *types.Type, operand ast.Expression, at ast.Position) ast.CastKind {
	var ot *types.Type
	if operand != nil {
		ot = operand.ResolvedType()
	}
	if ot == nil || ot.IsNull() {
		return ast.StaticCast
	}
	if ot.IsPrimitive() && target.IsPrimitive() && !ot.IsArray() && !target.IsArray() {
		if !types.AreBuiltInsConvertable(ot.Kind, target.Kind) {
			c.tree.addError(errors.New(errors.Typing, "cannot convert "+ot.String()+" to "+target.String(), at))
		}
		return ast.StaticCast
	}
	switch {
	case types.Equals(target, ot), types.IsUpcast(target, ot):
		return ast.StaticCast
	case target.IsObject() && ot.IsReference(), ot.IsObject() && target.IsReference():
		// interface <-> object is a safe cast (spec §4.1 isUpcast/isDowncast).
		return ast.StaticCast
	case types.IsDowncast(target, ot):
		return ast.DynamicCast
	}
	if !c.ctx.Method.IsGenerated {
		c.tree.addError(errors.New(errors.Typing, "cannot cast "+ot.String()+" to "+target.String(), at))
	}
	return ast.StaticCast
}

// checkArraySubscript rewrites `a[lo..hi]` into `a.slice(lo,hi)` (spec §4.4
// "Array subscript").
func (c *checker) checkArraySubscript(v *ast.ArraySubscript) ([]ast.Statement, ast.Expression) {
	subjPre, subj := c.checkExpr(v.Subject)
	v.Subject = subj
	idxPre, idx := c.checkExpr(v.Index)
	pre := append(subjPre, idxPre...)

	if rangeOp, ok := idx.(*ast.Binary); ok && rangeOp.Op == ast.OpRange {
		call := &ast.Member{
			Kind:      ast.MethodCallAccess,
			Name:      "slice",
			Arguments: []ast.Expression{rangeOp.Left, rangeOp.Right},
		}
		sel := &ast.MemberSelector{ExprBase: ast.ExprBase{At: v.Pos()}, Receiver: v.Subject, Member: call}
		callPre, result := c.checkMemberSelector(sel)
		return append(pre, callPre...), result
	}

	v.Index = idx
	if subjType := v.Subject.ResolvedType(); subjType != nil {
		v.SetResolvedType(types.CreateArrayElementType(subjType))
	}
	return pre, v
}

// anonymousFunctionToClosureValue lowers fn into a GenerateClass-produced
// capturing class instance, for the (less common) case of a closure value
// passed somewhere other than a lambda-inlined parameter — e.g. stored in
// a data member or returned from a method (spec §4.6 "Closure generation").
// The generated call method's body is type-checked here, before
// ResolveReturnType inspects its last statement's resolved type, since
// GenerateClass's own doc comment requires that ordering.
func (c *checker) anonymousFunctionToClosureValue(fn *ast.AnonymousFunction, className string, at ast.Position) (*ast.HeapAllocation, error) {
	// the function's own scope starts disconnected from the method's, so
	// capture analysis sees exactly the names that resolve outside the body
	// (Closure.cpp's NonLocalVarVisitor scope-disconnection technique).
	bodyScope, ok := fn.Body.Scope.(*bindings.Scope)
	if !ok {
		bodyScope = bindings.New()
	}
	for _, p := range fn.Params {
		_ = bodyScope.InsertLocalObject(&ast.VariableDeclaration{Name: p.Name, TypeName: p.TypeName, Form: ast.TypedDecl})
	}
	nonLocal := lower.FindNonLocalVariables(fn, bodyScope, c.ctx.Bindings)
	class, call, err := lower.GenerateClass(fn, className, nonLocal, c.ctx.Bindings, at)
	if err != nil {
		return nil, err
	}
	for _, a := range call.Arguments {
		if a.Type == nil {
			a.Type = types.CreateNamed(a.TypeName)
		}
	}

	bodyChecker := &checker{tree: c.tree, ctx: NewContext(call)}
	bodyChecker.checkMethodBody(call)
	call.TypeCheckedAlready = true
	call.ReturnType = lower.ResolveReturnType(call)

	c.tree.RegisterGeneratedClass(class)

	sig := types.NewFunctionSignature(call.ReturnType)
	for _, a := range call.Arguments {
		sig.AddArgument(a.Type)
	}
	ifaceType := types.Create(types.Function)
	ifaceType.Signature = sig
	iface := c.tree.closureInterfaceFor(ifaceType)
	if iface != nil {
		class.ParentClasses = append(class.ParentClasses, iface)
		class.BaseClass = nil
	}

	args := make([]ast.Expression, len(nonLocal))
	for i, v := range nonLocal {
		args[i] = &ast.NamedEntity{Name: v.Name}
	}
	alloc := &ast.HeapAllocation{ExprBase: ast.ExprBase{At: at}, ClassName: class.Name, Arguments: args}
	resultType := types.CreateNamed(class.Name)
	resultType.SetDefinition(class)
	alloc.SetResolvedType(resultType)
	return alloc, nil
}
