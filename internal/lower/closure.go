package lower

import (
	"github.com/fenlang/orbitc/internal/ast"
	"github.com/fenlang/orbitc/internal/bindings"
	"github.com/fenlang/orbitc/internal/defs"
	"github.com/fenlang/orbitc/internal/types"
)

// ClosureInfo is what Closure.cpp's Info out-parameter carries back to the
// caller: the generated class's name, its captured variables, and the
// closure interface type it was made to implement.
type ClosureInfo struct {
	ClassName         string
	Class             *defs.ClassDefinition
	NonLocalVars      []*ast.VariableDeclaration
	ClosureInterface  *defs.ClassDefinition
	ClosureInterfaceType *types.Type
}

// ScopeWalker is the minimal scope-chain lookup internal/sema's bindings
// give internal/lower, so this package can find non-local captures without
// importing internal/sema (which drives it).
type ScopeWalker interface {
	Lookup(name string) (*bindings.Binding, bool)
}

// FindNonLocalVariables walks fn's body collecting every NamedEntity that
// resolves inside the enclosing method's scope but outside fn's own body
// scope (spec §4.6 "Closure generation": "captured (non-local) variables"),
// grounded on Closure.cpp's NonLocalVarVisitor. bodyScope is fn's own
// top-level scope; enclosingScope is the method body's scope fn sits
// inside (searched only after bodyScope fails, mirroring the C++
// technique of temporarily disconnecting funcScope from its outer chain).
func FindNonLocalVariables(fn *ast.AnonymousFunction, bodyScope, enclosingScope *bindings.Scope) []*ast.VariableDeclaration {
	found := map[string]bool{}
	var result []*ast.VariableDeclaration

	var walkExpr func(ast.Expression, *bindings.Scope)
	var walkStmt func(ast.Statement, *bindings.Scope)

	checkIfNonLocal := func(name string, scope *bindings.Scope) {
		if found[name] {
			return
		}
		if _, ok := bodyScope.LookupLocal(name); ok {
			return
		}
		if isLocallyResolvable(scope, bodyScope, name) {
			return
		}
		b, ok := enclosingScope.Lookup(name)
		if !ok {
			return
		}
		t := b.VariableType()
		if t == nil {
			return
		}
		found[name] = true
		result = append(result, &ast.VariableDeclaration{Name: name, Type: t.Clone(), Form: ast.ImplicitDecl})
	}

	walkExpr = func(e ast.Expression, scope *bindings.Scope) {
		switch v := e.(type) {
		case *ast.NamedEntity:
			checkIfNonLocal(v.Name, scope)
		case *ast.MemberSelector:
			if named, ok := v.Receiver.(*ast.NamedEntity); ok {
				checkIfNonLocal(named.Name, scope)
			} else {
				walkExpr(v.Receiver, scope)
			}
			// the member itself is resolved against the receiver's type,
			// never the enclosing scope (Closure.cpp "Skip" on the right
			// of the dot operator).
		case *ast.Binary:
			walkExpr(v.Left, scope)
			walkExpr(v.Right, scope)
		case *ast.Unary:
			walkExpr(v.Operand, scope)
		case *ast.HeapAllocation:
			for _, a := range v.Arguments {
				walkExpr(a, scope)
			}
		case *ast.ArrayAllocation:
			walkExpr(v.Capacity, scope)
		case *ast.ArraySubscript:
			walkExpr(v.Subject, scope)
			walkExpr(v.Index, scope)
		case *ast.TypeCast:
			walkExpr(v.Operand, scope)
		case *ast.Member:
			for _, a := range v.Arguments {
				walkExpr(a, scope)
			}
			if v.LambdaBlock != nil {
				walkBlock(v.LambdaBlock.Body, scope, walkStmt)
			}
		case *ast.ArrayLiteral:
			for _, el := range v.Elements {
				walkExpr(el, scope)
			}
		}
	}

	walkStmt = func(s ast.Statement, scope *bindings.Scope) {
		switch v := s.(type) {
		case *ast.ExpressionStatement:
			walkExpr(v.Expr, scope)
		case *ast.VarDeclarationStmt:
			if v.Decl.Initializer != nil {
				walkExpr(v.Decl.Initializer, scope)
			}
			// a local declared inside the function body is never a capture,
			// even when an outer variable shares its name.
			_ = bodyScope.InsertLocalObject(v.Decl)
		case *ast.If:
			walkExpr(v.Condition, scope)
			walkBlock(v.Then, scope, walkStmt)
			if v.ElseBranch != nil {
				walkStmt(v.ElseBranch, scope)
			}
		case *ast.While:
			walkExpr(v.Condition, scope)
			walkBlock(v.Body, scope, walkStmt)
		case *ast.For:
			walkBlock(v.Body, scope, walkStmt)
		case *ast.Return:
			if v.Expr != nil {
				walkExpr(v.Expr, scope)
			}
		case *ast.Block:
			walkBlock(v, scope, walkStmt)
		}
	}

	walkBlock(fn.Body, bodyScope, walkStmt)
	return result
}

func walkBlock(b *ast.Block, scope *bindings.Scope, walkStmt func(ast.Statement, *bindings.Scope)) {
	inner, ok := b.Scope.(*bindings.Scope)
	if !ok {
		inner = scope
	}
	for _, s := range b.Statements {
		walkStmt(s, inner)
	}
}

func isLocallyResolvable(from, stopAt *bindings.Scope, name string) bool {
	for s := from; s != nil && s != stopAt.Enclosing(); s = s.Enclosing() {
		if _, ok := s.LookupLocal(name); ok {
			return true
		}
	}
	return false
}

// GenerateInterface builds the one-method interface a function type
// `fun R(A,B,...)` is converted to, named by Type.ClosureInterfaceName
// (spec §4.1 "Closure interface name", Closure.cpp's Closure::generateInterface).
func GenerateInterface(closureType *types.Type, enclosingScope *bindings.Scope, at ast.Position) (*defs.ClassDefinition, error) {
	name := closureType.ClosureInterfaceName()
	iface, err := defs.NewClass(name, nil, nil, enclosingScope, defs.ClassProperties{IsInterface: true, IsClosure: true, IsGenerated: true}, at)
	if err != nil {
		return nil, err
	}
	callSig := defs.NewMethod(callMethodName, closureType.Signature.ReturnType.Clone(), defs.Public, false, at)
	for i, argType := range closureType.Signature.Arguments {
		callSig.AddArgument(&ast.VariableDeclaration{Name: tempArgName(i), Type: argType.Clone(), Form: ast.TypedDecl})
	}
	iface.AppendMember(callSig)
	_ = iface.Scope.InsertMethod(callSig.Name, callSig)
	return iface, nil
}

func tempArgName(i int) string {
	const digits = "0123456789"
	if i < 10 {
		return "$" + string(digits[i])
	}
	return "$arg" + string(rune('0'+i))
}

// GenerateClass lifts an AnonymousFunction literal into a capturing class
// implementing its closure interface (spec §4.6 "Closure generation",
// Closure.cpp's Closure::generateClass). The caller is responsible for
// running type-check-and-transform on the produced call method and then
// inferring its return type (ResolveReturnType) before calling
// GenerateInterface with the final signature — mirroring the two-step
// dance Closure.cpp performs (infer body types first, compute the
// interface type from the now-concrete call signature).
func GenerateClass(fn *ast.AnonymousFunction, className string, nonLocal []*ast.VariableDeclaration, enclosingScope *bindings.Scope, at ast.Position) (*defs.ClassDefinition, *defs.MethodDefinition, error) {
	class, err := defs.NewClass(className, nil, nil, enclosingScope, defs.ClassProperties{IsClosure: true, IsGenerated: true}, at)
	if err != nil {
		return nil, nil, err
	}
	for _, v := range nonLocal {
		dm := defs.NewDataMember(v.Name, v.ResolvedType(), defs.Public, false, false, at)
		class.AppendMember(dm)
		_ = class.Scope.InsertDataMember(dm.Name, dm)
	}
	class.GenerateDefaultConstructorIfNeeded()
	if ctor := findMethod(class, class.Name+"_init"); ctor != nil && len(nonLocal) > 0 {
		ctor.Body = &ast.Block{}
		for _, v := range nonLocal {
			ctor.AddArgument(&ast.VariableDeclaration{Name: v.Name, Type: v.ResolvedType(), Form: ast.TypedDecl})
			ctor.Body.Statements = append(ctor.Body.Statements, primitiveMemberInitFromArg(v.Name))
		}
	}

	call := defs.NewMethod(callMethodName, types.Create(types.Implicit), defs.Public, false, at)
	call.IsClosureCall = true
	call.Body = fn.Body
	for _, p := range fn.Params {
		call.AddArgument(&ast.VariableDeclaration{Name: p.Name, TypeName: p.TypeName, Form: ast.TypedDecl})
	}
	class.AppendMember(call)
	_ = class.Scope.InsertMethod(call.Name, call)
	return class, call, nil
}

func primitiveMemberInitFromArg(name string) ast.Statement {
	return &ast.ExpressionStatement{Expr: &ast.Binary{
		Op:    ast.OpAssign,
		Left:  &ast.MemberSelector{Receiver: &ast.ThisExpr{}, Member: &ast.Member{Name: name}},
		Right: &ast.NamedEntity{Name: name},
	}}
}

// ResolveReturnType implements Closure.cpp's handleReturnType: the
// closure's return type is an explicit trailing `return expr`'s type, the
// single non-void trailing expression's type if the body has exactly one
// statement, or void otherwise.
func ResolveReturnType(call *defs.MethodDefinition) *types.Type {
	stmts := call.Body.Statements
	if len(stmts) == 0 {
		return types.Void_()
	}
	last := stmts[len(stmts)-1]
	if ret, ok := last.(*ast.Return); ok && ret.Expr != nil {
		return ret.Expr.ResolvedType()
	}
	if len(stmts) == 1 {
		if es, ok := last.(*ast.ExpressionStatement); ok {
			if t := es.Expr.ResolvedType(); t != nil && !t.IsVoid() {
				call.Body.Statements[0] = &ast.Return{Expr: es.Expr}
				return t
			}
		}
	}
	return types.Void_()
}
