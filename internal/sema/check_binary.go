package sema

import (
	"github.com/fenlang/orbitc/internal/ast"
	"github.com/fenlang/orbitc/internal/errors"
	"github.com/fenlang/orbitc/internal/lower"
	"github.com/fenlang/orbitc/internal/types"
)

// checkBinary type-checks v's operands and applies the §4.4 "Binary
// expression" rewrites: string and array operators become method calls,
// compound assignments decompose into `left = left op right`, enumerations
// are rejected from ==/!= (they must decompose in a match), and assignment
// to a constant is rejected outside the two places a constructor may
// initialize one.
func (c *checker) checkBinary(v *ast.Binary) ([]ast.Statement, ast.Expression) {
	leftPre, left := c.checkExpr(v.Left)
	rightPre, right := c.checkExpr(v.Right)
	v.Left, v.Right = left, right
	pre := append(leftPre, rightPre...)

	var lt, rt *types.Type
	if left != nil {
		lt = left.ResolvedType()
	}
	if right != nil {
		rt = right.ResolvedType()
	}

	switch v.Op {
	case ast.OpEq, ast.OpNe:
		if lt != nil && lt.IsEnumeration() && !lt.IsArray() {
			c.tree.addError(errors.New(errors.Typing, "enumerations cannot be compared with == or !=; decompose in a match instead", v.Pos()))
			v.SetResolvedType(types.Create(types.Bool))
			return pre, v
		}
		if isPlainString(lt) {
			name := "equals"
			if v.Op == ast.OpNe {
				name = "notEquals"
			}
			return pre, runtimeMethodCall(left, name, right, types.Create(types.Bool), v.Pos())
		}
		v.SetResolvedType(types.Create(types.Bool))
		return pre, v

	case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe, ast.OpAnd, ast.OpOr:
		v.SetResolvedType(types.Create(types.Bool))
		return pre, v

	case ast.OpAdd:
		if isPlainString(lt) {
			return pre, runtimeMethodCall(left, "concat", right, lt, v.Pos())
		}
		if lt != nil && lt.IsArray() {
			return pre, c.arrayOperatorCall(left, "concat", right, v.Pos())
		}
		v.SetResolvedType(lt)
		return pre, v

	case ast.OpAssign:
		c.checkAssignmentTarget(left, lt, v.Pos())
		if lt != nil && rt != nil && !rt.IsVoid() && !types.AreInitializable(lt, rt) && !c.ctx.Method.IsGenerated {
			c.tree.addError(errors.New(errors.Typing, "incompatible types in assignment", v.Pos()))
		}
		v.SetResolvedType(lt)
		return pre, v

	case ast.OpAddAssign:
		if isPlainString(lt) {
			return pre, runtimeMethodCall(left, "append", right, types.Void_(), v.Pos())
		}
		if lt != nil && lt.IsArray() {
			return pre, c.arrayOperatorCall(left, "appendAll", right, v.Pos())
		}
		return pre, c.decomposeCompound(v, ast.OpAdd, left, right, lt)

	case ast.OpSubAssign:
		return pre, c.decomposeCompound(v, ast.OpSub, left, right, lt)
	case ast.OpMulAssign:
		return pre, c.decomposeCompound(v, ast.OpMul, left, right, lt)
	case ast.OpDivAssign:
		return pre, c.decomposeCompound(v, ast.OpDiv, left, right, lt)
	case ast.OpModAssign:
		return pre, c.decomposeCompound(v, ast.OpMod, left, right, lt)

	default:
		v.SetResolvedType(lt)
		return pre, v
	}
}

// arrayOperatorCall rewrites an array operator into the built-in Array
// method call it lowers to, keeping the receiver on a selector the way the
// back end expects every call to arrive.
func (c *checker) arrayOperatorCall(recv ast.Expression, name string, arg ast.Expression, at ast.Position) ast.Expression {
	call := &ast.Member{ExprBase: ast.ExprBase{At: at}, Kind: ast.MethodCallAccess, Name: name, Arguments: []ast.Expression{arg}}
	sel := &ast.MemberSelector{ExprBase: ast.ExprBase{At: at}, Receiver: recv, Member: call}
	_, result := c.checkMemberSelector(sel)
	return result
}

// decomposeCompound rewrites `left op= right` into `left = (left op right)`
// (spec §4.4: "Other compound-assignment operators decompose").
func (c *checker) decomposeCompound(v *ast.Binary, op ast.BinaryOp, left, right ast.Expression, lt *types.Type) ast.Expression {
	c.checkAssignmentTarget(left, lt, v.Pos())
	inner := &ast.Binary{ExprBase: ast.ExprBase{At: v.Pos()}, Op: op, Left: lower.CloneExpression(left), Right: right}
	inner.SetResolvedType(lt)
	out := &ast.Binary{ExprBase: ast.ExprBase{At: v.Pos()}, Op: ast.OpAssign, Left: left, Right: inner}
	out.SetResolvedType(lt)
	return out
}

// checkAssignmentTarget rejects assignment to a constant unless the
// enclosing method is the generated enum constructor, or the target is a
// data member being initialized inside a constructor (spec §4.4 "Binary
// expression").
func (c *checker) checkAssignmentTarget(left ast.Expression, lt *types.Type, at ast.Position) {
	if lt == nil || !lt.IsConstant() {
		return
	}
	if c.ctx.Method.IsEnumCtor {
		return
	}
	if _, isMember := left.(*ast.Member); isMember && c.ctx.Method.IsConstructor {
		return
	}
	c.tree.addError(errors.New(errors.Structural, "cannot assign to a constant", at))
}

func isPlainString(t *types.Type) bool {
	return t != nil && t.IsString() && !t.IsArray()
}

// runtimeMethodCall builds the `recv.name(arg)` selector a string operator
// lowers into. String's methods are runtime-provided (spec §6: the emitter
// targets the runtime ABI), so the call's type is pinned here rather than
// resolved against a class definition the compiler never sees.
func runtimeMethodCall(recv ast.Expression, name string, arg ast.Expression, result *types.Type, at ast.Position) ast.Expression {
	call := &ast.Member{ExprBase: ast.ExprBase{At: at}, Kind: ast.MethodCallAccess, Name: name, Arguments: []ast.Expression{arg}}
	call.SetResolvedType(result)
	sel := &ast.MemberSelector{ExprBase: ast.ExprBase{At: at}, Receiver: recv, Member: call}
	sel.SetResolvedType(result)
	return sel
}
