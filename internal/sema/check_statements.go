package sema

import (
	"github.com/fenlang/orbitc/internal/ast"
	"github.com/fenlang/orbitc/internal/bindings"
	"github.com/fenlang/orbitc/internal/defs"
	"github.com/fenlang/orbitc/internal/errors"
	"github.com/fenlang/orbitc/internal/lower"
	"github.com/fenlang/orbitc/internal/pattern"
	"github.com/fenlang/orbitc/internal/types"
)

// checker carries the per-method Context through TypeCheckAndTransform's
// statement/expression walk (pass 6, spec §4.6). Each Tree.classes()
// method gets its own checker; there is no cross-method state beyond what
// Context and Tree already own. eachSeq numbers successive Array.each
// lowerings within the method so their synthesized temporaries never
// collide.
type checker struct {
	tree      *Tree
	ctx       *Context
	eachSeq   int
	inlineSeq int
	matchSeq  int
}

// RunTypeCheckAndTransform is pass 6, the last of the driver-owned passes:
// every method body is walked statement by statement, matches are lowered
// to if-trees, defers are rewritten into Defer.addClosure calls, and
// non-local closure captures are resolved (spec §4.6
// "TypeCheckAndTransform"). Re-running it on an already-checked method is a
// no-op (testable property: "round-trip/idempotence"), enforced here by
// skipping any method whose TypeCheckedAlready flag is already set.
func (t *Tree) RunTypeCheckAndTransform() {
	for _, c := range t.classes() {
		for _, m := range c.Methods {
			if m.Body == nil || m.TypeCheckedAlready {
				continue
			}
			chk := &checker{tree: t, ctx: NewContext(m)}
			chk.checkMethodBody(m)
			m.TypeCheckedAlready = true
		}
	}
}

// checkMethodBody enters m's body scope, lazily creating one if m's body
// was generated directly rather than produced by Tree.StartBlock (e.g. a
// clone/copy-ctor body CloneGenerator built by hand), then inserts m's
// arguments as LocalObject bindings before walking the body (spec §4.2
// name binding, §4.6 "TypeCheckAndTransform").
func (c *checker) checkMethodBody(m *defs.MethodDefinition) {
	if _, ok := m.Body.Scope.(*bindings.Scope); !ok {
		enc := c.tree.GlobalScope
		if cls := defs.EnclosingClass(m); cls != nil {
			enc = cls.Scope
		}
		m.Body.Scope = bindings.NewEnclosed(enc)
	}
	c.ctx.EnterBlock(m.Body)
	for _, a := range m.Arguments {
		_ = c.ctx.Bindings.InsertLocalObject(a)
	}
	c.checkBlock(m.Body)
	c.ctx.ExitBlock(nil)
}

// checkBlock rewrites b's statement list in place, injecting the `$defer`
// declaration on first need and splicing in any prelude statements a
// lowered Match or inlined call produced ahead of the statement that used
// it.
func (c *checker) checkBlock(b *ast.Block) {
	if lower.NeedsDeferDeclaration(b) {
		lower.InjectDeferDeclaration(b, b.Pos())
		if decl, ok := b.Statements[0].(*ast.VarDeclarationStmt); ok {
			declType := types.CreateNamed("Defer")
			declType.SetDefinition(c.tree.DeferClass)
			decl.Decl.Type = declType
		}
	}
	var out []ast.Statement
	for _, s := range b.Statements {
		out = append(out, c.checkStatement(s)...)
	}
	b.Statements = out
}

// checkStatement type-checks and transforms one statement, returning the
// (possibly prelude-prefixed, possibly multi-statement) replacement.
func (c *checker) checkStatement(s ast.Statement) []ast.Statement {
	switch v := s.(type) {
	case *ast.ExpressionStatement:
		prelude, expr := c.checkExpr(v.Expr)
		if expr == nil {
			// a void-returning inlined/lowered call collapses to just its
			// prelude statements; there is no expression left to evaluate.
			return prelude
		}
		v.Expr = expr
		return append(prelude, v)

	case *ast.VarDeclarationStmt:
		if v.Decl.Form == ast.PatternDecl {
			return c.checkPatternBindingDecl(v)
		}
		_ = c.ctx.Bindings.InsertLocalObject(v.Decl)
		if v.Decl.Initializer == nil {
			return []ast.Statement{v}
		}
		prelude, expr := c.checkExpr(v.Decl.Initializer)
		v.Decl.Initializer = expr
		if v.Decl.Form == ast.ImplicitDecl && v.Decl.Type == nil && expr != nil {
			declared := expr.ResolvedType()
			if declared != nil && v.Decl.Constant {
				declared = declared.Clone()
				declared.Constant = true
			}
			v.Decl.Type = declared
		}
		if v.Decl.Type != nil && expr != nil && expr.ResolvedType() != nil &&
			!types.IsInitializableByExpression(v.Decl.Type, expr) && !c.ctx.Method.IsGenerated {
			c.tree.addError(errors.New(errors.Typing, "cannot initialize "+v.Decl.Name+" from incompatible type", v.Pos()))
		}
		return append(prelude, v)

	case *ast.If:
		prelude, cond := c.checkExpr(v.Condition)
		v.Condition = cond
		c.checkCondition(cond, v.Pos())
		c.checkBlock(v.Then)
		if v.ElseBranch != nil {
			rewritten := c.checkStatement(v.ElseBranch)
			if len(rewritten) == 1 {
				v.ElseBranch = rewritten[0]
			} else {
				v.ElseBranch = &ast.Block{Statements: rewritten}
			}
		}
		return append(prelude, v)

	case *ast.While:
		return c.checkWhile(v)

	case *ast.For:
		return c.checkFor(v)

	case *ast.Return:
		return c.checkReturn(v)

	case *ast.Break:
		if !c.ctx.IsInsideLoop() {
			c.tree.addError(errors.New(errors.Structural, "break outside loop", v.Pos()))
		}
		return []ast.Statement{v}

	case *ast.Continue:
		if !c.ctx.IsInsideLoop() {
			c.tree.addError(errors.New(errors.Structural, "continue outside loop", v.Pos()))
		}
		return []ast.Statement{v}

	case *ast.ConstructorCall:
		return c.checkConstructorCall(v)

	case *ast.Defer:
		// the deferred body is checked through the closure-conversion path
		// the lowered addClosure call takes; checking it here first would
		// resolve its names before capture analysis ran over them.
		return c.checkStatement(lower.LowerDeferStatement(v))

	case *ast.Block:
		c.checkBlock(v)
		return []ast.Statement{v}

	default:
		return []ast.Statement{s}
	}
}

func (c *checker) checkWhile(v *ast.While) []ast.Statement {
	wasLoop := c.ctx.IsInsideLoop()
	c.ctx.SetIsInsideLoop(true)
	defer c.ctx.SetIsInsideLoop(wasLoop)

	prelude, cond := c.checkExpr(v.Condition)
	v.Condition = cond
	c.checkCondition(cond, v.Pos())
	c.checkBlock(v.Body)
	if lit, ok := v.Condition.(*ast.BoolLiteral); ok && lit.Value && !containsBreak(v.Body) {
		v.NoFallThrough = true
	}
	return append(prelude, v)
}

func (c *checker) checkFor(v *ast.For) []ast.Statement {
	wasLoop := c.ctx.IsInsideLoop()
	c.ctx.SetIsInsideLoop(true)
	defer c.ctx.SetIsInsideLoop(wasLoop)

	if v.Init != nil {
		v.Init = firstOrBlock(c.checkStatement(v.Init))
	}
	var prelude []ast.Statement
	if v.Condition != nil {
		prelude, v.Condition = c.checkExpr(v.Condition)
		c.checkCondition(v.Condition, v.Pos())
	}
	if v.Post != nil {
		v.Post = firstOrBlock(c.checkStatement(v.Post))
	}
	c.checkBlock(v.Body)
	return append(prelude, v)
}

func firstOrBlock(stmts []ast.Statement) ast.Statement {
	if len(stmts) == 1 {
		return stmts[0]
	}
	return &ast.Block{Statements: stmts}
}

// checkCondition enforces spec §4.4's "condition must be boolean or
// numeric" on If/While/For conditions.
func (c *checker) checkCondition(cond ast.Expression, at ast.Position) {
	if cond == nil {
		return
	}
	t := cond.ResolvedType()
	if t == nil || t.IsBool() || t.IsNumber() {
		return
	}
	c.tree.addError(errors.New(errors.Typing, "condition must be boolean or numeric", at))
}

// checkReturn validates a return against the enclosing method's return
// type: a bare `return` requires void (spec §4.4 "Return"), a value return
// must initialize the declared return type.
func (c *checker) checkReturn(v *ast.Return) []ast.Statement {
	ret := c.ctx.Method.ReturnType
	if v.Expr == nil {
		if ret != nil && !ret.IsVoid() {
			c.tree.addError(errors.New(errors.Typing, "return without a value in non-void method "+c.ctx.Method.Name, v.Pos()))
		}
		return []ast.Statement{v}
	}
	prelude, expr := c.checkExpr(v.Expr)
	v.Expr = expr
	if c.ctx.Method.IsGenerated {
		return append(prelude, v)
	}
	if ret != nil && ret.IsVoid() {
		c.tree.addError(errors.New(errors.Typing, "cannot return a value from void method "+c.ctx.Method.Name, v.Pos()))
	} else if ret != nil && expr != nil && expr.ResolvedType() != nil && !types.IsInitializableByExpression(ret, expr) {
		c.tree.addError(errors.New(errors.Typing, "return value does not match return type of "+c.ctx.Method.Name, v.Pos()))
	}
	return append(prelude, v)
}

// checkConstructorCall validates a `base(...)`/`this(...)` chain call: it is
// only legal inside a constructor, resolves its target against the enclosing
// class (spec §4.4 "ConstructorCall statement"), and sets the
// constructor-call-statement flag while its arguments check so data-member
// names inside them resolve to the `_Arg`-suffixed parameter rather than to
// an uninitialized member.
func (c *checker) checkConstructorCall(v *ast.ConstructorCall) []ast.Statement {
	cls := c.ctx.ClassDefinition()
	if !c.ctx.Method.IsConstructor || cls == nil {
		c.tree.addError(errors.New(errors.Structural, "constructor call outside a constructor", v.Pos()))
		return []ast.Statement{v}
	}

	switch v.Kind {
	case ast.ThisCtorCall:
		v.ClassName = cls.Name + "_init"
	case ast.BaseCtorCall:
		if cls.BaseClass == nil {
			c.tree.addError(errors.New(errors.Structural, cls.Name+" has no base class to call", v.Pos()))
			return []ast.Statement{v}
		}
		v.ClassName = cls.BaseClass.Name + "_init"
	}

	c.ctx.SetIsConstructorCallStatement(true)
	var pre []ast.Statement
	for i, a := range v.Arguments {
		argPre, newArg := c.checkExpr(a)
		v.Arguments[i] = newArg
		pre = append(pre, argPre...)
	}
	c.ctx.SetIsConstructorCallStatement(false)
	return append(pre, v)
}

// checkPatternBindingDecl expands `var Pattern = init` (spec §4.4
// "VariableDeclaration statement", pattern-binding form): the initializer
// is materialized into a temporary unless it is already a variable, the
// pattern must be irrefutable for the subject's type, and the bindings the
// pattern creates replace the original declaration.
func (c *checker) checkPatternBindingDecl(v *ast.VarDeclarationStmt) []ast.Statement {
	if v.Decl.Initializer == nil {
		c.tree.addError(errors.New(errors.Structural, "pattern-binding declaration requires an initializer", v.Pos()))
		return nil
	}
	prelude, init := c.checkExpr(v.Decl.Initializer)
	v.Decl.Initializer = init

	subject := init
	switch init.(type) {
	case *ast.LocalVariable, *ast.Temporary:
	default:
		temp := &ast.VariableDeclaration{
			Name:        "__pattern_subject",
			Form:        ast.TypedDecl,
			Initializer: init,
			At:          v.Pos(),
		}
		if init != nil {
			temp.Type = init.ResolvedType()
		}
		_ = c.ctx.Bindings.InsertLocalObject(temp)
		prelude = append(prelude, &ast.VarDeclarationStmt{Decl: temp})
		ref := &ast.Temporary{Declaration: temp}
		ref.SetResolvedType(temp.Type)
		subject = ref
	}

	pat, err := pattern.Create(v.Decl.Pattern, c.ctx.Bindings)
	if err != nil {
		c.tree.addError(errors.New(errors.Pattern, err.Error(), v.Pos()))
		return prelude
	}
	coverage := coverageFor(subject)
	if !pat.IsMatchExhaustive(subject, coverage, false) {
		c.tree.addError(errors.New(errors.Pattern, "pattern in declaration may fail to match", v.Pos()))
	}
	// comparison generation is what populates the pattern's binding list;
	// an irrefutable pattern produces no test to keep.
	pat.GenerateComparisonExpression(subject)

	out := prelude
	for _, d := range pat.VariablesCreatedByPattern() {
		_ = c.ctx.Bindings.InsertLocalObject(d)
		if d.Type == nil && d.Initializer != nil {
			d.Type = d.Initializer.ResolvedType()
		}
		out = append(out, &ast.VarDeclarationStmt{Decl: d})
	}
	return out
}
