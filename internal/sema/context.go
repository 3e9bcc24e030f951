// Package sema drives the five checking/lowering passes that run after
// parsing (spec §4.6 "Pipeline Stages"): CheckReturnStatements,
// MakeGenericTypesConcrete, ConvertClosureTypes, GenerateCloneMethods, and
// TypeCheckAndTransform. It is the one package that imports and orchestrates
// internal/types, internal/ast, internal/bindings, internal/defs,
// internal/pattern, and internal/lower.
package sema

import (
	"github.com/fenlang/orbitc/internal/ast"
	"github.com/fenlang/orbitc/internal/bindings"
	"github.com/fenlang/orbitc/internal/defs"
	"github.com/fenlang/orbitc/internal/types"
)

// Context is the per-method state TypeCheckAndTransform threads through a
// method body (spec §4.6's type-check-and-transform walk), grounded on
// Context.h/.cpp.
type Context struct {
	Method *defs.MethodDefinition
	Block  *ast.Block
	// Bindings is the scope currently in effect: either the enclosing
	// block's scope, or, while ClassLocalBindings is set, the class's own
	// member scope (Context::lookup checks ClassLocalBindings first).
	Bindings           *bindings.Scope
	ClassLocalBindings *bindings.Scope
	Lambda             *ast.AnonymousFunction
	TemporaryRetval    *ast.VariableDeclaration
	ArrayType          *types.Type

	static                 bool
	stringConstructorCall  bool
	insideLoop             bool
	constructorCallStmt    bool
}

// NewContext starts a fresh Context for m, matching Context::Context's
// initialization of staticContext from the method's own Static flag.
func NewContext(m *defs.MethodDefinition) *Context {
	return &Context{Method: m, static: m.Static}
}

// Lookup resolves name against ClassLocalBindings when set, else Bindings
// (Context::lookup).
func (c *Context) Lookup(name string) (*bindings.Binding, bool) {
	if c.ClassLocalBindings != nil {
		return c.ClassLocalBindings.LookupLocal(name)
	}
	return c.Bindings.Lookup(name)
}

// ClassDefinition returns the class enclosing the method under check
// (Context::getClassDefinition).
func (c *Context) ClassDefinition() *defs.ClassDefinition {
	return defs.EnclosingClass(c.Method)
}

// EnterBlock descends into b, pointing Bindings at the block's own scope
// (Context::enterBlock).
func (c *Context) EnterBlock(b *ast.Block) {
	c.Block = b
	if sc, ok := b.Scope.(*bindings.Scope); ok {
		c.Bindings = sc
	}
}

// ExitBlock ascends back to the enclosing block, pruning bindings that only
// lived for the block just left (Context::exitBlock).
func (c *Context) ExitBlock(enclosingBlock *ast.Block) {
	if c.Bindings != nil {
		c.Bindings.RemoveObsoleteLocalBindings()
		c.Bindings = c.Bindings.Enclosing()
	}
	c.Block = enclosingBlock
}

// Reset clears the per-lookup overrides a BindingsGuard installed
// (Context::reset).
func (c *Context) Reset() {
	c.ClassLocalBindings = nil
	c.static = c.Method.Static
}

func (c *Context) IsStatic() bool                    { return c.static }
func (c *Context) SetIsStatic(v bool)                { c.static = v }
func (c *Context) IsStringConstructorCall() bool      { return c.stringConstructorCall }
func (c *Context) SetIsStringConstructorCall(v bool)  { c.stringConstructorCall = v }
func (c *Context) IsInsideLoop() bool                 { return c.insideLoop }
func (c *Context) SetIsInsideLoop(v bool)             { c.insideLoop = v }
func (c *Context) IsConstructorCallStatement() bool   { return c.constructorCallStmt }
func (c *Context) SetIsConstructorCallStatement(v bool) { c.constructorCallStmt = v }

// BindingsGuard installs a class-local binding scope for the lifetime of a
// call (e.g. while type-checking a ConstructorCall's own class) and resets
// Context back to its defaults on Release, mirroring Context::BindingsGuard's
// RAII destructor (spec has no destructors, so callers must `defer
// guard.Release()` at the call site).
type BindingsGuard struct {
	context *Context
}

// NewBindingsGuard installs no class-local override; only useful for the
// guaranteed Reset() on Release.
func NewBindingsGuard(c *Context) *BindingsGuard {
	return &BindingsGuard{context: c}
}

// NewBindingsGuardWithClassLocals additionally points lookups at
// classLocals for the guard's lifetime (Context::BindingsGuard's two-arg
// constructor).
func NewBindingsGuardWithClassLocals(c *Context, classLocals *bindings.Scope) *BindingsGuard {
	c.ClassLocalBindings = classLocals
	return &BindingsGuard{context: c}
}

// Release restores Context to its un-guarded defaults.
func (g *BindingsGuard) Release() {
	g.context.Reset()
}
