package sema

import (
	"github.com/fenlang/orbitc/internal/ast"
	"github.com/fenlang/orbitc/internal/defs"
	"github.com/fenlang/orbitc/internal/lower"
	"github.com/fenlang/orbitc/internal/types"
)

// RunConvertClosureTypes is pass 4 (spec §4.6): every `fun R(A,...)` Type
// appearing in a signature or data member is replaced by a reference Type
// naming the generated closure interface class, grounded on
// Tree::convertClosureTypesInSigntures / Type::convertToClosureInterface.
// Array/Defer's own built-in signatures are included, same as any
// user-declared class, since they carry closure-typed arguments
// themselves (Array.each, Defer.addClosure).
func (t *Tree) RunConvertClosureTypes() {
	// Defer is bootstrap-generated rather than parsed, so it never appears
	// in GlobalDefinitions; its addClosure argument still needs the same
	// conversion user signatures get. Array is left alone: its `each`
	// signature carries the unlinked element placeholder that
	// checkArrayBuiltinCall substitutes per call site instead.
	t.convertClassClosureTypes(t.DeferClass)
	for _, c := range t.classes() {
		t.convertClassClosureTypes(c)
	}
}

func (t *Tree) convertClassClosureTypes(c *defs.ClassDefinition) {
	for _, dm := range c.DataMembers {
		dm.Type = t.convertTypeToClosureInterface(dm.Type)
	}
	for _, m := range c.Methods {
		m.ReturnType = t.convertTypeToClosureInterface(m.ReturnType)
		for _, a := range m.Arguments {
			a.Type = t.convertTypeToClosureInterface(a.Type)
		}
	}
}

// convertTypeToClosureInterface rewrites a Function-kind Type into a
// reference Type naming its (possibly freshly generated) closure
// interface; every other Type passes through unchanged. closureInterfaceFor
// does the actual lookup-or-generate, shared with pass 6's closure-value
// conversion so both paths register at most one interface per signature.
func (t *Tree) convertTypeToClosureInterface(ty *types.Type) *types.Type {
	if ty == nil || !ty.IsFunction() || ty.Signature == nil {
		return ty
	}
	iface := t.closureInterfaceFor(ty)
	if iface == nil {
		return ty
	}
	out := types.CreateNamed(iface.Name)
	out.Reference = true
	out.SetDefinition(iface)
	return out
}

// closureInterfaceFor returns the (possibly freshly generated) interface
// class implementing ty's closure signature, memoized on t.closureIfaces
// (spec §4.1 "Closure interface name").
func (t *Tree) closureInterfaceFor(ty *types.Type) *defs.ClassDefinition {
	name := ty.ClosureInterfaceName()
	if iface, ok := t.closureIfaces[name]; ok {
		return iface
	}
	iface, err := lower.GenerateInterface(ty, t.GlobalScope, ast.Position{})
	if err != nil {
		return nil
	}
	t.closureIfaces[name] = iface
	t.RegisterGeneratedClass(iface)
	return iface
}
