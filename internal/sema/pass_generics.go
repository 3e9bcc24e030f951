package sema

import (
	"fmt"

	"github.com/fenlang/orbitc/internal/ast"
	"github.com/fenlang/orbitc/internal/bindings"
	"github.com/fenlang/orbitc/internal/defs"
	"github.com/fenlang/orbitc/internal/errors"
	"github.com/fenlang/orbitc/internal/types"
)

// genericCache memoizes one concrete instantiation per fully-constructed
// name (e.g. "Array<int>"), matching Tree::lookupType's
// scope.lookupType(fullConstructedName) short-circuit before generating a
// new class.
type genericCache struct {
	byName map[string]*defs.ClassDefinition
}

// RunMakeGenericTypesConcrete is pass 3 (spec §4.6): every occurrence of a
// generic type parameter in a signature or data member is mapped to its
// concrete binding, and every use of `Foo<T1,...,Tn>` with concrete
// arguments triggers (at most once) the generation of a concrete class,
// inserted into GlobalDefinitions ahead of its first use (testable property
// 9), grounded on Tree::makeGenericTypeConcreteInCurrentTree and
// Tree::generateConcreteClassFromGeneric.
func (t *Tree) RunMakeGenericTypesConcrete() {
	cache := &genericCache{byName: map[string]*defs.ClassDefinition{}}
	// classes() snapshots GlobalDefinitions; newly generated classes are
	// spliced into GlobalDefinitions as we go and picked up because we
	// index by position, not by a fixed slice copy.
	for i := 0; i < len(t.GlobalDefinitions); i++ {
		c, ok := t.GlobalDefinitions[i].(*defs.ClassDefinition)
		if !ok || c.IsGeneric() {
			continue
		}
		t.makeClassSignaturesConcrete(c, cache, &i)
	}
}

func (t *Tree) makeClassSignaturesConcrete(c *defs.ClassDefinition, cache *genericCache, defIndex *int) {
	for _, dm := range c.DataMembers {
		dm.Type = t.makeTypeConcrete(dm.Type, c, cache, defIndex)
	}
	for _, m := range c.Methods {
		m.ReturnType = t.makeTypeConcrete(m.ReturnType, c, cache, defIndex)
		for _, a := range m.Arguments {
			a.Type = t.makeTypeConcrete(a.Type, c, cache, defIndex)
		}
	}
}

// makeTypeConcrete is Tree::makeGenericTypeConcreteInCurrentTree: a bare
// generic-type-parameter Type resolves to its bound concrete Type; a
// parameterized `Foo<...>` Type whose Definition is still a generic class
// triggers instantiation and gets repointed at the generated concrete
// class.
func (t *Tree) makeTypeConcrete(ty *types.Type, owner *defs.ClassDefinition, cache *genericCache, defIndex *int) *types.Type {
	if ty == nil {
		return nil
	}
	if ty.Signature != nil {
		ty.Signature.ReturnType = t.makeTypeConcrete(ty.Signature.ReturnType, owner, cache, defIndex)
		for i, a := range ty.Signature.Arguments {
			ty.Signature.Arguments[i] = t.makeTypeConcrete(a, owner, cache, defIndex)
		}
	}
	if gp, ok := types.AsGenericTypeParameter(ty.Definition); ok {
		if concrete := gp.ConcreteType(); concrete != nil {
			return concrete
		}
		if err := genericErrorIfUnresolved(ty, owner.At); err != nil {
			t.addError(err)
		}
		return ty
	}
	if !ty.HasGenericArgs() {
		return ty
	}
	for i, ga := range ty.GenericArgs {
		ty.GenericArgs[i] = t.makeTypeConcrete(ga, owner, cache, defIndex)
	}
	classDef, ok := types.AsClass(ty.Definition)
	if !ok {
		return ty
	}
	generic, ok := classDef.(*defs.ClassDefinition)
	if !ok || !generic.IsGeneric() {
		return ty
	}
	concreteClass := t.instantiate(generic, ty.GenericArgs, owner.At, cache, defIndex)
	out := ty.Clone()
	out.SetDefinition(concreteClass)
	return out
}

// instantiate clones generic with concreteArgs bound, inserting the
// generated class into GlobalDefinitions ahead of *defIndex
// (Tree::generateConcreteClassFromGeneric / insertGeneratedConcreteType).
// Forward-declaration handling for self-recursive generic instantiations
// (a linked-list `Node<T>` holding a `Node<T>` pointer) is intentionally
// out of scope: spec.md's data model has no such recursive generic use
// site, so only the non-recursive insertion path is implemented — see
// DESIGN.md.
func (t *Tree) instantiate(generic *defs.ClassDefinition, concreteArgs []*types.Type, at ast.Position, cache *genericCache, defIndex *int) *defs.ClassDefinition {
	fullName := fullConstructedName(generic.Name, concreteArgs)
	if existing, ok := cache.byName[fullName]; ok {
		return existing
	}

	concrete := cloneGenericClass(generic, concreteArgs, at)
	cache.byName[fullName] = concrete

	_ = t.GlobalScope.InsertClass(fullName, concrete)
	t.GlobalDefinitions = append(t.GlobalDefinitions[:*defIndex], append([]defs.Definition{concrete}, t.GlobalDefinitions[*defIndex:]...)...)
	*defIndex++

	t.makeClassSignaturesConcrete(concrete, cache, defIndex)
	return concrete
}

func fullConstructedName(name string, args []*types.Type) string {
	out := name
	if len(args) == 0 {
		return out
	}
	out += "<"
	for i, a := range args {
		if i > 0 {
			out += ","
		}
		out += a.String()
	}
	out += ">"
	return out
}

// cloneGenericClass builds the concrete instantiation: a fresh
// ClassDefinition with each GenericTypeParameterDefinition's Concrete field
// bound to the matching concreteArgs entry, and every data member/method
// deep-copied by value (types.Type.Clone keeps each clone's substitutions
// independent of the generic template and of sibling instantiations).
// Constructors are renamed from `Foo_init` to `Foo<A,B>_init` on the way
// (spec §4.1 "Generic instantiation name").
func cloneGenericClass(generic *defs.ClassDefinition, concreteArgs []*types.Type, at ast.Position) *defs.ClassDefinition {
	name := fullConstructedName(generic.Name, concreteArgs)
	scope := bindings.NewEnclosed(generic.Scope.Enclosing())

	clonedByName := map[string]*defs.GenericTypeParameterDefinition{}
	var clonedParams []*defs.GenericTypeParameterDefinition
	for i, gp := range generic.GenericParameters {
		cp := gp.Clone()
		if i < len(concreteArgs) {
			cp.SetConcreteType(concreteArgs[i])
		}
		clonedParams = append(clonedParams, cp)
		clonedByName[cp.DefinitionName()] = cp
	}

	concrete, err := defs.NewClass(name, clonedParams, generic.ParentClasses, scope, generic.Properties, at)
	if err != nil {
		// A malformed generic template is an internal error, not a
		// user-facing one (spec §7): the template itself already passed
		// NewClass once when it was declared.
		panic(fmt.Sprintf("internal error in cloneGenericClass(%s): %v", generic.Name, err))
	}
	concrete.BaseClass = generic.BaseClass
	concrete.HasConstructor = generic.HasConstructor
	concrete.Recursive = generic.Recursive

	for _, dm := range generic.DataMembers {
		cloned := dm.Type.Clone()
		rebindTypeParameters(cloned, clonedByName)
		nd := defs.NewDataMember(dm.Name, cloned, dm.Access, dm.Static, dm.PrimaryCtorArg, dm.At)
		concrete.AppendMember(nd)
		_ = concrete.Scope.InsertDataMember(nd.Name, nd)
	}
	oldCtorName := generic.Name + "_init"
	for _, m := range generic.Methods {
		nm := cloneMethodSignature(m, clonedByName)
		if nm.IsConstructor && nm.Name == oldCtorName {
			nm.Name = name + "_init"
		}
		concrete.AppendMember(nm)
		_ = concrete.Scope.InsertMethod(nm.Name, nm)
	}
	return concrete
}

func cloneMethodSignature(m *defs.MethodDefinition, params map[string]*defs.GenericTypeParameterDefinition) *defs.MethodDefinition {
	ret := m.ReturnType.Clone()
	rebindTypeParameters(ret, params)
	nm := defs.NewMethod(m.Name, ret, m.Access, m.Static, m.At)
	nm.IsConstructor = m.IsConstructor
	nm.IsPrimaryCtor = m.IsPrimaryCtor
	nm.IsEnumCtor = m.IsEnumCtor
	nm.IsGenerated = m.IsGenerated
	nm.Body = m.Body
	for _, a := range m.Arguments {
		cloned := a.Type.Clone()
		rebindTypeParameters(cloned, params)
		nm.AddArgument(&ast.VariableDeclaration{Name: a.Name, Type: cloned, Form: a.Form, At: a.At})
	}
	return nm
}

// rebindTypeParameters repoints every generic-type-parameter reference in
// ty (including inside signatures and generic arguments) at the cloned,
// concrete-bound parameter of the instantiation being built, so that
// makeTypeConcrete sees a bound parameter instead of the template's unbound
// one.
func rebindTypeParameters(ty *types.Type, params map[string]*defs.GenericTypeParameterDefinition) {
	if ty == nil {
		return
	}
	if gp, ok := types.AsGenericTypeParameter(ty.Definition); ok {
		if cp, bound := params[gp.DefinitionName()]; bound {
			ty.SetDefinition(cp)
		}
	}
	if ty.Signature != nil {
		rebindTypeParameters(ty.Signature.ReturnType, params)
		for _, a := range ty.Signature.Arguments {
			rebindTypeParameters(a, params)
		}
	}
	for _, ga := range ty.GenericArgs {
		rebindTypeParameters(ga, params)
	}
}

// InstantiateGenericClass resolves generic against concreteArgs outside
// pass 3's own defIndex-threaded loop, for MethodCall's positional
// generic-argument inference (spec §4.4 "MethodCall"). It first checks for
// an instantiation pass 3 (or an earlier MethodCall) already produced for
// the same fullConstructedName before cloning a fresh one, so the two
// call sites never register duplicate concrete classes for the same
// arguments. A pass-6-generated instantiation carries no ordering
// constraint, so it is simply appended to the end of GlobalDefinitions.
func (t *Tree) InstantiateGenericClass(generic *defs.ClassDefinition, concreteArgs []*types.Type, at ast.Position) *defs.ClassDefinition {
	fullName := fullConstructedName(generic.Name, concreteArgs)
	if existing := t.LookupClass(fullName); existing != nil {
		return existing
	}
	concrete := cloneGenericClass(generic, concreteArgs, at)
	t.RegisterGeneratedClass(concrete)
	idx := len(t.GlobalDefinitions)
	t.makeClassSignaturesConcrete(concrete, &genericCache{byName: map[string]*defs.ClassDefinition{fullName: concrete}}, &idx)
	return concrete
}

// inferGenericInstantiation binds owner's generic parameters positionally:
// for each of m's declared arguments whose resolved type names one of
// owner's generic parameters, the matching call-site argument's type
// becomes that parameter's concrete binding (spec §4.4 "MethodCall"
// positional generic-argument inference). Returns nil if any parameter is
// left unbound.
func (t *Tree) inferGenericInstantiation(owner *defs.ClassDefinition, m *defs.MethodDefinition, argTypes []*types.Type, at ast.Position) *defs.ClassDefinition {
	bound := map[string]*types.Type{}
	for i, arg := range m.Arguments {
		if i >= len(argTypes) || argTypes[i] == nil {
			continue
		}
		declared := arg.ResolvedType()
		if declared == nil {
			continue
		}
		if gp, ok := types.AsGenericTypeParameter(declared.Definition); ok {
			if _, seen := bound[gp.DefinitionName()]; !seen {
				bound[gp.DefinitionName()] = argTypes[i]
			}
		}
	}
	concreteArgs := make([]*types.Type, len(owner.GenericParameters))
	for i, gp := range owner.GenericParameters {
		ct, ok := bound[gp.DefinitionName()]
		if !ok {
			return nil
		}
		concreteArgs[i] = ct
	}
	return t.InstantiateGenericClass(owner, concreteArgs, at)
}

func genericErrorIfUnresolved(ty *types.Type, at ast.Position) *errors.CompilerError {
	if gp, ok := types.AsGenericTypeParameter(ty.Definition); ok && gp.ConcreteType() == nil {
		return errors.New(errors.Resolution, "cannot infer concrete type for generic parameter "+ty.Name, at)
	}
	return nil
}
