package sema

import (
	"fmt"

	"github.com/fenlang/orbitc/internal/ast"
	"github.com/fenlang/orbitc/internal/bindings"
	"github.com/fenlang/orbitc/internal/defs"
	"github.com/fenlang/orbitc/internal/errors"
	"github.com/fenlang/orbitc/internal/types"
)

// Tree drives the whole post-parse pipeline over a single compilation unit
// (spec §4.6 "Pipeline Stages"), grounded on Tree.h/.cpp. Parse itself is
// external (internal/ast nodes arrive already built); Tree begins at
// CheckReturnStatements.
type Tree struct {
	GlobalDefinitions []defs.Definition
	GlobalScope       *bindings.Scope
	GlobalFunctions   *defs.ClassDefinition

	// Well-known built-ins every unit gets before its own classes resolve
	// (Tree::insertBuiltInTypesInGlobalNameBindings,
	// Tree::generateArrayClass, Tree::generateDeferClass,
	// Tree::generateNoArgsClosureInterface).
	ObjectClass        *defs.ClassDefinition
	MessageHandler      *defs.ClassDefinition
	Cloneable           *defs.ClassDefinition
	ArrayClass          *defs.ClassDefinition
	DeferClass          *defs.ClassDefinition
	NoArgsClosureIface  *defs.ClassDefinition

	openBlocks  []*ast.Block
	openClasses []*defs.ClassDefinition

	importedModules map[string]bool
	errs            []*errors.CompilerError

	// closureIfaces memoizes one generated interface class per closure
	// signature name, shared between pass 4 (RunConvertClosureTypes) and
	// pass 6's closure-value conversion so neither ever registers the same
	// interface twice (spec §4.1 "Closure interface name").
	closureIfaces map[string]*defs.ClassDefinition
	closureSeq    int

	metrics *Metrics
}

// New builds a Tree with the built-in scaffold already in its global scope.
func New() *Tree {
	t := &Tree{
		GlobalScope:     bindings.New(),
		importedModules: map[string]bool{},
		closureIfaces:   map[string]*defs.ClassDefinition{},
	}
	t.bootstrapBuiltins()
	return t
}

// Errors returns every CompilerError accumulated across all passes run so
// far.
func (t *Tree) Errors() []*errors.CompilerError { return t.errs }

func (t *Tree) addError(err *errors.CompilerError) { t.errs = append(t.errs, err) }

func (t *Tree) bootstrapBuiltins() {
	object, _ := defs.NewClass("object", nil, nil, t.GlobalScope, defs.ClassProperties{}, ast.Position{})
	t.ObjectClass = object
	_ = t.GlobalScope.InsertClass("object", object)

	messageHandler, _ := defs.NewClass("MessageHandler", nil, nil, t.GlobalScope, defs.ClassProperties{IsInterface: true, IsGenerated: true}, ast.Position{})
	t.MessageHandler = messageHandler
	_ = t.GlobalScope.InsertClass("MessageHandler", messageHandler)

	cloneable, _ := defs.NewClass("Cloneable", nil, nil, t.GlobalScope, defs.ClassProperties{IsInterface: true, IsGenerated: true}, ast.Position{})
	cloneMethod := defs.NewMethod("_clone", selfReferenceType(cloneable), defs.Public, false, ast.Position{})
	cloneable.AppendMember(cloneMethod)
	_ = cloneable.Scope.InsertMethod(cloneMethod.Name, cloneMethod)
	t.Cloneable = cloneable
	_ = t.GlobalScope.InsertClass("Cloneable", cloneable)

	t.GlobalFunctions, _ = defs.NewClass("_Global_Functions_", nil, nil, t.GlobalScope, defs.ClassProperties{IsGenerated: true}, ast.Position{})

	t.generateArrayClass()
	t.generateDeferClass()
	t.generateNoArgsClosureInterface()
}

// generateArrayClass installs the built-in `Array<T>` class: length,
// capacity, append, appendAll, concat, slice, and each (spec §4.3 "Array").
// Method bodies are left nil (they are runtime-provided, not
// compiler-synthesized) except where internal/lower needs a concrete AST to
// clone against.
func (t *Tree) generateArrayClass() {
	elem := defs.NewGenericTypeParameter("T", ast.Position{})
	array, _ := defs.NewClass("Array", []*defs.GenericTypeParameterDefinition{elem}, nil, t.GlobalScope, defs.ClassProperties{IsGenerated: true}, ast.Position{})
	elemType := types.CreateNamed("T")

	length := defs.NewMethod("length", types.Create(types.Int), defs.Public, false, ast.Position{})
	capacity := defs.NewMethod("capacity", types.Create(types.Int), defs.Public, false, ast.Position{})
	appendM := defs.NewMethod("append", types.Void_(), defs.Public, false, ast.Position{})
	appendM.AddArgument(&ast.VariableDeclaration{Name: "element", Type: elemType.Clone(), Form: ast.TypedDecl})
	appendAll := defs.NewMethod("appendAll", types.Void_(), defs.Public, false, ast.Position{})
	otherArrayType := types.ArrayOf(elemType)
	appendAll.AddArgument(&ast.VariableDeclaration{Name: "other", Type: otherArrayType, Form: ast.TypedDecl})
	concat := defs.NewMethod("concat", selfReferenceType(array), defs.Public, false, ast.Position{})
	concat.AddArgument(&ast.VariableDeclaration{Name: "other", Type: otherArrayType.Clone(), Form: ast.TypedDecl})
	slice := defs.NewMethod("slice", selfReferenceType(array), defs.Public, false, ast.Position{})
	slice.AddArgument(&ast.VariableDeclaration{Name: "from", Type: types.Create(types.Int), Form: ast.TypedDecl})
	slice.AddArgument(&ast.VariableDeclaration{Name: "to", Type: types.Create(types.Int), Form: ast.TypedDecl})
	each := defs.NewMethod("each", types.Void_(), defs.Public, false, ast.Position{})
	closureArg := types.Create(types.Function)
	closureSig := types.NewFunctionSignature(types.Void_())
	closureSig.AddArgument(elemType.Clone())
	closureArg.Signature = closureSig
	each.AddArgument(&ast.VariableDeclaration{Name: "fn", Type: closureArg, Form: ast.TypedDecl})

	for _, m := range []*defs.MethodDefinition{length, capacity, appendM, appendAll, concat, slice, each} {
		array.AppendMember(m)
		_ = array.Scope.InsertMethod(m.Name, m)
	}
	t.ArrayClass = array
	_ = t.GlobalScope.InsertClass("Array", array)
}

// generateDeferClass installs the `Defer` class internal/lower's
// LowerDeferStatement targets: a single addClosure method collecting
// no-arg closures to run in reverse order at scope exit.
func (t *Tree) generateDeferClass() {
	d, _ := defs.NewClass("Defer", nil, nil, t.GlobalScope, defs.ClassProperties{IsGenerated: true}, ast.Position{})
	addClosure := defs.NewMethod("addClosure", types.Void_(), defs.Public, false, ast.Position{})
	closureArg := types.Create(types.Function)
	closureArg.Signature = types.NewFunctionSignature(types.Void_())
	addClosure.AddArgument(&ast.VariableDeclaration{Name: "fn", Type: closureArg, Form: ast.TypedDecl})
	d.AppendMember(addClosure)
	_ = d.Scope.InsertMethod(addClosure.Name, addClosure)
	t.DeferClass = d
	_ = t.GlobalScope.InsertClass("Defer", d)
}

// generateNoArgsClosureInterface installs `fun void()`, the interface every
// zero-argument closure (including Defer's stored closures) implements.
func (t *Tree) generateNoArgsClosureInterface() {
	noArgs := types.Create(types.Function)
	noArgs.Signature = types.NewFunctionSignature(types.Void_())
	iface, err := defs.NewClass(noArgs.ClosureInterfaceName(), nil, nil, t.GlobalScope, defs.ClassProperties{IsInterface: true, IsClosure: true, IsGenerated: true}, ast.Position{})
	if err != nil {
		return
	}
	callMethod := defs.NewMethod("call", types.Void_(), defs.Public, false, ast.Position{})
	iface.AppendMember(callMethod)
	_ = iface.Scope.InsertMethod(callMethod.Name, callMethod)
	t.NoArgsClosureIface = iface
	_ = t.GlobalScope.InsertClass(iface.Name, iface)
	// pass 4 and pass 6 both resolve closure interfaces through
	// closureIfaces; seeding it here keeps `fun void()` singular instead of
	// letting either pass regenerate it.
	t.closureIfaces[iface.Name] = iface
}

// selfReferenceType builds the reference Type an instance of c carries,
// for the generated built-in methods that return or accept `this`'s class
// by reference (e.g. Array.slice, Cloneable._clone).
func selfReferenceType(c *defs.ClassDefinition) *types.Type {
	t := types.CreateNamed(c.Name)
	t.Reference = true
	t.SetDefinition(c)
	return t
}

// CurrentBlock returns the block the driver is presently adding statements
// to (Tree::getCurrentBlock).
func (t *Tree) CurrentBlock() *ast.Block {
	if len(t.openBlocks) == 0 {
		return nil
	}
	return t.openBlocks[len(t.openBlocks)-1]
}

// StartBlock opens b as a nested scope under the current block
// (Tree::startBlock).
func (t *Tree) StartBlock(b *ast.Block) *ast.Block {
	if b.Scope == nil {
		var enc *bindings.Scope
		if cur := t.CurrentBlock(); cur != nil {
			if sc, ok := cur.Scope.(*bindings.Scope); ok {
				enc = sc
			}
		} else {
			enc = t.GlobalScope
		}
		b.Scope = bindings.NewEnclosed(enc)
	}
	t.openBlocks = append(t.openBlocks, b)
	return b
}

// FinishBlock pops the innermost open block (Tree::finishBlock).
func (t *Tree) FinishBlock() *ast.Block {
	if len(t.openBlocks) == 0 {
		return nil
	}
	b := t.openBlocks[len(t.openBlocks)-1]
	t.openBlocks = t.openBlocks[:len(t.openBlocks)-1]
	return b
}

// AddStatement appends stmt to the currently open block (Tree::addStatement).
func (t *Tree) AddStatement(stmt ast.Statement) {
	if b := t.CurrentBlock(); b != nil {
		b.AddStatement(stmt)
	}
}

// CurrentClass returns the class presently being built (Tree::getCurrentClass).
func (t *Tree) CurrentClass() *defs.ClassDefinition {
	if len(t.openClasses) == 0 {
		return nil
	}
	return t.openClasses[len(t.openClasses)-1]
}

// StartClass registers and opens class (Tree::startClass).
func (t *Tree) StartClass(class *defs.ClassDefinition) {
	t.openClasses = append(t.openClasses, class)
	t.GlobalDefinitions = append(t.GlobalDefinitions, class)
}

// ReopenClass reopens an already-registered class without re-adding it to
// GlobalDefinitions (Tree::reopenClass) — used when a generated concrete
// generic instantiation needs further members appended mid-pass.
func (t *Tree) ReopenClass(class *defs.ClassDefinition) {
	t.openClasses = append(t.openClasses, class)
}

// FinishClass pops the innermost open class, applying the auto-inheritance
// rule (spec §4.6): a process-interface implementer gains MessageHandler, a
// message class gains Cloneable.
func (t *Tree) FinishClass() *defs.ClassDefinition {
	if len(t.openClasses) == 0 {
		return nil
	}
	c := t.openClasses[len(t.openClasses)-1]
	t.openClasses = t.openClasses[:len(t.openClasses)-1]
	c.ApplyAutoInheritance(t.MessageHandler, t.Cloneable)
	return c
}

// AddClassMember appends a member to the current class (Tree::addClassMember).
func (t *Tree) AddClassMember(m defs.Definition) {
	if c := t.CurrentClass(); c != nil {
		c.AppendMember(m)
	}
}

// AddClassDataMember installs a typed data member on the current class
// (Tree::addClassDataMember).
func (t *Tree) AddClassDataMember(name string, ty *types.Type) {
	if c := t.CurrentClass(); c != nil {
		c.AppendMember(defs.NewDataMember(name, ty, defs.Public, false, false, ast.Position{}))
	}
}

// AddGlobalDefinition records a top-level definition that is not a class
// (Tree::addGlobalDefinition) — e.g. a free function hoisted onto
// GlobalFunctions.
func (t *Tree) AddGlobalDefinition(d defs.Definition) {
	t.GlobalDefinitions = append(t.GlobalDefinitions, d)
}

// RegisterGeneratedClass splices a class generated mid-pass-6 (a closure
// value's capturing class, a MethodCall-time generic instantiation) into
// GlobalDefinitions and the global scope. Unlike AddClassMember, which only
// ever reaches a class still open on openClasses during parsing, this is
// safe to call after the parse stack has long since unwound (spec §4.6
// "Closure generation").
func (t *Tree) RegisterGeneratedClass(c *defs.ClassDefinition) {
	t.GlobalDefinitions = append(t.GlobalDefinitions, c)
	_ = t.GlobalScope.InsertClass(c.Name, c)
}

// nextClosureName produces a fresh `$Closure$N` name for a closure value's
// generated class (Closure.cpp's sequential naming scheme).
func (t *Tree) nextClosureName() string {
	t.closureSeq++
	return fmt.Sprintf("$Closure$%d", t.closureSeq)
}

// UseModule records name as imported, erroring on a repeat import
// (Tree::useNamespace / isModuleAlreadyImported).
func (t *Tree) UseModule(name string, at ast.Position) error {
	if t.importedModules[name] {
		return fmt.Errorf("module %q already imported", name)
	}
	t.importedModules[name] = true
	return nil
}

// Run executes the five driver-owned passes in spec order, stopping at the
// first one that reports errors (Parse itself is external; CheckReturnStatements
// is the first pass Tree runs).
func (t *Tree) Run() []*errors.CompilerError {
	t.errs = nil
	t.observe("check_return_statements", t.RunCheckReturnStatements)
	if len(t.errs) > 0 {
		return t.errs
	}
	t.observe("make_generic_types_concrete", t.RunMakeGenericTypesConcrete)
	if len(t.errs) > 0 {
		return t.errs
	}
	t.observe("convert_closure_types", t.RunConvertClosureTypes)
	if len(t.errs) > 0 {
		return t.errs
	}
	t.observe("generate_clone_methods", t.RunGenerateCloneMethods)
	if len(t.errs) > 0 {
		return t.errs
	}
	t.observe("type_check_and_transform", t.RunTypeCheckAndTransform)
	return t.errs
}

// LookupClass finds a class definition by name in the global scope
// (Tree::getClassDefinition), used by heap-allocation lowering to decide
// whether `new Name(...)` allocates a process interface.
func (t *Tree) LookupClass(name string) *defs.ClassDefinition {
	b, ok := t.GlobalScope.Lookup(name)
	if !ok || b.Kind != bindings.Class {
		return nil
	}
	c, _ := b.Definition.(*defs.ClassDefinition)
	return c
}

// classes iterates every class among GlobalDefinitions, in source order.
func (t *Tree) classes() []*defs.ClassDefinition {
	var out []*defs.ClassDefinition
	for _, d := range t.GlobalDefinitions {
		if c, ok := d.(*defs.ClassDefinition); ok {
			out = append(out, c)
		}
	}
	return out
}
