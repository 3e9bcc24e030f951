package defs

import (
	"fmt"

	"github.com/fenlang/orbitc/internal/ast"
	"github.com/fenlang/orbitc/internal/bindings"
	"github.com/fenlang/orbitc/internal/types"
)

// ClassProperties is the set of independent flags spec §3 lists for a
// ClassDefinition.
type ClassProperties struct {
	IsInterface          bool
	IsProcess            bool
	IsMessage            bool
	IsClosure            bool
	IsGenerated          bool
	IsEnumeration        bool
	IsEnumerationVariant bool
}

// ClassDefinition is a class, interface, or enumeration (spec §3
// "ClassDefinition").
type ClassDefinition struct {
	Base

	GenericParameters         []*GenericTypeParameterDefinition
	BaseClass                 *ClassDefinition // at most one concrete base
	ParentClasses             []*ClassDefinition
	Members                   []Definition
	Methods                   []*MethodDefinition
	DataMembers               []*DataMemberDefinition
	PrimaryCtorArgDataMembers []*DataMemberDefinition
	Scope                     *bindings.Scope
	Properties                ClassProperties
	HasConstructor            bool
	Recursive                 bool

	// RawVariants holds an enumeration's variants exactly as parsed —
	// name plus declared fields — before internal/lower's EnumGenerator
	// expands each into its tag constant, optional `$<Variant>Data`
	// class, and static constructor during GenerateCloneMethods.
	RawVariants []RawVariant
}

// RawVariant is one `Name(Type field, ...)` or `Name` alternative of an
// enumeration as the front end records it (spec §3 "Enumeration variant").
type RawVariant struct {
	Name   string
	Fields []*ast.VariableDeclaration
	At     ast.Position
}

// ResolveParents enforces spec §4.3's "at most one concrete base" rule and
// returns that base (nil if every parent is an interface).
func ResolveParents(parents []*ClassDefinition) (*ClassDefinition, error) {
	var base *ClassDefinition
	for _, p := range parents {
		if p.Properties.IsInterface {
			continue
		}
		if base != nil {
			return nil, fmt.Errorf("class has more than one concrete base class: %q and %q", base.Name, p.Name)
		}
		base = p
	}
	return base, nil
}

// NewClass builds a class from its already-resolved parent list, seeding
// its bindings scope from each parent's (spec §4.3 "Parents' bindings are
// copied into the class's bindings").
func NewClass(name string, genericParams []*GenericTypeParameterDefinition, parents []*ClassDefinition, enclosingScope *bindings.Scope, props ClassProperties, at ast.Position) (*ClassDefinition, error) {
	base, err := ResolveParents(parents)
	if err != nil {
		return nil, err
	}
	if props.IsInterface && base != nil {
		return nil, fmt.Errorf("interface %q cannot inherit a concrete base class %q", name, base.Name)
	}
	c := &ClassDefinition{
		GenericParameters: genericParams,
		BaseClass:         base,
		ParentClasses:     parents,
		Properties:        props,
	}
	c.Name = name
	c.At = at
	c.kind = ClassKind
	c.Scope = bindings.NewEnclosed(enclosingScope)
	for _, p := range parents {
		c.Scope.CopyFrom(p.Scope)
	}
	return c, nil
}

func (c *ClassDefinition) declNode()      {}
func (c *ClassDefinition) String() string { return "class " + c.Name }

func (c *ClassDefinition) IsInterface() bool          { return c.Properties.IsInterface }
func (c *ClassDefinition) IsProcess() bool            { return c.Properties.IsProcess }
func (c *ClassDefinition) IsMessage() bool            { return c.Properties.IsMessage }
func (c *ClassDefinition) IsClosure() bool            { return c.Properties.IsClosure }
func (c *ClassDefinition) IsGenerated() bool          { return c.Properties.IsGenerated }
func (c *ClassDefinition) IsEnumeration() bool        { return c.Properties.IsEnumeration }
func (c *ClassDefinition) IsEnumerationVariant() bool { return c.Properties.IsEnumerationVariant }

// IsSubclassOf walks the concrete base chain and the parent (interface)
// list, matching by name (spec §4.1 "isUpcast").
func (c *ClassDefinition) IsSubclassOf(other types.ClassDefinition) bool {
	for cur := c.BaseClass; cur != nil; cur = cur.BaseClass {
		if cur.DefinitionName() == other.DefinitionName() {
			return true
		}
	}
	for _, p := range c.ParentClasses {
		if p.DefinitionName() == other.DefinitionName() || p.IsSubclassOf(other) {
			return true
		}
	}
	return false
}

// ApplyAutoInheritance gives c MessageHandler and/or Cloneable as parents
// per spec §4.3: "a class that implements a Process interface auto-inherits
// MessageHandler; message classes auto-inherit Cloneable". Either argument
// may be nil if the corresponding built-in interface hasn't been
// constructed yet (e.g. while bootstrapping the tree).
func (c *ClassDefinition) ApplyAutoInheritance(messageHandler, cloneable *ClassDefinition) {
	if messageHandler != nil && !c.Properties.IsGenerated && !c.Properties.IsProcess && !c.Properties.IsInterface {
		for _, p := range c.ParentClasses {
			if p.Properties.IsProcess && p.Properties.IsInterface {
				c.addParentIfMissing(messageHandler)
				break
			}
		}
	}
	if cloneable != nil && c.Properties.IsMessage && !c.Properties.IsEnumeration {
		c.addParentIfMissing(cloneable)
	}
}

func (c *ClassDefinition) addParentIfMissing(p *ClassDefinition) {
	for _, existing := range c.ParentClasses {
		if existing == p {
			return
		}
	}
	c.ParentClasses = append(c.ParentClasses, p)
}

// AppendMember links member into c's member/fast-access lists (spec §3
// "ordered member list; separate fast-access lists").
func (c *ClassDefinition) AppendMember(m Definition) {
	c.Members = append(c.Members, m)
	m.SetEnclosingDefinition(c)
	switch v := m.(type) {
	case *MethodDefinition:
		c.Methods = append(c.Methods, v)
	case *DataMemberDefinition:
		c.DataMembers = append(c.DataMembers, v)
		if v.PrimaryCtorArg {
			c.PrimaryCtorArgDataMembers = append(c.PrimaryCtorArgDataMembers, v)
		}
	}
}

// AddMethod inserts m, enforcing spec §4.3's duplicate-signature rule and
// propagating virtual-ness from an overridden parent method.
func (c *ClassDefinition) AddMethod(m *MethodDefinition) error {
	for _, existing := range c.Methods {
		if existing.Name == m.Name && existing.ArgumentTypesEqual(m) {
			return fmt.Errorf("method %q with this argument list is already declared in %q", m.Name, c.Name)
		}
	}
	if c.BaseClass != nil {
		for _, parentMethod := range c.BaseClass.Methods {
			if parentMethod.Name == m.Name && parentMethod.ArgumentTypesEqual(m) && parentMethod.IsVirtual {
				m.IsVirtual = true
			}
		}
	}
	c.AppendMember(m)
	return c.Scope.InsertMethod(m.Name, m)
}

// AddDataMember inserts a data member, resolving its declared type against
// c's bindings is the caller's responsibility (internal/sema owns name
// resolution).
func (c *ClassDefinition) AddDataMember(d *DataMemberDefinition) error {
	c.AppendMember(d)
	return c.Scope.InsertDataMember(d.Name, d)
}

// AddPrimaryCtorArgsAsDataMembers promotes every primary-constructor
// argument flagged PrimaryCtorArg into a public data member (spec §4.3).
func (c *ClassDefinition) AddPrimaryCtorArgsAsDataMembers(args []*ast.VariableDeclaration) {
	for _, a := range args {
		if !a.PrimaryCtorArg {
			continue
		}
		dm := NewDataMember(a.Name, a.ResolvedType(), Public, false, true, a.At)
		c.AppendMember(dm)
		_ = c.Scope.InsertDataMember(a.Name, dm)
	}
}

// selfReferenceType builds the Type a method returning or accepting an
// instance of c by reference would carry.
func (c *ClassDefinition) selfReferenceType() *types.Type {
	t := types.CreateNamed(c.Name)
	t.Reference = true
	t.SetDefinition(c)
	return t
}

// GenerateDefaultConstructorIfNeeded gives every non-enumeration,
// non-interface, ctor-less class a generated no-op default constructor
// (spec §4.3 "Generated helpers").
func (c *ClassDefinition) GenerateDefaultConstructorIfNeeded() {
	if c.Properties.IsEnumeration || c.Properties.IsInterface || c.HasConstructor {
		return
	}
	ctor := NewMethod(c.Name+"_init", nil, Public, false, c.At)
	ctor.IsConstructor = true
	ctor.IsGenerated = true
	ctor.Body = &ast.Block{}
	c.AppendMember(ctor)
	_ = c.Scope.InsertMethod(ctor.Name, ctor)
	c.HasConstructor = true
}

// GenerateEmptyCopyConstructorAndClone stubs out a message class's copy
// constructor and `_clone` at parse time; internal/lower's CloneGenerator
// fills their bodies once pass 5 runs (spec §4.3, §4.6 "Clone-method
// generation").
func (c *ClassDefinition) GenerateEmptyCopyConstructorAndClone() {
	if !c.Properties.IsMessage || c.Properties.IsEnumeration || c.Properties.IsInterface {
		return
	}
	self := c.selfReferenceType()

	copyCtor := NewMethod(c.Name+"_init", nil, Public, false, c.At)
	copyCtor.IsConstructor = true
	copyCtor.IsGenerated = true
	copyCtor.AddArgument(&ast.VariableDeclaration{Name: "other", TypeName: c.Name, Type: self, Form: ast.TypedDecl})
	copyCtor.Body = &ast.Block{}
	c.AppendMember(copyCtor)
	_ = c.Scope.InsertMethod(copyCtor.Name, copyCtor)

	clone := NewMethod("_clone", self, Public, false, c.At)
	clone.IsGenerated = true
	clone.Body = &ast.Block{}
	c.AppendMember(clone)
	_ = c.Scope.InsertMethod("_clone", clone)
}

// GenerateEmptyDeepCopy stubs out `_deepCopy` for a message enumeration
// (spec §4.3, §4.6 "Enumeration generation").
func (c *ClassDefinition) GenerateEmptyDeepCopy() {
	if !c.Properties.IsMessage || !c.Properties.IsEnumeration {
		return
	}
	self := c.selfReferenceType()
	deepCopy := NewMethod("_deepCopy", self, Public, true, c.At)
	deepCopy.IsGenerated = true
	deepCopy.Body = &ast.Block{}
	deepCopy.AddArgument(&ast.VariableDeclaration{Name: "other", TypeName: c.Name, Type: self, Form: ast.TypedDecl})
	c.AppendMember(deepCopy)
	_ = c.Scope.InsertMethod("_deepCopy", deepCopy)
}

// IsGeneric reports whether any of c's generic parameters is still
// unbound.
func (c *ClassDefinition) IsGeneric() bool {
	for _, g := range c.GenericParameters {
		if g.ConcreteType() == nil {
			return true
		}
	}
	return false
}

// RemoveCloneableParent, RemoveMethod, and RemoveCopyConstructor implement
// spec §4.6 pass 5's fallback: "For generated classes whose type arguments
// are not all message-or-primitive, the Cloneable parent, copy ctor, and
// _clone are removed instead."
func (c *ClassDefinition) RemoveCloneableParent(cloneable *ClassDefinition) {
	for i, p := range c.ParentClasses {
		if p == cloneable {
			c.ParentClasses = append(c.ParentClasses[:i], c.ParentClasses[i+1:]...)
			return
		}
	}
}

func (c *ClassDefinition) RemoveMethod(name string) {
	for i, m := range c.Methods {
		if m.Name == name {
			c.Methods = append(c.Methods[:i], c.Methods[i+1:]...)
			break
		}
	}
	members := c.Members[:0]
	for _, m := range c.Members {
		if md, ok := m.(*MethodDefinition); ok && md.Name == name {
			continue
		}
		members = append(members, m)
	}
	c.Members = members
}

func (c *ClassDefinition) RemoveCopyConstructor() {
	if ctor := c.GetCopyConstructor(); ctor != nil {
		c.RemoveMethod(ctor.Name)
	}
}

// GetCopyConstructor returns c's copy constructor (the sole ctor with one
// argument of the enclosing-class reference type), if it has one.
func (c *ClassDefinition) GetCopyConstructor() *MethodDefinition {
	for _, m := range c.Methods {
		if m.IsConstructor && len(m.Arguments) == 1 && m.Arguments[0].TypeName == c.Name {
			return m
		}
	}
	return nil
}

// GetNestedClass looks up a class nested directly inside c by name (used
// to find a generated enum variant's `$<Variant>Data` class).
func (c *ClassDefinition) GetNestedClass(name string) (*ClassDefinition, bool) {
	for _, m := range c.Members {
		if nested, ok := m.(*ClassDefinition); ok && nested.Name == name {
			return nested, true
		}
	}
	return nil, false
}

// FullName renders c's dotted path through its enclosing classes, if any.
func (c *ClassDefinition) FullName() string {
	if parent := EnclosingClass(c); parent != nil {
		return parent.FullName() + "." + c.Name
	}
	return c.Name
}

// isMethodImplementingParentInterfaceMethod reports whether m fulfils a
// method declared by one of c's interface parents, by name and argument
// types.
func (c *ClassDefinition) isMethodImplementingParentInterfaceMethod(m *MethodDefinition) bool {
	for _, p := range c.ParentClasses {
		if !p.Properties.IsInterface {
			continue
		}
		for _, pm := range p.Methods {
			if pm.Name == m.Name && pm.ArgumentTypesEqual(m) {
				return true
			}
		}
	}
	return false
}

// TransformIntoInterface demotes a concrete class into an interface:
// constructors, private methods, and methods implementing a parent
// interface are dropped; remaining methods become abstract; all data
// members are removed (spec §4.3 "Transform-into-interface").
func (c *ClassDefinition) TransformIntoInterface() {
	var kept []*MethodDefinition
	for _, m := range c.Methods {
		if m.IsConstructor || m.Access == Private || c.isMethodImplementingParentInterfaceMethod(m) {
			continue
		}
		m.Body = nil
		m.IsVirtual = true
		kept = append(kept, m)
	}
	c.Methods = kept
	c.DataMembers = nil
	c.PrimaryCtorArgDataMembers = nil

	var members []Definition
	for _, m := range c.Members {
		if md, ok := m.(*MethodDefinition); ok {
			for _, k := range kept {
				if k == md {
					members = append(members, m)
					break
				}
			}
		}
	}
	c.Members = members
	c.Properties.IsInterface = true
	c.HasConstructor = false
}
