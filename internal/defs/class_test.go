package defs

import (
	"testing"

	"github.com/fenlang/orbitc/internal/ast"
	"github.com/fenlang/orbitc/internal/bindings"
)

func newTestClass(t *testing.T, name string, parents []*ClassDefinition, props ClassProperties) *ClassDefinition {
	t.Helper()
	c, err := NewClass(name, nil, parents, bindings.New(), props, ast.Position{})
	if err != nil {
		t.Fatalf("NewClass(%s): %v", name, err)
	}
	return c
}

func TestNewClassRejectsTwoConcreteBases(t *testing.T) {
	a := newTestClass(t, "A", nil, ClassProperties{})
	b := newTestClass(t, "B", nil, ClassProperties{})
	if _, err := NewClass("C", nil, []*ClassDefinition{a, b}, bindings.New(), ClassProperties{}, ast.Position{}); err == nil {
		t.Fatal("expected error inheriting two concrete bases")
	}
}

func TestNewClassInterfaceCannotInheritConcreteBase(t *testing.T) {
	a := newTestClass(t, "A", nil, ClassProperties{})
	if _, err := NewClass("Iface", nil, []*ClassDefinition{a}, bindings.New(), ClassProperties{IsInterface: true}, ast.Position{}); err == nil {
		t.Fatal("expected error for an interface inheriting a concrete base")
	}
}

func TestAddMethodRejectsDuplicateSignature(t *testing.T) {
	c := newTestClass(t, "C", nil, ClassProperties{})
	m1 := NewMethod("f", nil, Public, false, ast.Position{})
	m1.AddArgument(&ast.VariableDeclaration{Name: "x", TypeName: "int"})
	if err := c.AddMethod(m1); err != nil {
		t.Fatalf("first method: %v", err)
	}
	m2 := NewMethod("f", nil, Public, false, ast.Position{})
	m2.AddArgument(&ast.VariableDeclaration{Name: "y", TypeName: "int"})
	if err := c.AddMethod(m2); err == nil {
		t.Fatal("expected duplicate-signature error")
	}
}

func TestAddMethodInheritsVirtualFromBase(t *testing.T) {
	base := newTestClass(t, "Base", nil, ClassProperties{})
	baseMethod := NewMethod("run", nil, Public, false, ast.Position{})
	baseMethod.IsVirtual = true
	if err := base.AddMethod(baseMethod); err != nil {
		t.Fatalf("base method: %v", err)
	}

	derived := newTestClass(t, "Derived", []*ClassDefinition{base}, ClassProperties{})
	derived.BaseClass = base
	override := NewMethod("run", nil, Public, false, ast.Position{})
	if err := derived.AddMethod(override); err != nil {
		t.Fatalf("override: %v", err)
	}
	if !override.IsVirtual {
		t.Fatal("expected override to be marked virtual")
	}
}

func TestIsSubclassOfWalksParentsAndBase(t *testing.T) {
	iface := newTestClass(t, "Iface", nil, ClassProperties{IsInterface: true})
	base := newTestClass(t, "Base", []*ClassDefinition{iface}, ClassProperties{})
	derived := newTestClass(t, "Derived", []*ClassDefinition{base}, ClassProperties{})
	derived.BaseClass = base

	if !derived.IsSubclassOf(base) {
		t.Error("expected Derived to be a subclass of Base")
	}
	if !base.IsSubclassOf(iface) {
		t.Error("expected Base to be a subclass of Iface")
	}
	unrelated := newTestClass(t, "Other", nil, ClassProperties{})
	if derived.IsSubclassOf(unrelated) {
		t.Error("did not expect Derived to be a subclass of an unrelated class")
	}
}

func TestGenerateDefaultConstructorIfNeededSkipsExisting(t *testing.T) {
	c := newTestClass(t, "C", nil, ClassProperties{})
	c.GenerateDefaultConstructorIfNeeded()
	if !c.HasConstructor {
		t.Fatal("expected HasConstructor to be set")
	}
	generated := len(c.Methods)
	c.GenerateDefaultConstructorIfNeeded()
	if len(c.Methods) != generated {
		t.Fatal("expected a second call to be a no-op")
	}
}

func TestGenerateDefaultConstructorSkipsEnumerationsAndInterfaces(t *testing.T) {
	enum := newTestClass(t, "E", nil, ClassProperties{IsEnumeration: true})
	enum.GenerateDefaultConstructorIfNeeded()
	if enum.HasConstructor {
		t.Error("did not expect an enumeration to get a generated default constructor")
	}

	iface := newTestClass(t, "I", nil, ClassProperties{IsInterface: true})
	iface.GenerateDefaultConstructorIfNeeded()
	if iface.HasConstructor {
		t.Error("did not expect an interface to get a generated default constructor")
	}
}

func TestGenerateEmptyCopyConstructorAndCloneOnlyForMessages(t *testing.T) {
	plain := newTestClass(t, "Plain", nil, ClassProperties{})
	plain.GenerateEmptyCopyConstructorAndClone()
	if len(plain.Methods) != 0 {
		t.Fatal("did not expect a plain class to get a generated copy constructor")
	}

	msg := newTestClass(t, "Msg", nil, ClassProperties{IsMessage: true})
	msg.GenerateEmptyCopyConstructorAndClone()
	if _, ok := msg.GetNestedClass("nope"); ok {
		t.Fatal("unexpected nested class")
	}
	if ctor := msg.GetCopyConstructor(); ctor == nil {
		t.Fatal("expected a generated copy constructor")
	}
	found := false
	for _, m := range msg.Methods {
		if m.Name == "_clone" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a generated _clone method")
	}
}

func TestTransformIntoInterfaceDropsCtorsAndDataMembers(t *testing.T) {
	c := newTestClass(t, "C", nil, ClassProperties{})
	c.GenerateDefaultConstructorIfNeeded()
	public := NewMethod("run", nil, Public, false, ast.Position{})
	public.Body = &ast.Block{}
	if err := c.AddMethod(public); err != nil {
		t.Fatalf("add method: %v", err)
	}
	private := NewMethod("helper", nil, Private, false, ast.Position{})
	if err := c.AddMethod(private); err != nil {
		t.Fatalf("add private method: %v", err)
	}
	dm := NewDataMember("field", nil, Public, false, false, ast.Position{})
	if err := c.AddDataMember(dm); err != nil {
		t.Fatalf("add data member: %v", err)
	}

	c.TransformIntoInterface()

	if !c.Properties.IsInterface {
		t.Fatal("expected IsInterface to be set")
	}
	if len(c.DataMembers) != 0 {
		t.Fatal("expected data members to be dropped")
	}
	if len(c.Methods) != 1 || c.Methods[0].Name != "run" {
		t.Fatalf("expected only the public method to survive, got %v", c.Methods)
	}
	if c.Methods[0].Body != nil {
		t.Fatal("expected the surviving method to become abstract")
	}
}

func TestApplyAutoInheritanceAddsMessageHandlerAndCloneable(t *testing.T) {
	processIface := newTestClass(t, "Worker", nil, ClassProperties{IsInterface: true, IsProcess: true})
	messageHandler := newTestClass(t, "MessageHandler", nil, ClassProperties{IsInterface: true})
	cloneable := newTestClass(t, "Cloneable", nil, ClassProperties{IsInterface: true})

	impl := newTestClass(t, "WorkerImpl", []*ClassDefinition{processIface}, ClassProperties{})
	impl.ApplyAutoInheritance(messageHandler, cloneable)
	if !impl.IsSubclassOf(messageHandler) {
		t.Error("expected a process interface implementer to auto-inherit MessageHandler")
	}

	msg := newTestClass(t, "Msg", nil, ClassProperties{IsMessage: true})
	msg.ApplyAutoInheritance(messageHandler, cloneable)
	if !msg.IsSubclassOf(cloneable) {
		t.Error("expected a message class to auto-inherit Cloneable")
	}
}

func TestAddPrimaryCtorArgsAsDataMembers(t *testing.T) {
	c := newTestClass(t, "Point", nil, ClassProperties{})
	args := []*ast.VariableDeclaration{
		{Name: "x", TypeName: "int", PrimaryCtorArg: true},
		{Name: "label", TypeName: "string"},
	}
	c.AddPrimaryCtorArgsAsDataMembers(args)
	if len(c.DataMembers) != 1 || c.DataMembers[0].Name != "x" {
		t.Fatalf("expected only x promoted to a data member, got %v", c.DataMembers)
	}
}
