package sema

import (
	"testing"

	"github.com/fenlang/orbitc/internal/ast"
	"github.com/fenlang/orbitc/internal/defs"
	"github.com/fenlang/orbitc/internal/lower"
	"github.com/fenlang/orbitc/internal/types"
)

func TestMessageClassGainsCloneBodies(t *testing.T) {
	tree := New()
	cls := declClass(t, tree, "Ping", nil, defs.ClassProperties{IsMessage: true})
	cls.AppendMember(defs.NewDataMember("seq", types.Create(types.Int), defs.Public, false, false, ast.Position{}))
	cls.GenerateEmptyCopyConstructorAndClone()

	tree.RunGenerateCloneMethods()
	if len(tree.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", tree.Errors())
	}

	ctor := cls.GetCopyConstructor()
	if ctor == nil || ctor.Body == nil || len(ctor.Body.Statements) == 0 {
		t.Fatal("copy constructor body not generated")
	}
	clone := findMethodOn(cls, lower.CloneMethodName)
	if clone == nil || clone.Body == nil || len(clone.Body.Statements) == 0 {
		t.Fatal("_clone body not generated")
	}
	if clone.ReturnType == nil || !clone.ReturnType.IsReference() {
		t.Fatalf("_clone must return the class's reference type, got %v", clone.ReturnType)
	}
}

func TestInterfaceAndPlainClassesAreSkipped(t *testing.T) {
	tree := New()
	iface := declClass(t, tree, "Remote", nil, defs.ClassProperties{IsInterface: true, IsMessage: true})
	plain := declClass(t, tree, "Local", nil, defs.ClassProperties{})

	tree.RunGenerateCloneMethods()
	if len(tree.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", tree.Errors())
	}
	if findMethodOn(iface, lower.CloneMethodName) != nil && findMethodOn(iface, lower.CloneMethodName).Body != nil {
		t.Fatal("interface must not receive a clone body")
	}
	if findMethodOn(plain, lower.CloneMethodName) != nil {
		t.Fatal("non-message class must not receive a clone method")
	}
}

func TestMessageEnumerationGainsVariantsAndDeepCopy(t *testing.T) {
	tree := New()
	enum := declClass(t, tree, "Signal", nil, defs.ClassProperties{IsEnumeration: true, IsMessage: true})
	enum.RawVariants = []defs.RawVariant{
		{Name: "Stop"},
		{Name: "Go", Fields: []*ast.VariableDeclaration{
			{Name: "$0", Type: types.Create(types.Int), Form: ast.TypedDecl},
		}},
	}
	enum.GenerateEmptyDeepCopy()

	tree.RunGenerateCloneMethods()
	if len(tree.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", tree.Errors())
	}

	if findMethodOn(enum, "Stop") == nil || findMethodOn(enum, "Go") == nil {
		t.Fatalf("variant constructors missing; methods: %v", methodNames(enum))
	}
	deepCopy := findMethodOn(enum, lower.DeepCopyMethodName)
	if deepCopy == nil || deepCopy.Body == nil || len(deepCopy.Body.Statements) == 0 {
		t.Fatal("_deepCopy body not generated for message enumeration")
	}

	tagged := false
	for _, dm := range enum.DataMembers {
		if dm.Name == "$tag" {
			tagged = true
		}
	}
	if !tagged {
		t.Fatalf("enumeration missing $tag member; members: %v", enum.DataMembers)
	}
}

func TestNonMessageEnumerationSkipsDeepCopy(t *testing.T) {
	tree := New()
	enum := declClass(t, tree, "Mode", nil, defs.ClassProperties{IsEnumeration: true})
	enum.RawVariants = []defs.RawVariant{{Name: "On"}, {Name: "Off"}}

	tree.RunGenerateCloneMethods()
	if len(tree.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", tree.Errors())
	}
	if findMethodOn(enum, "On") == nil {
		t.Fatal("variant constructors must still be generated for plain enumerations")
	}
	if m := findMethodOn(enum, lower.DeepCopyMethodName); m != nil && m.Body != nil && len(m.Body.Statements) > 0 {
		t.Fatal("non-message enumeration must not gain a _deepCopy body")
	}
}
