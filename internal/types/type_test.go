package types

import "testing"

func TestCreateNamedPrimitives(t *testing.T) {
	cases := map[string]Kind{
		"void": Void, "var": Implicit, "byte": Byte, "char": Char,
		"int": Int, "long": Long, "float": Float, "bool": Bool,
		"string": String, "object": Object,
	}
	for name, want := range cases {
		got := CreateNamed(name)
		if got.Kind != want {
			t.Errorf("CreateNamed(%q).Kind = %v, want %v", name, got.Kind, want)
		}
	}
}

func TestCreateNamedUnknownIsNotBuiltIn(t *testing.T) {
	ty := CreateNamed("Widget")
	if ty.Kind != NotBuiltIn {
		t.Fatalf("expected NotBuiltIn, got %v", ty.Kind)
	}
	if !ty.Reference {
		t.Fatal("expected unresolved named type to default reference=true")
	}
}

func TestCloneRoundTripEquals(t *testing.T) {
	ty := Create(Int)
	ty.AddGenericArg(Create(String))
	clone := ty.Clone()
	if !Equals(ty, clone) {
		t.Fatal("cloning a Type and comparing should produce equal (spec §8 round-trip)")
	}
}

func TestArrayOfIsAlwaysReference(t *testing.T) {
	arr := ArrayOf(Create(Int))
	if !arr.Array || !arr.Reference {
		t.Fatalf("array types are reference types, got array=%v reference=%v", arr.Array, arr.Reference)
	}
	if arr.Kind != Int {
		t.Fatalf("element kind lost: %v", arr.Kind)
	}
}

func TestCreateArrayElementTypeStripsArray(t *testing.T) {
	arr := ArrayOf(Create(Int))
	elem := CreateArrayElementType(arr)
	if elem.Array {
		t.Fatal("element type must not be an array")
	}
	if elem.Reference {
		t.Fatal("int element should not default to reference")
	}
}

func TestCreateArrayElementTypeNonArrayIsNil(t *testing.T) {
	if CreateArrayElementType(Create(Int)) != nil {
		t.Fatal("expected nil for a non-array type")
	}
}

func TestNullAssignableToReference(t *testing.T) {
	str := Create(String)
	if !AreInitializable(str, NullType()) {
		t.Fatal("null must be assignable to any reference type")
	}
}

func TestIntegerLiteralByteNarrowing(t *testing.T) {
	byteTy := Create(Byte)
	inRange := &fakeIntLiteral{value: 255}
	outOfRange := &fakeIntLiteral{value: 256}

	if !IsInitializableByExpression(byteTy, inRange) {
		t.Fatal("255 must be byte-compatible (spec §8 boundary)")
	}
	if IsInitializableByExpression(byteTy, outOfRange) {
		t.Fatal("256 must not be byte-compatible (spec §8 boundary)")
	}
}

func TestBuiltInImplicitConversionTable(t *testing.T) {
	if !areBuiltInsImplicitlyConvertable(Byte, Int) {
		t.Fatal("byte should implicitly convert to int")
	}
	if areBuiltInsImplicitlyConvertable(Float, Int) {
		t.Fatal("float must not implicitly convert to int (narrowing)")
	}
	if !areBuiltInsConvertable(Float, Int) {
		t.Fatal("float should explicitly convert to int")
	}
}

func TestCalculateCommonTypeNullPromotesToReference(t *testing.T) {
	str := Create(String)
	got := CalculateCommonType(NullType(), str)
	if got != str {
		t.Fatal("null followed by a reference type should unify to the reference type")
	}
}

func TestCalculateCommonTypeIdempotent(t *testing.T) {
	a := Create(Int)
	b := Create(Int)
	first := CalculateCommonType(a, b)
	second := CalculateCommonType(a, first)
	if !Equals(first, second) {
		t.Fatal("calculateCommonType(a, calculateCommonType(a,b)) must equal calculateCommonType(a,b)")
	}
}

type fakeIntLiteral struct {
	value int64
}

func (f *fakeIntLiteral) ResolvedType() *Type        { return Create(Int) }
func (f *fakeIntLiteral) IntegerLiteralValue() int64 { return f.value }
