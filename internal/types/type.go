package types

// Type is a tagged record describing every value a Fen expression can carry:
// a built-in Kind, an optional named reference to a class/interface/enum/
// generic-parameter Definition, an ordered list of generic type arguments,
// an optional function signature, and the three independent flags Constant,
// Reference, and Array.
//
// Invariants (spec §3):
//   - primitives (Byte, Char, Int, Long, Float, Bool) default to non-reference,
//     non-array.
//   - Array == true implies Reference == true.
//   - String, Lambda, Function, Object default to Reference.
//   - Enumeration is value unless arrayed.
//   - Placeholder types compare structurally equal to anything of matching
//     arrayness (see Equals).
//   - Null is assignable to any reference type (see AreInitializable).
type Type struct {
	Kind        Kind
	Name        string
	GenericArgs []*Type
	Signature   *FunctionSignature
	Definition  Definition
	Constant    bool
	Reference   bool
	Array       bool
}

var (
	voidType = &Type{Kind: Void, Name: "void", Constant: true}
	nullType = &Type{Kind: Null, Name: "null", Constant: true, Reference: true}
)

// Void returns the shared void type instance.
func Void_() *Type { return voidType }

// NullType returns the shared null type instance.
func NullType() *Type { return nullType }

// Create builds a fresh Type for a built-in Kind, applying the defaults
// spec §3 lists for that kind.
func Create(kind Kind) *Type {
	t := &Type{Kind: kind, Name: kind.String(), Constant: true}
	switch kind {
	case String, Lambda, Function, Object:
		t.Reference = true
	}
	return t
}

// CreateNamed resolves a source-level type name to a Type. Recognized
// primitive and keyword names ("void", "var", "byte", "char", "int", "long",
// "float", "bool", "string", "object") resolve directly to their built-in
// Kind; anything else becomes a NotBuiltIn type carrying the raw name, to be
// resolved against a binding scope later (name bindings attach the
// Definition via SetDefinition).
func CreateNamed(name string) *Type {
	switch name {
	case "void":
		return Create(Void)
	case "var":
		return Create(Implicit)
	case "byte":
		return Create(Byte)
	case "char":
		return Create(Char)
	case "int":
		return Create(Int)
	case "long":
		return Create(Long)
	case "float":
		return Create(Float)
	case "bool":
		return Create(Bool)
	case "string":
		return Create(String)
	case "object":
		return Create(Object)
	default:
		return &Type{Kind: NotBuiltIn, Name: name, Constant: true, Reference: true}
	}
}

// ArrayOf builds the array type holding elem as its element type. Arrays
// are heap-allocated, so the array flag always carries reference-ness with
// it (spec §3: "array=true implies reference=true").
func ArrayOf(elem *Type) *Type {
	a := elem.Clone()
	a.Array = true
	a.Reference = true
	return a
}

// CreateArrayElementType strips the Array flag from arrayType and restores
// the element's natural reference-ness, returning nil if arrayType is not an
// array.
func CreateArrayElementType(arrayType *Type) *Type {
	if !arrayType.Array {
		return nil
	}
	elem := arrayType.Clone()
	elem.Array = false
	if !isReferenceKind(elem.Kind) {
		elem.Reference = false
	}
	return elem
}

// Clone deep-copies t, including its generic arguments and function
// signature. The Definition back-reference is copied shallow (definitions
// are owned by a single Tree, never by a Type).
func (t *Type) Clone() *Type {
	clone := &Type{
		Kind:       t.Kind,
		Name:       t.Name,
		Definition: t.Definition,
		Constant:   t.Constant,
		Reference:  t.Reference,
		Array:      t.Array,
	}
	if t.Signature != nil {
		clone.Signature = t.Signature.Clone()
	}
	if len(t.GenericArgs) > 0 {
		clone.GenericArgs = make([]*Type, len(t.GenericArgs))
		for i, arg := range t.GenericArgs {
			clone.GenericArgs[i] = arg.Clone()
		}
	}
	return clone
}

// SetDefinition attaches the resolved Definition to t and, when it names an
// enumeration or enumeration-variant class, adjusts Kind/Reference to match
// (spec §3: "enumeration is value unless arrayed").
func (t *Type) SetDefinition(d Definition) {
	t.Definition = d
	if cls, ok := AsClass(d); ok {
		if cls.IsEnumeration() {
			t.Kind = Enumeration
			if !t.Array {
				t.Reference = false
			}
		}
		if cls.IsEnumerationVariant() {
			t.Reference = false
		}
	}
}

func (t *Type) IsVoid() bool                { return t.Kind == Void }
func (t *Type) IsNull() bool                { return t.Kind == Null }
func (t *Type) IsPlaceholder() bool         { return t.Kind == Placeholder }
func (t *Type) IsObject() bool              { return t.Kind == Object }
func (t *Type) IsImplicit() bool            { return t.Kind == Implicit }
func (t *Type) IsString() bool              { return t.Kind == String }
func (t *Type) IsBool() bool                { return t.Kind == Bool }
func (t *Type) IsLambda() bool              { return t.Kind == Lambda }
func (t *Type) IsFunction() bool            { return t.Kind == Function }
func (t *Type) IsEnumeration() bool         { return t.Kind == Enumeration }
func (t *Type) IsBuiltIn() bool             { return t.Kind != NotBuiltIn }
func (t *Type) IsArray() bool           { return t.Array }
func (t *Type) IsReference() bool       { return t.Reference }
func (t *Type) IsConstant() bool        { return t.Constant }
func (t *Type) HasGenericArgs() bool    { return len(t.GenericArgs) > 0 }
func (t *Type) AddGenericArg(arg *Type) { t.GenericArgs = append(t.GenericArgs, arg) }

func (t *Type) IsNumber() bool {
	switch t.Kind {
	case Byte, Int, Long, Float:
		return true
	default:
		return false
	}
}

func (t *Type) IsIntegerNumber() bool {
	switch t.Kind {
	case Byte, Int, Long:
		return true
	default:
		return false
	}
}

func (t *Type) IsPrimitive() bool {
	switch t.Kind {
	case Byte, Char, Int, Long, Float, Bool:
		return true
	default:
		return false
	}
}

// IsInterface reports whether t names a user interface class.
func (t *Type) IsInterface() bool {
	cls, ok := AsClass(t.Definition)
	return ok && cls.IsInterface()
}

// Class returns t's referenced ClassDefinition, if any.
func (t *Type) Class() (ClassDefinition, bool) {
	return AsClass(t.Definition)
}

// IsMessageOrPrimitive reports whether t, and recursively every one of its
// generic arguments, is either a primitive or a message class. Used to
// decide whether a generated generic instantiation keeps its Cloneable
// parent and clone methods (spec §4.6 pass 5).
func (t *Type) IsMessageOrPrimitive() bool {
	cls, ok := AsClass(t.Definition)
	if !ok {
		return t.IsPrimitive()
	}
	if !t.IsPrimitive() && !cls.IsMessage() {
		return false
	}
	for _, arg := range t.GenericArgs {
		if !arg.IsMessageOrPrimitive() {
			return false
		}
	}
	return true
}

// String renders t the way a diagnostic or generated comment would show it:
// "var " prefix for non-constant types, the fully constructed generic name
// or closure-interface name where applicable, and a trailing "[]" for arrays.
func (t *Type) String() string {
	if t.Kind == Null {
		return "null"
	}
	var s string
	if !t.Constant {
		s += "var "
	}
	switch {
	case t.HasGenericArgs():
		s += t.FullConstructedName()
	case t.IsFunction() && t.Signature != nil:
		s += t.ClosureInterfaceName()
	default:
		s += t.Name
	}
	if t.Array {
		s += "[]"
	}
	return s
}

// FullConstructedName renders the generic instantiation name, e.g. "List<int,string>".
func (t *Type) FullConstructedName() string {
	if !t.HasGenericArgs() {
		return t.Name
	}
	name := t.Name + "<"
	for i, arg := range t.GenericArgs {
		if i > 0 {
			name += ","
		}
		name += arg.FullConstructedName()
	}
	return name + ">"
}

// ClosureInterfaceName renders the generated interface name for a function
// type, e.g. "fun int(int,int)".
func (t *Type) ClosureInterfaceName() string {
	if t.Signature == nil {
		return "fun"
	}
	name := "fun "
	if t.Signature.ReturnType != nil {
		name += t.Signature.ReturnType.String()
	}
	name += "("
	for i, arg := range t.Signature.Arguments {
		if i > 0 {
			name += ","
		}
		name += arg.String()
	}
	return name + ")"
}
