package types

// areBuiltInsImplicitlyConvertable reports whether a value of built-in kind
// from may silently initialize/assign a variable of built-in kind to,
// mirroring Type::areBuiltInsImplicitlyConvertable: the narrowing-free
// promotions byte->int->long->float and char->int->long->float, plus the
// byte<->char identity-width conversion. bool and string never convert.
func areBuiltInsImplicitlyConvertable(from, to Kind) bool {
	switch from {
	case Byte:
		switch to {
		case Byte, Char, Int, Long, Float:
			return true
		}
	case Char:
		switch to {
		case Char, Int, Long, Float:
			return true
		}
	case Int:
		switch to {
		case Int, Long, Float:
			return true
		}
	case Long:
		switch to {
		case Long, Float:
			return true
		}
	case Float:
		return to == Float
	}
	return false
}

// areBuiltInsConvertable reports whether an explicit cast may convert a
// value of built-in kind from to built-in kind to: every implicit
// conversion, plus the narrowing numeric casts and the bool/primitive
// identity cast. Strings and objects never convert to one another this way.
func areBuiltInsConvertable(from, to Kind) bool {
	if areBuiltInsImplicitlyConvertable(from, to) {
		return true
	}
	numeric := func(k Kind) bool {
		switch k {
		case Byte, Char, Int, Long, Float:
			return true
		}
		return false
	}
	return numeric(from) && numeric(to)
}

// AreBuiltInsConvertable is the explicit-cast form of the conversion table
// (spec §4.1): every implicit conversion plus numeric narrowing.
func AreBuiltInsConvertable(from, to Kind) bool {
	return areBuiltInsConvertable(from, to)
}

// IsUpcast is the exported form of isUpcast, used by TypeCast
// classification (spec §4.4 "TypeCast").
func IsUpcast(left, right *Type) bool { return isUpcast(left, right) }

// IsDowncast is the exported form of isDowncast, used by TypeCast
// classification (spec §4.4 "TypeCast").
func IsDowncast(left, right *Type) bool { return isDowncast(left, right) }

// isUpcast reports whether right's class is left's class or one of its
// ancestors, i.e. a value of type right may be used where left is expected
// without a runtime check.
func isUpcast(left, right *Type) bool {
	leftClass, ok := AsClass(left.Definition)
	if !ok {
		return false
	}
	rightClass, ok := AsClass(right.Definition)
	if !ok {
		return false
	}
	return rightClass.IsSubclassOf(leftClass) || leftClass.DefinitionName() == rightClass.DefinitionName()
}

// isDowncast reports whether left's class is a (strict) descendant of
// right's class, i.e. the conversion needs a runtime type check.
func isDowncast(left, right *Type) bool {
	leftClass, ok := AsClass(left.Definition)
	if !ok {
		return false
	}
	rightClass, ok := AsClass(right.Definition)
	if !ok {
		return false
	}
	return leftClass.IsSubclassOf(rightClass)
}

// areConvertable reports whether a value of type right may initialize or be
// cast to type left: an upcast along the class hierarchy, a generic
// instantiation of the same class with matching type arguments, or object
// at either end (every reference converts to/from object).
func areConvertable(left, right *Type) bool {
	if left.IsObject() && right.Reference {
		return true
	}
	if right.IsObject() && left.Reference {
		return true
	}
	if isUpcast(left, right) {
		return areTypeParametersMatching(left, right) || !left.HasGenericArgs() || !right.HasGenericArgs()
	}
	return false
}
