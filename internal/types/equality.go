package types

// ExprType is the minimal view of an AST expression the type model needs in
// order to apply the integer-literal byte-narrowing rule without importing
// internal/ast (which itself imports internal/types).
type ExprType interface {
	ResolvedType() *Type
}

// IntegerLiteral is implemented by AST integer-literal expressions so
// IsInitializableByExpression can apply the narrowing rule.
type IntegerLiteral interface {
	ExprType
	IntegerLiteralValue() int64
}

// Equals reports whether a and b are structurally equal, ignoring the
// Constant flag (spec §4.1: "structural equality ignoring constant").
func Equals(a, b *Type) bool {
	return EqualsOpts(a, b, true)
}

// EqualsOpts is Equals with control over whether generic type arguments are
// compared; callers resolving an overload candidate's own generic parameter
// sometimes need the laxer form.
func EqualsOpts(a, b *Type, checkGenericArgs bool) bool {
	if a.IsPlaceholder() || b.IsPlaceholder() {
		return a.Array == b.Array
	}
	if a.Kind != b.Kind || a.Name != b.Name || a.Reference != b.Reference || a.Array != b.Array {
		return false
	}
	if a.IsFunction() {
		if a.Signature == nil || b.Signature == nil || !a.Signature.Equals(b.Signature) {
			return false
		}
	}
	if checkGenericArgs {
		return genericArgsMatch(a, b)
	}
	return true
}

func genericArgsMatch(a, b *Type) bool {
	if len(a.GenericArgs) != len(b.GenericArgs) {
		return false
	}
	for i, arg := range a.GenericArgs {
		if !Equals(arg, b.GenericArgs[i]) {
			return false
		}
	}
	return true
}

// AreInitializable reports whether a value of type right may initialize a
// variable of type left (spec §4.1). Null is assignable to any reference;
// enumerations must match name and generic arguments; functions must match
// signatures; built-in pairs follow the implicit-conversion table; otherwise
// the class hierarchy decides (areConvertable).
func AreInitializable(left, right *Type) bool {
	if left.IsPlaceholder() || right.IsPlaceholder() {
		return left.Array == right.Array
	}
	if left.Reference && right.IsNull() {
		return true
	}
	switch {
	case left.IsEnumeration() && right.IsEnumeration():
		if left.Name != right.Name || !genericArgsMatch(left, right) {
			return false
		}
	case left.IsFunction() && right.IsFunction():
		if left.Signature == nil || right.Signature == nil || !left.Signature.Equals(right.Signature) {
			return false
		}
	case left.IsBuiltIn() && right.IsBuiltIn():
		if left.Kind != right.Kind && !areBuiltInsImplicitlyConvertable(right.Kind, left.Kind) {
			return false
		}
	default:
		if !areConvertable(left, right) {
			return false
		}
	}
	return left.Array == right.Array
}

// AreAssignable is AreInitializable plus "left is not constant".
func AreAssignable(left, right *Type) bool {
	if left.Constant {
		return false
	}
	return AreInitializable(left, right)
}

// IsInitializableByExpression is AreInitializable, but an integer literal
// whose value is 0-255 is additionally treated as byte-compatible (spec §8
// boundary behavior).
func IsInitializableByExpression(left *Type, expr ExprType) bool {
	right := expr.ResolvedType()
	if right == nil {
		return false
	}
	if lit, ok := expr.(IntegerLiteral); ok && lit.IntegerLiteralValue() < 256 {
		right = Create(Byte)
	}
	return AreInitializable(left, right)
}

// IsAssignableByExpression is IsInitializableByExpression plus "left is not constant".
func IsAssignableByExpression(left *Type, expr ExprType) bool {
	if left.Constant {
		return false
	}
	return IsInitializableByExpression(left, expr)
}

// CalculateCommonType unifies the type of an array-literal element or a
// match expression's per-case results. previousType nil means "no prior
// element seen yet."
func CalculateCommonType(previousType, currentType *Type) *Type {
	if previousType == nil {
		return currentType
	}
	if currentType.IsNull() && previousType.Reference {
		return previousType
	}
	if previousType.IsNull() && currentType.Reference {
		return currentType
	}
	if !AreInitializable(previousType, currentType) {
		return nil
	}
	if previousType.IsEnumeration() && currentType.IsEnumeration() {
		for i, prevArg := range previousType.GenericArgs {
			if i >= len(currentType.GenericArgs) {
				break
			}
			curArg := currentType.GenericArgs[i]
			if prevArg.IsPlaceholder() && !curArg.IsPlaceholder() {
				return currentType
			}
		}
	}
	return previousType
}

// areTypeParametersMatching reports whether a and b carry the same
// (ordered) generic type arguments.
func areTypeParametersMatching(a, b *Type) bool {
	return genericArgsMatch(a, b)
}
