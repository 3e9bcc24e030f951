package types

// Definition is the subset of internal/defs.Definition the type model needs:
// enough to print a name and flow through Type.Definition as a non-owning
// back-reference. Defining it here instead of importing internal/defs keeps
// internal/defs free to depend on internal/types without a cycle.
type Definition interface {
	DefinitionName() string
}

// ClassDefinition is the subset of internal/defs.ClassDefinition used by
// class-hierarchy-aware Type operations (isUpcast, areConvertable, the
// message/enumeration flags that change a Type's default reference-ness).
type ClassDefinition interface {
	Definition
	IsInterface() bool
	IsEnumeration() bool
	IsEnumerationVariant() bool
	IsMessage() bool
	IsSubclassOf(other ClassDefinition) bool
}

// GenericTypeParameter is the subset of internal/defs.GenericTypeParameterDefinition
// used to substitute a concrete type once a generic class has been instantiated.
type GenericTypeParameter interface {
	Definition
	ConcreteType() *Type
}

// AsClass returns d as a ClassDefinition, if it is one.
func AsClass(d Definition) (ClassDefinition, bool) {
	c, ok := d.(ClassDefinition)
	return c, ok
}

// AsGenericTypeParameter returns d as a GenericTypeParameter, if it is one.
func AsGenericTypeParameter(d Definition) (GenericTypeParameter, bool) {
	g, ok := d.(GenericTypeParameter)
	return g, ok
}
