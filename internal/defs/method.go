package defs

import (
	"github.com/fenlang/orbitc/internal/ast"
	"github.com/fenlang/orbitc/internal/types"
)

// AccessLevel is a class member's visibility.
type AccessLevel int

const (
	Public AccessLevel = iota
	Private
)

// ClassMemberKind distinguishes the two class-member variants
// (spec §3: "ClassMember (DataMember | Method)").
type ClassMemberKind int

const (
	DataMemberKind ClassMemberKind = iota
	MethodKind
)

// MethodDefinition is a method, function, constructor, or closure's
// `call`, as described by spec §3 "MethodDefinition" and §4.3.
type MethodDefinition struct {
	Base
	Access AccessLevel
	Static bool

	ReturnType *types.Type
	Arguments  []*ast.VariableDeclaration
	Body       *ast.Block // nil means abstract
	LambdaSig  *types.FunctionSignature

	IsConstructor      bool
	IsPrimaryCtor      bool
	IsEnumCtor         bool
	IsEnumCopyCtor     bool
	IsFunction         bool
	IsClosureCall      bool
	IsVirtual          bool
	IsGenerated        bool
	TypeCheckedAlready bool
}

func (m *MethodDefinition) memberKind() ClassMemberKind { return MethodKind }

// NewMethod constructs a method definition; returnType nil means void
// (spec §3: "return type (void if unset at parse)").
func NewMethod(name string, returnType *types.Type, access AccessLevel, static bool, at ast.Position) *MethodDefinition {
	if returnType == nil {
		returnType = types.Void_()
	}
	m := &MethodDefinition{Access: access, Static: static, ReturnType: returnType}
	m.Name = name
	m.At = at
	m.kind = MemberKind
	return m
}

func (m *MethodDefinition) AddArgument(arg *ast.VariableDeclaration) {
	m.Arguments = append(m.Arguments, arg)
}

// IsAbstract reports whether the method has no body.
func (m *MethodDefinition) IsAbstract() bool { return m.Body == nil }

// ArgumentTypesEqual reports whether m's argument list has the same
// ordered set of types as other's — the duplicate-overload test spec §4.3
// names ("Adding a method with identical argument types to an existing
// method ... is an error").
func (m *MethodDefinition) ArgumentTypesEqual(other *MethodDefinition) bool {
	if len(m.Arguments) != len(other.Arguments) {
		return false
	}
	for i, a := range m.Arguments {
		b := other.Arguments[i]
		if a.ResolvedType() == nil || b.ResolvedType() == nil {
			if a.TypeName != b.TypeName {
				return false
			}
			continue
		}
		if !types.Equals(a.ResolvedType(), b.ResolvedType()) {
			return false
		}
	}
	return true
}

// IsCompatible reports whether a call site with the given argument types
// may resolve to m: matching arity and every argument type initializable
// from the corresponding call-site type (spec §4.4 "MethodCall").
func (m *MethodDefinition) IsCompatible(argTypes []*types.Type) bool {
	if len(argTypes) != len(m.Arguments) {
		return false
	}
	for i, arg := range m.Arguments {
		declared := arg.ResolvedType()
		if declared == nil {
			return false
		}
		if argTypes[i] == nil {
			// an argument whose type could not be resolved already produced
			// its own diagnostic; it should not also fail every overload.
			continue
		}
		if !types.AreInitializable(declared, argTypes[i]) {
			return false
		}
	}
	return true
}

// Implements reports whether m provides a compatible override of the
// abstract method abstractMethod (same name, same argument types, matching
// return type).
func (m *MethodDefinition) Implements(abstractMethod *MethodDefinition) bool {
	if m.Name != abstractMethod.Name {
		return false
	}
	if !m.ArgumentTypesEqual(abstractMethod) {
		return false
	}
	if m.ReturnType == nil || abstractMethod.ReturnType == nil {
		return true
	}
	return types.Equals(m.ReturnType, abstractMethod.ReturnType)
}
