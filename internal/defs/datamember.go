package defs

import (
	"github.com/fenlang/orbitc/internal/ast"
	"github.com/fenlang/orbitc/internal/types"
)

// DataMemberDefinition is a class field (spec §3 "DataMemberDefinition").
type DataMemberDefinition struct {
	Base
	Access AccessLevel
	Static bool

	Type               *types.Type
	Init               ast.Expression // nil if uninitialized
	PrimaryCtorArg     bool
	TypeCheckedAlready bool
}

func (d *DataMemberDefinition) memberKind() ClassMemberKind { return DataMemberKind }

// ResolvedType satisfies the ExprType-shaped accessor bindings.Binding uses
// to report a data member's type without importing this package.
func (d *DataMemberDefinition) ResolvedType() *types.Type { return d.Type }

// NewDataMember constructs a data member definition.
func NewDataMember(name string, ty *types.Type, access AccessLevel, static, primaryCtorArg bool, at ast.Position) *DataMemberDefinition {
	d := &DataMemberDefinition{Access: access, Static: static, Type: ty, PrimaryCtorArg: primaryCtorArg}
	d.Name = name
	d.At = at
	d.kind = MemberKind
	return d
}
