// Package defs implements Fen's definition hierarchy: classes, their
// members, generic type parameters, and forward declarations (spec §3
// "Definition", §4.3 "AST / Definitions"). Definitions are created by the
// front end, mutated only by the pass driver (internal/sema), and owned by
// a single compilation unit.
package defs

import (
	"github.com/fenlang/orbitc/internal/ast"
)

// Kind is the top-level variant a Definition belongs to (spec §3:
// "Definition. One of: Class, ClassMember (DataMember | Method),
// GenericTypeParameter, ForwardDeclaration").
type Kind int

const (
	ClassKind Kind = iota
	MemberKind
	GenericTypeParameterKind
	ForwardDeclarationKind
)

// Definition is the common interface every node in this package
// implements: it knows its own name, its enclosing definition (if any, for
// nested classes and members), and whether it was imported from another
// module.
type Definition interface {
	DefinitionName() string
	Kind() Kind
	EnclosingDefinition() Definition
	SetEnclosingDefinition(Definition)
	IsImported() bool
	SetIsImported(bool)
	Pos() ast.Position
}

// Base is embedded by every concrete Definition; it supplies the fields
// and accessors spec §3 says every definition carries.
type Base struct {
	Name      string
	At        ast.Position
	Enclosing Definition
	Imported  bool

	kind Kind
}

func (b *Base) DefinitionName() string              { return b.Name }
func (b *Base) Kind() Kind                          { return b.kind }
func (b *Base) EnclosingDefinition() Definition     { return b.Enclosing }
func (b *Base) SetEnclosingDefinition(d Definition) { b.Enclosing = d }
func (b *Base) IsImported() bool                    { return b.Imported }
func (b *Base) SetIsImported(v bool)                { b.Imported = v }
func (b *Base) Pos() ast.Position                   { return b.At }

// EnclosingClass walks the enclosing-definition chain to find the nearest
// ClassDefinition, or nil if d is not nested in one.
func EnclosingClass(d Definition) *ClassDefinition {
	for cur := d.EnclosingDefinition(); cur != nil; cur = cur.EnclosingDefinition() {
		if cls, ok := cur.(*ClassDefinition); ok {
			return cls
		}
	}
	return nil
}
