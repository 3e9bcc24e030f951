// Package ast defines the typed abstract syntax tree orbitc's semantic
// passes consume and mutate in place. Construction of the initial tree
// (lexing and parsing Fen source) is an external collaborator; this package
// only fixes the shape that collaborator must produce and the shape the
// pass driver leaves behind for the back end.
package ast

import (
	"fmt"

	"github.com/fenlang/orbitc/internal/types"
)

// Position locates a node in the source file the external front end
// consumed. It survives lowering unchanged so every generated node can
// still be blamed on the statement or expression it was derived from.
type Position struct {
	File   string
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Node is the common interface every AST node implements.
type Node interface {
	Pos() Position
	String() string
}

// Expression is any node that produces a value. Every expression carries a
// resolved type once the pass that checks it has run; before that,
// ResolvedType returns nil.
type Expression interface {
	Node
	expressionNode()
	ResolvedType() *types.Type
	SetResolvedType(*types.Type)
}

// ExprBase is embedded by every Expression implementation; it supplies the
// position and resolved-type bookkeeping common to all of them, so each
// node type only has to declare its own payload fields.
type ExprBase struct {
	At   Position
	Type *types.Type
}

func (e *ExprBase) Pos() Position                  { return e.At }
func (e *ExprBase) ResolvedType() *types.Type      { return e.Type }
func (e *ExprBase) SetResolvedType(t *types.Type)  { e.Type = t }
func (e *ExprBase) expressionNode()                {}

// StmtBase is embedded by every Statement implementation.
type StmtBase struct {
	At Position
}

func (s *StmtBase) Pos() Position { return s.At }
func (s *StmtBase) statementNode() {}

// Statement is any node that performs an action but produces no value.
type Statement interface {
	Node
	statementNode()
}

// Decl is any top-level or member declaration: a class, a forward
// declaration, or an import marker (spec.md §6, "source AST shape").
type Decl interface {
	Node
	declNode()
}
