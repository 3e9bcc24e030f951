package ast

import "github.com/fenlang/orbitc/internal/types"

// DeclForm distinguishes the three source forms a VariableDeclaration can
// take (spec §4.4 "VariableDeclaration statement").
type DeclForm int

const (
	// TypedDecl carries an explicit type name: `T name = init`.
	TypedDecl DeclForm = iota
	// ImplicitDecl is `var name = init`; the declared type is the
	// initializer's type, carrying the declared constness.
	ImplicitDecl
	// PatternDecl binds names out of a pattern match against Initializer;
	// MakePatternBindings (internal/pattern) expands it into one or more
	// TypedDecl/ImplicitDecl declarations plus the original's replacement.
	PatternDecl
)

// VariableDeclaration is shared by local variable statements, method/lambda/
// closure parameter lists, and primary-constructor arguments (spec §3:
// "ordered argument list (each a VariableDeclaration)").
type VariableDeclaration struct {
	At          Position
	Name        string
	TypeName    string // declared type name; empty for ImplicitDecl before inference
	Form        DeclForm
	Constant    bool
	Initializer Expression // required for ImplicitDecl and PatternDecl
	Pattern     Expression // set only when Form == PatternDecl

	// PrimaryCtorArg marks an argument of a primary constructor that also
	// becomes a public data member (spec §4.3 "Member insertion").
	PrimaryCtorArg bool

	Type *types.Type
}

func (d *VariableDeclaration) Pos() Position                 { return d.At }
func (d *VariableDeclaration) ResolvedType() *types.Type     { return d.Type }
func (d *VariableDeclaration) SetResolvedType(t *types.Type) { d.Type = t }

func (d *VariableDeclaration) String() string {
	switch d.Form {
	case ImplicitDecl:
		return "var " + d.Name
	case PatternDecl:
		return d.Pattern.String()
	default:
		return d.TypeName + " " + d.Name
	}
}
