// Package types implements the Fen type model: built-in kinds, class/array/
// generic composition, and the equality, assignability, and conversion rules
// the rest of the compiler consults when checking and lowering expressions.
package types

// Kind identifies the built-in family a Type belongs to. A Type whose Kind is
// NotBuiltIn names a user class, interface, enumeration, or generic type
// parameter and carries its Definition once name resolution has run.
type Kind int

const (
	NotBuiltIn Kind = iota
	Void
	Null
	Placeholder
	Object
	Implicit
	Byte
	Char
	Int
	Long
	Float
	Bool
	String
	Lambda
	Function
	Enumeration
)

func (k Kind) String() string {
	switch k {
	case Void:
		return "void"
	case Null:
		return "null"
	case Placeholder:
		return "_"
	case Object:
		return "object"
	case Implicit:
		return "var"
	case Byte:
		return "byte"
	case Char:
		return "char"
	case Int:
		return "int"
	case Long:
		return "long"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case String:
		return "string"
	case Lambda:
		return "lambda"
	case Function:
		return "fun"
	case Enumeration:
		return "enum"
	default:
		return "<not-built-in>"
	}
}

// isReferenceKind reports whether values of this built-in kind are
// heap-allocated by default. Arrays are always reference regardless of
// element kind; that rule lives on Type, not here.
func isReferenceKind(k Kind) bool {
	switch k {
	case Byte, Char, Int, Long, Float, Bool, Enumeration:
		return false
	default:
		return true
	}
}
