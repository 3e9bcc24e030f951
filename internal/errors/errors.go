// Package errors formats orbitc's compiler diagnostics with source context,
// line/column information, and a caret pointing at the error location,
// grounded on the teacher's internal/errors/errors.go — minus StackTrace,
// since a pure compiler has no interpreter call stack to unwind.
package errors

import (
	"fmt"
	"strings"

	"github.com/fenlang/orbitc/internal/ast"
)

// Kind is spec §7's error taxonomy. Every CompilerError is fatal; there is
// no local recovery.
type Kind int

const (
	Resolution Kind = iota
	Typing
	Structural
	Pattern
	ClosureMessage
)

func (k Kind) String() string {
	switch k {
	case Resolution:
		return "resolution"
	case Typing:
		return "typing"
	case Structural:
		return "structural"
	case Pattern:
		return "pattern"
	case ClosureMessage:
		return "closure/message"
	default:
		return "unknown"
	}
}

// MissingReturn, UnknownIdentifier, and the rest are the named diagnostics
// passes raise; each carries the Kind its row in spec §7's table belongs to.
const (
	MissingReturn         = Structural
	UnknownIdentifierKind = Resolution
	TypeMismatch          = Typing
	NonExhaustiveMatch    = Pattern
	BadCloneMember        = ClosureMessage
)

// CompilerError is a single fatal diagnostic: a message, its Kind, and the
// source position it points at (CompilerError in the teacher package).
type CompilerError struct {
	Kind    Kind
	Message string
	Source  string
	File    string
	At      ast.Position
}

// New builds a CompilerError with no source text attached; callers that
// have the original source available should set Source/File afterwards for
// Format to render a caret.
func New(kind Kind, message string, at ast.Position) *CompilerError {
	return &CompilerError{Kind: kind, Message: message, At: at}
}

// Error implements the error interface.
func (e *CompilerError) Error() string { return e.Format(false) }

// Format renders the error with a single line of source context and a
// caret under the offending column, matching the teacher's Format(color).
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "Error in %s:%d:%d\n", e.File, e.At.Line, e.At.Column)
	} else {
		fmt.Fprintf(&sb, "Error at line %d:%d\n", e.At.Line, e.At.Column)
	}

	if line := e.sourceLine(e.At.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.At.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.At.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	fmt.Fprintf(&sb, "[%s] %s", e.Kind, e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func (e *CompilerError) sourceLine(lineNum int) string {
	if e.Source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatErrors renders every error in errs, numbering them when there is
// more than one (teacher's FormatErrors).
func FormatErrors(errs []*CompilerError, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(color)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Compilation failed with %d error(s):\n\n", len(errs))
	for i, e := range errs {
		fmt.Fprintf(&sb, "[Error %d of %d]\n", i+1, len(errs))
		sb.WriteString(e.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
