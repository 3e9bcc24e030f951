// Package backend describes the lowered-AST contract the emitter consumes
// (spec §4.7, §6): name mangling, the header/implementation partition, and
// the well-known runtime ABI symbols the lowering passes already target.
// Textual code generation itself is out of scope (spec §1b) — this package
// stops at the data an emitter would need.
package backend

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// mangledChars is the exact character set spec §6 names: ", < > $ ( )" and
// spaces, each replaced by an underscore.
const mangledChars = ", <>$() "

// Mangle renders a source-level name (a class's FullConstructedName, a
// closure interface's ClosureInterfaceName, a mangled method name) into the
// identifier an emitter can use verbatim. Input is first NFKC-normalized so
// that two differently-composed Unicode spellings of one identifier — e.g.
// a precomposed "é" versus "e"+combining-acute — can never mangle to two
// distinct names (SPEC_FULL.md §B).
func Mangle(name string) string {
	normalized := norm.NFKC.String(name)
	var sb strings.Builder
	sb.Grow(len(normalized))
	for _, r := range normalized {
		if strings.ContainsRune(mangledChars, r) {
			sb.WriteByte('_')
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// MangleCollision reports whether two distinct source names mangle to the
// same identifier. Used by tests exercising testable property 7 ("name
// mangling is injective on a fixed alphabet"); a real diagnostic pass would
// reject the collision at the point the second name is registered.
func MangleCollision(a, b string) bool {
	return a != b && Mangle(a) == Mangle(b)
}
