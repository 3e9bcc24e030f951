package pattern

import "github.com/fenlang/orbitc/internal/bindings"

// Resolver supplies the scope lookups and fresh-name generation Create
// needs to decide how a pattern expression binds, without this package
// depending on internal/sema (which drives it).
type Resolver interface {
	// Lookup finds name in the current scope chain, as bindings.Scope.Lookup
	// does.
	Lookup(name string) (*bindings.Binding, bool)

	// FreshName returns a compiler-synthesized identifier prefixed with
	// prefix, unique within the current compilation (e.g.
	// "__match_subject_length").
	FreshName(prefix string) string
}
