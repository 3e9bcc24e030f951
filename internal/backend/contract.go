package backend

import (
	"github.com/fenlang/orbitc/internal/defs"
	"github.com/fenlang/orbitc/internal/sema"
)

// mainFunctionName is the free function an external driver treats as the
// program entry point before lowering renames it.
const mainFunctionName = "main"

// mangledMainName is what spec §4.7 says the back-end contract must expose
// instead: "The 'main' method is renamed to `_<name>_` so the runtime can
// supply an outer main."
const mangledMainName = "_main_"

// Contract is the lowered-AST guarantee an emitter consumes (spec §4.7,
// §6): the module's header/implementation definition partition, in an
// order where every forward declaration or generated generic instantiation
// precedes its first use, plus the runtime symbol vocabulary the lowering
// passes already target.
type Contract struct {
	ModuleName   string
	Dependencies []string
	Symbols      RuntimeSymbols

	// BuildID stamps this compilation into a build cache (SPEC_FULL.md §B).
	// Build leaves it empty; pkg/orbit.Compile fills it in with a fresh
	// UUID once it has a Contract to stamp.
	BuildID string

	// Header is every Definition in declaration form: class shells,
	// method signatures, forward declarations — what a header file would
	// need to let other modules reference this one.
	Header []defs.Definition

	// Implementation is the same definitions paired with their method
	// bodies — what a .cpp-equivalent translation unit would emit. Order
	// matches Header.
	Implementation []defs.Definition
}

// Build partitions tree's global definitions into the header/implementation
// contract an emitter consumes, after renaming the program's "main" free
// function the way spec §4.7 requires. tree must already have had Run
// called successfully (no accumulated errors) — Build does not itself
// re-run any pass.
func Build(tree *sema.Tree, moduleName string, dependencies []string) *Contract {
	renameMain(tree)
	allDefs := append([]defs.Definition(nil), tree.GlobalDefinitions...)
	return &Contract{
		ModuleName:     moduleName,
		Dependencies:   dependencies,
		Symbols:        DefaultRuntimeSymbols(),
		Header:         allDefs,
		Implementation: allDefs,
	}
}

// renameMain finds the free function named "main" on the tree's hidden
// _Global_Functions_ host class and renames it to "_main_" (spec §4.7).
// A module with no free-standing main (a library module) is left alone.
func renameMain(tree *sema.Tree) {
	host := tree.GlobalFunctions
	if host == nil {
		return
	}
	for _, m := range host.Methods {
		if m.Name == mainFunctionName {
			m.Name = mangledMainName
		}
	}
}

// ForwardDeclarationOrder returns the names of every
// ForwardDeclarationDefinition in contract.Header, in header order —
// testable property 9's shape ("the generated class
// appears in the global definition list before its first use") read from
// the other direction: a forward declaration exists only when something
// needed to reference the class before its body was available.
func ForwardDeclarationOrder(c *Contract) []string {
	var names []string
	for _, d := range c.Header {
		if fd, ok := d.(*defs.ForwardDeclarationDefinition); ok {
			names = append(names, fd.DefinitionName())
		}
	}
	return names
}

// MangledName renders d's declaration name the way the emitter would see
// it: a class's FullConstructedName/ClosureInterfaceName run through
// Mangle. Method and data member names are mangled as-is (they carry no
// generic arguments of their own).
func MangledName(d defs.Definition) string {
	return Mangle(d.DefinitionName())
}
