package backend

import (
	"github.com/fenlang/orbitc/internal/ast"
	"github.com/fenlang/orbitc/internal/defs"
	"github.com/fenlang/orbitc/internal/lower"
)

// RuntimeSymbols is the well-known ABI vocabulary spec §6/§9 says the
// lowering passes already target and an emitter's runtime must export:
// CloneGenerator.cpp's literal method names, the generated Defer class,
// and the Array element-access method. Resolved once per Contract since
// none of it is module-specific.
type RuntimeSymbols struct {
	CloneMethod      string
	DeepCopyMethod   string
	AddClosureMethod string
	DeferClassName   string
	ArrayAccessor    string
	EnumTagField     string
}

// DefaultRuntimeSymbols returns the fixed ABI vocabulary every orbitc
// module targets (spec.md §6 "Lowered AST shape", SPEC_FULL.md §C.4: the
// stdlib shims' names threaded through as a symbol table).
func DefaultRuntimeSymbols() RuntimeSymbols {
	return RuntimeSymbols{
		CloneMethod:      lower.CloneMethodName,
		DeepCopyMethod:   lower.DeepCopyMethodName,
		AddClosureMethod: "addClosure",
		DeferClassName:   "Defer",
		ArrayAccessor:    "at",
		EnumTagField:     lower.EnumTagFieldName,
	}
}

// VariantLayout is the per-variant shape an emitter needs to choose between
// a destructor-table tagged union and a flat std::variant-like layout
// (Open Question 1, SPEC_FULL.md §C.1): the dense tag, the optional nested
// data class name, and whether any of its fields are reference-typed.
type VariantLayout struct {
	Name           string
	Tag            int
	DataClassName  string
	OwnsReferences bool
}

// EnumLayout recomputes the variant layout of an already-lowered
// enumeration class directly from its generated members (the static
// `$<Variant>Tag` constants and `$<Variant>Data` nested classes
// internal/lower.EnumGenerator left behind), rather than depending on
// internal/lower's transient VariantInfo slice — internal/lower's
// generator discards its working state once GenerateVariantsFromRaw
// returns, so the backend contract re-derives the same shape from the
// class tree it actually needs to walk anyway.
func EnumLayout(enumClass *defs.ClassDefinition) []VariantLayout {
	var out []VariantLayout
	for _, rv := range enumClass.RawVariants {
		layout := VariantLayout{Name: rv.Name}
		if tag, ok := findIntConstant(enumClass, "$"+rv.Name+"Tag"); ok {
			layout.Tag = tag
		}
		if len(rv.Fields) > 0 {
			dataClassName := "$" + rv.Name + "Data"
			if nested, ok := enumClass.GetNestedClass(dataClassName); ok {
				layout.DataClassName = dataClassName
				for _, dm := range nested.DataMembers {
					if dm.Type != nil && dm.Type.IsReference() {
						layout.OwnsReferences = true
						break
					}
				}
			}
		}
		out = append(out, layout)
	}
	return out
}

func findIntConstant(c *defs.ClassDefinition, name string) (int, bool) {
	for _, dm := range c.DataMembers {
		if dm.Name != name {
			continue
		}
		lit, ok := dm.Init.(*ast.IntLiteral)
		if !ok {
			return 0, false
		}
		return int(lit.Value), true
	}
	return 0, false
}
