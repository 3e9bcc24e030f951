package sema

import (
	"github.com/fenlang/orbitc/internal/defs"
	"github.com/fenlang/orbitc/internal/errors"
	"github.com/fenlang/orbitc/internal/lower"
)

// RunGenerateCloneMethods is pass 5 (spec §4.6): every message class gets
// its copy constructor and `_clone` bodies filled in by
// internal/lower.CloneGenerator, and every enumeration gets its variant
// constructors and `_deepCopy` body filled in by internal/lower.EnumGenerator,
// grounded on Tree::generateCloneMethods / CloneGenerator.cpp /
// EnumGenerator.cpp. Interfaces and already-generated (built-in) classes
// are skipped — they carry no data to clone.
func (t *Tree) RunGenerateCloneMethods() {
	for _, c := range t.classes() {
		switch {
		case c.Properties.IsInterface:
			continue
		case c.Properties.IsEnumeration:
			t.generateEnumClone(c)
		case c.Properties.IsMessage:
			t.generateMessageClone(c)
		}
	}
}

func (t *Tree) generateMessageClone(c *defs.ClassDefinition) {
	if err := lower.NewCloneGenerator(c).Generate(); err != nil {
		t.addError(errors.New(errors.ClosureMessage, err.Error(), c.At))
	}
}

// generateEnumClone drives EnumGenerator over every already-parsed variant
// on c. Variant shapes are read from c.RawVariants as parsed; generating
// them adds the instance `$tag` member, a static `$<Variant>Tag` constant
// and an instance `$<Variant>` data member per variant; GenerateDeepCopyMethod needs the variant set as a whole, so
// every variant on the class is recollected before it runs.
func (t *Tree) generateEnumClone(c *defs.ClassDefinition) {
	gen := lower.NewEnumGenerator(c)
	if err := gen.GenerateVariantsFromRaw(); err != nil {
		t.addError(errors.New(errors.ClosureMessage, err.Error(), c.At))
		return
	}
	if c.Properties.IsMessage {
		gen.GenerateDeepCopyMethod(c.Scope)
	}
}
