package backend

import (
	"github.com/fenlang/orbitc/internal/defs"
	"github.com/tidwall/sjson"
)

// ToJSON renders c as the JSON document `cmd/orbitc compile` writes for an
// external emitter to consume: module metadata plus the mangled name, in
// source order, of every definition in the header and implementation lists.
// Built with sjson path-sets, the same way internal/errors.ToJSON assembles
// its diagnostic array, rather than encoding/json — a full AST dump belongs
// to an emitter, not to this contract (spec §1b); what crosses this
// boundary is the shape the emitter walks, not the bodies it generates from.
func (c *Contract) ToJSON() (string, error) {
	doc := "{}"
	var err error

	if doc, err = sjson.Set(doc, "module", c.ModuleName); err != nil {
		return "", err
	}
	if doc, err = sjson.Set(doc, "buildId", c.BuildID); err != nil {
		return "", err
	}
	if doc, err = sjson.Set(doc, "dependencies", c.Dependencies); err != nil {
		return "", err
	}
	if doc, err = sjson.Set(doc, "symbols.clone", c.Symbols.CloneMethod); err != nil {
		return "", err
	}
	if doc, err = sjson.Set(doc, "symbols.deepCopy", c.Symbols.DeepCopyMethod); err != nil {
		return "", err
	}
	if doc, err = sjson.Set(doc, "symbols.addClosure", c.Symbols.AddClosureMethod); err != nil {
		return "", err
	}
	if doc, err = sjson.Set(doc, "symbols.deferClass", c.Symbols.DeferClassName); err != nil {
		return "", err
	}
	if doc, err = sjson.Set(doc, "symbols.arrayAccessor", c.Symbols.ArrayAccessor); err != nil {
		return "", err
	}
	if doc, err = sjson.Set(doc, "symbols.enumTagField", c.Symbols.EnumTagField); err != nil {
		return "", err
	}

	if doc, err = setDefinitionNames(doc, "header", c.Header); err != nil {
		return "", err
	}
	if doc, err = setDefinitionNames(doc, "implementation", c.Implementation); err != nil {
		return "", err
	}

	return doc, nil
}

func setDefinitionNames(doc, field string, defList []defs.Definition) (string, error) {
	names := make([]string, len(defList))
	for i, d := range defList {
		names[i] = MangledName(d)
	}
	return sjson.Set(doc, field, names)
}
