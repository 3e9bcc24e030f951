package errors

import (
	"strconv"

	"github.com/tidwall/sjson"
)

// ToJSON renders errs as a JSON array of {kind, message, file, line, column}
// objects for orbitc's `--json` diagnostic stream (SPEC_FULL.md §B). Built
// with sjson rather than encoding/json so each record is assembled the same
// path-set way the rest of the domain stack touches JSON (internal/backend's
// contract serialization).
func ToJSON(errs []*CompilerError) (string, error) {
	doc := "[]"
	var err error
	for i, e := range errs {
		path := func(field string) string { return ptr(i, field) }
		if doc, err = sjson.Set(doc, path("kind"), e.Kind.String()); err != nil {
			return "", err
		}
		if doc, err = sjson.Set(doc, path("message"), e.Message); err != nil {
			return "", err
		}
		if doc, err = sjson.Set(doc, path("file"), e.File); err != nil {
			return "", err
		}
		if doc, err = sjson.Set(doc, path("line"), e.At.Line); err != nil {
			return "", err
		}
		if doc, err = sjson.Set(doc, path("column"), e.At.Column); err != nil {
			return "", err
		}
	}
	return doc, nil
}

func ptr(i int, field string) string {
	return strconv.Itoa(i) + "." + field
}
