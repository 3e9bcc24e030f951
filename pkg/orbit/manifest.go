// Package orbit is orbitc's public facade: loading a project manifest,
// ingesting the source AST an external front end produced, driving the
// pass pipeline, and handing back the back-end contract (spec §6 "External
// Interfaces"; SPEC_FULL.md §A "Project configuration").
package orbit

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Manifest is a project's `fen.yaml`: the module name the compiled output
// is stamped with, the ordered list of source-AST JSON files to ingest, and
// the dependency list spec §6 says the driver must pass through to the
// emitter unchanged.
type Manifest struct {
	Module       string   `yaml:"module"`
	Inputs       []string `yaml:"inputs"`
	Dependencies []string `yaml:"dependencies"`
}

// LoadManifest reads and parses a `fen.yaml` file at path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	if m.Module == "" {
		return nil, fmt.Errorf("manifest %s: module name is required", path)
	}
	if len(m.Inputs) == 0 {
		return nil, fmt.Errorf("manifest %s: at least one input is required", path)
	}
	return &m, nil
}
