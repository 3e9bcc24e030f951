package orbit

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fen.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadManifestParsesModuleInputsAndDependencies(t *testing.T) {
	path := writeManifest(t, "module: demo\ninputs:\n  - a.json\n  - b.json\ndependencies:\n  - runtime\n")
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.Module != "demo" {
		t.Errorf("Module = %q, want demo", m.Module)
	}
	if len(m.Inputs) != 2 || m.Inputs[0] != "a.json" || m.Inputs[1] != "b.json" {
		t.Errorf("Inputs = %v", m.Inputs)
	}
	if len(m.Dependencies) != 1 || m.Dependencies[0] != "runtime" {
		t.Errorf("Dependencies = %v", m.Dependencies)
	}
}

func TestLoadManifestRejectsMissingModule(t *testing.T) {
	path := writeManifest(t, "inputs:\n  - a.json\n")
	if _, err := LoadManifest(path); err == nil {
		t.Fatalf("expected an error for a manifest with no module name")
	}
}

func TestLoadManifestRejectsNoInputs(t *testing.T) {
	path := writeManifest(t, "module: demo\n")
	if _, err := LoadManifest(path); err == nil {
		t.Fatalf("expected an error for a manifest with no inputs")
	}
}

func TestLoadManifestRejectsMissingFile(t *testing.T) {
	if _, err := LoadManifest(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected an error for a missing manifest file")
	}
}
