package cmd

import (
	"path/filepath"
	"testing"
)

func TestDumpASTCommandRunsOnUnloweredAndLoweredTrees(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "main.json", `{"definitions": [
		{"kind": "class", "name": "Point", "parents": ["object"],
		 "dataMembers": [{"name": "x", "type": {"name": "int"}}]}
	]}`)
	manifest := writeFixture(t, dir, "fen.yaml", "module: demo\ninputs:\n  - main.json\n")

	rootCmd.SetArgs([]string{"dump-ast", manifest})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("dump-ast: %v", err)
	}

	rootCmd.SetArgs([]string{"dump-ast", manifest, "--lowered"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("dump-ast --lowered: %v", err)
	}
}

func TestDumpASTCommandRejectsMissingManifest(t *testing.T) {
	rootCmd.SetArgs([]string{"dump-ast", filepath.Join(t.TempDir(), "missing.yaml")})
	if err := rootCmd.Execute(); err == nil {
		t.Fatalf("expected an error for a missing manifest")
	}
}
