package backend

import (
	"testing"

	"github.com/tidwall/gjson"
)

func TestContractToJSONIncludesModuleSymbolsAndPartitions(t *testing.T) {
	tr := tree(t)
	contract := Build(tr, "demo", []string{"runtime"})
	contract.BuildID = "fixed-build-id"

	doc, err := contract.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	if got := gjson.Get(doc, "module").String(); got != "demo" {
		t.Errorf("module = %q, want demo", got)
	}
	if got := gjson.Get(doc, "buildId").String(); got != "fixed-build-id" {
		t.Errorf("buildId = %q, want fixed-build-id", got)
	}
	if got := gjson.Get(doc, "dependencies.0").String(); got != "runtime" {
		t.Errorf("dependencies.0 = %q, want runtime", got)
	}
	if got := gjson.Get(doc, "symbols.clone").String(); got != DefaultRuntimeSymbols().CloneMethod {
		t.Errorf("symbols.clone = %q", got)
	}
	if !gjson.Get(doc, "header").IsArray() {
		t.Errorf("expected header to be a JSON array")
	}
	if !gjson.Get(doc, "implementation").IsArray() {
		t.Errorf("expected implementation to be a JSON array")
	}
}
