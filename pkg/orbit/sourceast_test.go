package orbit

import (
	"testing"

	"github.com/fenlang/orbitc/internal/sema"
)

const pointDoc = `{
  "definitions": [
    {
      "kind": "class",
      "name": "Point",
      "parents": ["object"],
      "dataMembers": [
        {"name": "x", "type": {"name": "int"}},
        {"name": "y", "type": {"name": "int"}}
      ],
      "methods": [
        {"name": "length", "returnType": {"name": "int"}, "abstract": true}
      ]
    },
    {
      "kind": "class",
      "name": "Line",
      "parents": ["object"],
      "dataMembers": [
        {"name": "from", "type": {"name": "Point"}},
        {"name": "points", "type": {"name": "Point", "array": true}}
      ]
    },
    {"kind": "function", "name": "main", "returnType": {"name": "void"}}
  ]
}`

func TestIngestSourceASTBuildsClassesInOrder(t *testing.T) {
	tree := sema.New()
	if err := IngestSourceAST(tree, pointDoc); err != nil {
		t.Fatalf("IngestSourceAST: %v", err)
	}

	point := tree.LookupClass("Point")
	if point == nil {
		t.Fatalf("Point was not registered")
	}
	if len(point.DataMembers) != 2 {
		t.Fatalf("Point.DataMembers = %d, want 2", len(point.DataMembers))
	}
	if len(point.Methods) != 1 || !point.Methods[0].IsAbstract() {
		t.Fatalf("Point.length should be the single abstract method")
	}

	line := tree.LookupClass("Line")
	if line == nil {
		t.Fatalf("Line was not registered")
	}
	fromField := line.DataMembers[0]
	if fromField.Type.Definition != point {
		t.Fatalf("Line.from's type should resolve to the already-ingested Point class")
	}
	pointsField := line.DataMembers[1]
	if !pointsField.Type.IsArray() {
		t.Fatalf("Line.points should be an array type")
	}

	found := false
	for _, m := range tree.GlobalFunctions.Methods {
		if m.Name == "main" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a free function named main on GlobalFunctions")
	}
}

func TestIngestSourceASTRejectsUnknownParent(t *testing.T) {
	tree := sema.New()
	doc := `{"definitions": [{"kind": "class", "name": "Orphan", "parents": ["Ghost"]}]}`
	if err := IngestSourceAST(tree, doc); err == nil {
		t.Fatalf("expected an error for a class naming an undeclared parent")
	}
}

func TestIngestSourceASTRejectsInvalidJSON(t *testing.T) {
	tree := sema.New()
	if err := IngestSourceAST(tree, "not json"); err == nil {
		t.Fatalf("expected an error for invalid JSON")
	}
}

func TestIngestSourceASTHandlesEnumVariants(t *testing.T) {
	tree := sema.New()
	doc := `{
	  "definitions": [
	    {
	      "kind": "class",
	      "name": "Shape",
	      "isEnumeration": true,
	      "isMessage": true,
	      "variants": [
	        {"name": "Circle", "fields": [{"name": "radius", "type": {"name": "int"}}]},
	        {"name": "Origin"}
	      ]
	    }
	  ]
	}`
	if err := IngestSourceAST(tree, doc); err != nil {
		t.Fatalf("IngestSourceAST: %v", err)
	}
	shape := tree.LookupClass("Shape")
	if shape == nil {
		t.Fatalf("Shape was not registered")
	}
	if len(shape.RawVariants) != 2 {
		t.Fatalf("Shape.RawVariants = %d, want 2", len(shape.RawVariants))
	}
	if shape.RawVariants[0].Name != "Circle" || len(shape.RawVariants[0].Fields) != 1 {
		t.Fatalf("unexpected Circle variant: %+v", shape.RawVariants[0])
	}
	if shape.RawVariants[1].Name != "Origin" || len(shape.RawVariants[1].Fields) != 0 {
		t.Fatalf("unexpected Origin variant: %+v", shape.RawVariants[1])
	}
}
