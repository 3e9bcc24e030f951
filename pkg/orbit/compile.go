package orbit

import (
	"fmt"
	"os"

	"github.com/fenlang/orbitc/internal/ast"
	"github.com/fenlang/orbitc/internal/backend"
	"github.com/fenlang/orbitc/internal/errors"
	"github.com/fenlang/orbitc/internal/sema"
)

// Result bundles a successful compilation's output: the back-end contract
// plus the Tree that produced it, kept around for dump-ast to print either
// side of the lowering passes.
type Result struct {
	Contract *backend.Contract
	Tree     *sema.Tree
}

// Ingest reads and ingests every input file m lists onto a fresh Tree,
// without running any pass — the shape `dump-ast` prints when asked for
// the tree before lowering.
func Ingest(m *Manifest) (*sema.Tree, error) {
	tree := sema.New()
	for _, input := range m.Inputs {
		data, err := os.ReadFile(input)
		if err != nil {
			return nil, fmt.Errorf("reading input %s: %w", input, err)
		}
		if err := IngestSourceAST(tree, string(data)); err != nil {
			return nil, fmt.Errorf("ingesting %s: %w", input, err)
		}
	}
	return tree, nil
}

// Compile loads m's input files (each a source-AST JSON document per
// spec §6), ingests them onto one Tree, runs the pass pipeline, and builds
// the back-end contract. It stops at the first file that fails to parse or
// the first pass that reports errors, returning the accumulated
// diagnostics rather than a partial Contract.
func (e *Engine) Compile(m *Manifest) (*Result, []*errors.CompilerError) {
	tree, err := Ingest(m)
	if err != nil {
		return nil, []*errors.CompilerError{errors.New(errors.Resolution, err.Error(), ast.Position{})}
	}
	if e.metricsRegisterer != nil {
		tree.WithMetrics(sema.NewMetrics(e.metricsRegisterer))
	}

	if errs := tree.Run(); len(errs) > 0 {
		return nil, errs
	}

	contract := backend.Build(tree, m.Module, m.Dependencies)
	contract.BuildID = e.buildID()

	return &Result{Contract: contract, Tree: tree}, nil
}
