package cmd

import (
	"fmt"
	"os"

	"github.com/fenlang/orbitc/internal/errors"
	"github.com/fenlang/orbitc/pkg/orbit"
	"github.com/kr/pretty"
	"github.com/spf13/cobra"
)

var dumpLowered bool

var dumpASTCmd = &cobra.Command{
	Use:   "dump-ast [manifest]",
	Short: "Print a project's global definitions",
	Long: `dump-ast loads a project manifest, ingests its source-AST JSON files,
and pretty-prints the resulting global definitions with kr/pretty.

By default it prints the tree as ingested, before any pass has run. Pass
--lowered to run the full pass driver first and print the result instead —
the shape spec.md's lowering passes guarantee (tagged-union enumerations,
closure classes, a renamed entry point, and so on).`,
	Args: cobra.ExactArgs(1),
	RunE: runDumpAST,
}

func init() {
	rootCmd.AddCommand(dumpASTCmd)
	dumpASTCmd.Flags().BoolVar(&dumpLowered, "lowered", false, "run the pass driver before printing")
}

func runDumpAST(_ *cobra.Command, args []string) error {
	manifestPath := args[0]

	m, err := orbit.LoadManifest(manifestPath)
	if err != nil {
		return err
	}

	if !dumpLowered {
		return dumpUnlowered(m)
	}

	result, errs := orbit.New().Compile(m)
	if len(errs) > 0 {
		fmt.Fprint(os.Stderr, errors.FormatErrors(errs, true))
		fmt.Fprintln(os.Stderr)
		return fmt.Errorf("compilation failed with %d error(s)", len(errs))
	}
	pretty.Println(result.Tree.GlobalDefinitions)
	return nil
}

func dumpUnlowered(m *orbit.Manifest) error {
	tree, err := orbit.Ingest(m)
	if err != nil {
		return err
	}
	pretty.Println(tree.GlobalDefinitions)
	return nil
}
