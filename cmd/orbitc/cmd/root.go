// Package cmd is orbitc's command tree, grounded on the teacher's
// cmd/dwscript/cmd layout: a root command plus one file per subcommand.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "orbitc",
	Short: "Fen middle-end compiler core",
	Long: `orbitc drives the Fen compiler's middle end: it takes a pre-built
source AST (as an external front end would hand off) and a project
manifest, runs the pass driver, and hands back a back-end contract
an external emitter consumes.

orbitc does not lex or parse Fen source itself, and it does not emit
target code; both are external collaborators by design.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
