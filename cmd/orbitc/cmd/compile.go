package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/fenlang/orbitc/internal/errors"
	"github.com/fenlang/orbitc/pkg/orbit"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
)

var (
	compileOutput  string
	compileJSON    bool
	compileMetrics bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [manifest]",
	Short: "Run the pass driver over a project and emit its back-end contract",
	Long: `compile loads a project manifest (fen.yaml), ingests the source-AST
JSON files it lists, runs the pass driver, and writes the resulting
back-end contract as JSON for an external emitter to consume.

Examples:
  # Compile a project, writing the contract to stdout
  orbitc compile fen.yaml

  # Compile with custom output file
  orbitc compile fen.yaml -o out.json

  # Report diagnostics as JSON instead of human-readable text
  orbitc compile fen.yaml --json

  # Dump per-pass Prometheus metrics alongside the contract
  orbitc compile fen.yaml --metrics`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "", "output file for the back-end contract (default: stdout)")
	compileCmd.Flags().BoolVar(&compileJSON, "json", false, "report diagnostics as a JSON array instead of formatted text")
	compileCmd.Flags().BoolVar(&compileMetrics, "metrics", false, "print per-pass Prometheus text exposition to stderr after a successful compile")
}

func runCompile(_ *cobra.Command, args []string) error {
	manifestPath := args[0]

	m, err := orbit.LoadManifest(manifestPath)
	if err != nil {
		return err
	}

	var opts []orbit.Option
	var reg *prometheus.Registry
	if compileMetrics {
		reg = prometheus.NewRegistry()
		opts = append(opts, orbit.WithMetrics(reg))
	}

	result, errs := orbit.New(opts...).Compile(m)
	if len(errs) > 0 {
		return reportCompileErrors(errs)
	}

	doc, err := result.Contract.ToJSON()
	if err != nil {
		return fmt.Errorf("serializing back-end contract: %w", err)
	}

	if compileOutput == "" {
		fmt.Println(doc)
	} else {
		if err := os.WriteFile(compileOutput, []byte(doc+"\n"), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", compileOutput, err)
		}
		fmt.Printf("Compiled %s -> %s\n", manifestPath, compileOutput)
	}

	if compileMetrics {
		if err := writeMetricsText(reg); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}

	return nil
}

func reportCompileErrors(errs []*errors.CompilerError) error {
	if compileJSON {
		doc, err := errors.ToJSON(errs)
		if err != nil {
			return fmt.Errorf("serializing diagnostics: %w", err)
		}
		fmt.Fprintln(os.Stderr, doc)
	} else {
		fmt.Fprint(os.Stderr, errors.FormatErrors(errs, true))
		fmt.Fprintln(os.Stderr)
	}
	return fmt.Errorf("compilation failed with %d error(s)", len(errs))
}

// writeMetricsText renders reg's gathered families in Prometheus text
// exposition format, the same encoding promhttp.Handler would serve over
// HTTP — orbitc is a one-shot CLI, so it writes the same bytes straight to
// stderr instead of standing up a listener.
func writeMetricsText(reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, fam := range families {
		if err := enc.Encode(fam); err != nil {
			return err
		}
	}
	_, err = os.Stderr.Write(buf.Bytes())
	return err
}
