// Copyright © 2025 The Ferrule authors

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ferrulelang/ferrule/ast"
	"github.com/ferrulelang/ferrule/config"
	"github.com/ferrulelang/ferrule/diagnostic"
	"github.com/ferrulelang/ferrule/hir"
	"github.com/ferrulelang/ferrule/lint"
	"github.com/ferrulelang/ferrule/lints"
	"github.com/ferrulelang/ferrule/profiler"
	"github.com/ferrulelang/ferrule/source"
)

var (
	checkJSON  bool
	checkTrace string
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [dumps...]",
	Short: "Run every registered lint over dumped crates",
	Long: `Run every registered lint over dumped crates.

Each argument is a crate dump produced by the Fer compiler
(ferc --emit=lint-dump). With no arguments, one dump is read from stdin.
Findings are rendered to stderr as annotated source snippets; --json
writes them to stdout as a JSON array instead.

Exit codes:
  0  No problems found
  1  One or more deny-level problems were reported
  2  Bad invocation (invalid flags, unreadable or malformed dumps)`,
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runCheck(args))
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "write findings to stdout as JSON")
	checkCmd.Flags().StringVar(&checkTrace, "trace", "",
		`record pass execution spans: "otel" or "opencensus"`)
}

func runCheck(args []string) int {
	cfg, warnings, err := config.Load(confDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ferrule check: %v\n", err)
		return 2
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "ferrule check: config: %s\n", w)
	}

	reg := lint.NewRegistry()
	lints.Register(reg)

	sm := source.NewSourceMap()
	crates, err := readDumps(args, sm)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ferrule check: %v\n", err)
		return 2
	}

	sink := &diagnostic.Collector{}
	runner, err := lint.NewRunner(reg, sm, cfg, sink)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ferrule check: %v\n", err)
		return 2
	}
	if prof := newProfiler(); prof != nil {
		runner.SetProfiler(prof)
	}

	for _, crate := range crates {
		runner.RunEarly(crate)
		runner.RunLate(hir.NewCrate(crate, sm, nil))
	}
	runner.Finish()

	if err := report(sink.Diagnostics, sm); err != nil {
		fmt.Fprintf(os.Stderr, "ferrule check: %v\n", err)
		return 2
	}

	for _, d := range sink.Diagnostics {
		if d.Severity == diagnostic.SeverityError {
			return 1
		}
	}
	return 0
}

// readDumps decodes the crate dumps named by args, or one dump from stdin
// when args is empty. Every dump interns into the same source map.
func readDumps(args []string, sm *source.SourceMap) ([]*ast.Crate, error) {
	if len(args) == 0 {
		crate, err := ast.DecodeDump(os.Stdin, sm)
		if err != nil {
			return nil, fmt.Errorf("stdin: %w", err)
		}
		return []*ast.Crate{crate}, nil
	}
	var crates []*ast.Crate
	for _, name := range args {
		crate, err := decodeDumpFile(name, sm)
		if err != nil {
			return nil, err
		}
		crates = append(crates, crate)
	}
	return crates, nil
}

func decodeDumpFile(name string, sm *source.SourceMap) (*ast.Crate, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	crate, err := ast.DecodeDump(f, sm)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return crate, nil
}

func newProfiler() lint.Profiler {
	switch checkTrace {
	case "otel":
		return profiler.NewOpenTelemetryAnnotator(context.Background())
	case "opencensus":
		return profiler.NewOpenCensusAnnotator(context.Background())
	default:
		return nil
	}
}

func report(diags []diagnostic.Diagnostic, sm *source.SourceMap) error {
	if checkJSON {
		return writeJSON(os.Stdout, diags)
	}
	r := &diagnostic.Renderer{Color: colorMode(), Sources: sm}
	return r.RenderAll(os.Stderr, diags)
}

func writeJSON(w io.Writer, diags []diagnostic.Diagnostic) error {
	if diags == nil {
		diags = []diagnostic.Diagnostic{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(diags)
}
