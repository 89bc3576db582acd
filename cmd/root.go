// Copyright © 2025 The Ferrule authors

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ferrulelang/ferrule/diagnostic"
)

var (
	confDir   string
	colorFlag string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ferrule",
	Short: "Ferrule — lints for the Fer language",
	Long: `Ferrule is the lint driver for Fer. It consumes crate dumps produced by
the Fer compiler (ferc --emit=lint-dump), runs every registered check over
them, and renders the findings with suggested fixes.

Getting started:
  ferc --emit=lint-dump src/ | ferrule check    Lint a crate from stdin
  ferrule check crate.json                      Lint a dumped crate
  ferrule check --json crate.json               Machine-readable findings
  ferrule lints                                 List every check

Lint levels:
  Every lint defaults to a level from its category: correctness lints are
  deny, style/complexity/perf lints are warn, and the rest are allow.
  Projects adjust levels in ferrule.toml (allow/warn/deny lists) and code
  adjusts them lexically with #[allow(...)], #[warn(...)], #[deny(...)],
  and #[expect(...)] attributes. An expect attribute additionally reports
  when its lint never fires.

Configuration:
  Settings are read from ferrule.toml in the directory given by --conf-dir
  (default "."), overridable with the FERRULE_CONF_DIR environment
  variable. Unknown keys and malformed values warn and fall back to the
  defaults; they never abort a run.

More information:
  Source code:   https://github.com/ferrulelang/ferrule`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&confDir, "conf-dir", ".",
		"directory searched for ferrule.toml")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto",
		`Control colored output: "auto", "always", or "never".`)
}

func colorMode() diagnostic.ColorMode {
	switch colorFlag {
	case "always":
		return diagnostic.ColorAlways
	case "never":
		return diagnostic.ColorNever
	default:
		return diagnostic.ColorAuto
	}
}
