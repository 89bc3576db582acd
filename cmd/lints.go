// Copyright © 2025 The Ferrule authors

package cmd

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"

	"github.com/ferrulelang/ferrule/lint"
	"github.com/ferrulelang/ferrule/lints"
)

var lintsDoc bool

var lintsCmd = &cobra.Command{
	Use:   "lints",
	Short: "List every registered lint",
	Long: `List every registered lint with its category and default level.

With --doc the full description of each lint is printed as well.`,
	Run: func(cmd *cobra.Command, args []string) {
		reg := lint.NewRegistry()
		lints.Register(reg)
		for _, l := range reg.Lints() {
			fmt.Printf("%-28s %-12s %s\n", l.Name, l.Category, l.DefaultLevel())
			if lintsDoc {
				fmt.Println(formatDoc(l.Doc))
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(lintsCmd)
	lintsCmd.Flags().BoolVar(&lintsDoc, "doc", false, "include each lint's full description")
}

// formatDoc wraps and indents a lint description for terminal output.
func formatDoc(doc string) string {
	doc = indent.String(wordwrap.String(doc, 72), 4)
	return strings.TrimRight(doc, "\n") + "\n"
}
