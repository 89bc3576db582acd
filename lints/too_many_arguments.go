// Copyright © 2025 The Ferrule authors

package lints

import (
	"fmt"

	"github.com/ferrulelang/ferrule/lint"
	"github.com/ferrulelang/ferrule/source"
)

var tooManyArguments = &lint.Lint{
	Name: "too_many_arguments",
	Doc: "Check for functions with too many parameters.\n\n" +
		"Long parameter lists are hard to call correctly; related " +
		"parameters usually want to travel together in a struct. The " +
		"threshold is the too-many-arguments configuration key.",
	Category: lint.CategoryComplexity,
	AddedIn:  "0.1.0",
}

// TooManyArguments flags functions whose parameter count exceeds the
// configured threshold. Functions with a foreign ABI mirror an external
// signature and are exempt.
func TooManyArguments() *lint.EarlyPass {
	return &lint.EarlyPass{
		Name:  "too-many-arguments",
		Lints: []*lint.Lint{tooManyArguments},
		CheckFn: func(cx *lint.Context, fc *lint.FnCtx) {
			threshold := cx.Cfg().TooManyArguments
			if threshold <= 0 || fc.Decl.Abi != "" {
				return
			}
			if n := len(fc.Decl.Params); n > threshold {
				cx.SpanLintAndHelp(tooManyArguments, fc.Span,
					fmt.Sprintf("this function has too many arguments (%d/%d)", n, threshold),
					source.DummySpan(), "consider grouping related parameters into a struct")
			}
		},
	}
}
