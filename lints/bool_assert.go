// Copyright © 2025 The Ferrule authors

package lints

import (
	"fmt"
	"strings"

	"github.com/ferrulelang/ferrule/ast"
	"github.com/ferrulelang/ferrule/diagnostic"
	"github.com/ferrulelang/ferrule/lint"
	"github.com/ferrulelang/ferrule/snippet"
)

var boolAssertInversion = &lint.Lint{
	Name: "bool_assert_inversion",
	Doc: "Check for assert! over a negated boolean condition.\n\n" +
		"assert!(!x) buries the expected value inside the condition; " +
		"assert_eq!(x, false) states it outright and prints the actual " +
		"value when the assertion fails.",
	Category: lint.CategoryStyle,
	AddedIn:  "0.1.0",
}

// BoolAssertInversion rewrites assert!(!x) into assert_eq!(x, false). It
// runs late because the negated operand must actually be a bool.
func BoolAssertInversion() *lint.LatePass {
	return &lint.LatePass{
		Name:  "bool-assert-inversion",
		Lints: []*lint.Lint{boolAssertInversion},
		CheckExpr: func(cx *lint.LateContext, e ast.Expr) {
			mac, ok := e.(*ast.MacroCallExpr)
			if !ok || mac.Path != "assert" || len(mac.Args) == 0 {
				return
			}
			if cx.Sources().InExternalMacro(e.Span()) {
				return
			}
			neg, ok := mac.Args[0].(*ast.UnaryExpr)
			if !ok || neg.Op != ast.UnNot {
				return
			}
			if ty := cx.TypeOf(neg.X); !ty.IsBool() {
				return
			}

			// assert_eq! captures the operand for its failure message, so
			// the rewrite can change panic output.
			app := diagnostic.MaybeIncorrect
			sm := cx.Sources()
			operand := snippet.ExprSugg(sm, neg.X, e.Span().Ctxt, "..", &app)
			args := []string{operand.String(), "false"}
			for _, extra := range mac.Args[1:] {
				args = append(args, snippet.SnippetWithApplicability(sm, extra.Span(), "..", &app))
			}

			cx.SpanLintAndSugg(boolAssertInversion, e.Span(),
				"used assert! with a negated condition",
				"replace it with", fmt.Sprintf("assert_eq!(%s)", strings.Join(args, ", ")), app)
		},
	}
}
