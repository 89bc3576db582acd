// Copyright © 2025 The Ferrule authors

package lints

import (
	"fmt"

	"github.com/ferrulelang/ferrule/ast"
	"github.com/ferrulelang/ferrule/hir"
	"github.com/ferrulelang/ferrule/lint"
	"github.com/ferrulelang/ferrule/source"
)

var largeStackArray = &lint.Lint{
	Name: "large_stack_array",
	Doc: "Check for array expressions bigger than the large-stack-array " +
		"threshold.\n\nLarge arrays on the stack risk overflowing it; " +
		"heap allocation moves the cost somewhere survivable.",
	Category: lint.CategoryPedantic,
	AddedIn:  "0.1.0",
}

// LargeStackArray flags array literals whose resolved type is larger than
// the configured byte threshold. It runs late because the element size
// comes from the type oracle.
func LargeStackArray() *lint.LatePass {
	return &lint.LatePass{
		Name:  "large-stack-array",
		Lints: []*lint.Lint{largeStackArray},
		CheckExpr: func(cx *lint.LateContext, e ast.Expr) {
			if _, ok := e.(*ast.ArrayExpr); !ok {
				return
			}
			limit := int64(cx.Cfg().LargeStackArray)
			if limit <= 0 {
				return
			}
			ty := cx.TypeOf(e)
			if ty == nil || ty.Kind != hir.KindArray || ty.Size <= limit {
				return
			}
			cx.SpanLintAndHelp(largeStackArray, e.Span(),
				fmt.Sprintf("this array takes %d bytes on the stack (limit %d)", ty.Size, limit),
				source.DummySpan(), "consider allocating it on the heap instead")
		},
	}
}
