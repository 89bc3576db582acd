// Copyright © 2025 The Ferrule authors

package lints

import (
	"strings"

	"github.com/ferrulelang/ferrule/ast"
	"github.com/ferrulelang/ferrule/diagnostic"
	"github.com/ferrulelang/ferrule/lint"
	"github.com/ferrulelang/ferrule/msrv"
	"github.com/ferrulelang/ferrule/source"
)

var redundantWildAnnotation = &lint.Lint{
	Name: "redundant_wild_annotation",
	Doc: "Check for `let x: _ = ...` bindings.\n\n" +
		"A wildcard annotation asks the compiler to infer the type, which " +
		"is exactly what leaving the annotation off does.",
	Category: lint.CategoryStyle,
	AddedIn:  "0.1.0",
}

// RedundantWildAnnotation suggests deleting a `: _` type annotation. The
// suggestion only makes sense on toolchains where un-annotated bindings
// infer the same way, so it is gated on the MSRV.
func RedundantWildAnnotation() *lint.EarlyPass {
	return &lint.EarlyPass{
		Name:  "redundant-wild-annotation",
		Lints: []*lint.Lint{redundantWildAnnotation},
		CheckLocal: func(cx *lint.Context, s *ast.LocalStmt) {
			if _, ok := s.Ty.(*ast.InferTy); !ok {
				return
			}
			if !cx.MSRV(msrv.FeatureWildTypeInference) {
				return
			}
			if source.FromExpansion(s.Span()) {
				return
			}

			sm := cx.Sources()
			removal, ok := annotationSpan(sm, s.Ty.Span())
			if !ok {
				cx.SpanLint(redundantWildAnnotation, s.Ty.Span(), "redundant wildcard type annotation")
				return
			}

			cx.SpanLintAndThen(redundantWildAnnotation, s.Ty.Span(),
				"redundant wildcard type annotation",
				func(d *diagnostic.Diagnostic) {
					d.Suggestions = append(d.Suggestions, diagnostic.Suggestion{
						Message:       "remove it",
						Parts:         []diagnostic.SuggestionPart{{Span: removal, Replacement: ""}},
						Applicability: diagnostic.MachineApplicable,
					})
				})
		},
	}
}

// annotationSpan grows the `_` span backward over the colon and surrounding
// whitespace so the whole annotation is removed, and verifies the result
// still starts at the colon.
func annotationSpan(sm *source.SourceMap, ty source.Span) (source.Span, bool) {
	sp, ok := sm.WithLeadingWhitespace(ty)
	if !ok {
		return ty, false
	}
	sp, ok = sm.WithLeadingMatch(sp, ':')
	if !ok {
		return ty, false
	}
	if !sm.CheckSourceText(sp, func(text string) bool { return strings.HasPrefix(text, ":") }) {
		return ty, false
	}
	return sp, true
}
