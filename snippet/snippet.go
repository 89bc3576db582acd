// Copyright © 2025 The Ferrule authors

// Package snippet produces replacement text for suggestions: it fetches
// source text for spans, composes sub-expressions with just enough
// parentheses, and assembles multi-part rewrites that are safe to apply.
package snippet

import (
	"github.com/ferrulelang/ferrule/diagnostic"
	"github.com/ferrulelang/ferrule/source"
)

// Snippet returns the source text under span, or fallback when the span is
// synthetic or unreadable.
func Snippet(sm *source.SourceMap, span source.Span, fallback string) string {
	if text, ok := sm.SpanText(span); ok {
		return text
	}
	return fallback
}

// SnippetWithApplicability is Snippet, but on failure it also raises the
// caller's applicability so the surrounding suggestion is not auto-applied
// with placeholder text.
func SnippetWithApplicability(sm *source.SourceMap, span source.Span, fallback string, app *diagnostic.Applicability) string {
	text, ok := sm.SpanText(span)
	if !ok {
		if span.IsDummy() {
			diagnostic.Raise(app, diagnostic.Unspecified)
		} else {
			diagnostic.Raise(app, diagnostic.MaybeIncorrect)
		}
		return fallback
	}
	return text
}

// SnippetWithContext returns text that is valid inside the target syntax
// context, walking up macro levels as needed. A span already in the target
// context is returned as-is; a span produced by an expansion is replaced by
// the text of its call site in that context, with the applicability raised
// to MaybeIncorrect because the rewrite no longer quotes the exact node.
func SnippetWithContext(sm *source.SourceMap, span source.Span, ctxt source.SyntaxContext, fallback string, app *diagnostic.Applicability) string {
	if span.Ctxt == ctxt {
		return SnippetWithApplicability(sm, span, fallback, app)
	}
	outer, ok := sm.WalkToCtxt(span, ctxt)
	if !ok {
		diagnostic.Raise(app, diagnostic.Unspecified)
		return fallback
	}
	diagnostic.Raise(app, diagnostic.MaybeIncorrect)
	return SnippetWithApplicability(sm, outer, fallback, app)
}
