// Copyright © 2025 The Ferrule authors

package lint

import (
	"github.com/ferrulelang/ferrule/ast"
	"github.com/ferrulelang/ferrule/config"
	"github.com/ferrulelang/ferrule/diagnostic"
	"github.com/ferrulelang/ferrule/hir"
	"github.com/ferrulelang/ferrule/msrv"
	"github.com/ferrulelang/ferrule/source"
)

// Context is what a running pass sees: the sources, the configuration, the
// MSRV in scope, and the emission entry points. Level resolution happens at
// emission time against the walker's current tree position, so a pass never
// checks levels itself.
type Context struct {
	sources *source.SourceMap
	cfg     *config.Config
	sink    diagnostic.Sink
	levels  *levels
	msrv    *msrv.Stack
}

// Sources returns the source map for snippet extraction.
func (cx *Context) Sources() *source.SourceMap { return cx.sources }

// Cfg returns the engine configuration.
func (cx *Context) Cfg() *config.Config { return cx.cfg }

// MSRV reports whether the feature is usable under the innermost MSRV in
// scope. With no MSRV configured every feature is usable.
func (cx *Context) MSRV(f msrv.Feature) bool {
	return cx.msrv.Meets(f)
}

// LateContext extends Context with the resolved crate for late passes.
type LateContext struct {
	*Context
	Crate *hir.Crate
}

// TypeOf returns the resolved type of an expression, or nil.
func (cx *LateContext) TypeOf(e ast.Expr) *hir.Type {
	return cx.Crate.Types.TypeOf(e)
}

// SpanLint emits a plain diagnostic for lint at span. At allow level this
// is a no-op; at expect level the matching expectation is fulfilled and
// nothing is emitted.
func (cx *Context) SpanLint(l *Lint, span source.Span, msg string) {
	cx.emit(l, span, msg, nil)
}

// SpanLintAndHelp emits a diagnostic with an attached help line. helpSpan
// may be dummy for un-anchored help.
func (cx *Context) SpanLintAndHelp(l *Lint, span source.Span, msg string, helpSpan source.Span, help string) {
	cx.emit(l, span, msg, func(d *diagnostic.Diagnostic) {
		d.Helps = append(d.Helps, diagnostic.Help{Span: helpSpan, Text: help})
	})
}

// SpanLintAndNote emits a diagnostic with an attached note.
func (cx *Context) SpanLintAndNote(l *Lint, span source.Span, msg string, noteSpan source.Span, note string) {
	cx.emit(l, span, msg, func(d *diagnostic.Diagnostic) {
		d.Notes = append(d.Notes, diagnostic.Note{Span: noteSpan, Text: note})
	})
}

// SpanLintAndSugg emits a diagnostic with a single-part suggestion
// replacing span by replacement.
func (cx *Context) SpanLintAndSugg(l *Lint, span source.Span, msg, suggMsg, replacement string, app diagnostic.Applicability) {
	cx.emit(l, span, msg, func(d *diagnostic.Diagnostic) {
		d.Suggestions = append(d.Suggestions, diagnostic.Suggestion{
			Message:       suggMsg,
			Parts:         []diagnostic.SuggestionPart{{Span: span, Replacement: replacement}},
			Applicability: app,
		})
	})
}

// SpanLintAndThen emits a diagnostic after letting the pass decorate it.
// The decorate callback only runs when the lint is enabled here, so
// expensive suggestion building is free under allow.
func (cx *Context) SpanLintAndThen(l *Lint, span source.Span, msg string, decorate func(*diagnostic.Diagnostic)) {
	cx.emit(l, span, msg, decorate)
}

func (cx *Context) emit(l *Lint, span source.Span, msg string, decorate func(*diagnostic.Diagnostic)) {
	entry := cx.levels.resolve(l)
	switch entry.level {
	case LevelAllow:
		return
	case LevelExpect:
		cx.levels.expect.fulfill(entry.expectID)
		return
	}

	d := diagnostic.Diagnostic{
		Lint:    l.Name,
		Message: msg,
		Primary: span,
	}
	if entry.level == LevelDeny {
		d.Severity = diagnostic.SeverityError
	} else {
		d.Severity = diagnostic.SeverityWarning
	}
	if decorate != nil {
		decorate(&d)
	}
	d.ResolvePos(cx.sources)
	cx.sink.Emit(d)
}
