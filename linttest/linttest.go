// Copyright © 2025 The Ferrule authors

// Package linttest provides fixtures for testing lint passes without a Fer
// parser: tests intern source text, locate spans by substring, assemble the
// tree by hand, and drive the regular pass runner over it.
package linttest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ferrulelang/ferrule/ast"
	"github.com/ferrulelang/ferrule/config"
	"github.com/ferrulelang/ferrule/diagnostic"
	"github.com/ferrulelang/ferrule/hir"
	"github.com/ferrulelang/ferrule/lint"
	"github.com/ferrulelang/ferrule/snippet"
	"github.com/ferrulelang/ferrule/source"
)

// Fixture is one in-memory crate under test.
type Fixture struct {
	t       testing.TB
	SM      *source.SourceMap
	File    source.FileID
	Content string
	Crate   *ast.Crate
}

// NewFixture interns content as a single-file crate named "test".
func NewFixture(t testing.TB, content string) *Fixture {
	t.Helper()
	sm := source.NewSourceMap()
	id := sm.AddFile("test.fer", "test", "test", []byte(content))
	return &Fixture{
		t:       t,
		SM:      sm,
		File:    id,
		Content: content,
		Crate: &ast.Crate{
			Name:      "test",
			CrateSpan: source.Span{File: id, End: uint32(len(content))},
		},
	}
}

// Span returns the span of the first occurrence of substr, failing the test
// when absent.
func (f *Fixture) Span(substr string) source.Span {
	f.t.Helper()
	return f.SpanN(substr, 0)
}

// SpanN returns the span of the n-th (0-based) occurrence of substr.
func (f *Fixture) SpanN(substr string, n int) source.Span {
	f.t.Helper()
	from := 0
	for {
		off := strings.Index(f.Content[from:], substr)
		require.GreaterOrEqual(f.t, off, 0, "substring %q (occurrence %d) not in fixture", substr, n)
		start := from + off
		if n == 0 {
			return source.Span{File: f.File, Start: uint32(start), End: uint32(start + len(substr))}
		}
		n--
		from = start + 1
	}
}

// AddItem appends a top-level item to the crate.
func (f *Fixture) AddItem(items ...*ast.Item) {
	f.Crate.Items = append(f.Crate.Items, items...)
}

// Apply applies a suggestion's edits to the fixture content. Parts from
// MultiPart.Build are sorted and disjoint already; hand-built parts must be
// in offset order.
func (f *Fixture) Apply(s diagnostic.Suggestion) string {
	return string(snippet.ApplyParts([]byte(f.Content), s.Parts))
}

// RunEarly drives the early passes over the fixture and returns everything
// they emitted.
func RunEarly(t testing.TB, f *Fixture, cfg *config.Config, passes ...*lint.EarlyPass) []diagnostic.Diagnostic {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	reg := lint.NewRegistry()
	for _, p := range passes {
		reg.RegisterEarly(p)
	}
	sink := &diagnostic.Collector{}
	r, err := lint.NewRunner(reg, f.SM, cfg, sink)
	require.NoError(t, err)
	r.RunEarly(f.Crate)
	r.Finish()
	return sink.Diagnostics
}

// RunLate drives the late passes with the given type oracle.
func RunLate(t testing.TB, f *Fixture, cfg *config.Config, types hir.TypeCtx, passes ...*lint.LatePass) []diagnostic.Diagnostic {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	reg := lint.NewRegistry()
	for _, p := range passes {
		reg.RegisterLate(p)
	}
	sink := &diagnostic.Collector{}
	r, err := lint.NewRunner(reg, f.SM, cfg, sink)
	require.NoError(t, err)
	r.RunLate(hir.NewCrate(f.Crate, f.SM, types))
	r.Finish()
	return sink.Diagnostics
}

// FnItem wraps a body in a minimal fn item so expression-level fixtures
// stay terse.
func FnItem(name string, span source.Span, body *ast.Block) *ast.Item {
	return &ast.Item{
		Kind:     ast.ItemFn,
		Name:     name,
		Fn:       &ast.FnDecl{Body: body},
		ItemSpan: span,
	}
}

// ExprBody wraps expressions into a block of expression statements.
func ExprBody(span source.Span, exprs ...ast.Expr) *ast.Block {
	b := &ast.Block{BlockSpan: span}
	for _, e := range exprs {
		b.Stmts = append(b.Stmts, &ast.ExprStmt{X: e, Semi: true, StmtSpan: e.Span()})
	}
	return b
}
