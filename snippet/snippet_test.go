// Copyright © 2025 The Ferrule authors

package snippet

import (
	"testing"

	"github.com/ferrulelang/ferrule/diagnostic"
	"github.com/ferrulelang/ferrule/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnippet(t *testing.T) {
	sm := source.NewSourceMap()
	id := sm.AddFile("main.fer", "demo", "demo", []byte("let x = compute(a, b);"))

	assert.Equal(t, "compute(a, b)", Snippet(sm, source.Span{File: id, Start: 8, End: 21}, ".."))
	assert.Equal(t, "..", Snippet(sm, source.DummySpan(), ".."))
}

func TestSnippetWithApplicability(t *testing.T) {
	sm := source.NewSourceMap()
	id := sm.AddFile("main.fer", "demo", "demo", []byte("foo"))

	app := diagnostic.MachineApplicable
	got := SnippetWithApplicability(sm, source.Span{File: id, Start: 0, End: 3}, "..", &app)
	assert.Equal(t, "foo", got)
	assert.Equal(t, diagnostic.MachineApplicable, app, "success leaves applicability alone")

	got = SnippetWithApplicability(sm, source.DummySpan(), "..", &app)
	assert.Equal(t, "..", got)
	assert.Equal(t, diagnostic.Unspecified, app, "dummy span disables auto-apply")

	app = diagnostic.MachineApplicable
	SnippetWithApplicability(sm, source.Span{File: id, Start: 0, End: 99}, "..", &app)
	assert.Equal(t, diagnostic.MaybeIncorrect, app, "unreadable span advises review")
}

func TestSnippetWithContext(t *testing.T) {
	sm := source.NewSourceMap()
	id := sm.AddFile("main.fer", "demo", "demo", []byte("mk!(arg); expanded_body"))
	callSite := source.Span{File: id, Start: 0, End: 8}
	ctxt := sm.NewExpansion(callSite, "mk", false, source.Span{File: id, Start: 10, End: 23})
	inner := source.Span{File: id, Start: 10, End: 23, Ctxt: ctxt}

	// Same context: exact text, applicability untouched.
	app := diagnostic.MachineApplicable
	got := SnippetWithContext(sm, inner, ctxt, "..", &app)
	assert.Equal(t, "expanded_body", got)
	assert.Equal(t, diagnostic.MachineApplicable, app)

	// Walking out to the root context anchors at the call site and the
	// rewrite is no longer exact.
	got = SnippetWithContext(sm, inner, source.RootCtxt, "..", &app)
	assert.Equal(t, "mk!(arg)", got)
	assert.Equal(t, diagnostic.MaybeIncorrect, app)

	// Unreachable context gives the fallback and forbids auto-apply.
	app = diagnostic.MachineApplicable
	other := sm.NewExpansion(callSite, "other", false, source.Span{})
	got = SnippetWithContext(sm, callSite, other, "..", &app)
	assert.Equal(t, "..", got)
	assert.Equal(t, diagnostic.Unspecified, app)
}

func TestMultiPartBuild(t *testing.T) {
	id := source.FileID(0)
	span := func(a, b uint32) source.Span { return source.Span{File: id, Start: a, End: b} }

	t.Run("sorts and accepts disjoint edits", func(t *testing.T) {
		sugg, ok := NewMultiPart("reorder", diagnostic.MachineApplicable).
			Add(span(10, 14), "b").
			Add(span(0, 4), "a").
			Build()
		require.True(t, ok)
		require.Len(t, sugg.Parts, 2)
		assert.Equal(t, uint32(0), sugg.Parts[0].Span.Start)
		assert.Equal(t, uint32(10), sugg.Parts[1].Span.Start)
	})

	t.Run("rejects overlap", func(t *testing.T) {
		_, ok := NewMultiPart("x", diagnostic.MachineApplicable).
			Add(span(0, 5), "a").
			Add(span(4, 8), "b").
			Build()
		assert.False(t, ok)
	})

	t.Run("rejects cross-file edits", func(t *testing.T) {
		_, ok := NewMultiPart("x", diagnostic.MachineApplicable).
			Add(span(0, 2), "a").
			Add(source.Span{File: 7, Start: 5, End: 6}, "b").
			Build()
		assert.False(t, ok)
	})

	t.Run("rejects empty and dummy", func(t *testing.T) {
		_, ok := NewMultiPart("x", diagnostic.MachineApplicable).Build()
		assert.False(t, ok)
		_, ok = NewMultiPart("x", diagnostic.MachineApplicable).Add(source.DummySpan(), "a").Build()
		assert.False(t, ok)
	})

	t.Run("raise is monotone", func(t *testing.T) {
		sugg, ok := NewMultiPart("x", diagnostic.MachineApplicable).
			Add(span(0, 1), "a").
			Raise(diagnostic.MaybeIncorrect).
			Raise(diagnostic.MachineApplicable).
			Build()
		require.True(t, ok)
		assert.Equal(t, diagnostic.MaybeIncorrect, sugg.Applicability)
	})
}

func TestApplyParts(t *testing.T) {
	content := []byte("if !v.is_empty() { a() } else { b() }")
	sugg, ok := NewMultiPart("swap", diagnostic.MachineApplicable).
		Add(source.Span{Start: 3, End: 16}, "v.is_empty()").
		Add(source.Span{Start: 19, End: 22}, "b()").
		Add(source.Span{Start: 32, End: 35}, "a()").
		Build()
	require.True(t, ok)
	got := ApplyParts(content, sugg.Parts)
	assert.Equal(t, "if v.is_empty() { b() } else { a() }", string(got))
}
