// Copyright © 2025 The Ferrule authors

package diagnostic

import (
	"bytes"
	"testing"

	"github.com/ferrulelang/ferrule/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderFixture(t *testing.T) (*Renderer, *source.SourceMap, source.FileID) {
	t.Helper()
	sm := source.NewSourceMap()
	id := sm.AddFile("main.fer", "demo", "demo", []byte("fn main() {\n    if !ready { stop() } else { go_on() }\n}\n"))
	return &Renderer{Color: ColorNever, Sources: sm}, sm, id
}

func TestRenderBasic(t *testing.T) {
	r, _, id := renderFixture(t)
	d := Diagnostic{
		Lint:     "if-not-else",
		Severity: SeverityWarning,
		Primary:  source.Span{File: id, Start: 19, End: 25}, // "!ready"
		Message:  "unnecessary boolean negation in if/else",
		Notes:    []Note{{Text: "swap the branches instead"}},
	}

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, d))
	out := buf.String()

	assert.Contains(t, out, "warning[if-not-else]: unnecessary boolean negation in if/else")
	assert.Contains(t, out, "--> main.fer:2:8")
	assert.Contains(t, out, "if !ready { stop() } else { go_on() }")
	assert.Contains(t, out, "^^^^^^")
	assert.Contains(t, out, "= note: swap the branches instead")
}

func TestRenderSuggestion(t *testing.T) {
	r, _, id := renderFixture(t)
	d := Diagnostic{
		Lint:     "if-not-else",
		Severity: SeverityWarning,
		Primary:  source.Span{File: id, Start: 19, End: 25},
		Message:  "unnecessary boolean negation in if/else",
		Suggestions: []Suggestion{{
			Message:       "swap the branches",
			Parts:         []SuggestionPart{{Span: source.Span{File: id, Start: 19, End: 25}, Replacement: "ready"}},
			Applicability: MachineApplicable,
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, d))
	out := buf.String()

	assert.Contains(t, out, "= help: swap the branches: `ready`")
	assert.NotContains(t, out, "suggestion is", "machine-applicable carries no caution note")
}

func TestRenderCautiousSuggestionNote(t *testing.T) {
	r, _, id := renderFixture(t)
	d := Diagnostic{
		Severity: SeverityError,
		Primary:  source.Span{File: id, Start: 0, End: 2},
		Message:  "boom",
		Suggestions: []Suggestion{{
			Message:       "try this",
			Parts:         []SuggestionPart{{Span: source.Span{File: id, Start: 0, End: 2}, Replacement: "..."}},
			Applicability: HasPlaceholders,
		}},
	}
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, d))
	assert.Contains(t, buf.String(), "note: suggestion is has-placeholders")
}

func TestRenderWithoutSourcesSkipsSpans(t *testing.T) {
	r := &Renderer{Color: ColorNever}
	d := Diagnostic{
		Lint:     "if-not-else",
		Severity: SeverityWarning,
		Primary:  source.Span{File: 1, Start: 19, End: 25},
		Message:  "unnecessary boolean negation in if/else",
		Suggestions: []Suggestion{{
			Message: "swap the branches",
			Parts: []SuggestionPart{
				{Span: source.Span{File: 1, Start: 19, End: 25}, Replacement: "ready"},
				{Span: source.Span{File: 1, Start: 28, End: 38}, Replacement: "{ go_on() }"},
			},
			Applicability: MachineApplicable,
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, d))
	out := buf.String()

	assert.Contains(t, out, "= help: swap the branches")
	assert.NotContains(t, out, "-->", "no span details without a source map")
}

func TestRenderDummySpan(t *testing.T) {
	r, _, _ := renderFixture(t)
	d := Diagnostic{
		Severity: SeverityNote,
		Primary:  source.DummySpan(),
		Message:  "crate-level observation",
	}
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, d))
	assert.Contains(t, buf.String(), "note: crate-level observation")
	assert.NotContains(t, buf.String(), "-->")
}

func TestResolvePos(t *testing.T) {
	_, sm, id := renderFixture(t)
	d := Diagnostic{Primary: source.Span{File: id, Start: 19, End: 25}}
	d.ResolvePos(sm)
	assert.Equal(t, Position{File: "main.fer", Line: 2, Col: 8}, d.Pos)
	assert.Equal(t, "main.fer:2:8", d.Pos.String())
}
