// Copyright © 2025 The Ferrule authors

package snippet

import (
	"sort"

	"github.com/ferrulelang/ferrule/diagnostic"
	"github.com/ferrulelang/ferrule/source"
)

// MultiPart assembles a multi-edit suggestion. Edits are collected in any
// order; Build sorts them by start offset and verifies they are pairwise
// disjoint and confined to one file. An infeasible rewrite yields ok=false
// and the caller drops the suggestion rather than emitting a broken one.
type MultiPart struct {
	message string
	parts   []diagnostic.SuggestionPart
	app     diagnostic.Applicability
}

// NewMultiPart starts a suggestion with the given message and confidence.
func NewMultiPart(message string, app diagnostic.Applicability) *MultiPart {
	return &MultiPart{message: message, app: app}
}

// Add records one (span, replacement) edit.
func (m *MultiPart) Add(span source.Span, replacement string) *MultiPart {
	m.parts = append(m.parts, diagnostic.SuggestionPart{Span: span, Replacement: replacement})
	return m
}

// Raise makes the suggestion's applicability at least floor.
func (m *MultiPart) Raise(floor diagnostic.Applicability) *MultiPart {
	diagnostic.Raise(&m.app, floor)
	return m
}

// Build finalises the suggestion. It fails (ok=false) when there are no
// edits, when any span is dummy or malformed, when the edits touch more
// than one file, or when two edits overlap.
func (m *MultiPart) Build() (diagnostic.Suggestion, bool) {
	if len(m.parts) == 0 {
		return diagnostic.Suggestion{}, false
	}
	parts := make([]diagnostic.SuggestionPart, len(m.parts))
	copy(parts, m.parts)
	sort.SliceStable(parts, func(i, j int) bool {
		return parts[i].Span.Start < parts[j].Span.Start
	})

	file := parts[0].Span.File
	for i, p := range parts {
		if !p.Span.Valid() || p.Span.File != file {
			return diagnostic.Suggestion{}, false
		}
		if i > 0 && parts[i-1].Span.End > p.Span.Start {
			return diagnostic.Suggestion{}, false
		}
	}
	return diagnostic.Suggestion{
		Message:       m.message,
		Parts:         parts,
		Applicability: m.app,
	}, true
}

// ApplyParts applies a suggestion's edits to the file content they target
// and returns the rewritten text. Parts must already be sorted and
// disjoint, as produced by Build. Used by fix-applying drivers and by tests
// establishing that machine-applicable suggestions parse.
func ApplyParts(content []byte, parts []diagnostic.SuggestionPart) []byte {
	var out []byte
	cursor := uint32(0)
	for _, p := range parts {
		if p.Span.Start < cursor || p.Span.End > uint32(len(content)) {
			continue
		}
		out = append(out, content[cursor:p.Span.Start]...)
		out = append(out, p.Replacement...)
		cursor = p.Span.End
	}
	out = append(out, content[cursor:]...)
	return out
}
