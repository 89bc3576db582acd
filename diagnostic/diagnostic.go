// Copyright © 2025 The Ferrule authors

// Package diagnostic defines the structured findings that lint passes emit
// and a Rust-style renderer for CLI output. It is intentionally independent
// of the lint/ package so that drivers can render diagnostics without
// creating import cycles.
package diagnostic

import (
	"encoding/json"
	"fmt"

	"github.com/ferrulelang/ferrule/source"
)

// Severity indicates the severity level of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNote
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityNote:
		return "note"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes the severity as a JSON string.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON deserializes a severity from a JSON string.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	case "note":
		*s = SeverityNote
	default:
		return fmt.Errorf("unknown severity: %q", str)
	}
	return nil
}

// Label is a span underlined in the rendered diagnostic with short text.
type Label struct {
	Span source.Span `json:"-"`
	Text string      `json:"text"`
}

// Note is a free-standing explanation paragraph, optionally anchored.
type Note struct {
	Span source.Span `json:"-"`
	Text string      `json:"text"`
}

// Help is advisory text, optionally anchored at a span.
type Help struct {
	Span source.Span `json:"-"`
	Text string      `json:"text"`
}

// SuggestionPart is one (span, replacement) edit of a suggestion.
type SuggestionPart struct {
	Span        source.Span `json:"-"`
	Replacement string      `json:"replacement"`
}

// Suggestion is one alternative rewrite: one or more edits that must be
// applied together, plus a confidence label. A multi-part suggestion's
// spans are pairwise disjoint and all lie in the same file.
type Suggestion struct {
	Message       string           `json:"message"`
	Parts         []SuggestionPart `json:"parts"`
	Applicability Applicability    `json:"applicability"`
}

// Diagnostic is a single finding assembled by a lint pass. Once emitted to
// a Sink it must be treated as immutable.
type Diagnostic struct {
	Lint        string       `json:"lint"`
	Severity    Severity     `json:"severity"`
	Primary     source.Span  `json:"-"`
	Message     string       `json:"message"`
	Labels      []Label      `json:"labels,omitempty"`
	Notes       []Note       `json:"notes,omitempty"`
	Helps       []Help       `json:"helps,omitempty"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`

	// Pos is the resolved primary position, filled in by the emitter for
	// display and JSON output.
	Pos Position `json:"pos"`
}

// Position identifies a resolved location in source code.
type Position struct {
	File string `json:"file"`
	Line int    `json:"line"`
	Col  int    `json:"col,omitempty"`
}

// String returns the position in file:line:col format.
func (p Position) String() string {
	if p.Line == 0 {
		return p.File
	}
	if p.Col > 0 {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
	}
	return fmt.Sprintf("%s:%d", p.File, p.Line)
}

// String returns the diagnostic in go vet style: file:line: message (lint).
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s (%s)", d.Pos, d.Message, d.Lint)
}

// ResolvePos fills in the display position from the source map. Dummy
// primary spans leave the position empty.
func (d *Diagnostic) ResolvePos(sm *source.SourceMap) {
	if d.Primary.IsDummy() {
		return
	}
	f := sm.File(d.Primary.File)
	if f == nil {
		return
	}
	d.Pos.File = f.Name
	if lc, ok := sm.LineCol(d.Primary.File, d.Primary.Start); ok {
		d.Pos.Line = int(lc.Line)
		d.Pos.Col = int(lc.Col)
	}
}

// Sink receives finalised diagnostics. The host compiler supplies one; the
// engine never orders or persists emissions itself.
type Sink interface {
	Emit(Diagnostic)
}

// Collector is a Sink that retains diagnostics in emission order.
type Collector struct {
	Diagnostics []Diagnostic
}

// Emit appends the diagnostic.
func (c *Collector) Emit(d Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
}
