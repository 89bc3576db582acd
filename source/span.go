// Copyright © 2025 The Ferrule authors

// Package source tracks loaded Fer source files and the byte spans that
// diagnostics point at. A span carries the syntax context of the macro
// expansion that produced its text, so lint passes can tell user-written
// code apart from generated code and walk back to the call site a user
// actually wrote.
package source

import "fmt"

// FileID identifies a file interned in a SourceMap.
type FileID uint32

// NoFile is the FileID carried by dummy spans.
const NoFile FileID = ^FileID(0)

// SyntaxContext identifies one macro expansion. Two spans share a context
// iff they originate from the exact same expansion. RootCtxt denotes
// user-written source.
type SyntaxContext uint32

// RootCtxt is the syntax context of user-written source.
const RootCtxt SyntaxContext = 0

// Span is a half-open byte range [Start, End) in one source file, tagged
// with the syntax context that produced the text. Spans are immutable
// values; operations return new spans.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
	Ctxt  SyntaxContext
}

// DummySpan returns a synthetic span that covers no source text.
func DummySpan() Span {
	return Span{File: NoFile}
}

// IsDummy reports whether the span is synthetic and carries no source text.
func (s Span) IsDummy() bool {
	return s.File == NoFile
}

// Empty reports whether the span covers zero bytes.
func (s Span) Empty() bool {
	return s.Start == s.End
}

// Len returns the number of bytes covered.
func (s Span) Len() uint32 {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

// Valid reports whether the span's endpoints are ordered and it names a file.
func (s Span) Valid() bool {
	return !s.IsDummy() && s.Start <= s.End
}

// WithCtxt returns a copy of the span tagged with the given context.
func (s Span) WithCtxt(ctxt SyntaxContext) Span {
	s.Ctxt = ctxt
	return s
}

// To returns a span covering both s and other. Both must be in the same
// file and context; otherwise s is returned unchanged.
func (s Span) To(other Span) Span {
	if s.File != other.File || s.Ctxt != other.Ctxt {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Contains reports whether other lies entirely within s (same file).
func (s Span) Contains(other Span) bool {
	return s.File == other.File && s.Start <= other.Start && other.End <= s.End
}

func (s Span) String() string {
	if s.IsDummy() {
		return "<dummy>"
	}
	return fmt.Sprintf("%d:%d-%d#%d", s.File, s.Start, s.End, s.Ctxt)
}

// LineCol is a 1-based line and column position. Columns count Unicode
// scalar values, not bytes.
type LineCol struct {
	Line uint32
	Col  uint32
}

func (lc LineCol) String() string {
	return fmt.Sprintf("%d:%d", lc.Line, lc.Col)
}
