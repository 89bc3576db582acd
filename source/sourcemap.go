// Copyright © 2025 The Ferrule authors

package source

import (
	"unicode/utf8"
)

// File is one interned source file. Files are never modified after
// insertion into a SourceMap.
type File struct {
	ID      FileID
	Name    string // display path
	Module  string // logical module path within the crate
	Crate   string // owning crate
	Content []byte

	// lineStarts[i] is the byte offset of the first byte of line i+1.
	// lineStarts[0] is always 0, even for empty files.
	lineStarts []uint32
}

// Expansion records one macro expansion: where it was invoked, which macro
// produced it, and whether that macro is defined outside the analysed crate.
type Expansion struct {
	CallSite Span
	Macro    string
	External bool
}

// SourceMap is the process-wide table of loaded source files and macro
// expansions. Entries are appended on demand and never removed or mutated.
type SourceMap struct {
	files      []*File
	byName     map[string]FileID
	expansions []Expansion // index 0 is unused; ctxt 0 is the root context

	// ctxtRegions records which byte ranges of a file were produced by a
	// non-root expansion, so span-growing operations can refuse to cross
	// a context boundary.
	ctxtRegions map[FileID][]ctxtRegion
}

type ctxtRegion struct {
	start, end uint32
	ctxt       SyntaxContext
}

// NewSourceMap returns an empty source map.
func NewSourceMap() *SourceMap {
	return &SourceMap{
		byName:      make(map[string]FileID),
		expansions:  make([]Expansion, 1),
		ctxtRegions: make(map[FileID][]ctxtRegion),
	}
}

// AddFile interns a source file and returns its ID. Re-adding a name
// creates a fresh entry; the name index always points at the latest.
func (sm *SourceMap) AddFile(name, crate, module string, content []byte) FileID {
	id := FileID(len(sm.files))
	sm.files = append(sm.files, &File{
		ID:         id,
		Name:       name,
		Module:     module,
		Crate:      crate,
		Content:    content,
		lineStarts: buildLineStarts(content),
	})
	sm.byName[name] = id
	return id
}

// File returns the interned file for id, or nil for an unknown or dummy ID.
func (sm *SourceMap) File(id FileID) *File {
	if id == NoFile || int(id) >= len(sm.files) {
		return nil
	}
	return sm.files[id]
}

// Lookup returns the latest file interned under name.
func (sm *SourceMap) Lookup(name string) (FileID, bool) {
	id, ok := sm.byName[name]
	return id, ok
}

// NewExpansion registers a macro expansion and returns its syntax context.
// produced is the byte range of expanded text within the file it landed in;
// a dummy span is allowed for expansions that produced no in-file text.
func (sm *SourceMap) NewExpansion(callSite Span, macro string, external bool, produced Span) SyntaxContext {
	ctxt := SyntaxContext(len(sm.expansions))
	sm.expansions = append(sm.expansions, Expansion{
		CallSite: callSite,
		Macro:    macro,
		External: external,
	})
	if produced.Valid() {
		sm.ctxtRegions[produced.File] = append(sm.ctxtRegions[produced.File], ctxtRegion{
			start: produced.Start,
			end:   produced.End,
			ctxt:  ctxt,
		})
	}
	return ctxt
}

// Expansion returns the expansion record for ctxt. The root context has no
// expansion record.
func (sm *SourceMap) Expansion(ctxt SyntaxContext) (Expansion, bool) {
	if ctxt == RootCtxt || int(ctxt) >= len(sm.expansions) {
		return Expansion{}, false
	}
	return sm.expansions[ctxt], true
}

// CtxtAt returns the syntax context governing a byte offset in a file.
// Offsets outside every registered expansion region are root. When regions
// nest, the innermost (latest registered) match wins.
func (sm *SourceMap) CtxtAt(file FileID, off uint32) SyntaxContext {
	ctxt := RootCtxt
	for _, r := range sm.ctxtRegions[file] {
		if r.start <= off && off < r.end {
			ctxt = r.ctxt
		}
	}
	return ctxt
}

// LineCol resolves a byte offset to a 1-based line and column. The column
// counts Unicode scalar values from the line start; an offset at a line
// start is column 1. Returns false when the offset is past EOF.
func (sm *SourceMap) LineCol(id FileID, off uint32) (LineCol, bool) {
	f := sm.File(id)
	if f == nil || off > uint32(len(f.Content)) {
		return LineCol{}, false
	}
	line := searchLineStarts(f.lineStarts, off)
	start := f.lineStarts[line]
	col := uint32(utf8.RuneCount(f.Content[start:off])) + 1
	return LineCol{Line: uint32(line) + 1, Col: col}, true
}

// SpanText returns the source text exactly covered by the span. Returns
// false for dummy, malformed, or out-of-range spans.
func (sm *SourceMap) SpanText(s Span) (string, bool) {
	f := sm.File(s.File)
	if f == nil || !s.Valid() || s.End > uint32(len(f.Content)) {
		return "", false
	}
	return string(f.Content[s.Start:s.End]), true
}

// Line returns the 1-based source line containing the given offset, without
// its terminator.
func (sm *SourceMap) Line(id FileID, line uint32) (string, bool) {
	f := sm.File(id)
	if f == nil || line == 0 || int(line) > len(f.lineStarts) {
		return "", false
	}
	start := f.lineStarts[line-1]
	end := uint32(len(f.Content))
	if int(line) < len(f.lineStarts) {
		end = f.lineStarts[line]
	}
	text := f.Content[start:end]
	for len(text) > 0 && (text[len(text)-1] == '\n' || text[len(text)-1] == '\r') {
		text = text[:len(text)-1]
	}
	return string(text), true
}

// CheckSourceText evaluates pred on the span's text. Used by suggestions to
// verify the rewrite target still looks as expected. False when the span
// has no text.
func (sm *SourceMap) CheckSourceText(s Span, pred func(string) bool) bool {
	text, ok := sm.SpanText(s)
	return ok && pred(text)
}

// buildLineStarts computes the offsets of line starts. Lines terminate at
// '\n' or at a bare '\r'; a "\r\n" pair counts as a single terminator with
// the '\r' belonging to the preceding line.
func buildLineStarts(content []byte) []uint32 {
	starts := []uint32{0}
	for i := 0; i < len(content); i++ {
		switch content[i] {
		case '\n':
			starts = append(starts, uint32(i)+1)
		case '\r':
			if i+1 < len(content) && content[i+1] == '\n' {
				i++
			}
			starts = append(starts, uint32(i)+1)
		}
	}
	return starts
}

// searchLineStarts returns the index of the line (0-based) containing off.
func searchLineStarts(starts []uint32, off uint32) int {
	lo, hi := 0, len(starts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if starts[mid] <= off {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}
