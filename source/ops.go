// Copyright © 2025 The Ferrule authors

package source

import "unicode"

// Span-shaping operations. Growing operations refuse to cross into bytes
// governed by a different syntax context and report failure with ok=false;
// shrinking operations cannot cross a boundary and always succeed on a
// valid span.

// ExtendTo grows the span's end forward while pred holds for each rune.
func (sm *SourceMap) ExtendTo(s Span, pred func(rune) bool) (Span, bool) {
	f := sm.File(s.File)
	if f == nil || !s.Valid() {
		return s, false
	}
	end := s.End
	for end < uint32(len(f.Content)) {
		r, size := decodeRune(f.Content[end:])
		if !pred(r) {
			break
		}
		end += uint32(size)
	}
	grown := Span{File: s.File, Start: s.Start, End: end, Ctxt: s.Ctxt}
	if !sm.sameCtxt(grown, s.End, end) {
		return s, false
	}
	return grown, true
}

// WithLeadingWhitespace grows the span's start backward over whitespace.
func (sm *SourceMap) WithLeadingWhitespace(s Span) (Span, bool) {
	return sm.extendBack(s, unicode.IsSpace)
}

// WithLeadingMatch grows the span's start backward while the preceding
// rune equals c.
func (sm *SourceMap) WithLeadingMatch(s Span, c rune) (Span, bool) {
	return sm.extendBack(s, func(r rune) bool { return r == c })
}

func (sm *SourceMap) extendBack(s Span, pred func(rune) bool) (Span, bool) {
	f := sm.File(s.File)
	if f == nil || !s.Valid() {
		return s, false
	}
	start := s.Start
	for start > 0 {
		r, size := decodeLastRune(f.Content[:start])
		if !pred(r) {
			break
		}
		start -= uint32(size)
	}
	grown := Span{File: s.File, Start: start, End: s.End, Ctxt: s.Ctxt}
	if !sm.sameCtxt(grown, start, s.Start) {
		return s, false
	}
	return grown, true
}

// TrimStart shrinks the span's start forward while pred holds.
func (sm *SourceMap) TrimStart(s Span, pred func(rune) bool) Span {
	f := sm.File(s.File)
	if f == nil || !s.Valid() {
		return s
	}
	start := s.Start
	for start < s.End {
		r, size := decodeRune(f.Content[start:s.End])
		if !pred(r) {
			break
		}
		start += uint32(size)
	}
	s.Start = start
	return s
}

// TrimEnd shrinks the span's end backward while pred holds.
func (sm *SourceMap) TrimEnd(s Span, pred func(rune) bool) Span {
	f := sm.File(s.File)
	if f == nil || !s.Valid() {
		return s
	}
	end := s.End
	for end > s.Start {
		r, size := decodeLastRune(f.Content[s.Start:end])
		if !pred(r) {
			break
		}
		end -= uint32(size)
	}
	s.End = end
	return s
}

// sameCtxt reports whether every byte in [from, to) shares the span's
// syntax context.
func (sm *SourceMap) sameCtxt(s Span, from, to uint32) bool {
	for off := from; off < to; off++ {
		if sm.CtxtAt(s.File, off) != s.Ctxt {
			return false
		}
	}
	return true
}
