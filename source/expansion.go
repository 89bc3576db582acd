// Copyright © 2025 The Ferrule authors

package source

import (
	"unicode/utf8"
)

// FromExpansion reports whether the span's text was produced by a macro
// rather than written by the user.
func FromExpansion(s Span) bool {
	return s.Ctxt != RootCtxt
}

// InExternalMacro reports whether the span originates from the expansion of
// a macro defined outside the analysed crate. Lints that would otherwise
// fire on generated code consult this and bail out.
func (sm *SourceMap) InExternalMacro(s Span) bool {
	ctxt := s.Ctxt
	for ctxt != RootCtxt {
		exp, ok := sm.Expansion(ctxt)
		if !ok {
			return false
		}
		if exp.External {
			return true
		}
		ctxt = exp.CallSite.Ctxt
	}
	return false
}

// WalkToCtxt walks up the expansion chain from s until a span in the target
// context is found. Returns false when the chain ends without reaching it.
func (sm *SourceMap) WalkToCtxt(s Span, target SyntaxContext) (Span, bool) {
	for {
		if s.Ctxt == target {
			return s, true
		}
		exp, ok := sm.Expansion(s.Ctxt)
		if !ok {
			return Span{}, false
		}
		s = exp.CallSite
	}
}

// SourceCallsite fully walks up the expansion chain to the root context.
// A root span is returned unchanged.
func (sm *SourceMap) SourceCallsite(s Span) Span {
	for s.Ctxt != RootCtxt {
		exp, ok := sm.Expansion(s.Ctxt)
		if !ok {
			return s
		}
		s = exp.CallSite
	}
	return s
}

func decodeRune(b []byte) (rune, int) {
	r, size := utf8.DecodeRune(b)
	if r == utf8.RuneError && size <= 1 {
		return r, 1
	}
	return r, size
}

func decodeLastRune(b []byte) (rune, int) {
	r, size := utf8.DecodeLastRune(b)
	if r == utf8.RuneError && size <= 1 {
		return r, 1
	}
	return r, size
}
