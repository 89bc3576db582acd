// Copyright © 2025 The Ferrule authors

// Package profiler provides lint.Profiler implementations that annotate
// pass execution with tracing spans, for finding the passes a slow run
// spends its time in.
package profiler

import "regexp"

// profiler carries the configuration shared by the annotators.
type profiler struct {
	skipPattern *regexp.Regexp
}

// Option configures an annotator.
type Option func(*profiler)

// WithSkipPattern suppresses spans for passes whose name matches the
// pattern. Phase spans are always recorded.
func WithSkipPattern(re *regexp.Regexp) Option {
	return func(p *profiler) {
		p.skipPattern = re
	}
}

func (p *profiler) applyConfigs(opts ...Option) {
	for _, opt := range opts {
		opt(p)
	}
}

// skipPass reports whether spans for the named pass are suppressed.
func (p *profiler) skipPass(pass string) bool {
	return p.skipPattern != nil && p.skipPattern.MatchString(pass)
}

func nop() {}
