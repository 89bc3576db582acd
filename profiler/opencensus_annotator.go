// Copyright © 2025 The Ferrule authors

package profiler

import (
	"context"

	"go.opencensus.io/trace"

	"github.com/ferrulelang/ferrule/lint"
)

var _ lint.Profiler = &ocAnnotator{}

type ocAnnotator struct {
	profiler
	currentContext context.Context
}

// NewOpenCensusAnnotator records OpenCensus spans per phase and per pass
// hook invocation, parented on parentContext.
func NewOpenCensusAnnotator(parentContext context.Context, opts ...Option) lint.Profiler {
	p := &ocAnnotator{currentContext: parentContext}
	p.profiler.applyConfigs(opts...)
	return p
}

func (p *ocAnnotator) StartPhase(phase, crate string) func() {
	oldContext := p.currentContext
	var span *trace.Span
	p.currentContext, span = trace.StartSpan(p.currentContext, "lint."+phase)
	span.AddAttributes(trace.StringAttribute("ferrule.crate", crate))
	return func() {
		span.End()
		p.currentContext = oldContext
	}
}

func (p *ocAnnotator) StartPass(phase, pass string) func() {
	if p.skipPass(pass) {
		return nop
	}
	oldContext := p.currentContext
	var span *trace.Span
	p.currentContext, span = trace.StartSpan(p.currentContext, pass)
	span.AddAttributes(trace.StringAttribute("ferrule.phase", phase))
	return func() {
		span.End()
		p.currentContext = oldContext
	}
}
