// Copyright © 2025 The Ferrule authors

package profiler

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/ferrulelang/ferrule/lint"
)

// ContextOpenTelemetryTracerKey looks up a parent tracer name from a
// context key.
const ContextOpenTelemetryTracerKey = "otelParentTracer"

var _ lint.Profiler = &otelAnnotator{}

type otelAnnotator struct {
	profiler
	currentContext context.Context
}

// NewOpenTelemetryAnnotator records a span per phase and per pass hook
// invocation under the tracer linked to parentContext.
func NewOpenTelemetryAnnotator(parentContext context.Context, opts ...Option) lint.Profiler {
	p := &otelAnnotator{currentContext: parentContext}
	p.profiler.applyConfigs(opts...)
	return p
}

func contextTracer(ctx context.Context) trace.Tracer {
	tracerName, ok := ctx.Value(ContextOpenTelemetryTracerKey).(string)
	if !ok {
		tracerName = "ferrule"
	}
	return otel.GetTracerProvider().Tracer(tracerName)
}

func (p *otelAnnotator) StartPhase(phase, crate string) func() {
	oldContext := p.currentContext
	var span trace.Span
	p.currentContext, span = contextTracer(p.currentContext).Start(p.currentContext, "lint."+phase)
	span.SetAttributes(
		attribute.String("ferrule.phase", phase),
		attribute.String("ferrule.crate", crate),
	)
	return func() {
		span.End()
		p.currentContext = oldContext
	}
}

func (p *otelAnnotator) StartPass(phase, pass string) func() {
	if p.skipPass(pass) {
		return nop
	}
	oldContext := p.currentContext
	var span trace.Span
	p.currentContext, span = contextTracer(p.currentContext).Start(p.currentContext, pass)
	span.SetAttributes(
		semconv.CodeNamespace("lints"),
		semconv.CodeFunction(pass),
		attribute.String("ferrule.phase", phase),
	)
	return func() {
		span.End()
		p.currentContext = oldContext
	}
}
