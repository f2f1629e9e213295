package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the todoreg tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("todoreg")

// StartCallSpan starts a span for a service call.
//
// The span uses the global OTel tracer provider. Configure the provider
// before serving traffic:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func StartCallSpan(ctx context.Context, method, requestID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "todoreg.call."+method,
		trace.WithAttributes(
			attribute.String("call.method", method),
			attribute.String("call.request_id", requestID),
		),
		trace.WithSpanKind(trace.SpanKindServer),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
