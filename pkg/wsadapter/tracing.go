package wsadapter

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// startConnectSpan opens a span covering the dial of one connection
// attempt; it ends when the dial returns, with an Ok or Error status.
// Callers must End it exactly once.
func startConnectSpan(ctx context.Context, tracer trace.Tracer, sessionID string, attempt int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "wsadapter.connect",
		trace.WithAttributes(
			attribute.String("session_id", sessionID),
			attribute.Int("attempt", attempt),
		),
	)
}

func endSpanOK(span trace.Span) {
	span.SetStatus(codes.Ok, "")
	span.End()
}

func endSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.End()
}
