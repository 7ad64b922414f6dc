package logger

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/trace"
)

// RequestID adds the chi request ID as "request_id".
func RequestID(ctx context.Context) (slog.Attr, bool) {
	id := middleware.GetReqID(ctx)
	if id == "" {
		return slog.Attr{}, false
	}
	return slog.String("request_id", id), true
}

// TraceID adds the active span's trace ID as "trace_id".
func TraceID(ctx context.Context) (slog.Attr, bool) {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasTraceID() {
		return slog.Attr{}, false
	}
	return slog.String("trace_id", sc.TraceID().String()), true
}
