package middleware

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultTracerName = "hxtime"

// TracingConfig configures the OpenTelemetry middleware.
type TracingConfig struct {
	// TracerName is the name of the tracer (default: "hxtime").
	TracerName string

	// Provider supplies the tracer. Default: the global provider.
	Provider trace.TracerProvider
}

// TracingOption configures the OpenTelemetry middleware.
type TracingOption func(*TracingConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracingOption {
	return func(c *TracingConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) TracingOption {
	return func(c *TracingConfig) {
		c.Provider = tp
	}
}

// Tracing returns middleware that opens a server span per component request.
// The span is named "<component>.<action>" and marked as an error for 5xx
// responses.
//
// Configure the provider before serving:
//
//	otel.SetTracerProvider(sdktrace.NewTracerProvider(...))
func Tracing(opts ...TracingOption) func(http.Handler) http.Handler {
	config := TracingConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	if config.Provider == nil {
		config.Provider = otel.GetTracerProvider()
	}
	tracer := config.Provider.Tracer(config.TracerName)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := ParseRoute(r.URL.Path)
			ctx, span := tracer.Start(r.Context(), route.Component+"."+route.Action,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("hxtime.component", route.Component),
					attribute.String("hxtime.action", route.Action),
					attribute.String("http.request.method", r.Method),
				),
			)
			defer span.End()

			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r.WithContext(ctx))

			status := rec.Status()
			span.SetAttributes(attribute.Int("http.response.status_code", status))
			if status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(status))
			}
		})
	}
}
