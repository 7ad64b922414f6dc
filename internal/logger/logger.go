// Package logger builds the structured slog loggers used by the hxtime
// server. Request-scoped values are pulled from the context on every call.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// New creates a JSON-formatted logger writing to w at the given level, with
// optional context extractors.
func New(w io.Writer, level slog.Level, extractors ...ContextExtractor) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(NewLogHandlerDecorator(h, extractors...))
}

// NewNope creates a no-op logger that discards all output.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps a config string to a slog level. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("logger: unknown level %q", s)
}
