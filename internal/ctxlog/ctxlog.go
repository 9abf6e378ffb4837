// Package ctxlog carries a *slog.Logger through context.Context so that any
// layer of the engine can log without a logger parameter threaded through
// every call.
package ctxlog

import (
	"context"
	"log/slog"
)

// key is unexported so no other package can collide with our context key.
type key struct{}

var loggerKey = key{}

// WithLogger returns a child context carrying the given logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger stored in ctx. A missing logger is a wiring
// bug, not a runtime condition, so it panics rather than degrading silently.
func FromContext(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(loggerKey).(*slog.Logger)
	if !ok {
		panic("ctxlog: logger missing from context")
	}
	return logger
}

// With returns a child context whose logger has the given attributes attached.
func With(ctx context.Context, args ...any) context.Context {
	return WithLogger(ctx, FromContext(ctx).With(args...))
}
