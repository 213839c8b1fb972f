package slogx

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

func FromContext(ctx context.Context) *slog.Logger {
	l, ok := ctx.Value(ctxKey{}).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return l
}

// WithCorrelationID attaches a correlation id to the context logger so every
// log line for one outbound request carries the same id as the request header.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	l := FromContext(ctx)
	return WithContext(ctx, l.With("correlation_id", id))
}
