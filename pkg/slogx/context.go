package slogx

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// WithContext returns a copy of ctx carrying logger.
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the logger carried by ctx, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	return FromContextOr(ctx, slog.Default())
}

// FromContextOr returns the logger carried by ctx, or fallback.
func FromContextOr(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if l, ok := lookup(ctx); ok {
		return l
	}
	return fallback
}

// With returns a copy of ctx whose logger also carries args. The base logger
// is the one already in ctx, else fallback.
func With(ctx context.Context, fallback *slog.Logger, args ...any) context.Context {
	return WithContext(ctx, FromContextOr(ctx, fallback).With(args...))
}

func lookup(ctx context.Context) (*slog.Logger, bool) {
	l, ok := ctx.Value(ctxKey{}).(*slog.Logger)
	return l, ok && l != nil
}
