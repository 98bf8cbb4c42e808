// Package logger wires log/slog for the API. Request handlers and services
// log through FromContext so each line carries the request id.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

type ctxKey struct{}

// Setup installs the default logger: JSON in production, text elsewhere.
func Setup(appEnv string) *slog.Logger {
	return setup(os.Stdout, appEnv)
}

func setup(w io.Writer, appEnv string) *slog.Logger {
	var handler slog.Handler
	if appEnv == "production" {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	l := slog.New(handler)
	slog.SetDefault(l)
	return l
}

func WithContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the request-scoped logger, or the default one.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return slog.Default()
}
