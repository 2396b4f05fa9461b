package context

import (
	"context"
	"log/slog"
)

// KeyLogger stores the request-scoped logger on context.Context.
const KeyLogger contextKey = "logger"

// GetLoggerOrDefault returns the logger bound to ctx, or fallback when there is none.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(KeyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}

	return fallback
}

// WithLogger returns ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}
