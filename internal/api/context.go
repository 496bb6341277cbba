package api

import (
	"context"
	"log/slog"
)

type contextKey string

const loggerContextKey contextKey = "api_logger"

// LoggerFromContext returns the request-scoped logger, or the default logger
// outside a request
func LoggerFromContext(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(loggerContextKey).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

func contextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}
