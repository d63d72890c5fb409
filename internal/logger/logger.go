package logger

import (
	"log/slog"
	"os"

	"github.com/emberhollow/adventure/internal/config"
)

// Setup builds the service logger and installs it as the slog default.
// Production gets JSON lines for log collection; anything else gets the
// readable text handler.
func Setup(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.Environment == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// WithRequestID returns a logger scoped to one request.
func WithRequestID(logger *slog.Logger, requestID string) *slog.Logger {
	return logger.With("request_id", requestID)
}
