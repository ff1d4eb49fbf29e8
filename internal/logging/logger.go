package logging

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contextKey string

const (
	loggerKey contextKey = "logger"
)

// InitLogger initializes the global logger.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

// WithLogger returns a context carrying the given logger
func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger from the context, or the global logger if not found.
func FromContext(ctx context.Context) *zerolog.Logger {
	if logger, ok := ctx.Value(loggerKey).(zerolog.Logger); ok {
		return &logger
	}
	return &log.Logger
}

// StageLogger returns a child logger tagged with a generation stage name.
// Stage logs are debug-level observability only; they never influence
// the generated output.
func StageLogger(ctx context.Context, stage string) zerolog.Logger {
	return FromContext(ctx).With().Str("stage", stage).Logger()
}
