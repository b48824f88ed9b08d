package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// contextKey is the type for context keys
type contextKey string

const (
	// RequestIDKey is the context key for request IDs
	RequestIDKey contextKey = "request_id"
	// UserIDKey is the context key for the calling user's id
	UserIDKey contextKey = "user_id"
)

// Logger wraps zerolog for application logging
type Logger struct {
	logger zerolog.Logger
}

// Config holds logging configuration
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json, text
	Output io.Writer
}

// New creates a new logger with the given configuration
func New(cfg Config) *Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	if cfg.Format == "text" {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}
	}

	logger := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &Logger{logger: logger}
}

// SetGlobalLogger sets the global logger instance
func SetGlobalLogger(logger *Logger) {
	log.Logger = logger.logger
}

// Info logs an info message
func (l *Logger) Info(msg string) {
	l.logger.Info().Msg(msg)
}

// Error logs an error message
func (l *Logger) Error(err error, msg string) {
	l.logger.Error().Err(err).Msg(msg)
}

// Zerolog exposes the underlying logger for structured events.
func (l *Logger) Zerolog() *zerolog.Logger {
	return &l.logger
}

// WithContext returns a logger carrying the request id and user id found in ctx,
// built from the global logger.
func WithContext(ctx context.Context) *zerolog.Logger {
	logger := log.With()

	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		logger = logger.Str("request_id", requestID)
	}

	if userID, ok := ctx.Value(UserIDKey).(int64); ok {
		logger = logger.Int64("user_id", userID)
	}

	contextLogger := logger.Logger()
	return &contextLogger
}
