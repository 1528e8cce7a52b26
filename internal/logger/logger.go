package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

type contextKey string

// ContextKeyRequestID is the key for the request ID in the context.
const ContextKeyRequestID contextKey = "request_id"

// Config holds the configuration of the logger.
type Config struct {
	Level  slog.Level
	Format string
}

// Logger wraps slog.Logger.
type Logger struct {
	*slog.Logger
}

// New creates a logger writing to stdout.
func New(config Config) *Logger {
	return NewWithWriter(os.Stdout, config)
}

// NewWithWriter creates a logger writing to w: JSON in production, tint otherwise.
func NewWithWriter(w io.Writer, config Config) *Logger {
	if config.Format == "json" {
		opts := &slog.HandlerOptions{
			Level: config.Level,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.String(a.Key, a.Value.Time().Format(time.RFC3339))
				}
				return a
			},
		}
		return &Logger{Logger: slog.New(slog.NewJSONHandler(w, opts))}
	}

	opts := &tint.Options{
		Level:      config.Level,
		TimeFormat: time.Kitchen,
	}
	return &Logger{Logger: slog.New(tint.NewHandler(w, opts))}
}

// FromConfig maps LOG_LEVEL and ENV onto a logger config.
func FromConfig(logLevel string, production bool) Config {
	config := Config{
		Level:  slog.LevelInfo,
		Format: "text",
	}

	switch logLevel {
	case "debug":
		config.Level = slog.LevelDebug
	case "warn":
		config.Level = slog.LevelWarn
	case "error":
		config.Level = slog.LevelError
	}

	if production {
		config.Format = "json"
	}
	return config
}

// Nop discards everything. Used by tests.
func Nop() *Logger {
	return NewWithWriter(io.Discard, Config{Level: slog.LevelError, Format: "json"})
}

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// RequestIDFromContext returns the request ID stored by WithRequestID.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ContextKeyRequestID).(string)
	return id
}

// WithContext attaches context-scoped attributes.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if id := RequestIDFromContext(ctx); id != "" {
		return &Logger{Logger: l.With(slog.String("request_id", id))}
	}
	return l
}

// WithComponent creates a new logger with a component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{Logger: l.With(slog.String("component", component))}
}
