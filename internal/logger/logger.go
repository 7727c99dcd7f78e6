// Package logger provides the logging abstraction used by myquery.
// It wraps log/slog and lets callers plug in their own implementation.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger defines the logging interface for myquery.
// Implementations should handle structured logging with key-value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// NoopLogger discards everything. It is the default when no logger is configured.
type NoopLogger struct{}

// Debug does nothing.
func (n *NoopLogger) Debug(_ string, _ ...any) {}

// Info does nothing.
func (n *NoopLogger) Info(_ string, _ ...any) {}

// Warn does nothing.
func (n *NoopLogger) Warn(_ string, _ ...any) {}

// Error does nothing.
func (n *NoopLogger) Error(_ string, _ ...any) {}

// SlogAdapter wraps a *slog.Logger to implement Logger.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new logger adapter wrapping an slog.Logger.
// The provided logger must not be nil.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Debug logs a debug-level message.
func (a *SlogAdapter) Debug(msg string, args ...any) {
	a.logger.Debug(msg, args...)
}

// Info logs an info-level message.
func (a *SlogAdapter) Info(msg string, args ...any) {
	a.logger.Info(msg, args...)
}

// Warn logs a warning-level message.
func (a *SlogAdapter) Warn(msg string, args ...any) {
	a.logger.Warn(msg, args...)
}

// Error logs an error-level message.
func (a *SlogAdapter) Error(msg string, args ...any) {
	a.logger.Error(msg, args...)
}

// Config describes a slog-backed logger.
type Config struct {
	Level     slog.Level
	Format    string // "json" or "text"
	AddSource bool
	Writer    io.Writer
}

// DefaultConfig returns an info-level text logger writing to stderr.
func DefaultConfig() Config {
	return Config{
		Level:  slog.LevelInfo,
		Format: "text",
		Writer: os.Stderr,
	}
}

// LoadConfig reads MYQUERY_LOG_LEVEL and MYQUERY_LOG_FORMAT on top of DefaultConfig.
// Unknown values are ignored.
func LoadConfig() Config {
	cfg := DefaultConfig()

	switch strings.ToUpper(os.Getenv("MYQUERY_LOG_LEVEL")) {
	case "DEBUG":
		cfg.Level = slog.LevelDebug
	case "INFO":
		cfg.Level = slog.LevelInfo
	case "WARN":
		cfg.Level = slog.LevelWarn
	case "ERROR":
		cfg.Level = slog.LevelError
	}

	if format := os.Getenv("MYQUERY_LOG_FORMAT"); format == "text" || format == "json" {
		cfg.Format = format
	}

	return cfg
}

// New builds a Logger from cfg.
func New(cfg Config) *SlogAdapter {
	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return NewSlogAdapter(slog.New(handler))
}
