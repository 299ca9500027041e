// Package telemetry configures structured logging and carries the logger
// through context.Context.
package telemetry

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Environment variables read by SetupLogger.
const (
	EnvLogLevel  = "LOG_LEVEL"  // DEBUG, INFO, WARN, ERROR
	EnvLogFormat = "LOG_FORMAT" // text (default) or json
)

// LogLevel reads the level from LOG_LEVEL. The default is WARN so that a
// plain run prints only the CLI's own output; -v lowers it to DEBUG.
func LogLevel() slog.Level {
	switch strings.ToUpper(os.Getenv(EnvLogLevel)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// NewLogger builds a logger writing to w. Format comes from LOG_FORMAT.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var handler slog.Handler
	if strings.EqualFold(os.Getenv(EnvLogFormat), "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// SetupLogger initialises the global logger on stderr. When verbose is set
// the level drops to DEBUG regardless of LOG_LEVEL.
func SetupLogger(verbose bool) *slog.Logger {
	level := LogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	logger := NewLogger(os.Stderr, level)
	slog.SetDefault(logger)
	return logger
}

type ctxKey struct{}

// WithLogger adds the logger to the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the context logger, or the global one if none is set.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// WithRunID returns a logger tagged with run_id.
func WithRunID(logger *slog.Logger, runID string) *slog.Logger {
	return logger.With("run_id", runID)
}

// WithStep returns a logger tagged with the task and target of a step.
func WithStep(logger *slog.Logger, task, target string) *slog.Logger {
	return logger.With("task", task, "target", target)
}
