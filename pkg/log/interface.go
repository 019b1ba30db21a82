// Package log provides the structured logging interface used across
// randforest.
//
// The Logger interface mirrors log/slog so that backends can be swapped:
// the package ships a zerolog implementation (the default), a slog setup for
// JSON output with cockroachdb stack traces, and an in-memory TestLogger.
//
// Example usage:
//
//	logger := log.GetLogger().With(log.ModelNameKey, "Forest")
//	logger.Info("build started",
//	    log.OperationKey, log.OperationFit,
//	    log.SamplesKey, 60000,
//	    log.TreesKey, 40,
//	)
package log

import (
	"context"
)

// Logger is a leveled, structured logger. fields are alternating key/value
// pairs; an error passed in a key position is logged under ErrAttrKey.
type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
	Error(msg string, fields ...any)

	// With returns a Logger that adds fields to every record.
	With(fields ...any) Logger

	// Enabled reports whether records at level would be emitted. Use it to
	// skip building expensive fields.
	Enabled(ctx context.Context, level Level) bool
}

// Level is a logging level with slog.Level values.
type Level int

const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the upper-case level name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LoggerProvider creates loggers that share one configuration.
type LoggerProvider interface {
	GetLogger() Logger
	GetLoggerWithName(name string) Logger
	SetLevel(level Level)
}
