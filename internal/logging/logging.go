// Package logging provides centralized logger creation for the dormmatch CLI.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogLevel represents the logging level
type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds logger configuration
type Config struct {
	Level  LogLevel
	Format string // "json" or "text"
	Output io.Writer
}

// DefaultConfig returns a default logger configuration
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Format: FormatText,
		Output: os.Stderr,
	}
}

// ParseLevel converts a level name into a LogLevel.
func ParseLevel(name string) (LogLevel, error) {
	switch level := LogLevel(strings.ToLower(strings.TrimSpace(name))); level {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		return level, nil
	case "":
		return LevelInfo, nil
	default:
		return "", fmt.Errorf("unknown log level %q", name)
	}
}

// SlogLevel maps the level onto slog. Unknown levels map to info.
func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a structured logger for CLI usage.
func NewLogger(config Config) *slog.Logger {
	output := config.Output
	if output == nil {
		output = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level: config.Level.SlogLevel(),
	}

	var handler slog.Handler
	if config.Format == FormatJSON {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	return slog.New(handler)
}

// WithOperation adds operation-related fields to the logger
func WithOperation(logger *slog.Logger, operation string) *slog.Logger {
	return logger.With("operation", operation)
}

// NewTestLogger creates a silent logger for tests.
func NewTestLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelError + 1, // Higher than any real level = silent
	}
	return slog.New(slog.NewTextHandler(io.Discard, opts))
}
