// Package logging configures the process-wide structured logger: JSON to
// stderr with a module attribute, level taken from LOG_LEVEL.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// ParseLevel maps a case-insensitive level name to a slog level; unknown
// names fall back to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a JSON logger writing to w. Debug level adds source locations.
func New(w io.Writer, module, level string) *slog.Logger {
	lvl := ParseLevel(level)
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl == slog.LevelDebug,
	})
	return slog.New(handler).With("module", module)
}

// SetDefault installs a stderr JSON logger as the slog default and returns it.
func SetDefault(module, level string) *slog.Logger {
	logger := New(os.Stderr, module, level)
	slog.SetDefault(logger)
	return logger
}
