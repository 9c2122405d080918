// Package logging builds the diagnostic logger. Output goes to a file so
// the terminal stays owned by the TUI.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DefaultPath returns the log file location: $XDG_STATE_HOME/wordiz/wordiz.log,
// falling back to ~/.local/state/wordiz/wordiz.log.
func DefaultPath() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "wordiz", "wordiz.log")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "wordiz.log")
	}
	return filepath.Join(home, ".local", "state", "wordiz", "wordiz.log")
}

// ParseLevel maps a configured level name to a slog level. Unknown names
// yield slog.LevelInfo and ok=false.
func ParseLevel(s string) (level slog.Level, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "", "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// Logger wraps a slog.Logger together with its adjustable level and the
// file it writes to.
type Logger struct {
	*slog.Logger
	Level *slog.LevelVar
	out   io.Closer
}

// New opens (or creates) the log file at path and returns a JSON logger
// writing to it. An empty path uses DefaultPath.
func New(path, level string) (*Logger, error) {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	l := NewWriter(f, level)
	l.out = f
	return l, nil
}

// NewWriter returns a JSON logger writing to w.
func NewWriter(w io.Writer, level string) *Logger {
	lv := new(slog.LevelVar)
	parsed, ok := ParseLevel(level)
	lv.Set(parsed)

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lv})
	logger := slog.New(handler).With(slog.String("app", "wordiz"))
	if !ok {
		logger.Warn("unknown log level, defaulting to info", slog.String("level", level))
	}
	return &Logger{Logger: logger, Level: lv}
}

// Discard returns a logger that drops every record.
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.DiscardHandler), Level: new(slog.LevelVar)}
}

// Close closes the underlying log file, if any.
func (l *Logger) Close() error {
	if l == nil || l.out == nil {
		return nil
	}
	return l.out.Close()
}
