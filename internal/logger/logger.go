// ABOUTME: Structured logging configuration using log/slog.
// ABOUTME: Logs to stderr for commands, or to a debug file while the TUI owns the terminal.

package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Init configures the default slog logger writing to w.
// LOG_LEVEL: debug, info, warn, error (default: warn)
// LOG_FORMAT: text, json (default: text)
func Init(w io.Writer) *slog.Logger {
	l := New(w, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	slog.SetDefault(l)
	return l
}

// New builds a logger without touching the default
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// InitFile points the default logger at <configDir>/debug.log so log lines
// do not interfere with the terminal display. The returned func closes the file.
// An empty configDir discards logs.
func InitFile(configDir string) (*slog.Logger, func(), error) {
	if configDir == "" {
		return Init(io.Discard), func() {}, nil
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return Init(io.Discard), func() {}, err
	}

	f, err := os.OpenFile(filepath.Join(configDir, "debug.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return Init(io.Discard), func() {}, err
	}
	return Init(f), func() { f.Close() }, nil
}

// parseLevel converts a string log level to slog.Level.
// Commands default to warn so normal output stays clean.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
