// Package log configures structured logging for diskscan.
//
// The CLI's repeatable -v flag maps to slog levels: the default shows only
// warnings and errors, one -v adds informational messages, two or more
// enable debug output.
package log

import (
	"io"
	"log/slog"
)

// Level maps a verbosity count to a slog level.
func Level(verbosity int) slog.Level {
	switch {
	case verbosity <= 0:
		return slog.LevelWarn
	case verbosity == 1:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

// NewHandler creates the text handler used by the CLI, filtering by the
// given verbosity count.
func NewHandler(w io.Writer, verbosity int) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: Level(verbosity),
	})
}

// NewLogger creates a logger with NewHandler.
func NewLogger(w io.Writer, verbosity int) *slog.Logger {
	return slog.New(NewHandler(w, verbosity))
}
