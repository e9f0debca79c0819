package app

import (
	"io"
	"log/slog"
)

// newLogger builds the app's own logger on outW, never touching the global
// default. Unknown levels fall back to info; the CLI has already validated
// the strings by the time they reach here.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	level := slog.LevelInfo
	_ = level.UnmarshalText([]byte(levelStr))

	opts := &slog.HandlerOptions{Level: level}
	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(outW, opts))
	}
	return slog.New(slog.NewTextHandler(outW, opts))
}
