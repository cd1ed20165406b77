package app

import (
	"io"
	"log/slog"
)

// newLogger creates and configures a new slog.Logger instance writing to the
// diagnostics stream. It does not set the global logger, allowing for
// isolated logger instances. Unrecognized levels fall back to error so the
// tool stays quiet unless asked otherwise.
func newLogger(levelStr, formatStr string, errW io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	default:
		level = slog.LevelError
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler

	if formatStr == "json" {
		handler = slog.NewJSONHandler(errW, handlerOpts)
	} else {
		handler = slog.NewTextHandler(errW, handlerOpts)
	}

	return slog.New(handler)
}
