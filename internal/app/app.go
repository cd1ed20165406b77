package app

import (
	"io"
	"log/slog"
)

// App bundles the streams, logger, and configuration of one invocation. The
// main output stream carries nothing but the exported tree; logs and
// diagnostics go to the error stream.
type App struct {
	inR  io.Reader
	outW io.Writer
	errW io.Writer

	logger *slog.Logger
	config *Config
}

// New is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger.
func New(inR io.Reader, outW, errW io.Writer, config *Config) *App {
	return &App{
		inR:    inR,
		outW:   outW,
		errW:   errW,
		logger: newLogger(config.LogLevel, config.LogFormat, errW),
		config: config,
	}
}
