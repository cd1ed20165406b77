package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/nestgo/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("nestgo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
nestgo - Convert a JSON list of records into a tree grouped by their attributes.

Records are read from stdin and the tree is written to stdout, both as JSON.
The leftmost nesting level becomes the topmost level of the tree.

Usage:
  nestgo [options] NESTING_LEVEL...

Example:
  cat input.json | nestgo currency country city

Options:
`)
		flagSet.PrintDefaults()
	}

	inputFlag := flagSet.String("input", "", "Read records from this file instead of stdin.")
	iFlag := flagSet.String("i", "", "Read records from this file instead of stdin (shorthand).")
	outputFlag := flagSet.String("output", "", "Write the exported tree to this file instead of stdout.")
	oFlag := flagSet.String("o", "", "Write the exported tree to this file instead of stdout (shorthand).")
	profilesFlag := flagSet.String("profiles", "", "Path to an .hcl profile file or a directory of them.")
	profileFlag := flagSet.String("profile", "", "Take the nesting levels from this named profile.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "error", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	inputPath := *inputFlag
	if inputPath == "" {
		inputPath = *iFlag
	}
	outputPath := *outputFlag
	if outputPath == "" {
		outputPath = *oFlag
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		Levels:       flagSet.Args(),
		InputPath:    inputPath,
		OutputPath:   outputPath,
		ProfilesPath: *profilesFlag,
		ProfileName:  *profileFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.")
	return config, false, nil
}
