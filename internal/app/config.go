package app

import "github.com/cockroachdb/errors"

// Config holds everything one conversion run needs.
type Config struct {
	// Levels are the nesting attributes, top of the tree first. They come
	// from positional arguments or from a named profile, never both.
	Levels []string

	InputPath  string // JSON records; empty or "-" means stdin
	OutputPath string // exported tree; empty or "-" means stdout

	ProfilesPath string // .hcl profile file or directory
	ProfileName  string // profile supplying the levels

	LogFormat string
	LogLevel  string
}

// NewConfig validates the raw values assembled by the CLI layer.
func NewConfig(cfg Config) (*Config, error) {
	hasLevels := len(cfg.Levels) > 0
	hasProfile := cfg.ProfileName != ""

	if hasLevels && hasProfile {
		return nil, errors.New("nesting levels and -profile are mutually exclusive; pass one or the other")
	}
	if !hasLevels && !hasProfile {
		return nil, errors.New("nesting levels are required: pass them as arguments or select one with -profile")
	}
	if hasProfile && cfg.ProfilesPath == "" {
		return nil, errors.New("-profile requires -profiles to point at the profile definitions")
	}

	return &cfg, nil
}
