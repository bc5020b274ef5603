package config

import (
	"fmt"
	"strings"

	"github.com/rshade/orgboard/internal/logging"
)

// LoggingConfig configures log level, format and destination.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// Validate checks the level and format names.
func (lc LoggingConfig) Validate() error {
	switch strings.ToLower(lc.Level) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("logging.level %q is not a known level", lc.Level)
	}
	switch strings.ToLower(lc.Format) {
	case logging.FormatJSON, logging.FormatConsole:
	default:
		return fmt.Errorf("logging.format must be %q or %q, got %q", logging.FormatJSON, logging.FormatConsole, lc.Format)
	}
	return nil
}

// ToLoggingConfig converts the section to a logging.Config. A configured file selects
// file output; otherwise logs go to stderr.
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}

	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}

// GetLoggingConfig returns a copy of the Logging section of the global configuration.
// Flag overrides such as --debug are applied by the caller.
func GetLoggingConfig() LoggingConfig {
	return GetGlobalConfig().Logging
}
