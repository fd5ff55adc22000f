package config

import (
	"fmt"
	"io"
	"os"
)

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	// Log level: debug, info, warn, error
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`

	// Log format: json, text
	Format string `mapstructure:"format" validate:"required,oneof=json text"`

	// Output destination: stdout, stderr, file
	Output string `mapstructure:"output" validate:"required,oneof=stdout stderr file"`

	// File path (required if output is "file")
	FilePath string `mapstructure:"file_path"`
}

// Writer resolves the configured output destination. File output opens
// the path in append mode; the caller owns closing it.
func (c *LoggingConfig) Writer() (io.Writer, error) {
	switch c.Output {
	case "stderr":
		return os.Stderr, nil
	case "file":
		if c.FilePath == "" {
			return nil, fmt.Errorf("logging output is \"file\" but file_path is empty")
		}
		return os.OpenFile(c.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	default:
		return os.Stdout, nil
	}
}
