package config

import (
	"fmt"
	"io"

	"github.com/common-creation/debugfixture/internal/logging"
)

// SetupLogging initializes the logging system from the configuration,
// writing to w, and installs it as the default logger
func (c *Config) SetupLogging(w io.Writer) (*logging.Logger, error) {
	logger, err := logging.SetupLogging(w, "", &c.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to configure logging: %w", err)
	}

	logger.Debug("Logging system initialized",
		"level", c.Logging.Level,
		"format", c.Logging.Format,
		"file", c.Logging.File,
	)

	return logger, nil
}

// GetLoggerWithContext creates a logger with configuration context
func (c *Config) GetLoggerWithContext() *logging.Logger {
	return logging.GetDefault().With(
		"component", "config",
		"format", c.Output.Format,
		"items", len(c.Fixture.Items),
	)
}
