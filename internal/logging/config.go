package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level     string `yaml:"level" json:"level" validate:"oneof=debug info warn warning error fatal"`
	Format    string `yaml:"format" json:"format" validate:"oneof=text json logfmt"`
	Timestamp bool   `yaml:"timestamp" json:"timestamp"` // whether to include timestamps
	Caller    bool   `yaml:"caller" json:"caller"`       // whether to report file:line
	File      string `yaml:"file,omitempty" json:"file,omitempty"`
}

// DefaultConfig returns a default logging configuration. The level is warn
// so an ordinary run keeps stderr empty.
func DefaultConfig() LoggingConfig {
	return LoggingConfig{
		Level:     "warn",
		Format:    "text",
		Timestamp: true,
	}
}

// DevelopmentConfig returns a configuration suitable for development
func DevelopmentConfig() LoggingConfig {
	config := DefaultConfig()
	config.Level = "debug"
	config.Caller = true
	return config
}

// SetupLogging creates a logger writing to w and installs it as the default.
// customConfig wins over the environment; otherwise "development", "dev" and
// "debug" select DevelopmentConfig and anything else DefaultConfig.
func SetupLogging(w io.Writer, environment string, customConfig *LoggingConfig) (*Logger, error) {
	var config LoggingConfig

	if customConfig != nil {
		config = *customConfig
	} else {
		switch strings.ToLower(environment) {
		case "development", "dev", "debug":
			config = DevelopmentConfig()
		default:
			config = DefaultConfig()
		}
	}

	logger, err := New(w, config)
	if err != nil {
		return nil, fmt.Errorf("failed to configure logger: %w", err)
	}

	SetDefault(logger)
	return logger, nil
}

// GetEnvironmentFromEnvVar determines logging environment from environment variable
func GetEnvironmentFromEnvVar() string {
	env := os.Getenv("DEBUGFIXTURE_ENV")
	if env == "" {
		env = os.Getenv("ENV")
	}
	if env == "" {
		env = "production"
	}
	return env
}

// ParseLevel parses a string log level. "warning" is accepted as an alias
// for "warn".
func ParseLevel(level string) (log.Level, error) {
	l := strings.ToLower(strings.TrimSpace(level))
	if l == "warning" {
		l = "warn"
	}
	parsed, err := log.ParseLevel(l)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("unknown log level: %s", level)
	}
	return parsed, nil
}

func parseFormatter(format string) (log.Formatter, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return log.TextFormatter, nil
	case "json":
		return log.JSONFormatter, nil
	case "logfmt":
		return log.LogfmtFormatter, nil
	default:
		return log.TextFormatter, fmt.Errorf("unknown log format: %s", format)
	}
}
