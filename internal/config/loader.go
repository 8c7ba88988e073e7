package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DEBUGFIXTURE"

// Loader handles configuration loading and saving
type Loader struct {
	// Config file paths in priority order
	searchPaths []string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		searchPaths: getDefaultSearchPaths(),
	}
}

// NewLoaderWithPaths creates a loader that only searches the given paths
func NewLoaderWithPaths(paths ...string) *Loader {
	return &Loader{searchPaths: paths}
}

// Load loads configuration from file and environment variables. A missing
// config file is not an error; defaults are used.
func (l *Loader) Load(explicitPath string) (*Config, error) {
	cfg := NewDefaultConfig()

	configPath := ""
	if explicitPath != "" {
		configPath = explicitPath
	} else {
		for _, path := range l.searchPaths {
			if fileExists(path) {
				configPath = path
				break
			}
		}
	}

	if configPath != "" {
		if err := l.loadFromFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	}

	if err := applyEnvironmentOverrides(cfg); err != nil {
		return nil, fmt.Errorf("invalid environment override: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to file
func (l *Loader) Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetConfigPath returns the path where config would be loaded from
func (l *Loader) GetConfigPath(explicitPath string) string {
	if explicitPath != "" {
		return explicitPath
	}

	for _, path := range l.searchPaths {
		if fileExists(path) {
			return path
		}
	}

	return DefaultConfigPath()
}

// DefaultConfigPath is where `config init` writes when no path is given.
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "debugfixture.yaml"
	}
	return filepath.Join(homeDir, ".config", "debugfixture", "config.yaml")
}

// loadFromFile decodes the YAML file at path over cfg. Keys absent from
// the file keep their current values.
func (l *Loader) loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}

	return nil
}

// getDefaultSearchPaths returns the default configuration search paths
func getDefaultSearchPaths() []string {
	paths := []string{}

	if envPath := os.Getenv(EnvPrefix + "_CONFIG_PATH"); envPath != "" {
		paths = append(paths, envPath)
	}

	paths = append(paths, "debugfixture.yaml")

	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".config", "debugfixture", "config.yaml"))
	}

	return paths
}

// applyEnvironmentOverrides applies environment variable overrides to config
func applyEnvironmentOverrides(cfg *Config) error {
	if banner := os.Getenv(EnvPrefix + "_BANNER"); banner != "" {
		cfg.Fixture.Banner = banner
	}
	if v := os.Getenv(EnvPrefix + "_A"); v != "" {
		a, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("%s_A: %w", EnvPrefix, err)
		}
		cfg.Fixture.A = a
	}
	if v := os.Getenv(EnvPrefix + "_B"); v != "" {
		b, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("%s_B: %w", EnvPrefix, err)
		}
		cfg.Fixture.B = b
	}
	if v := os.Getenv(EnvPrefix + "_ITEMS"); v != "" {
		items, err := ParseItems(v)
		if err != nil {
			return fmt.Errorf("%s_ITEMS: %w", EnvPrefix, err)
		}
		cfg.Fixture.Items = items
	}

	if format := os.Getenv(EnvPrefix + "_FORMAT"); format != "" {
		cfg.Output.Format = strings.ToLower(format)
	}

	if logLevel := os.Getenv(EnvPrefix + "_LOG_LEVEL"); logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFile := os.Getenv(EnvPrefix + "_LOG_FILE"); logFile != "" {
		cfg.Logging.File = logFile
	}
	if logFormat := os.Getenv(EnvPrefix + "_LOG_FORMAT"); logFormat != "" {
		cfg.Logging.Format = logFormat
	}

	return nil
}

// ParseItems parses a comma separated list of integers such as "1,2,3".
func ParseItems(s string) ([]int64, error) {
	parts := strings.Split(s, ",")
	items := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid item %q: %w", p, err)
		}
		items = append(items, n)
	}
	return items, nil
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// CreateSampleConfig creates a sample configuration file
func CreateSampleConfig(path string) error {
	if fileExists(path) {
		return fmt.Errorf("config file already exists: %s", path)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0644); err != nil {
		return fmt.Errorf("failed to write sample config: %w", err)
	}

	return nil
}

const sampleConfig = `# debugfixture configuration
# Every key is optional; omitted keys keep the built-in defaults.

fixture:
  # First line printed by a run
  banner: "Starting Rust debug test"

  # Operands of the sum/product step (|value| <= 1000000000)
  a: 10
  b: 20

  # Sequence accumulated into the running total (at most 1024 items)
  items: [1, 2, 3, 4, 5]

output:
  # text or json
  format: text
  # pretty-print json output
  indent: false

logging:
  # debug, info, warn, error
  level: warn
  # text, json, logfmt
  format: text
  timestamp: true
  caller: false
  # file: /tmp/debugfixture.log
`

