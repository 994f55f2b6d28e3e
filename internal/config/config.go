// ABOUTME: Configuration loading and parsing for nexus-chat
// ABOUTME: Supports YAML files with environment variable expansion and duration parsing

package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete nexus-chat configuration
type Config struct {
	API      APIConfig      `yaml:"api"`
	Storage  StorageConfig  `yaml:"storage"`
	Location LocationConfig `yaml:"location"`
	Logging  LoggingConfig  `yaml:"logging"`
	Reveal   RevealConfig   `yaml:"reveal"`
}

// APIConfig holds backend endpoint configuration
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
}

// StorageConfig holds conversation database configuration
type StorageConfig struct {
	Path string `yaml:"path"`
}

// LocationConfig holds the fallback position used for hospital search
// and emergency dispatch, and how long to wait for a position before
// giving up.
type LocationConfig struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`

	Timeout time.Duration `yaml:"-"`

	// Raw string value for YAML unmarshaling
	TimeoutRaw string `yaml:"timeout"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// RevealConfig controls the incremental display of bot replies
type RevealConfig struct {
	Enabled *bool `yaml:"enabled"`
}

// RevealEnabled reports whether bot replies are revealed word by word.
// Defaults to true when unset.
func (c *Config) RevealEnabled() bool {
	if c.Reveal.Enabled == nil {
		return true
	}
	return *c.Reveal.Enabled
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		API: APIConfig{BaseURL: "http://localhost:8000"},
		Storage: StorageConfig{
			Path: filepath.Join(dataDir(), "chat.db"),
		},
		Location: LocationConfig{
			Timeout: 10 * time.Second,
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// Load locates and reads the configuration. Locations, in order:
//
//  1. Path from NEXUS_CHAT_CONFIG environment variable
//  2. ./config.yaml (current directory)
//  3. $XDG_CONFIG_HOME/nexus-chat/config.yaml
//
// If no file exists, defaults are returned.
func Load() (*Config, error) {
	if path := os.Getenv("NEXUS_CHAT_CONFIG"); path != "" {
		return LoadFromPath(path)
	}
	for _, path := range []string{"config.yaml", filepath.Join(configDir(), "config.yaml")} {
		if _, err := os.Stat(path); err == nil {
			return LoadFromPath(path)
		}
	}
	return Default(), nil
}

// LoadFromPath reads a configuration file from the given path.
// Environment variables in the format ${VAR_NAME} are expanded.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expandedData := expandEnvVars(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expandedData), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := parseDurations(cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment
// variable values. Unset variables are replaced with an empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// Validate checks that all required configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("api.base_url is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.base_url must use http or https scheme")
	}

	if c.Storage.Path == "" {
		return fmt.Errorf("storage.path is required")
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error")
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json")
	}

	return nil
}

// parseDurations converts the raw duration strings into time.Duration values
func parseDurations(cfg *Config) error {
	if cfg.Location.TimeoutRaw != "" {
		d, err := time.ParseDuration(cfg.Location.TimeoutRaw)
		if err != nil {
			return fmt.Errorf("parsing location.timeout %q: %w", cfg.Location.TimeoutRaw, err)
		}
		cfg.Location.Timeout = d
	}
	return nil
}

// configDir returns the nexus-chat configuration directory.
func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "nexus-chat")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "nexus-chat"
	}
	return filepath.Join(home, ".config", "nexus-chat")
}

// dataDir returns the directory for the conversation database.
func dataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "nexus-chat")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "nexus-chat"
	}
	return filepath.Join(home, ".local", "share", "nexus-chat")
}

// Dir returns the configuration directory, creating it if needed.
func Dir() (string, error) {
	dir := configDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}
	return dir, nil
}
