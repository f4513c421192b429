// Package config handles refcheck configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults for the verification pipeline.
const (
	DefaultDelay   = 200 * time.Millisecond
	DefaultTimeout = 30 * time.Second
)

// ConfigFile is the default config file name under the config directory.
const ConfigFile = "config.yaml"

// EnvConfigPath is the environment variable overriding the config location.
const EnvConfigPath = "REFCHECK_CONFIG"

// ProviderConfig configures a single metadata provider.
type ProviderConfig struct {
	Enabled bool   `yaml:"enabled"`
	BaseURL string `yaml:"base_url,omitempty"` // Empty means the provider's default
}

// Config is the refcheck configuration, stored as YAML.
type Config struct {
	OpenAlex ProviderConfig `yaml:"openalex"`
	CrossRef ProviderConfig `yaml:"crossref"`

	// DelayMS is the pause between citations, in milliseconds.
	DelayMS int `yaml:"delay_ms"`

	// TimeoutSec is the per-request HTTP timeout, in seconds.
	TimeoutSec int `yaml:"timeout_sec"`

	// Mailto routes OpenAlex requests into the polite pool. Optional.
	Mailto string `yaml:"mailto,omitempty"`
}

// Default returns the configuration used when no config file exists:
// both providers enabled at their public endpoints.
func Default() *Config {
	return &Config{
		OpenAlex:   ProviderConfig{Enabled: true},
		CrossRef:   ProviderConfig{Enabled: true},
		DelayMS:    int(DefaultDelay / time.Millisecond),
		TimeoutSec: int(DefaultTimeout / time.Second),
	}
}

// Delay returns the inter-citation delay as a duration.
func (c *Config) Delay() time.Duration {
	return time.Duration(c.DelayMS) * time.Millisecond
}

// Timeout returns the HTTP timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// DefaultPath returns the default config file path
// (~/.config/refcheck/config.yaml), honoring REFCHECK_CONFIG.
func DefaultPath() string {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return ExpandPath(path)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "refcheck", ConfigFile)
}

// Load reads configuration from the given path. A missing file is not an
// error: defaults are returned. Values absent from the file keep their
// defaults, so a config file may set only what it overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.DelayMS < 0 {
		return nil, fmt.Errorf("invalid delay_ms: %d", cfg.DelayMS)
	}
	if cfg.TimeoutSec <= 0 {
		return nil, fmt.Errorf("invalid timeout_sec: %d", cfg.TimeoutSec)
	}

	return cfg, nil
}

// Save writes configuration to the given path, creating parent directories
// as needed.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}
