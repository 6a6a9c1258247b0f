package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the daemon configuration.
type Config struct {
	// FadeOutMS and FadeInMS bound the display fade around an exclusive
	// mode switch, where the platform supports fading.
	FadeOutMS int `yaml:"fade_out_ms"`
	FadeInMS  int `yaml:"fade_in_ms"`

	// ReconcileIntervalSec is how often the daemon checks for windows
	// that disappeared while holding transition state.
	ReconcileIntervalSec int `yaml:"reconcile_interval_sec"`

	// PreferSimpleFullscreen skips the native animated toggle and uses
	// the direct mask/frame fallback instead.
	PreferSimpleFullscreen bool `yaml:"prefer_simple_fullscreen"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig controls daemon log output.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		FadeOutMS:            300,
		FadeInMS:             600,
		ReconcileIntervalSec: 10,
		Logging:              LoggingConfig{Level: "info"},
	}
}

// DefaultConfigPath returns the standard config file location.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "modeshift", "config.yaml"), nil
}

// Load reads the configuration from the standard location. A missing file
// yields the defaults.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the configuration from an explicit path.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.FadeOutMS < 0 || c.FadeInMS < 0 {
		return fmt.Errorf("fade durations must be non-negative")
	}
	if c.ReconcileIntervalSec <= 0 {
		return fmt.Errorf("reconcile_interval_sec must be positive")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	return nil
}

// FadeOut returns the fade-out duration.
func (c *Config) FadeOut() time.Duration {
	return time.Duration(c.FadeOutMS) * time.Millisecond
}

// FadeIn returns the fade-in duration.
func (c *Config) FadeIn() time.Duration {
	return time.Duration(c.FadeInMS) * time.Millisecond
}

// ReconcileInterval returns the reconciler tick interval.
func (c *Config) ReconcileInterval() time.Duration {
	return time.Duration(c.ReconcileIntervalSec) * time.Second
}
