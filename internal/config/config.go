// Package config provides configuration management for hl.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied when neither the file nor the environment sets a value.
const (
	DefaultOutputFormat   = "terminal"
	DefaultHighlightColor = "yellow"
	DefaultMarkerOpen     = "["
	DefaultMarkerClose    = "]"
)

var colors = []string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

// Colors lists the accepted highlight_color values.
func Colors() []string {
	return slices.Clone(colors)
}

// Config holds the hl configuration.
type Config struct {
	CaseSensitive     bool   `yaml:"case_sensitive,omitempty"`
	UntilNextBoundary bool   `yaml:"until_next_boundary,omitempty"`
	Timeout           string `yaml:"timeout,omitempty"`
	OutputFormat      string `yaml:"output_format,omitempty"`
	HighlightColor    string `yaml:"highlight_color,omitempty"`
	MarkerOpen        string `yaml:"marker_open,omitempty"`
	MarkerClose       string `yaml:"marker_close,omitempty"`

	invalidEnv []envValue
}

type envValue struct {
	name  string
	value string
}

// Validate checks that set fields hold usable values.
func (c *Config) Validate() error {
	if len(c.invalidEnv) > 0 {
		e := c.invalidEnv[0]
		return fmt.Errorf("invalid %s %q: must be a boolean such as true or false", e.name, e.value)
	}
	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
		}
		if d <= 0 {
			return errors.New("timeout must be positive")
		}
	}
	if c.HighlightColor != "" && !slices.Contains(colors, c.HighlightColor) {
		return fmt.Errorf("invalid highlight_color %q", c.HighlightColor)
	}
	return nil
}

// ApplyDefaults fills empty fields with their defaults.
func (c *Config) ApplyDefaults() {
	if c.OutputFormat == "" {
		c.OutputFormat = DefaultOutputFormat
	}
	if c.HighlightColor == "" {
		c.HighlightColor = DefaultHighlightColor
	}
	if c.MarkerOpen == "" {
		c.MarkerOpen = DefaultMarkerOpen
	}
	if c.MarkerClose == "" {
		c.MarkerClose = DefaultMarkerClose
	}
}

// TimeoutDuration returns the parsed timeout, or zero if unset or invalid.
func (c *Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and non-empty.
func (c *Config) LoadFromEnv() {
	c.boolFromEnv("HL_CASE_SENSITIVE", &c.CaseSensitive)
	c.boolFromEnv("HL_UNTIL_NEXT_BOUNDARY", &c.UntilNextBoundary)
	if v := os.Getenv("HL_TIMEOUT"); v != "" {
		c.Timeout = v
	}
	if v := os.Getenv("HL_OUTPUT"); v != "" {
		c.OutputFormat = v
	}
	if v := os.Getenv("HL_COLOR"); v != "" {
		c.HighlightColor = v
	}
}

// boolFromEnv sets *dst from name. A value that does not parse is kept for
// Validate to report.
func (c *Config) boolFromEnv(name string, dst *bool) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		c.invalidEnv = append(c.invalidEnv, envValue{name: name, value: v})
		return
	}
	*dst = b
}

// EnvVars lists the environment variables LoadFromEnv reads.
func EnvVars() []string {
	return []string{"HL_CASE_SENSITIVE", "HL_UNTIL_NEXT_BOUNDARY", "HL_TIMEOUT", "HL_OUTPUT", "HL_COLOR"}
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	// Try XDG config directory first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "hl", "config.yml")
	}

	// Fall back to ~/.config/hl/config.yml
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".hl", "config.yml")
	}

	return filepath.Join(home, ".config", "hl", "config.yml")
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv loads configuration from file, overrides with environment
// variables and fills in defaults. A missing file is not an error.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = &Config{}
	}

	cfg.LoadFromEnv()
	cfg.ApplyDefaults()
	return cfg, nil
}
