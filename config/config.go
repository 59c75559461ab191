// Package config provides configuration loading for tokstat.
// Precedence: defaults, then YAML file, then environment overrides.
package config

import (
	"fmt"

	"github.com/tokstat/tokstat/tokenizer"
)

// Config is the full tokstat configuration.
type Config struct {
	// Tokenizer configures the default encoding scheme.
	Tokenizer TokenizerConfig `yaml:"tokenizer"`

	// Log configures structured logging output.
	Log LogConfig `yaml:"log"`

	// Metrics configures the optional Prometheus endpoint.
	Metrics MetricsConfig `yaml:"metrics"`
}

// TokenizerConfig configures the tokenizer backend.
type TokenizerConfig struct {
	// Encoding is the default encoding scheme, e.g. "cl100k_base".
	Encoding string `yaml:"encoding"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// Format is "json" or "console".
	Format string `yaml:"format"`
}

// MetricsConfig configures the Prometheus metrics endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Tokenizer: TokenizerConfig{
			Encoding: tokenizer.DefaultEncoding,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    ":9091",
		},
	}
}

// Validate checks the configuration for invalid values and fills fallbacks
// for empty ones.
func (c *Config) Validate() error {
	if c.Tokenizer.Encoding == "" {
		c.Tokenizer.Encoding = tokenizer.DefaultEncoding
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}

	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}

	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return fmt.Errorf("metrics enabled but no listen address set")
	}
	return nil
}
