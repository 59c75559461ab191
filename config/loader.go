package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader loads configuration with the precedence defaults -> YAML -> env.
//
// Usage:
//
//	cfg, err := config.NewLoader().
//	    WithConfigPath("tokstat.yaml").
//	    WithEnvPrefix("TOKSTAT").
//	    Load()
type Loader struct {
	configPath string
	envPrefix  string
}

// NewLoader creates a loader with no config file and the default env prefix.
func NewLoader() *Loader {
	return &Loader{envPrefix: "TOKSTAT"}
}

// WithConfigPath sets the YAML config file path. An empty path skips the
// file layer entirely.
func (l *Loader) WithConfigPath(path string) *Loader {
	l.configPath = path
	return l
}

// WithEnvPrefix sets the environment variable prefix.
func (l *Loader) WithEnvPrefix(prefix string) *Loader {
	l.envPrefix = prefix
	return l
}

// Load builds the configuration and validates it.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	if l.configPath != "" {
		data, err := os.ReadFile(l.configPath)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", l.configPath, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", l.configPath, err)
		}
	}

	l.applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func (l *Loader) applyEnv(cfg *Config) {
	if v, ok := l.lookup("TOKENIZER_ENCODING"); ok {
		cfg.Tokenizer.Encoding = v
	}
	if v, ok := l.lookup("LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	if v, ok := l.lookup("LOG_FORMAT"); ok {
		cfg.Log.Format = v
	}
	if v, ok := l.lookup("METRICS_ENABLED"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
	if v, ok := l.lookup("METRICS_ADDR"); ok {
		cfg.Metrics.Addr = v
	}
}

func (l *Loader) lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(l.envPrefix + "_" + key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}
