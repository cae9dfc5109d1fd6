// Package config loads server configuration from an optional YAML file
// with environment variable overrides. Everything has a working default so
// a bare binary starts against a local SQLite database.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr          string `yaml:"addr"`
	DSN           string `yaml:"dsn"`
	EnableMetrics bool   `yaml:"enable_metrics"`
}

// Load reads the YAML file at path (skipped when path is empty), then
// applies ADDR, DB_DSN and ENABLE_METRICS from the environment on top.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Addr: ":8080",
		DSN:  "westwind.db",
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if v := os.Getenv("ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("DB_DSN"); v != "" {
		cfg.DSN = v
	}
	if v := os.Getenv("ENABLE_METRICS"); v != "" {
		cfg.EnableMetrics = v == "true"
	}

	return cfg, nil
}
