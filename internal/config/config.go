// Package config loads keepbook.yaml with environment overrides.
package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// envPrefix scopes environment overrides, e.g. KEEPBOOK_DATABASE.
const envPrefix = "keepbook"

// Config represents the top-level keepbook.yaml configuration.
type Config struct {
	// Database is the SQLite file path.
	Database string `yaml:"database" envconfig:"DATABASE"`
	// BankAccount is the account every migrated legacy record balances
	// against.
	BankAccount string `yaml:"bank_account" envconfig:"BANK_ACCOUNT"`
	// CategoryMap overrides the built-in legacy category mapping.
	// Keys are normalized category names, values are account IDs.
	CategoryMap map[string]string `yaml:"category_map,omitempty" envconfig:"-"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" envconfig:"LOG_LEVEL"`
}

// Load reads a keepbook.yaml file, then applies KEEPBOOK_* environment
// overrides on top. A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// keep defaults
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("applying environment overrides: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Database:    "keepbook.db",
		BankAccount: "1100",
		LogLevel:    "info",
	}
}
