package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Storage backends understood by the storage package.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the user-level beacon configuration.
type Config struct {
	StateDir  string          `yaml:"state_dir" env:"BEACON_STATE_DIR"`
	Storage   StorageConfig   `yaml:"storage"`
	Logging   LoggingConfig   `yaml:"logging"`
	Dashboard DashboardConfig `yaml:"dashboard"`
}

// StorageConfig selects where onboarding state is persisted.
type StorageConfig struct {
	Backend string `yaml:"backend" env:"BEACON_STORAGE"`
	Path    string `yaml:"path" env:"BEACON_STORAGE_PATH"`
	// Watch reloads state when another process rewrites the storage file.
	Watch bool `yaml:"watch" env:"BEACON_WATCH"`
}

// LoggingConfig controls the debug log.
type LoggingConfig struct {
	Level string `yaml:"level" env:"BEACON_LOG_LEVEL"`
}

// DashboardConfig controls the generated mock data.
type DashboardConfig struct {
	Seed      int64 `yaml:"seed" env:"BEACON_SEED"` // 0 means seed from the clock
	SalesDays int   `yaml:"sales_days" env:"BEACON_SALES_DAYS"`
	Products  int   `yaml:"products" env:"BEACON_PRODUCTS"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	stateDir, err := GetBeaconDir()
	if err != nil {
		stateDir = stateDirName
	}
	return &Config{
		StateDir: stateDir,
		Storage: StorageConfig{
			Backend: BackendFile,
			Watch:   true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Dashboard: DashboardConfig{
			SalesDays: 90,
			Products:  50,
		},
	}
}

// Load loads configuration from file and environment variables.
// An empty path means the default location; a missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = getConfigPath()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// getConfigPath returns the path to the config file.
func getConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "beacon", "config.yaml")
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", "beacon", "config.yaml")
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	expanded := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// loadFromEnv applies BEACON_* overrides. Unset or empty variables keep
// the file value.
func loadFromEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	cfg.Storage.Backend = strings.ToLower(cfg.Storage.Backend)
	cfg.Logging.Level = strings.ToLower(cfg.Logging.Level)
	return nil
}

// Validate reports the first problem with the configuration.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("%w: unknown storage backend %q", ErrInvalidConfig, c.Storage.Backend)
	}
	if c.StateDir == "" {
		return fmt.Errorf("%w: state_dir is empty", ErrInvalidConfig)
	}
	if c.Dashboard.SalesDays <= 0 {
		return fmt.Errorf("%w: dashboard.sales_days must be positive", ErrInvalidConfig)
	}
	if c.Dashboard.Products <= 0 {
		return fmt.Errorf("%w: dashboard.products must be positive", ErrInvalidConfig)
	}
	return nil
}
