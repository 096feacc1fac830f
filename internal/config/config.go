// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store drivers accepted by LAYOUTS_STORE_DRIVER.
const (
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
	DriverMongoDB  = "mongodb"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Load policies accepted by LAYOUTS_LOAD_POLICY.
const (
	LoadPolicyFirst = "first"
	LoadPolicyLast  = "last"
)

// Config holds everything the app needs to wire its collaborators.
type Config struct {
	StoreDriver string `env:"LAYOUTS_STORE_DRIVER" envDefault:"sqlite"`
	DataDir     string `env:"LAYOUTS_DATA_DIR"`
	// DSN is the connection string for postgres and mysql, or an explicit
	// SQLite file path.
	DSN        string `env:"LAYOUTS_DSN"`
	LoadPolicy string `env:"LAYOUTS_LOAD_POLICY" envDefault:"first"`

	MongoURI      string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"pagebuilder"`

	PublishDir           string        `env:"PUBLISH_DIR"`
	PublishRetention     time.Duration `env:"PUBLISH_RETENTION" envDefault:"24h"`
	PublishPruneSchedule string        `env:"PUBLISH_PRUNE_SCHEDULE" envDefault:"@hourly"`

	MetricsAddr string `env:"METRICS_ADDR"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"INFO"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text"`
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment, fills path defaults and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.DataDir == "" {
		homeDir, _ := os.UserHomeDir()
		cfg.DataDir = filepath.Join(homeDir, ".local", "share", "pagebuilder")
	}
	if cfg.PublishDir == "" {
		cfg.PublishDir = filepath.Join(cfg.DataDir, "published")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SQLitePath is the local database file used by the sqlite driver.
func (c Config) SQLitePath() string {
	if c.StoreDriver == DriverSQLite && c.DSN != "" {
		return c.DSN
	}
	return filepath.Join(c.DataDir, "pagebuilder.db")
}

// Validate rejects unknown drivers and policies.
func (c Config) Validate() error {
	drivers := []string{DriverSQLite, DriverMemory, DriverMongoDB, DriverPostgres, DriverMySQL}
	if !slices.Contains(drivers, c.StoreDriver) {
		return fmt.Errorf("unsupported store driver %q", c.StoreDriver)
	}
	if c.LoadPolicy != LoadPolicyFirst && c.LoadPolicy != LoadPolicyLast {
		return fmt.Errorf("unsupported load policy %q", c.LoadPolicy)
	}
	if (c.StoreDriver == DriverPostgres || c.StoreDriver == DriverMySQL) && c.DSN == "" {
		return fmt.Errorf("LAYOUTS_DSN is required for the %s driver", c.StoreDriver)
	}
	if c.PublishRetention < 0 {
		return fmt.Errorf("publish retention must not be negative")
	}
	return nil
}
