// Package config loads engine configuration from a YAML file with
// environment variable overrides, and opens the configured store backend.
package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/reelgate/ledger/store"
	"github.com/reelgate/ledger/store/memory"
	"github.com/reelgate/ledger/store/mongo"
	"github.com/reelgate/ledger/store/sqldb"
)

// Environment variables overriding the config file.
const (
	EnvOwner       = "LEDGER_OWNER"
	EnvStoreDriver = "LEDGER_STORE_DRIVER"
	EnvStoreDSN    = "LEDGER_STORE_DSN"
	EnvMongoDB     = "LEDGER_MONGO_DATABASE"
)

// Store driver identifiers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// Config holds resolved engine configuration.
type Config struct {
	// Owner is the identity allowed to manage the catalogue and withdraw funds.
	Owner string `yaml:"owner"`

	Store StoreConfig `yaml:"store"`
}

// StoreConfig selects and parameterizes the persistence backend.
type StoreConfig struct {
	// Driver is one of memory, sqlite, postgres, mongo. Defaults to memory.
	Driver string `yaml:"driver"`

	// DSN is the connection string for sqlite/postgres, or the URI for mongo.
	DSN string `yaml:"dsn"`

	// Database names the Mongo database. Ignored by other drivers.
	Database string `yaml:"database"`
}

// Default returns a Config with an in-memory store and no owner set.
func Default() Config {
	return Config{Store: StoreConfig{Driver: DriverMemory}}
}

// Load reads the YAML file at path, applies environment overrides, and
// validates the result. An empty path skips the file and loads from the
// environment alone.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvOwner)); v != "" {
		cfg.Owner = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvStoreDriver)); v != "" {
		cfg.Store.Driver = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvStoreDSN)); v != "" {
		cfg.Store.DSN = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvMongoDB)); v != "" {
		cfg.Store.Database = v
	}
}

// Validate checks the config for internal consistency.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Owner) == "" {
		return fmt.Errorf("config: owner is required")
	}
	switch c.Store.Driver {
	case DriverMemory:
	case DriverSQLite, DriverPostgres:
		if strings.TrimSpace(c.Store.DSN) == "" {
			return fmt.Errorf("config: store.dsn is required for driver %q", c.Store.Driver)
		}
	case DriverMongo:
		if strings.TrimSpace(c.Store.DSN) == "" {
			return fmt.Errorf("config: store.dsn is required for driver %q", c.Store.Driver)
		}
		if strings.TrimSpace(c.Store.Database) == "" {
			return fmt.Errorf("config: store.database is required for driver %q", c.Store.Driver)
		}
	default:
		return fmt.Errorf("config: unknown store driver %q", c.Store.Driver)
	}
	return nil
}

// OpenStore opens the store backend named by the config.
func OpenStore(ctx context.Context, cfg Config) (store.Store, error) {
	switch cfg.Store.Driver {
	case DriverMemory:
		return memory.New(), nil
	case DriverSQLite:
		return sqldb.Open(sqldb.DialectSQLite, cfg.Store.DSN)
	case DriverPostgres:
		return sqldb.Open(sqldb.DialectPostgres, cfg.Store.DSN)
	case DriverMongo:
		return mongo.Open(ctx, cfg.Store.DSN, cfg.Store.Database)
	}
	return nil, fmt.Errorf("config: unknown store driver %q", cfg.Store.Driver)
}
