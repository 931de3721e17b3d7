// Package config reads the client configuration from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config holds the runtime parameters of the frais client.
type Config struct {
	// APIAddress is the base URL of the expense-report backend.
	APIAddress string `env:"FRAIS_API" envDefault:"http://localhost:5678"`

	// DBPath is the location of the local SQLite state (session + bill cache).
	// Empty means ~/.frais/frais.db.
	DBPath string `env:"FRAIS_DB"`

	// InitialRoute is the hash path opened on startup. Empty defaults to
	// the login route.
	InitialRoute string `env:"FRAIS_ROUTE"`
}

// Load parses the configuration from environment variables and fills
// in the default database path.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".frais", "frais.db")
	}

	return cfg, nil
}
