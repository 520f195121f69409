// Package config loads engine configuration from the environment.
package config

import (
	"fmt"
	"os"
)

// Config holds the process-level settings for the HTTP server and the
// run store. Values come from the environment; Load fills defaults for
// anything unset.
type Config struct {
	// ListenAddr is the HTTP bind address for serve mode.
	ListenAddr string

	// DBDriver selects the run store backend: "sqlite" or "postgres".
	DBDriver string

	// DBPath is the sqlite database file.
	DBPath string

	// DBDSN is the postgres connection string, required when
	// DBDriver is "postgres".
	DBDSN string
}

// Load reads configuration from the environment and validates it.
func Load() (Config, error) {
	cfg := Config{
		ListenAddr: envOr("BLACKJACKML_LISTEN_ADDR", "127.0.0.1:8080"),
		DBDriver:   envOr("BLACKJACKML_DB_DRIVER", "sqlite"),
		DBPath:     envOr("BLACKJACKML_DB_PATH", "blackjackml.db"),
		DBDSN:      os.Getenv("BLACKJACKML_DB_DSN"),
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen address must not be empty")
	}
	switch c.DBDriver {
	case "sqlite":
		if c.DBPath == "" {
			return fmt.Errorf("sqlite driver requires BLACKJACKML_DB_PATH")
		}
	case "postgres":
		if c.DBDSN == "" {
			return fmt.Errorf("postgres driver requires BLACKJACKML_DB_DSN")
		}
	default:
		return fmt.Errorf("unknown db driver %q (want sqlite or postgres)", c.DBDriver)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
