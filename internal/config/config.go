// Package config provides environment-driven configuration for the
// database-facing binaries (mega-load and mega-api). Settings are read
// from environment variables with sensible defaults and validated on
// startup to fail fast on misconfiguration.
package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds settings for the bulk loader and the query service.
type Config struct {
	// DatabaseURL is the PostgreSQL connection string (required).
	DatabaseURL string

	// ListenAddr is the query service's bind address (default :8080).
	ListenAddr string

	// ConnectTimeout bounds database startup operations (default 10s).
	ConnectTimeout time.Duration

	// RequestTimeout bounds a single query-service request (default 5s).
	RequestTimeout time.Duration
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		ListenAddr:     getEnv("LISTEN_ADDR", ":8080"),
		ConnectTimeout: 10 * time.Second,
		RequestTimeout: 5 * time.Second,
	}

	var err error
	if cfg.ConnectTimeout, err = getDuration("DB_CONNECT_TIMEOUT", cfg.ConnectTimeout); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = getDuration("REQUEST_TIMEOUT", cfg.RequestTimeout); err != nil {
		return nil, err
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
