// Package config loads runtime configuration from the environment. The one
// decision that shapes everything else is the backend: which store variant
// the process runs against.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Backend identifiers accepted in RECIPEBOX_BACKEND.
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendHTTP     = "http"
)

// Config holds all configuration for the application.
type Config struct {
	// Store backend selection
	Backend string

	// Server configuration
	ServerHost string
	ServerPort string

	// Postgres configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// SQLite configuration
	SQLitePath string

	// File backend configuration
	DataFile string

	// Redis configuration
	RedisURL      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// HTTP backend configuration
	RemoteURL string
}

// Load reads configuration from environment variables, applying defaults
// suitable for local development, then validates it.
func Load() (*Config, error) {
	redisDB := 0
	if raw := os.Getenv("RECIPEBOX_REDIS_DB"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid RECIPEBOX_REDIS_DB: %q", raw)
		}
		redisDB = n
	}

	cfg := &Config{
		Backend:       getenv("RECIPEBOX_BACKEND", BackendSQLite),
		ServerHost:    getenv("RECIPEBOX_HOST", "0.0.0.0"),
		ServerPort:    getenv("RECIPEBOX_PORT", "8080"),
		DBHost:        getenv("RECIPEBOX_DB_HOST", "localhost"),
		DBPort:        getenv("RECIPEBOX_DB_PORT", "5432"),
		DBUser:        getenv("RECIPEBOX_DB_USER", "recipebox"),
		DBPassword:    os.Getenv("RECIPEBOX_DB_PASSWORD"),
		DBName:        getenv("RECIPEBOX_DB_NAME", "recipebox"),
		DBSSLMode:     getenv("RECIPEBOX_DB_SSL_MODE", "disable"),
		SQLitePath:    getenv("RECIPEBOX_SQLITE_PATH", "recipebox.db"),
		DataFile:      getenv("RECIPEBOX_DATA_FILE", "recipes.json"),
		RedisURL:      os.Getenv("RECIPEBOX_REDIS_URL"),
		RedisAddr:     getenv("RECIPEBOX_REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("RECIPEBOX_REDIS_PASSWORD"),
		RedisDB:       redisDB,
		RemoteURL:     os.Getenv("RECIPEBOX_REMOTE_URL"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected backend has what it needs.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendPostgres:
		if c.DBHost == "" || c.DBName == "" || c.DBUser == "" {
			return fmt.Errorf("postgres backend requires DB host, name and user")
		}
	case BackendSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("sqlite backend requires RECIPEBOX_SQLITE_PATH")
		}
	case BackendFile:
		if c.DataFile == "" {
			return fmt.Errorf("file backend requires RECIPEBOX_DATA_FILE")
		}
	case BackendRedis:
		if c.RedisURL == "" && c.RedisAddr == "" {
			return fmt.Errorf("redis backend requires RECIPEBOX_REDIS_URL or RECIPEBOX_REDIS_ADDR")
		}
	case BackendHTTP:
		if c.RemoteURL == "" {
			return fmt.Errorf("http backend requires RECIPEBOX_REMOTE_URL")
		}
	default:
		return fmt.Errorf("unknown backend: %q", c.Backend)
	}
	return nil
}

// PostgresDSN builds the connection string for the postgres backend.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// ListenAddr is the host:port the HTTP server binds.
func (c *Config) ListenAddr() string {
	return c.ServerHost + ":" + c.ServerPort
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
