// Package backend turns a validated config into a concrete store.
package backend

import (
	"fmt"

	"recipebox/config"
	"recipebox/internal/store"
	"recipebox/internal/store/filestore"
	"recipebox/internal/store/gormstore"
	"recipebox/internal/store/httpstore"
	"recipebox/internal/store/redisstore"
)

// Open selects and opens the store variant named by the config.
func Open(cfg *config.Config) (store.Store, error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		return gormstore.Open("postgres", cfg.PostgresDSN())
	case config.BackendSQLite:
		return gormstore.Open("sqlite", cfg.SQLitePath)
	case config.BackendFile:
		return filestore.Open(cfg.DataFile)
	case config.BackendRedis:
		return redisstore.Connect(cfg.RedisURL, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	case config.BackendHTTP:
		return httpstore.New(cfg.RemoteURL), nil
	default:
		return nil, fmt.Errorf("unknown backend: %q", cfg.Backend)
	}
}
