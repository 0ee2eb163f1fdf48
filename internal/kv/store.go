// Package kv provides the string key-value stores the app persists through.
// Values are opaque JSON text; a missing key is not an error.
package kv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-redis/redis/v8"

	"github.com/meltforce/speedifit/internal/config"
)

var ErrUnknownBackend = errors.New("unknown storage backend")

// Store is a minimal async-safe key-value store.
type Store interface {
	// Get returns the value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, keys ...string) error
	Close() error
}

// Open builds the configured backend, wrapped in a read-through cache when
// cache_mb is positive.
func Open(ctx context.Context, cfg config.StorageConfig, log *slog.Logger) (Store, error) {
	var (
		s   Store
		err error
	)
	switch cfg.Backend {
	case config.BackendSQLite:
		s, err = OpenSQLite(ctx, cfg.SQLite.Path)
	case config.BackendRedis:
		s, err = OpenRedis(ctx, &redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	case config.BackendPostgres:
		dsn := cfg.Postgres.DSN()
		if err := RunMigrations(dsn, cfg.Postgres.Migrations); err != nil {
			return nil, err
		}
		log.Info("migrations applied")
		s, err = OpenPostgres(ctx, dsn)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", cfg.Backend, err)
	}

	log.Info("storage opened", "backend", cfg.Backend, "cache_mb", cfg.CacheMB)
	if cfg.CacheMB > 0 {
		return NewCached(s, cfg.CacheMB), nil
	}
	return s, nil
}
