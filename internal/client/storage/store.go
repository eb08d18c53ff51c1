package storage

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophfinance/internal/client/config"
)

// Store is a string-keyed byte store.
//
// Get returns (nil, nil) when the key is absent. Delete is idempotent.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetMany writes all pairs or none of them.
	SetMany(ctx context.Context, kv map[string][]byte) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// Open returns the backend selected by cfg.StorageBackend.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StorageBackend {
	case config.StorageSQLite:
		return OpenSQLite(ctx, cfg.DBPath)
	case config.StorageRedis:
		return OpenRedis(ctx, RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	case config.StorageMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
