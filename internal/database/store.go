package database

import (
	"context"
	"fmt"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/AnshRaj112/dhrms-backend/internal/config"
)

// Store is a key/value text store partitioned by browser profile. Every
// profile sees its own "users", "current_user" and "form_<page>" keys.
type Store interface {
	// Get returns ok=false when the key does not exist.
	Get(ctx context.Context, profile, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, profile, key string, value []byte) error
	// Remove is a no-op for missing keys.
	Remove(ctx context.Context, profile, key string) error
	// Clear drops every key of the profile.
	Clear(ctx context.Context, profile string) error
}

// OpenStore connects the backend named by cfg.StoreBackend. The returned
// func releases the underlying connection.
func OpenStore(ctx context.Context, cfg *config.Config, logger log.Logger) (Store, func() error, error) {
	switch cfg.StoreBackend {
	case "", "memory":
		level.Info(logger).Log("msg", "using in-memory profile store")
		return NewMemoryStore(), func() error { return nil }, nil

	case "redis":
		level.Info(logger).Log("msg", "connecting to Redis")
		client, err := ConnectRedis(ctx, cfg.RedisURI)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		level.Info(logger).Log("msg", "connected to Redis")
		return NewRedisStore(client), client.Close, nil

	case "postgres":
		level.Info(logger).Log("msg", "connecting to PostgreSQL")
		db, err := ConnectPostgres(ctx, cfg.PostgresURI)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		level.Info(logger).Log("msg", "connected to PostgreSQL")
		return NewPostgresStore(db), db.Close, nil

	case "mongo", "mongodb":
		level.Info(logger).Log("msg", "connecting to MongoDB", "uri", MaskURI(cfg.MongoURI))
		client, db, err := ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, fmt.Errorf("connect mongo: %w", err)
		}
		store := NewMongoStore(db.Collection(mongoCollection))
		if err := store.EnsureIndexes(ctx); err != nil {
			level.Warn(logger).Log("msg", "failed to ensure MongoDB indexes", "err", err)
		}
		level.Info(logger).Log("msg", "connected to MongoDB", "database", db.Name())
		return store, func() error { return DisconnectMongo(client) }, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}
