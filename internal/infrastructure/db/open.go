// Package db selects and opens the client storage backend.
package db

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vault42/console/internal/core/ports"
	"github.com/vault42/console/internal/infrastructure/config"
	"github.com/vault42/console/internal/infrastructure/db/file"
	"github.com/vault42/console/internal/infrastructure/db/memory"
	"github.com/vault42/console/internal/infrastructure/db/mongo"
	"github.com/vault42/console/internal/infrastructure/db/redis"
)

// Open returns the backend named by cfg.Driver and a func releasing its
// connections.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.ClientStorage, func(), error) {
	noop := func() {}

	switch cfg.Storage.Driver {
	case config.StorageMemory:
		log.Debug().Msg("using in-memory client storage")
		return memory.New(), noop, nil

	case config.StorageRedis:
		s, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB, Prefix: cfg.Redis.Prefix})
		if err != nil {
			return nil, noop, err
		}
		log.Debug().Str("addr", cfg.Redis.Addr).Str("prefix", cfg.Redis.Prefix).Msg("using redis client storage")
		return s, func() { _ = s.Close() }, nil

	case config.StorageMongo:
		s, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database, Collection: cfg.Mongo.Collection})
		if err != nil {
			return nil, noop, err
		}
		log.Debug().Str("database", cfg.Mongo.Database).Str("collection", cfg.Mongo.Collection).Msg("using mongo client storage")
		return s, func() { _ = s.Close(context.Background()) }, nil

	case config.StorageFile, "":
		s, err := file.New(cfg.Storage.Dir, cfg.Storage.Key)
		if err != nil {
			return nil, noop, err
		}
		log.Debug().Str("dir", cfg.Storage.Dir).Bool("encrypted", cfg.Storage.Key != "").Msg("using file client storage")
		return s, noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
