package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/vault42/console/internal/api/metrics"
	"github.com/vault42/console/internal/core/domain"
	"github.com/vault42/console/internal/core/ports"
)

const driverName = "redis"

// Storage keeps client storage entries in Redis.
// Key format: <prefix><key>, vault42:storage:<key> by default.
type Storage struct {
	client *redis.Client
	prefix string
}

// NewStorage wraps client. An empty prefix means DefaultPrefix.
func NewStorage(client *redis.Client, prefix string) *Storage {
	return &Storage{client: client, prefix: normalizePrefix(prefix)}
}

var _ ports.ClientStorage = (*Storage)(nil)

func (s *Storage) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrStorageKeyNotFound
	}
	if err != nil {
		metrics.StorageErrorsTotal.WithLabelValues(driverName, "get").Inc()
		return "", fmt.Errorf("storage get %s: %w", key, err)
	}
	return v, nil
}

// Set stores value without expiry. Session lifetime is governed by the token.
func (s *Storage) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		metrics.StorageErrorsTotal.WithLabelValues(driverName, "set").Inc()
		return fmt.Errorf("storage set %s: %w", key, err)
	}
	return nil
}

func (s *Storage) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		metrics.StorageErrorsTotal.WithLabelValues(driverName, "remove").Inc()
		return fmt.Errorf("storage remove %s: %w", key, err)
	}
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Storage) Close() error {
	return s.client.Close()
}

func (s *Storage) key(k string) string {
	return s.prefix + k
}
