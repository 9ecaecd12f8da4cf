// Package redis backs client storage with a Redis server.
package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	connectTimeout = 5 * time.Second

	// DefaultPrefix namespaces client storage keys on a shared server.
	DefaultPrefix = "vault42:storage:"
)

type Config struct {
	Addr string
	DB   int
	// Prefix is prepended to every storage key. A missing trailing colon is
	// added.
	Prefix string
	// Timeout bounds the initial ping only.
	Timeout time.Duration
}

// Connect pings the server and returns storage scoped to cfg.Prefix. The
// caller closes it.
func Connect(ctx context.Context, cfg Config) (*Storage, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = connectTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return NewStorage(client, cfg.Prefix), nil
}

func normalizePrefix(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return DefaultPrefix
	}
	if !strings.HasSuffix(p, ":") {
		p += ":"
	}
	return p
}
