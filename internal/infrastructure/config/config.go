package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StorageFile   = "file"
	StorageRedis  = "redis"
	StorageMongo  = "mongo"
	StorageMemory = "memory"
)

type Config struct {
	APIBaseURL string `env:"API_BASE_URL, default=http://localhost:8000"`
	Env        string `env:"ENV,          default=development"`
	LogLevel   string `env:"LOG_LEVEL,    default=info"`
	LogPretty  bool   `env:"LOG_PRETTY,   default=true"`
	HTTPAddr   string `env:"HTTP_ADDR,    default=127.0.0.1:4242"`

	// OfflineMode is "demo" or "off".
	OfflineMode string `env:"OFFLINE_MODE, default=demo"`
	// HTTPTimeout of zero leaves API calls unbounded.
	HTTPTimeout    time.Duration `env:"HTTP_TIMEOUT, default=0s"`
	CustomerRoleID string        `env:"CUSTOMER_ROLE_ID"`
	// LoginRateLimit is login attempts per minute per client IP.
	LoginRateLimit int `env:"LOGIN_RATE_LIMIT, default=10"`

	Storage StorageConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type StorageConfig struct {
	Driver string `env:"STORAGE_DRIVER, default=file"`
	// Dir defaults to ~/.vault42 when empty.
	Dir string `env:"STORAGE_DIR"`
	// Key enables encryption of the file driver when set.
	Key string `env:"STORAGE_KEY"`
}

type MongoConfig struct {
	URI        string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database   string `env:"MONGO_DB,  default=vault42"`
	Collection string `env:"MONGO_COLLECTION, default=client_storage"`
}

type RedisConfig struct {
	Addr   string `env:"REDIS_ADDR, default=localhost:6379"`
	DB     int    `env:"REDIS_DB,   default=0"`
	Prefix string `env:"REDIS_KEY_PREFIX, default=vault42:storage:"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.Storage.Dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("config: resolve STORAGE_DIR: %w", err)
		}
		cfg.Storage.Dir = filepath.Join(home, ".vault42")
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case StorageFile, StorageRedis, StorageMongo, StorageMemory:
	default:
		return fmt.Errorf("config: unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("config: HTTP_TIMEOUT must not be negative")
	}
	if c.LoginRateLimit < 0 {
		return fmt.Errorf("config: LOGIN_RATE_LIMIT must not be negative")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
