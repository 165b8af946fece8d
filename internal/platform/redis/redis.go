package redis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Config holds the connection settings for the cache.
type Config struct {
	Address  string
	Password string
	DB       int
}

// Connect creates a Redis client and verifies connectivity.
func Connect(ctx context.Context, cfg Config) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// ConnectOrSkip returns nil with a no-op cleanup when Redis is not configured or unreachable.
func ConnectOrSkip(ctx context.Context, cfg Config, logger *slog.Logger) (*goredis.Client, func()) {
	if strings.TrimSpace(cfg.Address) == "" {
		if logger != nil {
			logger.Info("REDIS_ADDR not set, top products cache disabled")
		}
		return nil, func() {}
	}
	client, err := Connect(ctx, cfg)
	if err != nil {
		if logger != nil {
			logger.Warn("failed to connect to redis, top products cache disabled", slog.String("error", err.Error()))
		}
		return nil, func() {}
	}
	if logger != nil {
		logger.Info("redis connection established", slog.String("addr", cfg.Address))
	}
	return client, func() { _ = client.Close() }
}
