package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Apurer/franchise-catalog-api/internal/domains/catalog/domain"
	"github.com/Apurer/franchise-catalog-api/internal/domains/catalog/ports"
)

var _ ports.TopProductQuery = (*TopProductCache)(nil)

// TopProductCache is a read-through cache in front of the top product read model.
// Redis failures never fail a read; they are logged and the inner query answers.
type TopProductCache struct {
	inner  ports.TopProductQuery
	client goredis.UniversalClient
	ttl    time.Duration
	logger *slog.Logger
}

type Option func(*TopProductCache)

func WithLogger(logger *slog.Logger) Option {
	return func(c *TopProductCache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewTopProductCache wraps inner. A ttl <= 0 disables caching and returns inner unchanged.
func NewTopProductCache(inner ports.TopProductQuery, client goredis.UniversalClient, ttl time.Duration, opts ...Option) ports.TopProductQuery {
	if client == nil || ttl <= 0 {
		return inner
	}
	c := &TopProductCache{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// generationKey holds a counter bumped by every catalog write. Entries are keyed by
// generation, so a bump orphans every cached read model at once and lets the TTL reap them.
const generationKey = "catalog:top-products:generation"

func topProductsKey(generation, franchiseID int64) string {
	return fmt.Sprintf("catalog:top-products:g%d:%d", generation, franchiseID)
}

func (c *TopProductCache) FindByFranchiseID(ctx context.Context, franchiseID int64) ([]domain.TopProduct, error) {
	generation, err := c.client.Get(ctx, generationKey).Int64()
	if err != nil && !errors.Is(err, goredis.Nil) {
		c.logger.WarnContext(ctx, "top products cache generation read failed", slog.String("error", err.Error()))
		return c.inner.FindByFranchiseID(ctx, franchiseID)
	}
	key := topProductsKey(generation, franchiseID)
	payload, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var rows []domain.TopProduct
		if err := json.Unmarshal(payload, &rows); err == nil {
			c.logger.DebugContext(ctx, "top products served from cache", slog.Int64("franchise.id", franchiseID))
			return rows, nil
		}
		c.logger.WarnContext(ctx, "discarding undecodable top products cache entry", slog.String("key", key))
	case !errors.Is(err, goredis.Nil):
		c.logger.WarnContext(ctx, "top products cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	rows, err := c.inner.FindByFranchiseID(ctx, franchiseID)
	if err != nil {
		return nil, err
	}
	if encoded, err := json.Marshal(rows); err == nil {
		if err := c.client.Set(ctx, key, encoded, c.ttl).Err(); err != nil {
			c.logger.WarnContext(ctx, "top products cache write failed", slog.String("key", key), slog.String("error", err.Error()))
		}
	}
	return rows, nil
}

// Invalidate retires every cached entry. Call it after the write has been committed.
func (c *TopProductCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, generationKey).Err()
}
