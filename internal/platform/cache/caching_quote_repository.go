// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"trading_backend/internal/feature/portfolio/domain/entity"
	"trading_backend/internal/feature/portfolio/usecase"
)

// CachingQuoteRepository decorates a QuoteRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository. Quotes go stale fast, so the TTL is
// short; errors (including unknown symbols) are never cached.
type CachingQuoteRepository struct {
	inner     usecase.QuoteRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.QuoteRepository = (*CachingQuoteRepository)(nil)

// NewCachingQuoteRepository decorates a QuoteRepository with Redis caching.
// If ttl is 0, it defaults to 1 minute. If namespace is empty, it uses "quotes".
func NewCachingQuoteRepository(rdb *redis.Client, ttl time.Duration, inner usecase.QuoteRepository, namespace string) *CachingQuoteRepository {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if namespace == "" {
		namespace = "quotes"
	}
	return &CachingQuoteRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// cacheKey returns the Redis key for one symbol's quote.
func (c *CachingQuoteRepository) cacheKey(symbol string) string {
	return fmt.Sprintf("%s:%s", c.namespace, symbol)
}

// Lookup retrieves a quote, checking cache first then falling back to the provider.
func (c *CachingQuoteRepository) Lookup(ctx context.Context, symbol string) (*entity.Quote, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.Lookup(ctx, symbol)
	}

	key := c.cacheKey(symbol)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Quote
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// Corrupt entry: fall through to the provider and overwrite
	}

	// 2) Cache miss: ask the provider
	quote, err := c.inner.Lookup(ctx, symbol)
	if err != nil {
		return nil, err
	}

	// 3) Store for the next caller. Best effort: a cache write failure
	// must not fail the lookup.
	if b, err := json.Marshal(quote); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return quote, nil
}
