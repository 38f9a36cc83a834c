// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	portfoliousecase "trading_backend/internal/feature/portfolio/usecase"
	"trading_backend/internal/platform/cache"
	"trading_backend/internal/platform/externalapi/twelvedata"
	infrahttp "trading_backend/internal/platform/http"
	"trading_backend/internal/shared/ratelimiter"
)

const (
	// quoteRateLimit is the Twelve Data free-tier request budget per minute.
	quoteRateLimit = 8

	// quoteCacheTTL keeps quotes fresh enough for a simulator while sparing
	// the provider's request budget.
	quoteCacheTTL = time.Minute
)

// NewQuoteProvider creates the fully configured quote lookup chain:
// a rate-limited Twelve Data client wrapped in a Redis cache decorator.
// If rdb is nil, the caching layer is bypassed.
func NewQuoteProvider(rdb *redis.Client) portfoliousecase.QuoteRepository {
	cfg := twelvedata.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	limiter := ratelimiter.NewRateLimiter(quoteRateLimit, time.Minute)
	quotes := twelvedata.NewTwelveDataQuotes(cfg, httpClient, limiter)
	return cache.NewCachingQuoteRepository(rdb, quoteCacheTTL, quotes, "quotes")
}
