// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	"watchlist_backend/internal/feature/watchlist/usecase"
	"watchlist_backend/internal/platform/cache"
	"watchlist_backend/internal/platform/externalapi/finnhub"
	infrahttp "watchlist_backend/internal/platform/http"
	"watchlist_backend/internal/shared/ratelimiter"
)

// NewMarketDataClient creates a Finnhub client with its own HTTP client and rate limiter.
// Profiles are cached in Redis when rdb is non-nil. Quotes are always fetched live.
func NewMarketDataClient(cfg finnhub.Config, rdb *redis.Client) usecase.MarketDataClient {
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	limiter := ratelimiter.NewRateLimiter(cfg.RateLimit, time.Minute)
	client := finnhub.NewClient(cfg, httpClient, limiter)
	return cache.NewCachingProfileFetcher(rdb, cfg.ProfileTTL, client, "profile")
}
