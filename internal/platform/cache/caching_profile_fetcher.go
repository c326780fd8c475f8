// Package cache provides caching decorators for market data clients.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"watchlist_backend/internal/feature/watchlist/domain/entity"
	"watchlist_backend/internal/feature/watchlist/usecase"
	"watchlist_backend/internal/platform/metrics"
)

// DefaultProfileTTL is how long a company profile stays cached.
const DefaultProfileTTL = time.Hour

// CachingProfileFetcher decorates a MarketDataClient with Redis caching of profiles.
// Quotes always go to the inner client.
type CachingProfileFetcher struct {
	inner     usecase.MarketDataClient
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.MarketDataClient = (*CachingProfileFetcher)(nil)

// NewCachingProfileFetcher decorates inner with Redis caching.
// If ttl is 0, it defaults to DefaultProfileTTL. If namespace is empty, it uses "profile".
// A nil rdb disables caching.
func NewCachingProfileFetcher(rdb *redis.Client, ttl time.Duration, inner usecase.MarketDataClient, namespace string) *CachingProfileFetcher {
	if ttl <= 0 {
		ttl = DefaultProfileTTL
	}
	if namespace == "" {
		namespace = "profile"
	}
	return &CachingProfileFetcher{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Configured delegates to the inner client.
func (c *CachingProfileFetcher) Configured() bool {
	return c.inner.Configured()
}

// FetchQuote is never cached.
func (c *CachingProfileFetcher) FetchQuote(ctx context.Context, symbol string) (*entity.Quote, error) {
	return c.inner.FetchQuote(ctx, symbol)
}

// FetchProfile checks the cache first, then falls back to the inner client.
func (c *CachingProfileFetcher) FetchProfile(ctx context.Context, symbol string) (*entity.Profile, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.FetchProfile(ctx, symbol)
	}

	key := c.cacheKey(symbol)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Profile
		if err := json.Unmarshal(b, &out); err == nil {
			metrics.ProfileCacheLookups.WithLabelValues("hit").Inc()
			return &out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}
	metrics.ProfileCacheLookups.WithLabelValues("miss").Inc()

	// 2) Fallback to the provider
	out, err := c.inner.FetchProfile(ctx, symbol)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// cacheKey generates the cache key for a symbol's profile.
// シンボルはパスエスケープするため、異なるシンボルが同じキーになることはありません。
func (c *CachingProfileFetcher) cacheKey(symbol string) string {
	return fmt.Sprintf("%s:%s", c.namespace, url.PathEscape(strings.ToUpper(symbol)))
}
