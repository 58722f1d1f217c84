package lookup

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/skytrips/search-core/internal/domain"
)

// CachedClient decorates a Client with a short-lived per-query cache so
// retyping the same text within a session does not refetch. Popularity
// marks pass straight through; they must never be absorbed.
type CachedClient struct {
	inner Client
	cache *gocache.Cache
}

// NewCachedClient wraps inner with a TTL cache.
func NewCachedClient(inner Client, ttl time.Duration) *CachedClient {
	return &CachedClient{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Search implements Client, serving repeated queries from cache. Errors
// are never cached.
func (c *CachedClient) Search(ctx context.Context, query string) ([]domain.LocationGroup, error) {
	key := strings.ToLower(strings.TrimSpace(query))
	if cached, ok := c.cache.Get(key); ok {
		return cached.([]domain.LocationGroup), nil
	}

	groups, err := c.inner.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, groups, gocache.DefaultExpiration)
	return groups, nil
}

// MarkPopular implements Client.
func (c *CachedClient) MarkPopular(ctx context.Context, code string) error {
	return c.inner.MarkPopular(ctx, code)
}
