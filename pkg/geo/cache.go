package geo

import (
	"context"
	"net/http"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

// Default cache bounds used when the configured values are not positive.
const (
	DefaultCacheSize = 10000
	DefaultCacheTTL  = 24 * time.Hour
)

// Cache remembers successful lookups of a Locator per IP address.
// Failed lookups are not cached.
type Cache struct {
	next    Locator
	entries *lru.LRU[string, string]
}

// NewCache wraps next with an LRU of at most size addresses, each kept for ttl.
func NewCache(next Locator, size int, ttl time.Duration) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		next:    next,
		entries: lru.NewLRU[string, string](size, nil, ttl),
	}
}

// Locate returns the cached country of ip or asks the wrapped locator.
func (c *Cache) Locate(ctx context.Context, ip string) (string, error) {
	if country, ok := c.entries.Get(ip); ok {
		return country, nil
	}
	country, err := c.next.Locate(ctx, ip)
	if err != nil {
		return "", err
	}
	c.entries.Add(ip, country)
	return country, nil
}

// Len reports the number of cached addresses.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// RequestLocator behaves like IPAPI.RequestLocator with cached lookups.
func (c *Cache) RequestLocator(r *http.Request) func(ctx context.Context) (string, error) {
	return requestLocator(c, r)
}
