package market

import (
	"context"
	"log"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"stockdash/internal/domain"
)

// CachedSource remembers successful fetches by query key for a while.
// Failures are not cached.
type CachedSource struct {
	next  Source
	cache *expirable.LRU[string, *domain.Stock]
}

// NewCachedSource wraps next with an LRU of size entries that expire after ttl
func NewCachedSource(next Source, size int, ttl time.Duration) *CachedSource {
	return &CachedSource{
		next:  next,
		cache: expirable.NewLRU[string, *domain.Stock](size, nil, ttl),
	}
}

// Fetch returns the cached stock for q or asks the wrapped source
func (c *CachedSource) Fetch(ctx context.Context, q domain.Query, now time.Time) (*domain.Stock, error) {
	key := q.Key()
	if stock, ok := c.cache.Get(key); ok {
		return stock, nil
	}
	stock, err := c.next.Fetch(ctx, q, now)
	if err != nil {
		return nil, err
	}
	if c.cache.Add(key, stock) {
		log.Printf("Market: cache full, evicted oldest entry for %s", key)
	}
	return stock, nil
}

// Invalidate drops the cached stock for q
func (c *CachedSource) Invalidate(q domain.Query) {
	c.cache.Remove(q.Key())
}

// Len returns the number of cached entries
func (c *CachedSource) Len() int {
	return c.cache.Len()
}
