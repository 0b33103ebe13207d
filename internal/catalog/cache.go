package catalog

import (
	"context"
	"sync"
	"time"
)

// Fetcher is the query side of the catalog client.
type Fetcher interface {
	Products(ctx context.Context, q Query) (*Page, error)
}

// Cache memoizes catalog pages keyed by the full query tuple. Identical
// repeated queries inside the freshness window never re-issue a network
// call. Errors are not cached, so a failed query retries on the next ask.
type Cache struct {
	fetcher Fetcher
	ttl     time.Duration

	mu      sync.Mutex
	entries map[Query]cacheEntry

	now func() time.Time // test hook
}

type cacheEntry struct {
	page      *Page
	fetchedAt time.Time
}

// NewCache wraps a fetcher with a TTL result cache.
func NewCache(f Fetcher, ttl time.Duration) *Cache {
	return &Cache{
		fetcher: f,
		ttl:     ttl,
		entries: make(map[Query]cacheEntry),
		now:     time.Now,
	}
}

// Products returns the cached page for q when fresh, otherwise fetches and
// stores it.
func (c *Cache) Products(ctx context.Context, q Query) (*Page, error) {
	c.mu.Lock()
	if e, ok := c.entries[q]; ok && c.now().Sub(e.fetchedAt) < c.ttl {
		c.mu.Unlock()
		return e.page, nil
	}
	c.mu.Unlock()

	page, err := c.fetcher.Products(ctx, q)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[q] = cacheEntry{page: page, fetchedAt: c.now()}
	c.mu.Unlock()
	return page, nil
}

// Invalidate drops all cached pages. Used by the manual retry/refresh path.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[Query]cacheEntry)
	c.mu.Unlock()
}
