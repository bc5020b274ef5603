package store

import (
	"context"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// cleanupFactor sets the expired-entry sweep interval relative to the TTL.
const cleanupFactor = 2

// Cached memoises List results of another Store for a fixed TTL. Errors are not cached.
type Cached struct {
	next   Store
	cache  *gocache.Cache
	hits   atomic.Int64
	misses atomic.Int64
}

// NewCached wraps next with a cache whose entries live for ttl.
func NewCached(next Store, ttl time.Duration) *Cached {
	return &Cached{
		next:  next,
		cache: gocache.New(ttl, cleanupFactor*ttl),
	}
}

// List implements Store.
func (c *Cached) List(ctx context.Context, q Query) (*Page, error) {
	key := q.Key()
	if v, ok := c.cache.Get(key); ok {
		c.hits.Add(1)
		return v.(*Page), nil //nolint:errcheck // only *Page values are stored
	}
	c.misses.Add(1)

	page, err := c.next.List(ctx, q)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, page)
	return page, nil
}

// Flush drops every cached entry.
func (c *Cached) Flush() {
	c.cache.Flush()
}

// Stats returns the number of cache hits and misses so far.
func (c *Cached) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
