package cache

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSize is the number of entries kept when no size is configured.
const DefaultSize = 256

// LRUCache is a bounded in-memory cache. The least recently used entry is
// evicted when the cache is full; expired entries are dropped on read.
type LRUCache struct {
	entries *lru.Cache[string, lruEntry]
	now     func() time.Time
}

type lruEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewLRUCache creates an in-memory cache holding at most size entries.
// A size of zero or less disables caching and returns a [NullCache].
func NewLRUCache(size int) (Cache, error) {
	if size <= 0 {
		return NewNullCache(), nil
	}
	entries, err := lru.New[string, lruEntry](size)
	if err != nil {
		return nil, fmt.Errorf("create lru cache: %w", err)
	}
	return &LRUCache{entries: entries, now: time.Now}, nil
}

// Get retrieves a value from the cache.
func (c *LRUCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	e, ok := c.entries.Get(key)
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && c.now().After(e.expiresAt) {
		c.entries.Remove(key)
		return nil, false, nil
	}
	return e.data, true, nil
}

// Set stores a copy of data in the cache.
func (c *LRUCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	e := lruEntry{data: append([]byte(nil), data...)}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}
	c.entries.Add(key, e)
	return nil
}

// Delete removes a value from the cache.
func (c *LRUCache) Delete(ctx context.Context, key string) error {
	c.entries.Remove(key)
	return nil
}

// Close purges all entries.
func (c *LRUCache) Close() error {
	c.entries.Purge()
	return nil
}

// Len returns the number of cached entries, including expired ones not yet read.
func (c *LRUCache) Len() int { return c.entries.Len() }

// Ensure LRUCache implements Cache.
var _ Cache = (*LRUCache)(nil)
