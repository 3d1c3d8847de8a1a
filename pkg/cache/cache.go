// Package cache provides the byte cache used for rendered gallery output.
//
// Rendering a gallery is cheap but not free: every request classifies every
// item, balances the columns and executes the HTML templates. Since the output
// depends only on the item list and the container width, the server keys
// rendered fragments by the layout fingerprint and serves repeats from memory.
//
// Two implementations are provided:
//   - [LRUCache]: bounded in-memory cache with optional per-entry expiry
//   - [NullCache]: never stores anything (caching disabled)
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values by key.
type Cache interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
