package query

import (
	"context"
	"sync"
	"time"

	"github.com/paulmach/orb/geojson"
)

// Cache stores fetched collections by query key.
type Cache interface {
	Get(ctx context.Context, key string) (*geojson.FeatureCollection, bool, error)
	Set(ctx context.Context, key string, fc *geojson.FeatureCollection, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type memoryEntry struct {
	fc      *geojson.FeatureCollection
	expires time.Time
}

// MemoryCache is a process-local Cache.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryCache creates an empty cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) (*geojson.FeatureCollection, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if !entry.expires.IsZero() && c.now().After(entry.expires) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()

		return nil, false, nil
	}

	return entry.fc, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, fc *geojson.FeatureCollection, ttl time.Duration) error {
	entry := memoryEntry{fc: fc}
	if ttl > 0 {
		entry.expires = c.now().Add(ttl)
	}

	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()

	return nil
}

func (c *MemoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	for _, key := range keys {
		delete(c.entries, key)
	}
	c.mu.Unlock()

	return nil
}
