package geocode

import (
	"sync"
	"time"
)

// Cache stores geocoding results keyed by the exact query string. Negative
// results (nil Point) are cached too, so repeated lookups of an unresolvable
// location do not hit the provider again within the TTL.
type Cache interface {
	Get(key string) (*Point, bool)
	Set(key string, value *Point)
}

type cacheEntry struct {
	value    *Point
	storedAt time.Time
}

// TTLCache is a bounded in-memory cache. Entries expire after the TTL and,
// when the cache is full, the oldest entry is evicted on insert. Safe for
// concurrent use.
type TTLCache struct {
	mu         sync.Mutex
	entries    map[string]cacheEntry
	ttl        time.Duration
	maxEntries int

	now func() time.Time
}

func NewTTLCache(ttl time.Duration, maxEntries int) *TTLCache {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &TTLCache{
		entries:    make(map[string]cacheEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (c *TTLCache) Get(key string) (*Point, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.storedAt) > c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return entry.value, true
}

func (c *TTLCache) Set(key string, value *Point) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictLocked()
	}

	c.entries[key] = cacheEntry{value: value, storedAt: c.now()}
}

// Len returns the number of entries currently held, expired or not.
func (c *TTLCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evictLocked drops expired entries first, then the oldest entry if the
// cache is still full. Caller must hold the mutex.
func (c *TTLCache) evictLocked() {
	now := c.now()
	for key, entry := range c.entries {
		if now.Sub(entry.storedAt) > c.ttl {
			delete(c.entries, key)
		}
	}

	if len(c.entries) < c.maxEntries {
		return
	}

	var oldestKey string
	var oldestAt time.Time
	first := true
	for key, entry := range c.entries {
		if first || entry.storedAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = entry.storedAt
			first = false
		}
	}
	delete(c.entries, oldestKey)
}
