package dao

import (
	"strings"
	"sync"
	"time"
)

// DefaultCacheTTL is the default time-to-live for cached values.
const DefaultCacheTTL = 5 * time.Minute

type cacheEntry[V any] struct {
	value     V
	timestamp time.Time
}

// ResourceCache provides TTL-based caching keyed by string.
type ResourceCache[V any] struct {
	data map[string]cacheEntry[V]
	ttl  time.Duration
	now  func() time.Time
	mx   sync.RWMutex
}

// NewResourceCache creates a new ResourceCache with the specified TTL.
func NewResourceCache[V any](ttl time.Duration) *ResourceCache[V] {
	return &ResourceCache[V]{
		data: make(map[string]cacheEntry[V]),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Get returns the cached value for key, if present and not expired.
func (c *ResourceCache[V]) Get(key string) (V, bool) {
	c.mx.RLock()
	defer c.mx.RUnlock()

	var zero V
	entry, ok := c.data[key]
	if !ok {
		return zero, false
	}
	if c.ttl > 0 && c.now().Sub(entry.timestamp) > c.ttl {
		return zero, false
	}

	return entry.value, true
}

// Set stores value under key.
func (c *ResourceCache[V]) Set(key string, value V) {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.data[key] = cacheEntry[V]{
		value:     value,
		timestamp: c.now(),
	}
}

// InvalidatePrefix removes all cache entries whose keys start with the given prefix.
func (c *ResourceCache[V]) InvalidatePrefix(prefix string) {
	c.mx.Lock()
	defer c.mx.Unlock()

	for key := range c.data {
		if strings.HasPrefix(key, prefix) {
			delete(c.data, key)
		}
	}
}
