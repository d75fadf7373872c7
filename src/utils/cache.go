package utils

import (
	"sync"
	"time"
)

type cacheEntry[V any] struct {
	value      V
	expiration time.Time
}

// Cache is an in-process keyed store with per-entry expiration.
type Cache[K comparable, V any] struct {
	entries map[K]cacheEntry[V]
	mutex   sync.RWMutex
	now     func() time.Time
}

func NewCache[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{
		entries: make(map[K]cacheEntry[V]),
		now:     time.Now,
	}
}

// Set stores value under key for duration.
func (c *Cache[K, V]) Set(key K, value V, duration time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[key] = cacheEntry[V]{value: value, expiration: c.now().Add(duration)}
}

// Get returns the value if present and not expired. Expired entries are dropped.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mutex.RLock()
	entry, ok := c.entries[key]
	c.mutex.RUnlock()

	if !ok {
		var zero V
		return zero, false
	}
	if c.now().After(entry.expiration) {
		c.Delete(key)
		var zero V
		return zero, false
	}
	return entry.value, true
}

func (c *Cache[K, V]) Delete(key K) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.entries, key)
}

func (c *Cache[K, V]) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.entries)
}
