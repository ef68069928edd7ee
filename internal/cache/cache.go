// Package cache provides an in-memory TTL cache for public market data replies.
package cache

import (
	"sync"
	"time"
)

// Cache stores values for a fixed TTL. It is safe for concurrent use.
// Expired entries are dropped lazily on Set.
type Cache[V any] struct {
	mu    sync.RWMutex
	items map[string]item[V]
	ttl   time.Duration
	now   func() time.Time
}

type item[V any] struct {
	value     V
	expiresAt time.Time
}

// New creates a Cache whose entries live for ttl.
func New[V any](ttl time.Duration) *Cache[V] {
	return NewWithClock[V](ttl, time.Now)
}

// NewWithClock is New with an injectable clock.
func NewWithClock[V any](ttl time.Duration, now func() time.Time) *Cache[V] {
	return &Cache[V]{
		items: make(map[string]item[V]),
		ttl:   ttl,
		now:   now,
	}
}

// Get returns the value stored under key. ok is false when the key is
// absent or expired.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	it, exists := c.items[key]
	if !exists || !c.now().Before(it.expiresAt) {
		var zero V
		return zero, false
	}
	return it.value, true
}

// Set stores value under key for the cache TTL.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, it := range c.items {
		if !now.Before(it.expiresAt) {
			delete(c.items, k)
		}
	}
	c.items[key] = item[V]{value: value, expiresAt: now.Add(c.ttl)}
}

// Clear removes every entry.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]item[V])
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
