// Package cache provides the two caching layers behind the analytics
// API: a Redis-backed snapshot cache and a small in-process cache for
// short-lived derived data.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     interface{}
	expiresAt time.Time
}

// Expiring is an in-process TTL cache for derived per-request data such
// as filtered response listings. Expired entries are dropped lazily on
// read.
type Expiring struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
}

// NewExpiring creates an in-process cache whose entries live for ttl.
func NewExpiring(ttl time.Duration) *Expiring {
	return &Expiring{
		entries: make(map[string]entry),
		ttl:     ttl,
	}
}

// Get returns the cached value for key, or false if missing or expired.
func (c *Expiring) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		c.mu.Lock()
		// Recheck under the write lock; another Set may have replaced it.
		if cur, ok := c.entries[key]; ok && time.Now().After(cur.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

// Set stores value under key with the cache's TTL.
func (c *Expiring) Set(key string, value interface{}) {
	c.mu.Lock()
	c.entries[key] = entry{value: value, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

// Invalidate removes key if present.
func (c *Expiring) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Clear drops every entry. Used when the underlying dataset refreshes.
func (c *Expiring) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

// Len reports the number of stored entries, expired ones included.
func (c *Expiring) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
