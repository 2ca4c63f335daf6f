// Package cache menyediakan cache TTL in-process untuk endpoint data referensi
// (rooms, time slots, courses). Tidak boleh dipakai untuk entity alur kerja —
// semua keputusan attendance/payment selalu baca langsung dari DB.
package cache

import (
	"sync"
	"time"
)

type Cache interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{}, ttl time.Duration)
	Invalidate(keys ...string)
}

type entry struct {
	value     interface{}
	expiresAt time.Time
}

type TTLCache struct {
	mu    sync.RWMutex
	items map[string]entry
}

func NewTTL() *TTLCache {
	return &TTLCache{items: make(map[string]entry)}
}

func (c *TTLCache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

func (c *TTLCache) Set(key string, value interface{}, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.items[key] = entry{value: value, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
}

func (c *TTLCache) Invalidate(keys ...string) {
	c.mu.Lock()
	for _, k := range keys {
		delete(c.items, k)
	}
	c.mu.Unlock()
}
