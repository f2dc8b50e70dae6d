package cache

import (
	"sync"
	"time"

	"github.com/evlampy/storeboard/internal/dependency"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// TTLCache is an in-memory cache with per-entry expiry. It is injected into
// the fetch layer rather than living as a package-level singleton so callers
// stay testable in isolation.
type TTLCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

func NewTTL() dependency.Cache {
	return &TTLCache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (c *TTLCache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		c.Expire(key)
		return nil, false
	}
	return e.value, true
}

func (c *TTLCache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, expiresAt: c.now().Add(ttl)}
}

func (c *TTLCache) Expire(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}
