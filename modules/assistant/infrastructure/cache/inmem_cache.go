package cache

import (
	"context"
	"sync"
	"time"

	"github.com/flowgate/flowgate/modules/assistant/domain/entities/cache"
)

type inmemEntry struct {
	value     string
	expiresAt time.Time
}

// InmemCache is the default response cache. Entries are evicted lazily
// on read once their TTL has passed.
type InmemCache struct {
	mu      sync.RWMutex
	entries map[string]inmemEntry
	ttl     time.Duration
}

func NewInmemCache(ttl time.Duration) *InmemCache {
	return &InmemCache{
		entries: make(map[string]inmemEntry),
		ttl:     ttl,
	}
}

func (c *InmemCache) Get(_ context.Context, key string) (string, error) {
	c.mu.RLock()
	entry, found := c.entries[key]
	c.mu.RUnlock()
	if !found {
		return "", cache.ErrKeyNotFound
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return "", cache.ErrKeyNotFound
	}
	return entry.value, nil
}

func (c *InmemCache) Set(_ context.Context, key string, value string) error {
	entry := inmemEntry{value: value}
	if c.ttl > 0 {
		entry.expiresAt = time.Now().Add(c.ttl)
	}
	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
	return nil
}
