package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryCache keeps blacklisted token ids in process until they expire.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (c *MemoryCache) IsTokenBlacklisted(_ context.Context, tokenID string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	exp, ok := c.entries[tokenID]
	if !ok {
		return false, nil
	}
	if !c.now().Before(exp) {
		delete(c.entries, tokenID)
		return false, nil
	}
	return true, nil
}

func (c *MemoryCache) AddToTokenBlacklist(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for id, exp := range c.entries {
		if !now.Before(exp) {
			delete(c.entries, id)
		}
	}
	c.entries[tokenID] = now.Add(ttl)
	return nil
}

func (c *MemoryCache) Ping(context.Context) error { return nil }

func (c *MemoryCache) Close() error { return nil }
