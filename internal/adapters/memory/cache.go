package memory

import (
	"bytes"
	"context"
	"sync"

	"github.com/aretw0/enfa/pkg/ports"
)

// Cache is an in-process ports.ResultCache.
type Cache struct {
	mu      sync.RWMutex
	entries map[string][]byte
	limit   int
}

// Option configures a Cache.
type Option func(*Cache)

// WithLimit bounds the number of entries. When full, Put evicts an
// arbitrary entry. Zero means unbounded.
func WithLimit(n int) Option {
	return func(c *Cache) {
		c.limit = n
	}
}

// New creates an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{entries: make(map[string][]byte)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get implements ports.ResultCache.
func (c *Cache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.entries[key]
	if !ok {
		return nil, ports.ErrCacheMiss
	}
	return bytes.Clone(v), nil
}

// Put implements ports.ResultCache.
func (c *Cache) Put(_ context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && c.limit > 0 && len(c.entries) >= c.limit {
		for k := range c.entries {
			delete(c.entries, k)
			break
		}
	}
	c.entries[key] = bytes.Clone(value)
	return nil
}

// Len reports the number of stored entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
