// Package teststubs provides hand-rolled test doubles shared across
// package tests.
package teststubs

import (
	"context"
	"path"
	"sort"
	"sync"

	"live-markets-service/internal/cache"
)

// MemoryCache is an in-memory cache.Store. Glob matching in Keys supports
// the same patterns the pipeline uses (a trailing "*" segment).
type MemoryCache struct {
	mu   sync.Mutex
	data map[string][]byte

	// FailSet, when true, makes every Set return ErrDown.
	FailSet bool
	// FailGet, when true, makes every Get return ErrDown.
	FailGet bool
}

// ErrDown simulates a sink outage.
var ErrDown = errDown{}

type errDown struct{}

func (errDown) Error() string { return "stub cache down" }

// NewMemoryCache returns an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{data: map[string][]byte{}}
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte) error {
	if c.FailSet {
		return ErrDown
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	c.data[key] = cp
	return nil
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	if c.FailGet {
		return nil, ErrDown
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.data[key]
	if !ok {
		return nil, cache.ErrNotFound
	}
	return value, nil
}

func (c *MemoryCache) Keys(_ context.Context, pattern string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var keys []string
	for k := range c.data {
		ok, err := path.Match(pattern, k)
		if err != nil {
			return nil, err
		}
		if ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (c *MemoryCache) Delete(_ context.Context, keys ...string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := c.data[k]; ok {
			delete(c.data, k)
			n++
		}
	}
	return n, nil
}

// Len reports how many keys are stored.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}
