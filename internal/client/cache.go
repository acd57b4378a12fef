package client

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/AngelCh415/marketing-dashboard/internal/metrics"
)

type entry struct {
	value any
	gen   uint64 // generation the value was fetched under
}

// QueryCache holds one result per key until it is invalidated. Concurrent
// reads of a missing or stale key share a single fetch.
type QueryCache struct {
	mu            sync.Mutex
	entries       map[string]*entry
	gens          map[string]uint64
	invalidations map[string]int
	group         singleflight.Group
	m             *metrics.Cache
}

// NewQueryCache returns an empty cache. m may be nil.
func NewQueryCache(m *metrics.Cache) *QueryCache {
	return &QueryCache{
		entries:       make(map[string]*entry),
		gens:          make(map[string]uint64),
		invalidations: make(map[string]int),
		m:             m,
	}
}

// Get returns the cached value for key or runs fetch. A value fetched while
// the key was invalidated is handed to the waiting callers but stays stale.
func (c *QueryCache) Get(ctx context.Context, key string, fetch func(context.Context) (any, error)) (any, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && e.gen == c.gens[key] {
		c.mu.Unlock()
		return e.value, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do(key, func() (any, error) {
		c.mu.Lock()
		gen := c.gens[key]
		c.mu.Unlock()

		v, err := fetch(ctx)
		c.m.Fetched(key, err)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[key] = &entry{value: v, gen: gen}
		c.mu.Unlock()
		return v, nil
	})
	return v, err
}

// Invalidate marks key stale; the next Get fetches again.
func (c *QueryCache) Invalidate(key string) {
	c.mu.Lock()
	c.gens[key]++
	c.invalidations[key]++
	c.mu.Unlock()
	c.m.Invalidated(key)
}

// Fresh reports whether key holds a value that has not been invalidated.
func (c *QueryCache) Fresh(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return ok && e.gen == c.gens[key]
}

// Invalidations counts Invalidate calls for key.
func (c *QueryCache) Invalidations(key string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.invalidations[key]
}
