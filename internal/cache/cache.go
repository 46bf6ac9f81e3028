// Package cache provides injected, TTL-keyed in-memory caches for games and simulation results.
package cache

import (
	"fmt"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/yourusername/diamond-odds/internal/metrics"
)

// Cache wraps go-cache with hit/miss accounting
type Cache struct {
	name   string
	store  *gocache.Cache
	ttl    time.Duration
	hits   atomic.Uint64
	misses atomic.Uint64
}

// New creates a named cache whose entries expire after ttl
func New(name string, ttl, cleanup time.Duration) *Cache {
	return &Cache{
		name:  name,
		store: gocache.New(ttl, cleanup),
		ttl:   ttl,
	}
}

// Name returns the cache label used in metrics
func (c *Cache) Name() string {
	return c.name
}

// Get returns the cached value for key
func (c *Cache) Get(key string) (interface{}, bool) {
	value, found := c.store.Get(key)
	if found {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	metrics.RecordCacheLookup(c.name, found)
	return value, found
}

// Set stores value under key with the default TTL
func (c *Cache) Set(key string, value interface{}) {
	c.store.Set(key, value, c.ttl)
}

// ItemCount returns the number of entries, including expired ones not yet cleaned up
func (c *Cache) ItemCount() int {
	return c.store.ItemCount()
}

// Stats returns cache statistics
func (c *Cache) Stats() (hits, misses uint64, ratio float64) {
	hits = c.hits.Load()
	misses = c.misses.Load()
	if total := hits + misses; total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

// SimulationKey builds the result cache key for a game, trial count and seed
func SimulationKey(gameID string, count int, seed int64) string {
	return fmt.Sprintf("simulation:%s:%d:%d", gameID, count, seed)
}

// GameKey builds the cache key for a game record
func GameKey(gameID string) string {
	return "game:" + gameID
}

// ProjectionsKey builds the cache key for a date's projections
func ProjectionsKey(date time.Time) string {
	return "projections:" + date.UTC().Format("2006-01-02")
}
