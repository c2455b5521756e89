// Package cache provides the LRU cache used to memoize canonicalization
// results.
package cache

import (
	"sync"

	"github.com/golang/groupcache/lru"
)

// Cache is a generic LRU cache interface.
type Cache[K comparable, V any] interface {
	// Get retrieves a value from the cache.
	Get(key K) (V, bool)

	// Put stores a value in the cache.
	Put(key K, value V)

	// Remove removes a value from the cache.
	Remove(key K)

	// Clear removes all entries from the cache.
	Clear()

	// Len returns the number of entries in the cache.
	Len() int

	// Stats returns cache statistics.
	Stats() Stats
}

// Stats contains cache statistics.
type Stats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Size      int   `json:"size"`
	MaxSize   int   `json:"max_size"`
}

// HitRate returns the fraction of lookups that were hits.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Config contains cache configuration options.
type Config struct {
	// MaxSize is the maximum number of entries (0 = unlimited).
	MaxSize int

	// OnEvict is called when an entry leaves the cache, whether it was
	// evicted, removed or cleared.
	OnEvict func(key, value interface{})
}

// DefaultConfig returns a default cache configuration.
func DefaultConfig() Config {
	return Config{
		MaxSize: 256,
	}
}

// lruCache is a thread-safe wrapper around groupcache's LRU.
type lruCache[K comparable, V any] struct {
	mu     sync.Mutex
	config Config
	lru    *lru.Cache
	stats  Stats
}

// NewLRUCache creates a new LRU cache with the given configuration.
func NewLRUCache[K comparable, V any](config Config) Cache[K, V] {
	if config.MaxSize < 0 {
		config.MaxSize = 0
	}

	// Eviction is driven here rather than by lru.Cache.MaxEntries so that
	// evictions can be counted apart from explicit removals.
	l := lru.New(0)
	if config.OnEvict != nil {
		l.OnEvicted = func(key lru.Key, value interface{}) {
			config.OnEvict(key, value)
		}
	}

	return &lruCache[K, V]{
		config: config,
		lru:    l,
	}
}

// Get retrieves a value from the cache.
func (c *lruCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.lru.Get(key)
	if !ok {
		c.stats.Misses++
		var zero V
		return zero, false
	}
	c.stats.Hits++
	return v.(V), true
}

// Put stores a value in the cache.
func (c *lruCache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lru.Add(key, value)
	if c.config.MaxSize > 0 && c.lru.Len() > c.config.MaxSize {
		c.lru.RemoveOldest()
		c.stats.Evictions++
	}
}

// Remove removes a value from the cache.
func (c *lruCache[K, V]) Remove(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Remove(key)
}

// Clear removes all entries from the cache.
func (c *lruCache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Clear()
}

// Len returns the number of entries in the cache.
func (c *lruCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Stats returns cache statistics.
func (c *lruCache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.stats
	s.Size = c.lru.Len()
	s.MaxSize = c.config.MaxSize
	return s
}

// GetOrCompute returns the cached value for key, calling compute and caching
// its result on a miss. compute runs without the cache lock held, so two
// concurrent misses for the same key may both compute.
func GetOrCompute[K comparable, V any](c Cache[K, V], key K, compute func(K) V) V {
	if v, ok := c.Get(key); ok {
		return v
	}
	v := compute(key)
	c.Put(key, v)
	return v
}
