package regioncache

import (
	"fmt"

	"github.com/dgraph-io/ristretto"
)

// Cache provides in-memory caching of values keyed by octant id.
type Cache[V any] interface {
	Get(key uint64) (V, bool)
	Add(key uint64, value V)
	Has(key uint64) bool
	Remove(key uint64)
	Clear()
	Close()
}

// RistrettoCache is a bounded Cache backed by ristretto. Every entry costs 1,
// so size is the number of values kept.
type RistrettoCache[V any] struct {
	cache *ristretto.Cache
}

// NewRistrettoCache creates a cache holding at most size values.
func NewRistrettoCache[V any](size int64) (*RistrettoCache[V], error) {
	if size <= 0 {
		return nil, fmt.Errorf("regioncache: size must be positive, got %d", size)
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * size,
		MaxCost:     size,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("regioncache: create cache: %w", err)
	}
	return &RistrettoCache[V]{cache: cache}, nil
}

// Get retrieves a value from the cache.
func (c *RistrettoCache[V]) Get(key uint64) (V, bool) {
	var zero V
	val, ok := c.cache.Get(key)
	if !ok {
		return zero, false
	}
	v, ok := val.(V)
	if !ok {
		return zero, false
	}
	return v, true
}

// Add stores a value. Admission is probabilistic, so a later Get may miss.
func (c *RistrettoCache[V]) Add(key uint64, value V) {
	if c.cache.Set(key, value, 1) {
		c.cache.Wait()
	}
}

// Has checks if a key exists in the cache.
func (c *RistrettoCache[V]) Has(key uint64) bool {
	_, ok := c.cache.Get(key)
	return ok
}

// Remove removes a key from the cache.
func (c *RistrettoCache[V]) Remove(key uint64) {
	c.cache.Del(key)
}

// Clear clears the cache.
func (c *RistrettoCache[V]) Clear() {
	c.cache.Clear()
}

// Close stops the cache's background goroutines.
func (c *RistrettoCache[V]) Close() {
	c.cache.Close()
}

// Nop caches nothing.
type Nop[V any] struct{}

func (Nop[V]) Get(uint64) (V, bool) {
	var zero V
	return zero, false
}

func (Nop[V]) Add(uint64, V) {}
func (Nop[V]) Has(uint64) bool { return false }
func (Nop[V]) Remove(uint64) {}
func (Nop[V]) Clear() {}
func (Nop[V]) Close() {}
