package cache

import (
	"github.com/dgraph-io/ristretto/v2"
)

// DefaultMaxCost bounds a cache to 64MB of cost units (bytes for byte slices).
const DefaultMaxCost = 1 << 26

// Cache is a named, size-bounded cache keyed by string.
type Cache[T any] struct {
	impl *ristretto.Cache[string, T]
	name string
}

// New creates a cache whose entries are charged by costFunc, up to maxCost.
func New[T any](name string, maxCost int64, costFunc func(T) int64) (*Cache[T], error) {
	impl, err := ristretto.NewCache(&ristretto.Config[string, T]{
		NumCounters: maxCost / 1024 * 10, // ~10x the expected number of 1KB+ entries
		MaxCost:     maxCost,
		BufferItems: 64,
		Metrics:     true,
		Cost:        costFunc,
	})
	if err != nil {
		return nil, err
	}

	return &Cache[T]{
		impl: impl,
		name: name,
	}, nil
}

func (c *Cache[T]) Name() string { return c.name }

func (c *Cache[T]) Get(key string) (T, bool) {
	return c.impl.Get(key)
}

// Set stores value; a cost of 0 lets the cost function price it. Sets are
// applied asynchronously, call Wait to make them visible to Get.
func (c *Cache[T]) Set(key string, value T, cost int64) bool {
	return c.impl.Set(key, value, cost)
}

// Wait blocks until buffered sets have been applied.
func (c *Cache[T]) Wait() {
	c.impl.Wait()
}

func (c *Cache[T]) Clear() {
	c.impl.Clear()
}

// Close stops the cache's background goroutines.
func (c *Cache[T]) Close() {
	c.impl.Close()
}

// Stats is a snapshot of cache activity for end-of-run summaries.
type Stats struct {
	Name    string
	Hits    uint64
	Misses  uint64
	Items   uint64
	Cost    uint64
	HitRate float64 // percent
}

func (c *Cache[T]) Stats() Stats {
	m := c.impl.Metrics

	s := Stats{
		Name:   c.name,
		Hits:   m.Hits(),
		Misses: m.Misses(),
		Items:  m.KeysAdded() - m.KeysEvicted(),
		Cost:   m.CostAdded() - m.CostEvicted(),
	}
	if total := s.Hits + s.Misses; total > 0 {
		s.HitRate = float64(s.Hits) / float64(total) * 100
	}
	return s
}
