package cache

import (
	"sync"

	"github.com/skipor/tiercache/internal/util"
)

// Synchronized serializes all calls of wrapped cache.
type Synchronized[K comparable, V any] struct {
	mu    sync.Mutex
	cache Cache[K, V]
}

var _ Cache[int, int] = (*Synchronized[int, int])(nil)

func NewSynchronized[K comparable, V any](c Cache[K, V]) *Synchronized[K, V] {
	if util.IsNil(c) {
		panic("nil cache")
	}
	return &Synchronized[K, V]{cache: c}
}

func (c *Synchronized[K, V]) Get(key K) (V, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Get(key)
}

func (c *Synchronized[K, V]) Put(key K, v V) (*Entry[K, V], error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Put(key, v)
}

func (c *Synchronized[K, V]) Evict() (*Entry[K, V], error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Evict()
}

func (c *Synchronized[K, V]) Remove(key K) (V, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Remove(key)
}

func (c *Synchronized[K, V]) Contains(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Contains(key)
}

func (c *Synchronized[K, V]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Size()
}

func (c *Synchronized[K, V]) Capacity() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Capacity()
}

func (c *Synchronized[K, V]) IsFull() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.IsFull()
}
