package cache

import "github.com/skipor/tiercache/internal/util"

// MultiLevel composes caches into levels. New entries are put to level 0.
// Entry evicted from level i cascades to level i+1, and entry
// evicted from last level falls out of cache.
//
// Key is in at most one level. It holds for concurrent use only
// if all MultiLevel calls are serialized, see NewSynchronized.
type MultiLevel[K comparable, V any] struct {
	levels []Cache[K, V]
	keys   util.KeyCheck[K]
}

var _ Cache[int, int] = (*MultiLevel[int, int])(nil)

func NewMultiLevel[K comparable, V any](levels ...Cache[K, V]) *MultiLevel[K, V] {
	if len(levels) == 0 {
		panic("no levels")
	}
	for _, l := range levels {
		if util.IsNil(l) {
			panic("nil level")
		}
	}
	return &MultiLevel[K, V]{append([]Cache[K, V](nil), levels...), util.NewKeyCheck[K]()}
}

// Get finds key in first level that contains it. Entry found in deeper
// level is promoted to level 0.
func (c *MultiLevel[K, V]) Get(key K) (v V, ok bool, err error) {
	c.keys.Assert(key)
	for i, l := range c.levels {
		v, ok, err = l.Get(key)
		if err != nil {
			return
		}
		if !ok {
			continue
		}
		if i > 0 {
			err = c.promote(i, key, v)
		}
		return
	}
	return
}

func (c *MultiLevel[K, V]) promote(from int, key K, v V) (err error) {
	defer c.checkInvariants(key)
	if _, _, err = c.levels[from].Remove(key); err != nil {
		return
	}
	evicted, err := c.cascade(0, key, v)
	if evicted != nil {
		// Promotion doesn't change total size.
		invariantViolated("entry %v evicted on promotion of %v", evicted, key)
	}
	return
}

// Put removes key from its level and puts it to level 0.
func (c *MultiLevel[K, V]) Put(key K, v V) (evicted *Entry[K, V], err error) {
	c.keys.Assert(key)
	defer c.checkInvariants(key)
	if _, _, err = c.Remove(key); err != nil {
		return
	}
	return c.cascade(0, key, v)
}

// Evict evicts from level 0. Evicted entry cascades to level 1 and further.
func (c *MultiLevel[K, V]) Evict() (evicted *Entry[K, V], err error) {
	evicted, err = c.levels[0].Evict()
	if evicted == nil || err != nil {
		return
	}
	return c.cascade(1, evicted.Key, evicted.Value)
}

// cascade puts entry to level start. Entries evicted from level i are put
// into level i+1. Returns entry evicted from last level.
func (c *MultiLevel[K, V]) cascade(start int, key K, v V) (evicted *Entry[K, V], err error) {
	evicted = &Entry[K, V]{key, v}
	for i := start; i < len(c.levels) && evicted != nil; i++ {
		evicted, err = c.levels[i].Put(evicted.Key, evicted.Value)
		if err != nil {
			return
		}
	}
	return
}

func (c *MultiLevel[K, V]) Remove(key K) (prev V, ok bool, err error) {
	c.keys.Assert(key)
	if l := c.level(key); l != nil {
		return l.Remove(key)
	}
	return
}

func (c *MultiLevel[K, V]) Contains(key K) bool {
	c.keys.Assert(key)
	return c.level(key) != nil
}

func (c *MultiLevel[K, V]) level(key K) Cache[K, V] {
	for _, l := range c.levels {
		if l.Contains(key) {
			return l
		}
	}
	return nil
}

func (c *MultiLevel[K, V]) Size() (size int) {
	for _, l := range c.levels {
		size += l.Size()
	}
	return
}

func (c *MultiLevel[K, V]) Capacity() (capacity int) {
	for _, l := range c.levels {
		capacity += l.Capacity()
	}
	return
}

func (c *MultiLevel[K, V]) IsFull() bool { return c.Size() == c.Capacity() }

// Levels returns number of levels.
func (c *MultiLevel[K, V]) Levels() int { return len(c.levels) }
