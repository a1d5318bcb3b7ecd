package cache

import (
	"github.com/skipor/tiercache/internal/util"
	"github.com/skipor/tiercache/policy"
	"github.com/skipor/tiercache/storage"
)

// Simple is cache of one storage, managed by one policy.
// Key is tracked by policy if and only if it is in storage.
//
// Storage can be non empty on creation, if it implements storage.Keyer.
// Its keys are tracked by policy in listed order. Storage larger than
// capacity should be shrunk by Evict calls before use.
type Simple[K comparable, V any] struct {
	storage  storage.Storage[K, V]
	policy   policy.Policy[K]
	capacity int
	keys     util.KeyCheck[K]
}

var _ Cache[int, int] = (*Simple[int, int])(nil)

func NewSimple[K comparable, V any](s storage.Storage[K, V], p policy.Policy[K], capacity int) *Simple[K, V] {
	if util.IsNil(s) {
		panic("nil storage")
	}
	if util.IsNil(p) {
		panic("nil policy")
	}
	if capacity <= 0 {
		panic("capacity should be positive")
	}
	if keyer, ok := s.(storage.Keyer[K]); ok {
		for _, key := range keyer.Keys() {
			p.Use(key)
		}
	}
	return &Simple[K, V]{
		storage:  s,
		policy:   p,
		capacity: capacity,
		keys:     util.NewKeyCheck[K](),
	}
}

func (c *Simple[K, V]) Get(key K) (v V, ok bool, err error) {
	c.keys.Assert(key)
	v, ok, err = c.storage.Get(key)
	if ok && err == nil {
		c.policy.Use(key)
	}
	return
}

func (c *Simple[K, V]) Put(key K, v V) (evicted *Entry[K, V], err error) {
	c.keys.Assert(key)
	defer c.checkInvariants()
	if c.Size() >= c.capacity && !c.storage.Contains(key) {
		evicted, err = c.Evict()
		if err != nil {
			return
		}
	}
	existed := c.policy.Use(key)
	_, _, err = c.storage.Put(key, v)
	if err != nil && !existed && !c.storage.Contains(key) {
		// Storage was not changed. Forget key, for policy to keep tracking storage keys only.
		c.policy.Remove(key)
	}
	return
}

func (c *Simple[K, V]) Evict() (evicted *Entry[K, V], err error) {
	key, ok := c.policy.Evict()
	if !ok {
		return
	}
	v, ok, err := c.storage.Remove(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		invariantViolated("evicted key %v is not in storage", key)
	}
	return &Entry[K, V]{key, v}, nil
}

func (c *Simple[K, V]) Remove(key K) (prev V, ok bool, err error) {
	c.keys.Assert(key)
	c.policy.Remove(key)
	return c.storage.Remove(key)
}

func (c *Simple[K, V]) Contains(key K) bool {
	c.keys.Assert(key)
	return c.storage.Contains(key)
}

func (c *Simple[K, V]) Size() int     { return c.storage.Size() }
func (c *Simple[K, V]) Capacity() int { return c.capacity }
func (c *Simple[K, V]) IsFull() bool  { return c.Size() == c.capacity }
