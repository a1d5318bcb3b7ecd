package cache

import (
	"fmt"

	"github.com/skipor/tiercache/internal/util"
	"github.com/skipor/tiercache/log"
)

// Logging logs every call of wrapped cache at debug level, and failures at error level.
// Logging is as goroutine safe as wrapped cache.
type Logging[K comparable, V any] struct {
	log   log.Logger
	cache Cache[K, V]
}

var _ Cache[int, int] = (*Logging[int, int])(nil)

func NewLogging[K comparable, V any](l log.Logger, c Cache[K, V]) *Logging[K, V] {
	if util.IsNil(c) {
		panic("nil cache")
	}
	return &Logging[K, V]{log: l, cache: c}
}

func (c *Logging[K, V]) Get(key K) (v V, ok bool, err error) {
	v, ok, err = c.cache.Get(key)
	if err != nil {
		c.log.Errorf("Get %v failed: %v", key, err)
		return
	}
	if ok {
		c.log.Debugf("Get %v: hit.", key)
	} else {
		c.log.Debugf("Get %v: miss.", key)
	}
	return
}

func (c *Logging[K, V]) Put(key K, v V) (evicted *Entry[K, V], err error) {
	evicted, err = c.cache.Put(key, v)
	if err != nil {
		c.log.Errorf("Put %v failed: %v", key, err)
		return
	}
	c.logEvicted(fmt.Sprintf("Put %v", key), evicted)
	return
}

func (c *Logging[K, V]) Evict() (evicted *Entry[K, V], err error) {
	evicted, err = c.cache.Evict()
	if err != nil {
		c.log.Errorf("Evict failed: %v", err)
		return
	}
	c.logEvicted("Evict", evicted)
	return
}

func (c *Logging[K, V]) logEvicted(op string, evicted *Entry[K, V]) {
	if evicted == nil {
		c.log.Debugf("%s: nothing evicted.", op)
		return
	}
	c.log.Debugf("%s: evicted %v.", op, evicted.Key)
}

func (c *Logging[K, V]) Remove(key K) (prev V, ok bool, err error) {
	prev, ok, err = c.cache.Remove(key)
	if err != nil {
		c.log.Errorf("Remove %v failed: %v", key, err)
		return
	}
	c.log.Debugf("Remove %v: removed %v.", key, ok)
	return
}

func (c *Logging[K, V]) Contains(key K) bool { return c.cache.Contains(key) }
func (c *Logging[K, V]) Size() int           { return c.cache.Size() }
func (c *Logging[K, V]) Capacity() int       { return c.cache.Capacity() }
func (c *Logging[K, V]) IsFull() bool        { return c.cache.IsFull() }
