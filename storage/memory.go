package storage

import (
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/skipor/tiercache/internal/util"
)

// Memory is map backed storage. Memory is not goroutine safe.
type Memory[K comparable, V any] struct {
	m    map[K]V
	keys util.KeyCheck[K]
}

var _ Storage[int, int] = (*Memory[int, int])(nil)
var _ Keyer[int] = (*Memory[int, int])(nil)

func NewMemory[K comparable, V any]() *Memory[K, V] {
	return &Memory[K, V]{m: make(map[K]V), keys: util.NewKeyCheck[K]()}
}

func (s *Memory[K, V]) Get(key K) (v V, ok bool, err error) {
	v, ok = s.m[key]
	return
}

func (s *Memory[K, V]) Put(key K, v V) (prev V, existed bool, err error) {
	s.keys.Assert(key)
	prev, existed = s.m[key]
	s.m[key] = v
	return
}

func (s *Memory[K, V]) Remove(key K) (prev V, existed bool, err error) {
	prev, existed = s.m[key]
	if existed {
		delete(s.m, key)
	}
	return
}

func (s *Memory[K, V]) Contains(key K) bool {
	_, ok := s.m[key]
	return ok
}

func (s *Memory[K, V]) Size() int { return len(s.m) }

func (s *Memory[K, V]) Keys() []K {
	keys := make([]K, 0, len(s.m))
	for k := range s.m {
		keys = append(keys, k)
	}
	return keys
}

// ConcurrentMemory is goroutine safe in memory storage.
type ConcurrentMemory[K comparable, V any] struct {
	m    *xsync.MapOf[K, V]
	keys util.KeyCheck[K]
}

var _ Storage[int, int] = (*ConcurrentMemory[int, int])(nil)
var _ Keyer[int] = (*ConcurrentMemory[int, int])(nil)

func NewConcurrentMemory[K comparable, V any]() *ConcurrentMemory[K, V] {
	return &ConcurrentMemory[K, V]{m: xsync.NewMapOf[K, V](), keys: util.NewKeyCheck[K]()}
}

func (s *ConcurrentMemory[K, V]) Get(key K) (v V, ok bool, err error) {
	v, ok = s.m.Load(key)
	return
}

func (s *ConcurrentMemory[K, V]) Put(key K, v V) (prev V, existed bool, err error) {
	s.keys.Assert(key)
	prev, existed = s.m.LoadAndStore(key, v)
	return
}

func (s *ConcurrentMemory[K, V]) Remove(key K) (prev V, existed bool, err error) {
	prev, existed = s.m.LoadAndDelete(key)
	return
}

func (s *ConcurrentMemory[K, V]) Contains(key K) bool {
	_, ok := s.m.Load(key)
	return ok
}

func (s *ConcurrentMemory[K, V]) Size() int { return s.m.Size() }

func (s *ConcurrentMemory[K, V]) Keys() []K {
	keys := make([]K, 0, s.m.Size())
	s.m.Range(func(k K, _ V) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}
