package policy

import (
	"sync"

	"github.com/skipor/tiercache/internal/util"
)

// Synchronized makes any policy goroutine safe, guarding every call by one mutex.
type Synchronized[K comparable] struct {
	mu     sync.Mutex
	policy Policy[K]
	keys   util.KeyCheck[K]
}

var _ Policy[int] = (*Synchronized[int])(nil)

func NewSynchronized[K comparable](p Policy[K]) *Synchronized[K] {
	if p == nil {
		panic("nil policy")
	}
	return &Synchronized[K]{policy: p, keys: util.NewKeyCheck[K]()}
}

func (s *Synchronized[K]) Use(key K) bool {
	s.keys.Assert(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.policy.Use(key)
}

func (s *Synchronized[K]) Evict() (K, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.policy.Evict()
}

func (s *Synchronized[K]) Remove(key K) bool {
	s.keys.Assert(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.policy.Remove(key)
}
