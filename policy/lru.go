package policy

import "github.com/skipor/tiercache/internal/util"

// LRU evicts least recently used key first. LRU is not goroutine safe.
type LRU[K comparable] struct {
	recency *recency[K]
	keys    util.KeyCheck[K]
}

var _ Policy[int] = (*LRU[int])(nil)

func NewLRU[K comparable]() *LRU[K] {
	return &LRU[K]{newRecency[K](), util.NewKeyCheck[K]()}
}

func (p *LRU[K]) Use(key K) bool {
	p.keys.Assert(key)
	defer p.recency.checkInvariants()
	return p.recency.touch(key)
}

func (p *LRU[K]) Evict() (K, bool) {
	defer p.recency.checkInvariants()
	return p.recency.evict(p.recency.head())
}

func (p *LRU[K]) Remove(key K) bool {
	p.keys.Assert(key)
	defer p.recency.checkInvariants()
	return p.recency.remove(key)
}

// Len returns number of tracked keys.
func (p *LRU[K]) Len() int { return p.recency.len() }

// Keys returns tracked keys in eviction order.
func (p *LRU[K]) Keys() []K { return p.recency.keys() }

// MRU evicts most recently used key first. MRU is not goroutine safe.
type MRU[K comparable] struct {
	recency *recency[K]
	keys    util.KeyCheck[K]
}

var _ Policy[int] = (*MRU[int])(nil)

func NewMRU[K comparable]() *MRU[K] {
	return &MRU[K]{newRecency[K](), util.NewKeyCheck[K]()}
}

func (p *MRU[K]) Use(key K) bool {
	p.keys.Assert(key)
	defer p.recency.checkInvariants()
	return p.recency.touch(key)
}

func (p *MRU[K]) Evict() (K, bool) {
	defer p.recency.checkInvariants()
	return p.recency.evict(p.recency.tail())
}

func (p *MRU[K]) Remove(key K) bool {
	p.keys.Assert(key)
	defer p.recency.checkInvariants()
	return p.recency.remove(key)
}

func (p *MRU[K]) Len() int { return p.recency.len() }

// Keys returns tracked keys in eviction order.
func (p *MRU[K]) Keys() []K {
	keys := p.recency.keys()
	for i, j := 0, len(keys)-1; i < j; i, j = i+1, j-1 {
		keys[i], keys[j] = keys[j], keys[i]
	}
	return keys
}
