package policy

import (
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/skipor/tiercache/internal/util"
)

// ConcurrentLRU is goroutine safe LRU policy without global lock.
//
// State:
// * queue is recency queue of (key, version) records. Queue can contain
// stale records of key: record is genuine only if its version is published in versions.
// Stale records are removed lazily, when they reach queue head.
// * versions maps tracked key to its genuine record.
// * running maps key to operation in flight.
//
// Every mutation of key is an operation installed into running.
// At most one operation per key is in flight, so key data is never mutated concurrently.
// Goroutine that meets foreign operation helps to complete it and retries,
// so stalled goroutine can't block others. Operations on different keys are independent.
type ConcurrentLRU[K comparable] struct {
	queue    *queue[K]
	versions *xsync.MapOf[K, *record[K]]
	running  *xsync.MapOf[K, *operation]
	// clock is source of versions. Versions are never reused, even
	// for key that was evicted and used again.
	clock  atomic.Uint64
	tokens atomic.Uint64
	keys   util.KeyCheck[K]
}

var _ Policy[int] = (*ConcurrentLRU[int])(nil)

func NewConcurrentLRU[K comparable]() *ConcurrentLRU[K] {
	return &ConcurrentLRU[K]{
		queue:    newQueue[K](),
		versions: xsync.NewMapOf[K, *record[K]](),
		running:  xsync.NewMapOf[K, *operation](),
		keys:     util.NewKeyCheck[K](),
	}
}

// Use appends new record of key to queue and publishes its version.
func (p *ConcurrentLRU[K]) Use(key K) (existed bool) {
	p.keys.Assert(key)
	r := &record[K]{key: key}
	p.run(key,
		func() {
			prev, ok := p.versions.Load(key)
			existed = ok
			if ok {
				r.prev.Store(prev)
			}
			r.version = p.clock.Add(1)
			p.queue.push(r)
		},
		func() {
			p.versions.Store(key, r)
		},
	)
	return
}

// Remove erases key version and removes all its records from queue:
// genuine one, and previous down to first already removed.
func (p *ConcurrentLRU[K]) Remove(key K) (removed bool) {
	p.keys.Assert(key)
	var last *record[K]
	p.run(key,
		func() {
			last, removed = p.versions.LoadAndDelete(key)
		},
		func() {
			for r := last; r != nil; {
				prev := r.prev.Load()
				if !r.remove() {
					break
				}
				r = prev
			}
		},
	)
	return
}

// Evict finds genuine record at queue head, dropping stale ones, and evicts its key.
func (p *ConcurrentLRU[K]) Evict() (key K, ok bool) {
	for {
		r := p.queue.peek()
		if r == nil {
			return
		}
		if !p.peek(r) {
			continue
		}
		if p.evict(r) {
			return r.key, true
		}
		// Record was evicted or used concurrently. Try next head.
	}
}

// peek checks that record is genuine. Stale record is removed.
func (p *ConcurrentLRU[K]) peek(r *record[K]) (genuine bool) {
	p.run(r.key, func() {
		if r.removed.Load() {
			return
		}
		if p.isGenuine(r) {
			genuine = true
			return
		}
		r.remove()
	})
	return
}

func (p *ConcurrentLRU[K]) evict(r *record[K]) (evicted bool) {
	p.run(r.key,
		func() {
			// Key could be used, removed or evicted since peek.
			evicted = p.isGenuine(r) && r.remove()
		},
		func() {
			if evicted {
				p.versions.Delete(r.key)
			}
		},
	)
	return
}

func (p *ConcurrentLRU[K]) isGenuine(r *record[K]) bool {
	published, ok := p.versions.Load(r.key)
	return ok && published.version == r.version
}

// run installs operation made of actions for key and completes it.
// Foreign operations met on the way are completed first.
func (p *ConcurrentLRU[K]) run(key K, actions ...func()) {
	token := p.tokens.Add(1)
	op := newOperation(token, func() { p.running.Delete(key) }, actions...)
	for {
		installed, _ := p.running.LoadOrStore(key, op)
		installed.complete()
		if installed.token == token {
			return
		}
	}
}

// Len returns number of tracked keys.
func (p *ConcurrentLRU[K]) Len() int { return p.versions.Size() }
