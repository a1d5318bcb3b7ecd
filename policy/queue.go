package policy

import "sync/atomic"

// record is (key, version) entry of concurrent recency queue.
// Record fields except atomics are immutable after push.
type record[K comparable] struct {
	key     K
	version uint64
	removed atomic.Bool
	// prev is previous record of the same key, that was genuine when this
	// record was pushed. Cleared on removal, so removed records don't retain chains.
	prev atomic.Pointer[record[K]]
	// next is queue link.
	next atomic.Pointer[record[K]]
}

// remove marks record as removed from queue. Returns false, if it was removed already.
func (r *record[K]) remove() bool {
	if !r.removed.CompareAndSwap(false, true) {
		return false
	}
	r.prev.Store(nil)
	return true
}

// queue is lock-free FIFO of records with logical deletion.
// Removed records are skipped and unlinked lazily, when they reach head.
//
// head is sentinel: head.next is first record. Sentinel content is meaningless.
// tail is last record or lags behind it at most for one link.
type queue[K comparable] struct {
	head atomic.Pointer[record[K]]
	tail atomic.Pointer[record[K]]
}

func newQueue[K comparable]() *queue[K] {
	q := &queue[K]{}
	sentinel := &record[K]{}
	q.head.Store(sentinel)
	q.tail.Store(sentinel)
	return q
}

func (q *queue[K]) push(r *record[K]) {
	for {
		tail := q.tail.Load()
		next := tail.next.Load()
		if tail != q.tail.Load() {
			continue
		}
		if next != nil {
			// Help lagging push.
			q.tail.CompareAndSwap(tail, next)
			continue
		}
		if tail.next.CompareAndSwap(nil, r) {
			q.tail.CompareAndSwap(tail, r)
			return
		}
	}
}

// peek returns first not removed record, or nil if there is no such.
// Records removed before it are unlinked.
func (q *queue[K]) peek() *record[K] {
	for {
		head := q.head.Load()
		first := head.next.Load()
		if head != q.head.Load() {
			continue
		}
		if first == nil {
			return nil
		}
		if !first.removed.Load() {
			return first
		}
		if tail := q.tail.Load(); tail == head {
			// Tail should not fall behind head.
			q.tail.CompareAndSwap(tail, first)
		}
		// Removed first record becomes new sentinel.
		q.head.CompareAndSwap(head, first)
	}
}

// len counts not removed records. O(n), for tests and debug only.
func (q *queue[K]) len() (n int) {
	for r := q.head.Load().next.Load(); r != nil; r = r.next.Load() {
		if !r.removed.Load() {
			n++
		}
	}
	return
}
