package policy

import (
	"fmt"

	"github.com/skipor/tiercache/internal/tag"
)

// Pre and post conditions (Invariants) for every recency method:
// * recency owns nodes between fakeHead and fakeTail.
// * {fakeHead, all owned nodes, fakeTail} are correct doubly linked list.
// * table refers exactly to owned nodes, by their keys.
type recency[K comparable] struct {
	table map[K]*node[K]

	// Fake nodes. Real nodes are between them.
	// nil <- fakeHead <-> node_0 <-> ... <-> node_(n-1) <-> fakeTail -> nil
	// Such structure prevent nil checks in code.

	// fakeHead is bottom of recency. fakeHead.next is least recently used key.
	fakeHead *node[K]

	// fakeTail is top of recency. All used keys are moved before fakeTail.
	fakeTail *node[K]
}

type node[K comparable] struct {
	key  K
	prev *node[K]
	next *node[K]
}

func newRecency[K comparable]() *recency[K] {
	r := &recency[K]{table: make(map[K]*node[K])}
	r.fakeHead, r.fakeTail = &node[K]{}, &node[K]{}
	link(r.fakeHead, r.fakeTail)
	return r
}

// touch moves key on top. Not tracked key is added.
func (r *recency[K]) touch(key K) (existed bool) {
	n, existed := r.table[key]
	if existed {
		n.detach()
	} else {
		n = &node[K]{key: key}
		r.table[key] = n
	}
	link(r.tail(), n)
	link(n, r.fakeTail)
	return
}

func (r *recency[K]) remove(key K) (removed bool) {
	n, ok := r.table[key]
	if !ok {
		return false
	}
	r.delete(n)
	return true
}

// evict removes n, that should be head or tail.
func (r *recency[K]) evict(n *node[K]) (key K, ok bool) {
	if r.empty() {
		return
	}
	r.assertNotFake(n)
	key = n.key
	r.delete(n)
	return key, true
}

func (r *recency[K]) delete(n *node[K]) {
	n.detach()
	delete(r.table, n.key)
}

func (r *recency[K]) head() *node[K]      { return r.fakeHead.next }
func (r *recency[K]) tail() *node[K]      { return r.fakeTail.prev }
func (r *recency[K]) end(n *node[K]) bool { return n == r.fakeTail }
func (r *recency[K]) empty() bool         { return len(r.table) == 0 }
func (r *recency[K]) len() int            { return len(r.table) }

// keys returns keys from least to most recently used.
func (r *recency[K]) keys() []K {
	keys := make([]K, 0, len(r.table))
	for n := r.head(); !r.end(n); n = n.next {
		keys = append(keys, n.key)
	}
	return keys
}

func (r *recency[K]) assertNotFake(n *node[K]) {
	if n == r.fakeTail || n == r.fakeHead {
		panic("node pointer out of range")
	}
}

func (n *node[K]) detach() {
	link(n.prev, n.next)
	if tag.Debug {
		n.prev = nil
		n.next = nil
	}
}

func link[K comparable](a, b *node[K]) { a.next, b.prev = b, a }

func (n *node[K]) GoString() string {
	key := func(n *node[K]) interface{} {
		if n == nil {
			return nil
		}
		return n.key
	}
	return fmt.Sprintf("{key:%#v, prev:%v, next:%v}", n.key, key(n.prev), key(n.next))
}

var _ fmt.GoStringer = (*node[int])(nil)
