package cache

import "fmt"

// Entry is key value pair evicted from cache.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

func (e *Entry[K, V]) String() string { return fmt.Sprintf("%v:%v", e.Key, e.Value) }

// Cache is capacity bounded key value store.
//
// Errors are storage errors. After error, cache state of operation key is
// undefined: check it with Contains before retry.
type Cache[K comparable, V any] interface {
	// Get returns value and refreshes key recency. Miss doesn't affect recency.
	Get(key K) (v V, ok bool, err error)
	// Put stores value. If cache is full and key is new, one entry is evicted and returned.
	Put(key K, v V) (evicted *Entry[K, V], err error)
	// Evict evicts entry chosen by policy. Returns nil if nothing evicted.
	Evict() (evicted *Entry[K, V], err error)
	Remove(key K) (prev V, ok bool, err error)
	Contains(key K) bool
	Size() int
	Capacity() int
	// IsFull returns true if Size() == Capacity().
	IsFull() bool
}

// InvariantError is panic value, that caches raise when their internal
// invariants are broken. For example, when policy and storage are out of sync.
// Such cache can't be used anymore.
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string { return "cache invariant violated: " + e.Msg }

func invariantViolated(format string, args ...interface{}) {
	panic(&InvariantError{fmt.Sprintf(format, args...)})
}
