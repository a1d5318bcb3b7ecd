// Package storage contains key value storages, that caches keep their data in.
// Storage knows nothing about capacity and eviction: caches manage it.
package storage

// Storage is a key value store.
// Get, Put and Remove may fail on I/O. Contains and Size answer from
// in memory state, so they never fail.
type Storage[K comparable, V any] interface {
	Get(key K) (value V, ok bool, err error)
	// Put stores value and returns previous one, if key existed.
	Put(key K, value V) (prev V, existed bool, err error)
	// Remove erases key and returns its value, if key existed.
	Remove(key K) (prev V, existed bool, err error)
	Contains(key K) bool
	Size() int
}

// Keyer is implemented by storages, that can list their keys.
// Caches use it to track keys of storage, that is not empty on creation.
type Keyer[K comparable] interface {
	Keys() []K
}
