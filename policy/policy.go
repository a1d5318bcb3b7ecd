package policy

// Policy decides which tracked key should be evicted next.
type Policy[K comparable] interface {
	// Use marks key as recently used. Untracked key becomes tracked.
	// Returns true if key was tracked before.
	Use(key K) (existed bool)
	// Evict stops tracking of next eviction candidate and returns it.
	// ok is false when nothing is tracked.
	Evict() (key K, ok bool)
	// Remove stops key tracking. Returns true if key was tracked.
	Remove(key K) (removed bool)
}
