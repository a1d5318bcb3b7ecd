// Package cache provides capacity bounded caches, composed of storage and eviction policy.
//
// Simple cache binds one storage, one policy and capacity. MultiLevel cache
// composes ordered levels into one cache: put goes to first level, and
// entries evicted from level i are put into level i+1. Entry found in deeper
// level is promoted back to the first one. Key is stored in at most one level.
//
// Caches are not goroutine safe, unless their storages and policies are.
// Wrap cache with NewSynchronized to share it between goroutines.
package cache
