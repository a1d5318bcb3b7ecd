// Package policy contains cache eviction policies.
// Policy tracks only keys usage order and chooses next eviction victim.
// Values are never stored in policy.
//
// LRU and MRU are not goroutine safe, wrap them with Synchronized when needed.
// ConcurrentLRU is goroutine safe and has no global lock: every mutation of key
// is an operation that any goroutine can help to finish.
package policy
