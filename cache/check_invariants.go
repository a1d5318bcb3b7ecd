//go:build !debug
// +build !debug

package cache

func (c *Simple[K, V]) checkInvariants()           {}
func (c *MultiLevel[K, V]) checkInvariants(key K) {}
