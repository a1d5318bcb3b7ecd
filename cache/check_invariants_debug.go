//go:build debug
// +build debug

// Gomega should not be dependency in non-debug build.
// Checks assume that cache calls are serialized.

package cache

import (
	"errors"
	"log"

	"github.com/facebookgo/stackerr"
	. "github.com/onsi/gomega"
)

var _ = func() (_ struct{}) {
	RegisterFailHandler(GomegaFailHandler)
	return
}()

func GomegaFailHandler(message string, callerSkip ...int) {
	skip := 1
	if len(callerSkip) > 0 {
		skip += callerSkip[0]
	}
	log.Fatal("FATAL: invariants are broken:", stackerr.WrapSkip(errors.New(message), skip))
}

func (c *Simple[K, V]) checkInvariants() {
	ExpectWithOffset(1, c.Size()).To(BeNumerically("<=", c.capacity), "overflow")
}

func (c *MultiLevel[K, V]) checkInvariants(key K) {
	var holders int
	for _, l := range c.levels {
		if l.Contains(key) {
			holders++
		}
	}
	ExpectWithOffset(1, holders).To(BeNumerically("<=", 1), "key %v is in several levels", key)
	ExpectWithOffset(1, c.Size()).To(BeNumerically("<=", c.Capacity()), "overflow")
}
