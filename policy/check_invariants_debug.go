//go:build debug
// +build debug

// Gomega should not be dependency in non-debug build.

package policy

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

func (r *recency[K]) checkInvariants() {
	Expect(r.fakeHead.prev).To(BeNil())
	Expect(r.fakeTail.next).To(BeNil())
	var items int
	for n := r.head(); !r.end(n); n = n.next {
		items++
		Expect(n.prev.next).To(BeIdenticalTo(n))
		tn, ok := r.table[n.key]
		Expect(ok).To(BeTrue(), "no table ref to node")
		Expect(tn).To(BeIdenticalTo(n), "table refs to another node")
	}
	Expect(r.tail().next).To(BeIdenticalTo(r.fakeTail))
	ExpectWithOffset(1, items).To(Equal(len(r.table)), "too many keys in table")
}
