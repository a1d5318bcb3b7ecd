package storage_test

import (
	"github.com/facebookgo/stackerr"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"

	. "github.com/skipor/tiercache/storage"
)

var _ = Describe("errors", func() {
	cause := errors.New("disk is on fire")

	It("plain error is neither inconsistent nor redundant", func() {
		err := stackerr.Wrap(&Error{Op: "put", Err: cause})
		Expect(IsInconsistent(err)).To(BeFalse())
		Expect(IsRedundant(err)).To(BeFalse())
		Expect(err.Error()).To(ContainSubstring("storage put: disk is on fire"))
	})

	It("inconsistent found in chain", func() {
		err := stackerr.Wrap(&InconsistentError{Path: "a.ser", Err: cause})
		Expect(IsInconsistent(err)).To(BeTrue())
		Expect(IsRedundant(err)).To(BeFalse())
		Expect(err.Error()).To(ContainSubstring(`inconsistent file "a.ser"`))
	})

	It("redundant is inconsistent too", func() {
		err := errors.Wrap(&InconsistentError{Path: "a.ser", Redundant: true, Err: cause}, "remove")
		Expect(IsInconsistent(err)).To(BeTrue())
		Expect(IsRedundant(err)).To(BeTrue())
	})

	It("nil", func() {
		Expect(IsInconsistent(nil)).To(BeFalse())
	})
})
