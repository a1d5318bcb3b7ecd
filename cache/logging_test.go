package cache_test

import (
	"bytes"
	"errors"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	. "github.com/skipor/tiercache/cache"
	"github.com/skipor/tiercache/cache/cachemocks"
	"github.com/skipor/tiercache/log"
)

var _ = Describe("Logging", func() {
	var (
		buf *bytes.Buffer
		m   *cachemocks.Cache[int, string]
		c   *Logging[int, string]
	)
	BeforeEach(func() {
		buf = &bytes.Buffer{}
		m = &cachemocks.Cache[int, string]{}
		c = NewLogging[int, string](log.NewLogger(log.DebugLevel, buf), m)
	})
	AfterEach(func() {
		m.AssertExpectations(GinkgoT())
		GinkgoWriter.Write(buf.Bytes())
	})

	It("put", func() {
		m.On("Put", 1, "1").Return(entry(2), nil)
		Expect(put(c, 1)).To(Equal(entry(2)))
		Expect(buf.String()).To(ContainSubstring("DEBUG: Put 1: evicted 2."))
	})

	It("evict nothing", func() {
		m.On("Evict").Return(nil, nil)
		Expect(evict(c)).To(BeNil())
		Expect(buf.String()).To(ContainSubstring("Evict: nothing evicted."))
	})

	It("get", func() {
		m.On("Get", 1).Return("1", true, nil)
		m.On("Get", 2).Return("", false, nil)
		expectGet(c, 1, "1")
		expectMiss(c, 2)
		Expect(buf.String()).To(ContainSubstring("Get 1: hit."))
		Expect(buf.String()).To(ContainSubstring("Get 2: miss."))
	})

	It("failure logged at error level", func() {
		m.On("Remove", 1).Return("", false, errors.New("disk failure"))
		_, _, err := c.Remove(1)
		Expect(err).To(HaveOccurred())
		Expect(buf.String()).To(ContainSubstring("ERROR: Remove 1 failed: disk failure"))
	})

	It("delegates queries", func() {
		m.On("Contains", 1).Return(true)
		m.On("Size").Return(1)
		m.On("Capacity").Return(2)
		m.On("IsFull").Return(false)
		Expect(c.Contains(1)).To(BeTrue())
		Expect(c.Size()).To(Equal(1))
		Expect(c.Capacity()).To(Equal(2))
		Expect(c.IsFull()).To(BeFalse())
	})
})
