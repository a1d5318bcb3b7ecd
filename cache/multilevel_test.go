package cache_test

import (
	"errors"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	. "github.com/skipor/tiercache/cache"
	"github.com/skipor/tiercache/cache/cachemocks"
	"github.com/skipor/tiercache/policy"
	. "github.com/skipor/tiercache/testutil"
)

var _ = Describe("MultiLevel", func() {
	var (
		levels []Cache[int, string]
		c      *MultiLevel[int, string]
	)
	BeforeEach(func() {
		levels = []Cache[int, string]{
			memoryLRU(2),
			NewSimple[int, string](fileStorage(), policy.NewLRU[int](), 2),
		}
		c = NewMultiLevel(levels...)
	})

	holders := func(k int) (n int) {
		for _, l := range levels {
			if l.Contains(k) {
				n++
			}
		}
		return
	}

	It("put", func() {
		for k := 1; k <= 4; k++ {
			Expect(c.Contains(k)).To(BeFalse())
			expectMiss(c, k)
		}
		for k := 1; k <= 4; k++ {
			Expect(put(c, k)).To(BeNil())
			Expect(c.Contains(k)).To(BeTrue())
			expectGet(c, k, val(k))
		}
		Expect(put(c, 5)).To(Equal(entry(1)))
		expectGet(c, 5, "5")
		Expect(c.Contains(1)).To(BeFalse())
		expectMiss(c, 1)

		_, err := c.Put(2, "22")
		Expect(err).NotTo(HaveOccurred())
		expectGet(c, 2, "22")
		Expect(holders(2)).To(Equal(1))
	})

	It("evict cascades", func() {
		Expect(evict(c)).To(BeNil())
		put(c, 1)
		// Moved to level 1.
		Expect(evict(c)).To(BeNil())
		Expect(levels[1].Contains(1)).To(BeTrue())
		put(c, 2)
		Expect(evict(c)).To(BeNil())
		put(c, 3)
		Expect(evict(c)).To(Equal(entry(1)))
		Expect(evict(c)).To(BeNil())
		put(c, 4)
		put(c, 5)
		Expect(evict(c)).To(Equal(entry(2)))
		Expect(evict(c)).To(Equal(entry(3)))
		Expect(evict(c)).To(BeNil())
		Expect(c.Size()).To(Equal(2))
		Expect(levels[0].Size()).To(BeZero())
	})

	It("evict of empty first level", func() {
		Expect(evict(c)).To(BeNil())
		put(c, 1)
		Expect(evict(c)).To(BeNil())
		Expect(evict(c)).To(BeNil())
		Expect(c.Contains(1)).To(BeTrue())
	})

	It("get promotes", func() {
		put(c, 1)
		put(c, 2)
		put(c, 3)
		Expect(levels[1].Contains(1)).To(BeTrue())
		expectGet(c, 1, "1")
		Expect(levels[0].Contains(1)).To(BeTrue())
		Expect(levels[1].Contains(1)).To(BeFalse())
		// 2 was least recently used in level 0.
		Expect(levels[1].Contains(2)).To(BeTrue())
		Expect(c.Size()).To(Equal(3))
	})

	It("remove", func() {
		_, ok, err := c.Remove(1)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())

		put(c, 1)
		evict(c)
		Expect(c.Size()).To(Equal(1))
		v, ok, err := c.Remove(1)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal("1"))

		for k := 1; k <= 4; k++ {
			put(c, k)
		}
		Expect(c.Size()).To(Equal(4))
		c.Remove(1)
		c.Remove(3)
		evict(c)
		c.Remove(2)
		c.Remove(4)
		Expect(c.Size()).To(BeZero())
	})

	It("size capacity is full", func() {
		Expect(c.Capacity()).To(Equal(4))
		Expect(c.Levels()).To(Equal(2))
		for k := 1; k <= 4; k++ {
			Expect(c.IsFull()).To(BeFalse())
			put(c, k)
			Expect(c.Size()).To(Equal(k))
		}
		Expect(c.IsFull()).To(BeTrue())
		put(c, 2)
		put(c, 5)
		Expect(c.Size()).To(Equal(4))
	})

	It("key is in at most one level", func() {
		const keys = 8
		for i := 0; i < 500; i++ {
			k := Rand.Intn(keys)
			switch Rand.Intn(4) {
			case 0:
				get(c, k)
			case 1:
				evict(c)
			case 2:
				c.Remove(k)
			default:
				put(c, k)
			}
			for k := 0; k < keys; k++ {
				Expect(holders(k)).To(BeNumerically("<=", 1))
			}
			Expect(c.Size()).To(BeNumerically("<=", c.Capacity()))
		}
	})

	It("invalid construction panics", func() {
		Expect(func() { NewMultiLevel[int, string]() }).To(Panic())
		Expect(func() { NewMultiLevel[int, string](memoryLRU(1), nil) }).To(Panic())
	})
})

var _ = Describe("MultiLevel collaboration", func() {
	var (
		l0, l1 *cachemocks.Cache[int, string]
		c      *MultiLevel[int, string]
	)
	BeforeEach(func() {
		l0, l1 = &cachemocks.Cache[int, string]{}, &cachemocks.Cache[int, string]{}
		c = NewMultiLevel[int, string](l0, l1)
	})
	AfterEach(func() {
		l0.AssertExpectations(GinkgoT())
		l1.AssertExpectations(GinkgoT())
	})

	It("eviction on promotion panics", func() {
		l0.On("Get", 1).Return("", false, nil)
		l1.On("Get", 1).Return("1", true, nil)
		l1.On("Remove", 1).Return("1", true, nil)
		l0.On("Put", 1, "1").Return(entry(2), nil)
		l1.On("Put", 2, "2").Return(entry(3), nil)
		l0.On("Contains", 1).Return(true).Maybe()
		l1.On("Contains", 1).Return(false).Maybe()
		l0.On("Size").Return(2).Maybe()
		l1.On("Size").Return(2).Maybe()
		l0.On("Capacity").Return(2).Maybe()
		l1.On("Capacity").Return(2).Maybe()
		ExpectPanicWithType(func() { c.Get(1) }, &InvariantError{})
	})

	It("get error stops search", func() {
		failure := errors.New("failure")
		l0.On("Get", 1).Return("", false, failure)
		_, _, err := c.Get(1)
		Expect(err).To(Equal(failure))
	})

	It("hit in first level is not moved", func() {
		l0.On("Get", 1).Return("1", true, nil)
		expectGet(c, 1, "1")
	})
})
