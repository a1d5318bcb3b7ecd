package cache_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	. "github.com/skipor/tiercache/cache"
	"github.com/skipor/tiercache/policy"
	"github.com/skipor/tiercache/storage"
	. "github.com/skipor/tiercache/testutil"
)

// ItBehavesLikeCache declares policy independent specs for cache of capacity 2.
func ItBehavesLikeCache(newCache func() Cache[int, string]) {
	var c Cache[int, string]
	BeforeEach(func() { c = newCache() })

	It("empty", func() {
		Expect(c.IsFull()).To(BeFalse())
		Expect(c.Capacity()).To(Equal(2))
		Expect(c.Size()).To(BeZero())
		Expect(evict(c)).To(BeNil())
		expectMiss(c, 1)
	})

	It("one put", func() {
		Expect(put(c, 1)).To(BeNil())
		Expect(c.IsFull()).To(BeFalse())
		Expect(c.Size()).To(Equal(1))
		expectGet(c, 1, "1")
		Expect(evict(c)).To(Equal(entry(1)))
		Expect(c.Size()).To(BeZero())
	})

	It("puts within capacity are retrievable with latest values", func() {
		put(c, 1)
		Expect(put(c, 2)).To(BeNil())
		_, err := c.Put(1, "11")
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Size()).To(Equal(2))
		Expect(c.IsFull()).To(BeTrue())
		expectGet(c, 1, "11")
		expectGet(c, 2, "2")
	})

	It("size never exceeds capacity", func() {
		for i := 0; i < 20; i++ {
			k := Rand.Intn(5)
			evicted := put(c, k)
			Expect(c.Size()).To(BeNumerically("<=", c.Capacity()))
			Expect(c.IsFull()).To(Equal(c.Size() == c.Capacity()))
			if evicted != nil {
				Expect(evicted.Key).NotTo(Equal(k))
				Expect(c.Contains(evicted.Key)).To(BeFalse())
			}
		}
	})

	It("remove contains", func() {
		Expect(c.Contains(1)).To(BeFalse())
		put(c, 1)
		put(c, 2)
		Expect(c.Contains(1)).To(BeTrue())
		Expect(c.Contains(2)).To(BeTrue())
		v, ok, err := c.Remove(2)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal("2"))
		c.Remove(1)
		Expect(c.Contains(1)).To(BeFalse())
		Expect(c.Contains(2)).To(BeFalse())
		_, ok, err = c.Remove(1)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
		Expect(evict(c)).To(BeNil())
	})

	It("round trip", func() {
		value := FuzzString()
		c.Put(3, value)
		v, ok, err := c.Remove(3)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(value))
		Expect(c.Contains(3)).To(BeFalse())
	})
}

func ItBehavesLikeLRUCache(newCache func() Cache[int, string]) {
	ItBehavesLikeCache(newCache)

	It("evicts least recently used", func() {
		c := newCache()
		put(c, 1)
		put(c, 2)
		expectGet(c, 1, "1")
		Expect(put(c, 3)).To(Equal(entry(2)))
		Expect(c.Contains(1)).To(BeTrue())
		Expect(c.Contains(3)).To(BeTrue())
		Expect(c.Contains(2)).To(BeFalse())
	})

	It("miss doesn't refresh recency", func() {
		c := newCache()
		put(c, 1)
		put(c, 2)
		expectMiss(c, 3)
		Expect(evict(c)).To(Equal(entry(1)))
	})
}

var _ = Describe("Simple", func() {
	Context("memory LRU", func() {
		ItBehavesLikeLRUCache(func() Cache[int, string] { return memoryLRU(2) })
	})
	Context("concurrent memory, concurrent LRU", func() {
		ItBehavesLikeLRUCache(func() Cache[int, string] {
			return NewSimple[int, string](storage.NewConcurrentMemory[int, string](), policy.NewConcurrentLRU[int](), 2)
		})
	})
	Context("file LRU", func() {
		ItBehavesLikeLRUCache(func() Cache[int, string] {
			return NewSimple[int, string](fileStorage(), policy.NewLRU[int](), 2)
		})
	})

	Context("memory MRU", func() {
		newCache := func() Cache[int, string] {
			return NewSimple[int, string](storage.NewMemory[int, string](), policy.NewMRU[int](), 2)
		}
		ItBehavesLikeCache(newCache)

		It("evicts most recently used", func() {
			c := newCache()
			put(c, 1)
			put(c, 2)
			expectGet(c, 1, "1")
			Expect(put(c, 3)).To(Equal(entry(1)))
			expectMiss(c, 1)
			expectGet(c, 2, "2")
			expectGet(c, 3, "3")
			Expect(evict(c)).To(Equal(entry(3)))
			Expect(evict(c)).To(Equal(entry(2)))
		})
	})

	It("tracks keys of non empty storage", func() {
		s := storage.NewMemory[int, string]()
		for k := 1; k <= 3; k++ {
			s.Put(k, val(k))
		}
		c := NewSimple[int, string](s, policy.NewLRU[int](), 3)
		Expect(c.IsFull()).To(BeTrue())
		evicted := put(c, 4)
		Expect(evicted).NotTo(BeNil())
		Expect(c.Contains(evicted.Key)).To(BeFalse())
		for c.Size() > 0 {
			Expect(evict(c)).NotTo(BeNil())
		}
		Expect(evict(c)).To(BeNil())
	})

	It("invalid construction panics", func() {
		s := storage.NewMemory[int, string]()
		p := policy.NewLRU[int]()
		Expect(func() { NewSimple[int, string](s, p, 0) }).To(Panic())
		Expect(func() { NewSimple[int, string](nil, p, 1) }).To(Panic())
		Expect(func() { NewSimple[int, string](s, nil, 1) }).To(Panic())
	})

	It("nil key panics", func() {
		c := NewSimple[*int, string](storage.NewMemory[*int, string](), policy.NewLRU[*int](), 1)
		Expect(func() { c.Put(nil, "") }).To(Panic())
		Expect(func() { c.Get(nil) }).To(Panic())
	})
})
