// Package storagetest contains shared specs for storage.Storage implementations.
package storagetest

import (
	"sync"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/skipor/tiercache/storage"
	. "github.com/skipor/tiercache/testutil"
)

// ItBehavesLikeStorage declares specs, that any storage should pass.
// newStorage should return empty storage.
func ItBehavesLikeStorage(newStorage func() storage.Storage[string, string]) {
	var (
		s     storage.Storage[string, string]
		key   string
		value string
	)
	BeforeEach(func() {
		s = newStorage()
		key = FuzzString()
		value = FuzzString()
	})

	It("empty", func() {
		Expect(s.Size()).To(BeZero())
		Expect(s.Contains(key)).To(BeFalse())
		_, ok, err := s.Get(key)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
		_, existed, err := s.Remove(key)
		Expect(err).NotTo(HaveOccurred())
		Expect(existed).To(BeFalse())
	})

	It("put get", func() {
		_, existed, err := s.Put(key, value)
		Expect(err).NotTo(HaveOccurred())
		Expect(existed).To(BeFalse())
		got, ok, err := s.Get(key)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(got).To(Equal(value))
		Expect(s.Contains(key)).To(BeTrue())
		Expect(s.Size()).To(Equal(1))
	})

	It("put returns previous", func() {
		s.Put(key, value)
		newValue := value + "_new"
		prev, existed, err := s.Put(key, newValue)
		Expect(err).NotTo(HaveOccurred())
		Expect(existed).To(BeTrue())
		Expect(prev).To(Equal(value))
		got, _, _ := s.Get(key)
		Expect(got).To(Equal(newValue))
		Expect(s.Size()).To(Equal(1))
	})

	It("remove returns previous", func() {
		s.Put(key, value)
		prev, existed, err := s.Remove(key)
		Expect(err).NotTo(HaveOccurred())
		Expect(existed).To(BeTrue())
		Expect(prev).To(Equal(value))
		Expect(s.Contains(key)).To(BeFalse())
		Expect(s.Size()).To(BeZero())
		_, existed, err = s.Remove(key)
		Expect(err).NotTo(HaveOccurred())
		Expect(existed).To(BeFalse())
	})

	It("keys", func() {
		keyer, ok := s.(storage.Keyer[string])
		if !ok {
			Skip("storage can't list keys")
		}
		Expect(keyer.Keys()).To(BeEmpty())
		s.Put(key, value)
		s.Put(key+"2", value)
		s.Remove(key)
		Expect(keyer.Keys()).To(ConsistOf(key + "2"))
	})

	It("many keys", func() {
		const n = 50
		for i := 0; i < n; i++ {
			s.Put(key+string(rune('a'+i)), value)
		}
		Expect(s.Size()).To(Equal(n))
		for i := 0; i < n; i += 2 {
			s.Remove(key + string(rune('a'+i)))
		}
		Expect(s.Size()).To(Equal(n / 2))
		Expect(s.Contains(key + "b")).To(BeTrue())
		Expect(s.Contains(key + "a")).To(BeFalse())
	})
}

// ItBehavesLikeConcurrentStorage declares specs for goroutine safe storages.
func ItBehavesLikeConcurrentStorage(newStorage func() storage.Storage[string, string], workers, keys int) {
	It("concurrent put get remove", func() {
		s := newStorage()
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer GinkgoRecover()
				defer wg.Done()
				for i := 0; i < keys; i++ {
					key := string(rune('a' + i%26)) + string(rune('a'+i/26))
					_, _, err := s.Put(key, key)
					Expect(err).NotTo(HaveOccurred())
					got, ok, err := s.Get(key)
					Expect(err).NotTo(HaveOccurred())
					if ok {
						Expect(got).To(Equal(key))
					}
					if i%3 == 0 {
						_, _, err = s.Remove(key)
						Expect(err).NotTo(HaveOccurred())
					}
				}
			}()
		}
		wg.Wait()
		Expect(s.Size()).To(BeNumerically("<=", keys))
		for i := 0; i < keys; i++ {
			key := string(rune('a' + i%26)) + string(rune('a'+i/26))
			got, ok, err := s.Get(key)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(Equal(s.Contains(key)))
			if ok {
				Expect(got).To(Equal(key))
			}
		}
	})
}
