package cachemocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/skipor/tiercache/cache"
)

type Cache[K comparable, V any] struct {
	mock.Mock
}

var _ cache.Cache[int, int] = (*Cache[int, int])(nil)

func (_m *Cache[K, V]) Get(key K) (V, bool, error) {
	ret := _m.Called(key)
	return ret.Get(0).(V), ret.Bool(1), ret.Error(2)
}

func (_m *Cache[K, V]) Put(key K, v V) (*cache.Entry[K, V], error) {
	ret := _m.Called(key, v)
	evicted, _ := ret.Get(0).(*cache.Entry[K, V])
	return evicted, ret.Error(1)
}

func (_m *Cache[K, V]) Evict() (*cache.Entry[K, V], error) {
	ret := _m.Called()
	evicted, _ := ret.Get(0).(*cache.Entry[K, V])
	return evicted, ret.Error(1)
}

func (_m *Cache[K, V]) Remove(key K) (V, bool, error) {
	ret := _m.Called(key)
	return ret.Get(0).(V), ret.Bool(1), ret.Error(2)
}

func (_m *Cache[K, V]) Contains(key K) bool {
	ret := _m.Called(key)
	return ret.Bool(0)
}

func (_m *Cache[K, V]) Size() int {
	ret := _m.Called()
	return ret.Int(0)
}

func (_m *Cache[K, V]) Capacity() int {
	ret := _m.Called()
	return ret.Int(0)
}

func (_m *Cache[K, V]) IsFull() bool {
	ret := _m.Called()
	return ret.Bool(0)
}
