package cachemocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/skipor/tiercache/storage"
)

type Storage[K comparable, V any] struct {
	mock.Mock
}

var _ storage.Storage[int, int] = (*Storage[int, int])(nil)

func (_m *Storage[K, V]) Get(key K) (V, bool, error) {
	ret := _m.Called(key)
	return ret.Get(0).(V), ret.Bool(1), ret.Error(2)
}

func (_m *Storage[K, V]) Put(key K, v V) (V, bool, error) {
	ret := _m.Called(key, v)
	return ret.Get(0).(V), ret.Bool(1), ret.Error(2)
}

func (_m *Storage[K, V]) Remove(key K) (V, bool, error) {
	ret := _m.Called(key)
	return ret.Get(0).(V), ret.Bool(1), ret.Error(2)
}

func (_m *Storage[K, V]) Contains(key K) bool {
	ret := _m.Called(key)
	return ret.Bool(0)
}

func (_m *Storage[K, V]) Size() int {
	ret := _m.Called()
	return ret.Int(0)
}
