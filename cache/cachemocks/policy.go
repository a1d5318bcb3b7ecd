// Package cachemocks contains testify mocks of cache collaborators.
package cachemocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/skipor/tiercache/policy"
)

type Policy[K comparable] struct {
	mock.Mock
}

var _ policy.Policy[int] = (*Policy[int])(nil)

func (_m *Policy[K]) Use(key K) bool {
	ret := _m.Called(key)
	return ret.Bool(0)
}

func (_m *Policy[K]) Evict() (K, bool) {
	ret := _m.Called()
	return ret.Get(0).(K), ret.Bool(1)
}

func (_m *Policy[K]) Remove(key K) bool {
	ret := _m.Called(key)
	return ret.Bool(0)
}
