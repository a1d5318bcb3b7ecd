package util

import "reflect"

// KeyCheck panics on nil keys. Kind of K is inspected once, on creation,
// so Assert of not nillable key is free.
type KeyCheck[K comparable] struct {
	nillable bool
	iface    bool
}

func NewKeyCheck[K comparable]() KeyCheck[K] {
	switch reflect.TypeOf((*K)(nil)).Elem().Kind() {
	case reflect.Ptr, reflect.Chan, reflect.UnsafePointer:
		return KeyCheck[K]{nillable: true}
	case reflect.Interface:
		return KeyCheck[K]{iface: true}
	}
	return KeyCheck[K]{}
}

// Assert panics if key is nil. Interface key holding nil pointer is nil too.
func (c KeyCheck[K]) Assert(key K) {
	var zero K
	if c.nillable && key == zero || c.iface && IsNil(key) {
		panic("nil key")
	}
}
