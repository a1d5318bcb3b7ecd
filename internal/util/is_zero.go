package util

import "reflect"

func IsZeroVal(v reflect.Value) bool {
	return v.IsZero()
}

// IsNil reports whether i is nil interface or nil value of nillable comparable kind.
func IsNil(i interface{}) bool {
	if i == nil {
		return true
	}
	v := reflect.ValueOf(i)
	switch v.Kind() {
	case reflect.Ptr, reflect.Chan, reflect.UnsafePointer, reflect.Interface:
		return v.IsNil()
	}
	return false
}
