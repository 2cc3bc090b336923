package record

import (
	"math"
	"reflect"
)

// sameValue is the equality used by HasValue. Values of different dynamic
// types never match. NaN matches NaN. Slices, maps and funcs have no ==, so
// they match only when they share the same underlying storage.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Float32, reflect.Float64:
		fa, fb := va.Float(), vb.Float()
		return fa == fb || (math.IsNaN(fa) && math.IsNaN(fb))
	case reflect.Slice:
		return va.Len() == vb.Len() && va.UnsafePointer() == vb.UnsafePointer()
	case reflect.Map, reflect.Func:
		return va.UnsafePointer() == vb.UnsafePointer()
	}

	if !va.Comparable() || !vb.Comparable() {
		return false
	}

	return a == b
}
