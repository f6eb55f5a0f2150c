// Package equal provides the value comparisons the runtime relies on:
// identity (for state setters and effect dependencies), one-level shallow
// equality, deep equality and the "renders nothing" check for children.
package equal

import (
	"go/token"
	"math"
	"reflect"
	"unsafe"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Identical reports whether a and b are the same value.
//
// Comparable values are compared with ==, except that NaN is identical to
// NaN. Slices and maps are identical only when they share the same
// underlying storage (same pointer, and for slices the same length). Funcs
// are identical only when they are the same closure: two closures built from
// one literal are different values even though they share code.
func Identical(a, b any) bool {
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
		if math.IsNaN(fa) && math.IsNaN(fb) {
			return true
		}
		return fa == fb
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	case reflect.Map:
		return va.Pointer() == vb.Pointer()
	case reflect.Func:
		return closure(a) == closure(b)
	}
	if va.Type().Comparable() {
		return safeEqual(a, b)
	}
	return false
}

// closure returns the data word of an interface holding a func, which
// points at the closure object rather than at the shared code.
func closure(fn any) unsafe.Pointer {
	return (*[2]unsafe.Pointer)(unsafe.Pointer(&fn))[1]
}

// safeEqual guards against interface-typed struct fields holding
// incomparable values, which make == panic at runtime.
func safeEqual(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}

// Shallow compares a and b one level deep: slices element-wise and maps
// entry-wise using Identical. Anything else falls back to Identical.
func Shallow(a, b any) bool {
	if Identical(a, b) {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Slice, reflect.Array:
		if va.Len() != vb.Len() {
			return false
		}
		for i := 0; i < va.Len(); i++ {
			if !Identical(va.Index(i).Interface(), vb.Index(i).Interface()) {
				return false
			}
		}
		return true
	case reflect.Map:
		if va.Len() != vb.Len() {
			return false
		}
		iter := va.MapRange()
		for iter.Next() {
			other := vb.MapIndex(iter.Key())
			if !other.IsValid() || !Identical(iter.Value().Interface(), other.Interface()) {
				return false
			}
		}
		return true
	}
	return false
}

// Deps compares two dependency lists positionally with Identical.
// Lists of different length are never equal.
func Deps(prev, next []any) bool {
	if len(prev) != len(next) {
		return false
	}
	for i := range prev {
		if !Identical(prev[i], next[i]) {
			return false
		}
	}
	return true
}

// Deep compares a and b recursively. NaNs compare equal and unexported
// struct fields are ignored.
func Deep(a, b any) bool {
	if Identical(a, b) {
		return true
	}
	return cmp.Equal(a, b, cmpopts.EquateNaNs(), cmpopts.EquateEmpty(), ignoreUnexported)
}

var ignoreUnexported = cmp.FilterPath(func(p cmp.Path) bool {
	sf, ok := p.Index(-1).(cmp.StructField)
	if !ok {
		return false
	}
	return !token.IsExported(sf.Name())
}, cmp.Ignore())

// IsEmpty reports whether v renders nothing when used as a child:
// nil (including typed nil pointers) and booleans.
func IsEmpty(v any) bool {
	if v == nil {
		return true
	}
	if _, ok := v.(bool); ok {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
