// Package identity compares values the way a change check should: by value
// where Go can compare them, by reference where it cannot, and never by
// panicking.
package identity

import (
	"reflect"
	"unsafe"
)

// Equal reports whether a and b are the same value. Comparable values use
// ==. Maps and slices compare by reference; slices also need the same
// length. Funcs compare by closure identity: a func value equals itself,
// while a closure created anew does not. Anything else that cannot be
// compared, such as a struct holding a slice, is never equal.
func Equal[T any](a, b T) bool {
	x, y := any(a), any(b)
	if x == nil || y == nil {
		return x == nil && y == nil
	}

	vx, vy := reflect.ValueOf(x), reflect.ValueOf(y)
	if vx.Type() != vy.Type() {
		return false
	}
	if vx.Comparable() && vy.Comparable() {
		return x == y
	}

	switch vx.Kind() {
	case reflect.Func:
		return closure(x) == closure(y)
	case reflect.Map:
		return vx.Pointer() == vy.Pointer()
	case reflect.Slice:
		return vx.Pointer() == vy.Pointer() && vx.Len() == vy.Len()
	default:
		return false
	}
}

// eface mirrors the runtime layout of an interface holding a value.
type eface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// closure returns the closure pointer a func value carries. Func values are
// pointer shaped, so it is stored directly in the interface data word.
func closure(f any) unsafe.Pointer {
	return (*eface)(unsafe.Pointer(&f)).data
}
