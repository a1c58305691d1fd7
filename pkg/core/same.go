package core

import "reflect"

// Same reports whether a and b are the same value: identical pointers,
// equal scalars, equal comparable structs. Values whose dynamic type is not
// comparable (slices, maps, funcs) are never the same.
func Same[T any](a, b T) bool {
	return SameAny(any(a), any(b))
}

// SameAny is Same for values already boxed in interfaces.
func SameAny(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	defer func() {
		// A comparable struct can still hold an incomparable value in an
		// interface field; == panics on those.
		_ = recover()
	}()
	return a == b
}

// Comparable reports whether v can be used as a map key.
func Comparable(v any) bool {
	if v == nil {
		return false
	}
	return reflect.TypeOf(v).Comparable()
}
