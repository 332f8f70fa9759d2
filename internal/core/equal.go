package core

import (
	"reflect"
	"sync"
)

// EqualOption allows configuring the behavior of the Equal function.
type EqualOption interface {
	applyEqual(*equalConfig)
}

type equalConfig struct {
	numeric bool
}

type equalOptionFunc func(*equalConfig)

func (f equalOptionFunc) applyEqual(c *equalConfig) {
	f(c)
}

// EqualNumeric returns an option that makes Equal compare numbers of
// different Go kinds by value, so int(1), int64(1) and float64(1) are equal.
// Decoded documents often produce different numeric kinds for the same value.
func EqualNumeric() EqualOption {
	return equalOptionFunc(func(c *equalConfig) {
		c.numeric = true
	})
}

type visitKey struct {
	a, b uintptr
	typ  reflect.Type
}

var visitedPool = sync.Pool{
	New: func() any {
		return make(map[visitKey]bool)
	},
}

// Equal performs a deep equality check between two leaf values.
func Equal(a, b any, opts ...EqualOption) bool {
	config := &equalConfig{}
	for _, opt := range opts {
		opt.applyEqual(config)
	}

	visited := visitedPool.Get().(map[visitKey]bool)
	defer func() {
		for k := range visited {
			delete(visited, k)
		}
		visitedPool.Put(visited)
	}()

	return equalRecursive(reflect.ValueOf(a), reflect.ValueOf(b), visited, config)
}

func equalRecursive(a, b reflect.Value, visited map[visitKey]bool, config *equalConfig) bool {
	if !a.IsValid() || !b.IsValid() {
		return a.IsValid() == b.IsValid()
	}

	if config.numeric {
		if fa, ok := numericValue(a); ok {
			if fb, ok := numericValue(b); ok {
				return fa == fb
			}
		}
	}

	if a.Type() != b.Type() {
		return false
	}

	kind := a.Kind()

	switch kind {
	case reflect.Bool:
		return a.Bool() == b.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return a.Int() == b.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return a.Uint() == b.Uint()
	case reflect.Float32, reflect.Float64:
		return a.Float() == b.Float()
	case reflect.Complex64, reflect.Complex128:
		return a.Complex() == b.Complex()
	case reflect.String:
		return a.String() == b.String()
	}

	if kind == reflect.Pointer || kind == reflect.Slice || kind == reflect.Map {
		if a.IsNil() || b.IsNil() {
			return a.IsNil() == b.IsNil()
		}
		ptrA := a.Pointer()
		ptrB := b.Pointer()
		if ptrA == ptrB && (kind != reflect.Slice || a.Len() == b.Len()) {
			return true
		}

		k := visitKey{ptrA, ptrB, a.Type()}
		if visited[k] {
			return true
		}
		visited[k] = true
	}

	switch kind {
	case reflect.Pointer, reflect.Interface:
		if kind == reflect.Interface && (a.IsNil() || b.IsNil()) {
			return a.IsNil() == b.IsNil()
		}
		return equalRecursive(a.Elem(), b.Elem(), visited, config)

	case reflect.Struct:
		for i := 0; i < a.NumField(); i++ {
			fA, fB := a.Field(i), b.Field(i)
			if !fA.CanInterface() || !fB.CanInterface() {
				continue
			}
			if !equalRecursive(fA, fB, visited, config) {
				return false
			}
		}
		return true

	case reflect.Slice, reflect.Array:
		if a.Len() != b.Len() {
			return false
		}
		for i := 0; i < a.Len(); i++ {
			if !equalRecursive(a.Index(i), b.Index(i), visited, config) {
				return false
			}
		}
		return true

	case reflect.Map:
		if a.Len() != b.Len() {
			return false
		}
		iter := a.MapRange()
		for iter.Next() {
			valB := b.MapIndex(iter.Key())
			if !valB.IsValid() {
				return false
			}
			if !equalRecursive(iter.Value(), valB, visited, config) {
				return false
			}
		}
		return true

	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return a.Pointer() == b.Pointer()

	default:
		if a.CanInterface() && b.CanInterface() {
			return reflect.DeepEqual(a.Interface(), b.Interface())
		}
		return false
	}
}

func numericValue(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	}
	return 0, false
}

// IsNil reports whether v is nil, including typed nil pointers, maps, slices
// and interfaces stored in an any.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
