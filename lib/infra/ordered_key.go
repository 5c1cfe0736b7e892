package infra

type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is a constraint that permits any unsigned integer type.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Integer is a constraint that permits any integer type.
type Integer interface {
	Signed | Unsigned
}

// Float is a constraint that permits any floating-point type.
type Float interface {
	~float32 | ~float64
}

// OrderedKey
// byte => ~uint8
type OrderedKey interface {
	Integer | Float | ~string
}

// Comparator is the three-way comparison used by the trees and the heap.
// Assume i is the new element.
//  1. i == j, return 0
//  2. i > j, return a positive number, turn to right part.
//  3. i < j, return a negative number, turn to left part.
//
// The comparator must be consistent with the element equality,
// otherwise deletion may pick an ordering-equal duplicate.
type Comparator[E any] func(i, j E) int64

// OrderedKeyCmp returns the natural ascending comparator of an ordered key.
// NaN floats are ordered before any other value.
func OrderedKeyCmp[K OrderedKey]() Comparator[K] {
	return func(i, j K) int64 {
		if i == j {
			return 0
		}
		if isNaN(i) {
			if isNaN(j) {
				return 0
			}
			return -1
		}
		if isNaN(j) || i > j {
			return 1
		}
		return -1
	}
}

// Reverse flips the comparator, max element first.
func (cmp Comparator[E]) Reverse() Comparator[E] {
	return func(i, j E) int64 {
		return cmp(j, i)
	}
}

func isNaN[K OrderedKey](k K) bool {
	return k != k
}
