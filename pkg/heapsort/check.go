package heapsort

import (
	"cmp"
	"slices"
)

// Integer is the set of integer element types.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// IsSorted reports whether seq is in ascending order.
func IsSorted[T cmp.Ordered](seq []T) bool {
	return slices.IsSorted(seq)
}

// IsConsecutive reports whether every element is exactly one more than its
// predecessor. For a sorted permutation of 0..n-1 this also proves that no
// value was lost or duplicated.
func IsConsecutive[T Integer](seq []T) bool {
	for i := 1; i < len(seq); i++ {
		if seq[i-1]+1 != seq[i] {
			return false
		}
	}

	return true
}

// Ints returns the ascending sequence 0..n-1.
func Ints(n int) []int {
	seq := make([]int, n)

	for i := range seq {
		seq[i] = i
	}

	return seq
}
