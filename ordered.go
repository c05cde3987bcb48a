package xsort

import (
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Sized is the subset of constraints.Ordered safe to reinterpret as raw,
// pointer-free bytes: fixed-width numeric kinds only. constraints.Ordered
// also admits ~string, whose two-word header carries a live heap pointer;
// reinterpreting a []string as []byte and staging elements through the
// engines' plain []byte scratch buffer would hide that pointer from the
// garbage collector for the run of a merge. SortOrdered/TimsortOrdered
// deliberately exclude it.
type Sized interface {
	constraints.Integer | constraints.Float
}

// orderedComparator adapts a fixed-width ordered type's natural order into
// the byte-level Comparator the engines require.
type orderedComparator[T Sized] struct{}

func (orderedComparator[T]) Compare(a, b []byte, _ any) int {
	av := *(*T)(unsafe.Pointer(&a[0]))
	bv := *(*T)(unsafe.Pointer(&b[0]))
	switch {
	case av < bv:
		return -1
	case av > bv:
		return 1
	default:
		return 0
	}
}

func orderedView[T Sized](s []T) (data []byte, elemSize int) {
	elemSize = int(unsafe.Sizeof(s[0]))
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*elemSize), elemSize
}

// SortOrdered sorts s in place with Quicksort's introspective algorithm, for
// any slice of a fixed-width numeric element type. It carries the same
// stability and allocation characteristics as Quicksort: unstable, zero
// allocation.
func SortOrdered[T Sized](s []T) error {
	if len(s) < 2 {
		return nil
	}
	data, elemSize := orderedView(s)
	cfg := NewConfig().WithComparator(orderedComparator[T]{})
	return Quicksort(data, len(s), elemSize, cfg)
}

// TimsortOrdered stably sorts s in place with Timsort, for any slice of a
// fixed-width numeric element type.
func TimsortOrdered[T Sized](s []T) error {
	if len(s) < 2 {
		return nil
	}
	data, elemSize := orderedView(s)
	cfg := NewConfig().WithComparator(orderedComparator[T]{})
	return Timsort(data, len(s), elemSize, cfg)
}
