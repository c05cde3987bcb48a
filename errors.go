package xsort

import "errors"

// ErrNilComparator is returned by Quicksort and Timsort when the Config is
// nil or carries no Comparator (spec §7 "Error handling").
var ErrNilComparator = errors.New("xsort: comparator must not be nil")

// ErrNegativeLength is returned when a caller reports a negative element
// count for its data.
var ErrNegativeLength = errors.New("xsort: length must not be negative")

// ErrElementSize is returned when the byte slice the caller supplies is
// shorter than n elements of the given element size.
var ErrElementSize = errors.New("xsort: data is shorter than n elements of the given size")
