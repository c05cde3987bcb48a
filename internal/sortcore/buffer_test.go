package sortcore

import (
	"testing"

	"github.com/xsort-go/xsort/internal/testing/require"
)

func TestBufferGrowAndReuse(t *testing.T) {
	b := NewBuffer(8)
	b.Grow(4, nil, failOnFatal(t))
	require.Equal(t, 4, b.cap)

	first := b.data
	b.Grow(2, nil, failOnFatal(t)) // smaller request, no reallocation
	require.Equal(t, first, b.data)

	b.Grow(10, nil, failOnFatal(t))
	require.Equal(t, 10, b.cap)
}

func TestBufferElemAndSlice(t *testing.T) {
	b := NewBuffer(4)
	b.Grow(3, nil, failOnFatal(t))
	copy(b.Elem(0), []byte{1, 2, 3, 4})
	copy(b.Elem(1), []byte{5, 6, 7, 8})
	copy(b.Elem(2), []byte{9, 10, 11, 12})

	require.Equal(t, []byte{5, 6, 7, 8, 9, 10, 11, 12}, b.Slice(1, 2))
}

func TestBufferGrowBeyondCeilingCallsFatal(t *testing.T) {
	prev := totalSystemMemory
	totalSystemMemory = func() uint64 { return 1024 }
	defer func() { totalSystemMemory = prev }()

	b := NewBuffer(8)
	var got error
	b.Grow(1<<30, nil, func(err error) { got = err })
	require.Error(t, got)
	require.ErrorIs(t, got, errScratchTooLarge)
}

func failOnFatal(t *testing.T) func(error) {
	return func(err error) {
		t.Fatalf("unexpected fatal: %v", err)
	}
}
