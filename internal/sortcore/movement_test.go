package sortcore

import (
	"testing"

	"github.com/xsort-go/xsort/internal/testing/require"
)

func TestSwap(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"word-aligned 8", 8},
		{"word-aligned 4", 4},
		{"unaligned 3", 3},
		{"unaligned 5", 5},
		{"single byte", 1},
		{"large 40", 40},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data := make([]byte, tc.size*2)
			for i := range data {
				data[i] = byte(i)
			}
			a := NewArray(data, 2, tc.size)
			want0 := append([]byte(nil), a.At(1)...)
			want1 := append([]byte(nil), a.At(0)...)
			a.Swap(0, 1)
			require.Equal(t, want0, a.At(0))
			require.Equal(t, want1, a.At(1))
		})
	}
}

func TestSwapNoOpOnSameIndex(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	a := NewArray(data, 2, 2)
	before := append([]byte(nil), data...)
	a.Swap(0, 0)
	require.Equal(t, before, data)
}

func TestRot3(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"word 8", 8},
		{"unaligned 5", 5},
		{"byte 1", 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			n := 3
			data := make([]byte, tc.size*n)
			for i := range data {
				data[i] = byte(i + 1)
			}
			a := NewArray(data, n, tc.size)
			i0 := append([]byte(nil), a.At(0)...)
			j0 := append([]byte(nil), a.At(1)...)
			k0 := append([]byte(nil), a.At(2)...)

			a.Rot3(0, 1, 2)

			require.Equal(t, j0, a.At(0))
			require.Equal(t, k0, a.At(1))
			require.Equal(t, i0, a.At(2))
		})
	}
}

func TestReverseRun(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}
	a := NewArray(data, 5, 1)
	a.reverseRun(0, 5)
	require.Equal(t, []byte{5, 4, 3, 2, 1}, data)
}

func TestReverseRunSubrange(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 6}
	a := NewArray(data, 6, 1)
	a.reverseRun(1, 4)
	require.Equal(t, []byte{1, 5, 4, 3, 2, 6}, data)
}

func TestCopyRangeOverlapForward(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 0, 0}
	a := NewArray(data, 7, 1)
	a.CopyRange(2, 1, 4)
	require.Equal(t, []byte{1, 2, 2, 3, 4, 5, 0}, data)
}
