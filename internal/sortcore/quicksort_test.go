package sortcore

import (
	"encoding/binary"
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/xsort-go/xsort/internal/testing/require"
)

type int64Comparator struct{}

func (int64Comparator) Compare(a, b []byte, _ any) int {
	av := int64(binary.LittleEndian.Uint64(a))
	bv := int64(binary.LittleEndian.Uint64(b))
	switch {
	case av < bv:
		return -1
	case av > bv:
		return 1
	default:
		return 0
	}
}

func packInt64s(vs []int64) []byte {
	data := make([]byte, 8*len(vs))
	for i, v := range vs {
		binary.LittleEndian.PutUint64(data[i*8:], uint64(v))
	}
	return data
}

func unpackInt64s(data []byte) []int64 {
	vs := make([]int64, len(data)/8)
	for i := range vs {
		vs[i] = int64(binary.LittleEndian.Uint64(data[i*8:]))
	}
	return vs
}

func TestQuicksortEmptyAndSingle(t *testing.T) {
	for _, n := range []int{0, 1} {
		data := packInt64s(make([]int64, n))
		a := NewArray(data, n, 8)
		Quicksort(a, int64Comparator{}, nil, QuicksortOptions{Chklim: DefaultChklim})
	}
}

func TestQuicksortKnownSequences(t *testing.T) {
	tests := [][]int64{
		{5, 4, 3, 2, 1},
		{1, 2, 3, 4, 5},
		{1, 1, 1, 1, 1},
		{2, 1},
		{1, 2},
		{3, 1, 2, 1, 3, 2, 1},
		{9, -2, 0, 7, 7, -2, 5},
	}
	for _, tc := range tests {
		data := packInt64s(tc)
		a := NewArray(data, len(tc), 8)
		Quicksort(a, int64Comparator{}, nil, QuicksortOptions{Chklim: DefaultChklim})
		got := unpackInt64s(data)
		want := append([]int64(nil), tc...)
		sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })
		require.Equal(t, want, got)
	}
}

func TestQuicksortRandomized(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for trial := 0; trial < 200; trial++ {
		n := rng.IntN(200)
		vs := make([]int64, n)
		for i := range vs {
			vs[i] = int64(rng.IntN(50) - 25)
		}
		data := packInt64s(vs)
		a := NewArray(data, n, 8)
		Quicksort(a, int64Comparator{}, nil, QuicksortOptions{Chklim: DefaultChklim})
		got := unpackInt64s(data)
		want := append([]int64(nil), vs...)
		sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })
		require.Equal(t, want, got)
	}
}

func TestQuicksortAllEqual(t *testing.T) {
	vs := make([]int64, 100)
	for i := range vs {
		vs[i] = 7
	}
	data := packInt64s(vs)
	a := NewArray(data, len(vs), 8)
	Quicksort(a, int64Comparator{}, nil, QuicksortOptions{Chklim: DefaultChklim})
	require.Equal(t, vs, unpackInt64s(data))
}

func TestQuicksortLargeAscendingShortCircuit(t *testing.T) {
	n := 100
	vs := make([]int64, n)
	for i := range vs {
		vs[i] = int64(i)
	}
	data := packInt64s(vs)
	a := NewArray(data, n, 8)
	Quicksort(a, int64Comparator{}, nil, QuicksortOptions{Chklim: DefaultChklim})
	require.Equal(t, vs, unpackInt64s(data))
}

func TestQuicksortLargeDescending(t *testing.T) {
	n := 100
	vs := make([]int64, n)
	for i := range vs {
		vs[i] = int64(n - i)
	}
	data := packInt64s(vs)
	a := NewArray(data, n, 8)
	Quicksort(a, int64Comparator{}, nil, QuicksortOptions{Chklim: DefaultChklim})
	want := append([]int64(nil), vs...)
	sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })
	require.Equal(t, want, unpackInt64s(data))
}
