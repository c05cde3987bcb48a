package xsort

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortOrderedInts(t *testing.T) {
	s := []int{5, 2, 8, 1, 9, 3, 7, 4, 6}
	require.NoError(t, SortOrdered(s))
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, s)
}

func TestSortOrderedFloats(t *testing.T) {
	s := []float64{3.5, -1.2, 0, 2.2, -1.2}
	require.NoError(t, SortOrdered(s))
	assert.True(t, sort.Float64sAreSorted(s))
}

func TestTimsortOrderedSorts(t *testing.T) {
	s := []int{3, 1, 2, 1, 3, 2, 1}
	require.NoError(t, TimsortOrdered(s))
	assert.Equal(t, []int{1, 1, 1, 2, 2, 3, 3}, s)
}

func TestSortOrderedEmptyAndSingle(t *testing.T) {
	var empty []int
	require.NoError(t, SortOrdered(empty))

	single := []int{42}
	require.NoError(t, SortOrdered(single))
	assert.Equal(t, []int{42}, single)
}
