package sortcore

import "github.com/pbnjay/memory"

// scratchCapCeilingFraction bounds how much of total system memory the
// temporary buffer manager will grow into before treating further growth
// requests as a sign of a corrupt or adversarial comparator rather than a
// legitimate merge, rather than attempting an unbounded reallocation.
const scratchCapCeilingFraction = 4

// Buffer is the Timsort temporary buffer manager (spec §4.4): a
// monotonically grow-only scratch region sized to the smaller of the two
// runs being merged, released once on sort completion.
type Buffer struct {
	data []byte
	s    int
	cap  int // capacity in elements
}

// NewBuffer returns an empty scratch buffer for elements of size s.
func NewBuffer(s int) *Buffer {
	return &Buffer{s: s}
}

// Grow ensures the buffer holds at least minElems elements, reallocating
// through alloc only if the current capacity is insufficient. It never
// shrinks. If alloc is nil a plain make() is used.
func (b *Buffer) Grow(minElems int, alloc Allocator, fatal FatalHandler) {
	if minElems <= b.cap {
		return
	}
	if ceiling := scratchCeilingElems(b.s); ceiling > 0 && minElems > ceiling {
		fatal(errScratchTooLarge)
		return
	}
	n := minElems * b.s
	if alloc != nil {
		b.data = alloc.Alloc(n)
	} else {
		b.data = make([]byte, n)
	}
	b.cap = minElems
}

// Elem returns a sub-slice of the buffer holding element i.
func (b *Buffer) Elem(i int) []byte {
	return b.data[i*b.s : (i+1)*b.s]
}

// Slice returns n elements of the buffer starting at element start, as raw
// bytes.
func (b *Buffer) Slice(start, n int) []byte {
	return b.data[start*b.s : (start+n)*b.s]
}

var totalSystemMemory = memory.TotalMemory // overridable by tests

func scratchCeilingElems(elemSize int) int {
	total := totalSystemMemory()
	if total == 0 || elemSize == 0 {
		return 0
	}
	return int(total / scratchCapCeilingFraction / uint64(elemSize))
}
