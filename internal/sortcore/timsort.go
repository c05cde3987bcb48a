package sortcore

import (
	"math/bits"

	"github.com/xsort-go/xsort/internal/sortlog"
)

// DefaultInitialMinGallop is used when TimsortOptions.InitialMinGallop is
// not positive: the starting value, and the fixed comparison threshold used
// while deciding whether to drop back out of galloping mode, for the
// adaptive minGallop ratchet (spec §4.3 "Galloping").
const DefaultInitialMinGallop = 7

// Allocator is the abstract memory collaborator Timsort's scratch buffer
// uses (spec §6). FatalHandler is invoked, and expected never to return,
// when a scratch allocation cannot be satisfied (spec §7).
type Allocator interface {
	Alloc(n int) []byte
}

type FatalHandler func(error)

// TimsortOptions carries the collaborators and tunables for one Timsort
// call: the allocator, the fatal-error sink, the minGallop starting
// threshold, and an optional observability listener (spec §11.4 of
// SPEC_FULL.md).
type TimsortOptions struct {
	Allocator        Allocator
	Fatal            FatalHandler
	Listener         sortlog.Listener
	Scopes           sortlog.LogScopes
	InitialMinGallop int
}

type runFrame struct{ start, length int }

// Timsort stably sorts a[0:a.Len()) in place using cmp (spec §4.3).
func Timsort(a *Array, cmp Comparator, ctx any, opt TimsortOptions) {
	n := a.Len()
	if n <= 1 {
		return
	}
	if opt.Listener == nil {
		opt.Listener = sortlog.NopListener{}
	}
	if opt.InitialMinGallop <= 0 {
		opt.InitialMinGallop = DefaultInitialMinGallop
	}
	if opt.Scopes.IsEnabled(sortlog.ScopeCompare) {
		cmp = observingComparator{inner: cmp, listener: opt.Listener}
	}

	if n < 64 {
		binaryInsertionSort(a, cmp, ctx, 0, n, 1)
		return
	}

	minRun := calcMinRun(n)
	buf := NewBuffer(a.ElemSize())
	minGallop := opt.InitialMinGallop
	stack := make([]runFrame, 0, maxStackDepth)

	cur := 0
	for cur < n {
		run := detectRun(a, cmp, ctx, cur, n)

		target := minRun
		if remaining := n - cur; target > remaining {
			target = remaining
		}
		if target > run {
			binaryInsertionSort(a, cmp, ctx, cur, cur+target, run)
			run = target
		}

		stack = append(stack, runFrame{cur, run})
		if opt.Scopes.IsEnabled(sortlog.ScopeRun) {
			opt.Listener.OnRunDetected(run)
		}
		cur += run

		// REDESIGN FLAG R1: no three-push warm-up; mergeCollapse is a
		// no-op below two runs, so the invariant is simply checked after
		// every push.
		mergeCollapse(a, cmp, ctx, &stack, buf, &minGallop, opt)
	}

	drainStack(a, cmp, ctx, &stack, buf, &minGallop, opt)
}

// calcMinRun chooses minrun from the top 6 bits of n, rounding up whenever
// any lower bit is set (spec §4.3 "Minrun computation"). For n >= 64 the
// result lies in [32, 64]; for smaller n it is n itself.
func calcMinRun(n int) int {
	shift := bits.Len(uint(n))
	if shift < 6 {
		shift = 6
	}
	shift -= 6
	minRun := n >> shift
	if n&((1<<shift)-1) != 0 {
		minRun++
	}
	return minRun
}

// detectRun finds the longest initial monotone run starting at cur. A
// descending run is reversed in place before returning, so every stacked
// run is non-decreasing; ties are classed as ascending, which is what
// makes the Timsort path stable (spec §4.3 "Run detection").
func detectRun(a *Array, cmp Comparator, ctx any, cur, n int) int {
	remaining := n - cur
	if remaining == 1 {
		return 1
	}
	if remaining == 2 {
		if cmp.Compare(a.At(cur), a.At(cur+1), ctx) > 0 {
			a.Swap(cur, cur+1)
		}
		return 2
	}

	pos := cur + 2
	if cmp.Compare(a.At(cur), a.At(cur+1), ctx) <= 0 {
		for pos < n && cmp.Compare(a.At(pos-1), a.At(pos), ctx) <= 0 {
			pos++
		}
		return pos - cur
	}
	for pos < n && cmp.Compare(a.At(pos-1), a.At(pos), ctx) > 0 {
		pos++
	}
	run := pos - cur
	a.reverseRun(cur, run)
	return run
}

// binaryInsertionSort sorts a[lo:hi) in place, given that a[lo:lo+start) is
// already sorted. It is used both for the whole-array small-N shortcut
// (start=1) and to pad a short natural run up to minrun (start=run length).
func binaryInsertionSort(a *Array, cmp Comparator, ctx any, lo, hi, start int) {
	tmp := make([]byte, a.ElemSize())
	for i := start; i < hi-lo; i++ {
		if cmp.Compare(a.At(lo+i-1), a.At(lo+i), ctx) <= 0 {
			continue
		}
		copy(tmp, a.At(lo+i))

		var loc int
		l, r := 0, i-1
		switch {
		case cmp.Compare(tmp, a.At(lo), ctx) < 0:
			loc = 0
		case cmp.Compare(tmp, a.At(lo+r), ctx) > 0:
			loc = r
		default:
			c := r >> 1
			for {
				v := cmp.Compare(tmp, a.At(lo+c), ctx)
				if v < 0 {
					if c-l <= 1 {
						loc = c
						break
					}
					r = c
				} else {
					if r-c <= 1 {
						loc = c + 1
						break
					}
					l = c
				}
				c = l + (r-l)/2
			}
		}

		a.CopyRange(lo+loc+1, lo+loc, i-loc)
		copy(a.At(lo+loc), tmp)
	}
}

// mergeCollapse maintains the run-stack invariant (spec §3) after a push:
// for adjacent runs (A, B, C) with C topmost, A.len > B.len+C.len and
// B.len > C.len; when a fourth run A' is present, A'.len > A.len+B.len is
// also checked — the correction to the published three-level-only
// formulation (spec §4.3, §9).
func mergeCollapse(a *Array, cmp Comparator, ctx any, stack *[]runFrame, buf *Buffer, minGallop *int, opt TimsortOptions) {
	for {
		s := *stack
		k := len(s)
		if k <= 1 {
			return
		}
		if k == 2 {
			if s[0].length > s[1].length {
				return
			}
		} else if s[k-3].length > s[k-2].length+s[k-1].length && s[k-2].length > s[k-1].length &&
			(k < 4 || s[k-4].length > s[k-3].length+s[k-2].length) {
			return
		}

		if k == 2 {
			mergeTop(a, cmp, ctx, stack, 0, buf, minGallop, opt)
			continue
		}
		if s[k-2].length <= s[k-1].length {
			mergeTop(a, cmp, ctx, stack, k-2, buf, minGallop, opt)
		} else if s[k-3].length <= s[k-2].length+s[k-1].length ||
			(k >= 4 && s[k-4].length <= s[k-3].length+s[k-2].length) {
			mergeTop(a, cmp, ctx, stack, k-3, buf, minGallop, opt)
		} else {
			return
		}
	}
}

// drainStack merges the remaining stack from the top down once input is
// exhausted, regardless of the invariant (spec §4.3 "after all elements
// are consumed, merge the remaining stack from top down").
func drainStack(a *Array, cmp Comparator, ctx any, stack *[]runFrame, buf *Buffer, minGallop *int, opt TimsortOptions) {
	for len(*stack) > 1 {
		mergeTop(a, cmp, ctx, stack, len(*stack)-2, buf, minGallop, opt)
	}
}

// mergeTop merges the adjacent runs at stack[idx] and stack[idx+1],
// folding the result back into stack[idx] and closing the gap.
func mergeTop(a *Array, cmp Comparator, ctx any, stack *[]runFrame, idx int, buf *Buffer, minGallop *int, opt TimsortOptions) {
	s := *stack
	left, right := s[idx], s[idx+1]
	timsortMergeRuns(a, cmp, ctx, left, right, buf, minGallop, opt)
	s[idx].length = left.length + right.length
	if idx+2 < len(s) {
		s[idx+1] = s[idx+2]
	}
	*stack = s[:len(s)-1]
}

// timsortMergeRuns is the merge driver (spec §4.3 "Merge driver"): it
// gallops away the parts of each run already known to be in place, then
// dispatches to leftMerge or rightMerge depending on which run is shorter.
func timsortMergeRuns(a *Array, cmp Comparator, ctx any, left, right runFrame, buf *Buffer, minGallop *int, opt TimsortOptions) {
	lStart, lLen := left.start, left.length
	rStart, rLen := right.start, right.length

	k := gallopSearch(cmp, ctx, func(i int) []byte { return a.At(lStart + i) }, lLen, a.At(rStart), 0, true)
	lStart += k
	lLen -= k
	if lLen == 0 {
		*minGallop /= 2
		return
	}

	k = gallopSearch(cmp, ctx, func(i int) []byte { return a.At(rStart + i) }, rLen, a.At(lStart+lLen-1), rLen-1, false)
	rLen = k

	need := lLen
	if rLen < need {
		need = rLen
	}
	buf.Grow(need, opt.Allocator, opt.Fatal)
	if opt.Scopes.IsEnabled(sortlog.ScopeScratch) {
		opt.Listener.OnScratchGrow(need)
	}
	if opt.Scopes.IsEnabled(sortlog.ScopeMerge) {
		opt.Listener.OnMerge(lLen, rLen)
	}

	if lLen <= rLen {
		leftMerge(a, cmp, ctx, lStart, rStart, lLen, rLen, buf, minGallop, opt)
	} else {
		rightMerge(a, cmp, ctx, lStart, rStart, lLen, rLen, buf, minGallop, opt)
	}
}

// leftMerge merges L into R producing output at ascending addresses,
// copying L (the shorter run) into scratch first (spec §4.3 step 4).
func leftMerge(a *Array, cmp Comparator, ctx any, lStart, rStart, lLen, rLen int, buf *Buffer, minGallop *int, opt TimsortOptions) {
	copy(buf.Slice(0, lLen), a.Slice(lStart, lLen))
	base := lStart
	pl, pr, pb := 0, 0, 0

	copyL := func() { copy(a.At(base+pb), buf.Elem(pl)); pb++; pl++ }
	copyR := func() { a.CopyElem(base+pb, rStart+pr); pb++; pr++ }
	finish := func() { copy(a.Slice(base+pb, lLen-pl), buf.Slice(pl, lLen-pl)) }

	copyR()
	if rLen == 1 {
		finish()
		return
	}

	ming := *minGallop
	for {
		lNum, rNum := 0, 0
		for {
			if cmp.Compare(buf.Elem(pl), a.At(rStart+pr), ctx) <= 0 {
				copyL()
				lNum++
				rNum = 0
				if ming <= lNum {
					break
				}
			} else {
				copyR()
				rNum++
				lNum = 0
				if pr == rLen {
					finish()
					*minGallop = ming
					return
				}
				if ming <= rNum {
					break
				}
			}
		}
		ming++
		if opt.Scopes.IsEnabled(sortlog.ScopeGallop) {
			opt.Listener.OnGallopEnter()
		}
		for {
			if ming != 0 {
				ming--
			}
			k := gallopSearch(cmp, ctx, func(i int) []byte { return buf.Elem(pl + i) }, lLen-pl, a.At(rStart+pr), 0, true)
			copy(a.Slice(base+pb, k), buf.Slice(pl, k))
			pb += k
			pl += k
			copyR()
			if pr == rLen {
				finish()
				*minGallop = ming
				return
			}
			if lNum != 0 && k < opt.InitialMinGallop {
				ming++
				break
			}
			k = gallopSearch(cmp, ctx, func(i int) []byte { return a.At(rStart + pr + i) }, rLen-pr, buf.Elem(pl), 0, false)
			copy(a.Slice(base+pb, k), a.Slice(rStart+pr, k))
			pb += k
			pr += k
			if pr == rLen {
				finish()
				*minGallop = ming
				return
			}
			copyL()
			if rNum != 0 && k < opt.InitialMinGallop {
				ming++
				break
			}
		}
		if opt.Scopes.IsEnabled(sortlog.ScopeGallop) {
			opt.Listener.OnGallopExit()
		}
	}
}

// rightMerge merges R into L producing output at descending addresses,
// copying R (the shorter run) into scratch first.
func rightMerge(a *Array, cmp Comparator, ctx any, lStart, rStart, lLen, rLen int, buf *Buffer, minGallop *int, opt TimsortOptions) {
	copy(buf.Slice(0, rLen), a.Slice(rStart, rLen))
	base := lStart
	pl, pr, pb := lLen-1, rLen-1, lLen+rLen-1

	copyL := func() { a.CopyElem(base+pb, base+pl); pb--; pl-- }
	copyR := func() { copy(a.At(base+pb), buf.Elem(pr)); pb--; pr-- }
	finish := func() { copy(a.Slice(base, pr+1), buf.Slice(0, pr+1)) }

	copyL()
	if lLen == 1 {
		finish()
		return
	}

	ming := *minGallop
	for {
		lNum, rNum := 0, 0
		for {
			if cmp.Compare(a.At(base+pl), buf.Elem(pr), ctx) <= 0 {
				copyR()
				rNum++
				lNum = 0
				if ming <= rNum {
					break
				}
			} else {
				copyL()
				lNum++
				rNum = 0
				if pl == -1 {
					finish()
					*minGallop = ming
					return
				}
				if ming <= lNum {
					break
				}
			}
		}
		ming++
		if opt.Scopes.IsEnabled(sortlog.ScopeGallop) {
			opt.Listener.OnGallopEnter()
		}
		for {
			if ming != 0 {
				ming--
			}
			k := gallopSearch(cmp, ctx, func(i int) []byte { return a.At(base + i) }, pl+1, buf.Elem(pr), pl, true)
			moved := pl + 1 - k
			copy(a.Slice(base+pr+k+1, pl+1-k), a.Slice(base+k, pl+1-k))
			pb = pr + k
			pl = k - 1
			if pl == -1 {
				finish()
				*minGallop = ming
				return
			}
			copyR()
			if lNum != 0 && moved < opt.InitialMinGallop {
				ming++
				break
			}
			k = gallopSearch(cmp, ctx, func(i int) []byte { return buf.Elem(i) }, pr+1, a.At(base+pl), pr, false)
			moved = pr + 1 - k
			copy(a.Slice(base+pl+k+1, pr+1-k), buf.Slice(k, pr+1-k))
			pb = pl + k
			pr = k - 1
			copyL()
			if pl == -1 {
				finish()
				*minGallop = ming
				return
			}
			if rNum != 0 && moved < opt.InitialMinGallop {
				ming++
				break
			}
		}
		if opt.Scopes.IsEnabled(sortlog.ScopeGallop) {
			opt.Listener.OnGallopExit()
		}
	}
}

// gallopSearch implements the exponential-then-binary search described in
// spec §4.3 "Galloping search". at(i) addresses a sorted run of the given
// length; the probe starts at anchor and doubles outward until key brackets
// between two samples or a run end is hit, then binary-searches the
// bracketed interval. isRight selects the rightmost (true) or leftmost
// (false) insertion point on ties. Returns an index in [0, length].
func gallopSearch(cmp Comparator, ctx any, at func(int) []byte, length int, key []byte, anchor int, isRight bool) int {
	cp := cmp.Compare(key, at(anchor), ctx)

	var o, lastO, maxO int
	if cp < 0 || (!isRight && cp == 0) {
		if anchor == 0 {
			return 0
		}
		o, maxO = -1, -anchor
	} else {
		if anchor == length-1 {
			return length
		}
		o, maxO = 1, length-anchor-1
	}
	oSign := o

	for {
		if maxO/o <= 1 {
			o = maxO
			if o < 0 {
				cp = cmp.Compare(key, at(0), ctx)
				if (isRight && cp < 0) || (!isRight && cp <= 0) {
					return 0
				}
			} else {
				cp = cmp.Compare(at(length-1), key, ctx)
				if (isRight && cp <= 0) || (!isRight && cp < 0) {
					return length
				}
			}
			break
		}
		c := anchor + o
		cp = cmp.Compare(key, at(c), ctx)
		if o > 0 {
			if (isRight && cp < 0) || (!isRight && cp <= 0) {
				break
			}
		} else {
			if (isRight && cp >= 0) || (!isRight && cp > 0) {
				break
			}
		}
		lastO = o
		o = (o << 1) + oSign
	}

	var l, r int
	if o < 0 {
		l, r = anchor+o, anchor+lastO
	} else {
		l, r = anchor+lastO, anchor+o
	}
	for r-l > 1 {
		c := l + (r-l)/2
		cp := cmp.Compare(key, at(c), ctx)
		if (isRight && cp < 0) || (!isRight && cp <= 0) {
			r = c
		} else {
			l = c
		}
	}
	return r
}
