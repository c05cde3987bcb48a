package sortcore

import (
	"math/bits"

	"github.com/xsort-go/xsort/internal/sortlog"
)

// maxStackDepth bounds the explicit partition stack: partitioning always
// pushes the larger side and recurses into the smaller, so depth is
// O(log N) and 8*bits.UintSize is comfortably sufficient for any N an int
// can index (spec §3).
const maxStackDepth = 8 * bits.UintSize

// DefaultChklim is used when QuicksortOptions.Chklim is negative. A value of
// zero is itself meaningful (it disables the ascending/descending
// short-circuit entirely), so only a negative value is treated as "unset".
const DefaultChklim = 63

type qsFrame struct{ l, r int }

// QuicksortOptions carries Quicksort's tunables and optional observability
// collaborator, mirroring TimsortOptions.
type QuicksortOptions struct {
	Chklim   int
	Listener sortlog.Listener
	Scopes   sortlog.LogScopes
}

// Quicksort sorts a[0:a.Len()) in place using cmp. It is not stable. It
// performs no dynamic allocation and never recurses in the stack-frame
// sense, using an explicit bounded stack instead (spec §4.2).
func Quicksort(a *Array, cmp Comparator, ctx any, opt QuicksortOptions) {
	n := a.Len()
	if n <= 1 {
		return
	}
	if opt.Listener == nil {
		opt.Listener = sortlog.NopListener{}
	}
	if opt.Chklim < 0 {
		opt.Chklim = DefaultChklim
	}
	if opt.Scopes.IsEnabled(sortlog.ScopeCompare) {
		cmp = observingComparator{inner: cmp, listener: opt.Listener}
	}

	stack := make([]qsFrame, 0, maxStackDepth)
	L, R := 0, n-1
	chklim := opt.Chklim // cleared permanently after its first use, not per-partition

	for {
		if L >= R {
			if !popFrame(&stack, &L, &R) {
				return
			}
			continue
		}

		if R-L == 1 { // exactly two elements
			if cmp.Compare(a.At(L), a.At(R), ctx) > 0 {
				a.Swap(L, R)
			}
			if !popFrame(&stack, &L, &R) {
				return
			}
			continue
		}

		count := R - L + 1
		m := L + count/2
		if count >= 60 {
			m = ninther(a, cmp, ctx, L, R, m, count)
		}

		useA, skip := classify(a, cmp, ctx, L, R, m, n, &chklim)
		if skip {
			if !popFrame(&stack, &L, &R) {
				return
			}
			continue
		}

		var l, r int
		var eqL, eqR bool
		if useA {
			l, r, eqL, eqR = partitionTypeA(a, cmp, ctx, L, R, m)
		} else {
			l, r, eqL, eqR = partitionTypeB(a, cmp, ctx, L, R, m)
		}

		switch {
		case !eqL && !eqR:
			if l-L < R-r {
				stack = append(stack, qsFrame{r, R})
				R = l
			} else {
				stack = append(stack, qsFrame{L, l})
				L = r
			}
		case !eqL:
			R = l
		case !eqR:
			L = r
		default:
			if !popFrame(&stack, &L, &R) {
				return
			}
		}
	}
}

func popFrame(stack *[]qsFrame, L, R *int) bool {
	s := *stack
	if len(s) == 0 {
		return false
	}
	top := s[len(s)-1]
	*stack = s[:len(s)-1]
	*L, *R = top.l, top.r
	return true
}

// ninther computes the median-of-medians pivot estimator used for large
// subranges (spec §4.2 "Pivot selection", count >= 60).
func ninther(a *Array, cmp Comparator, ctx any, L, R, m, count int) int {
	var m1, m3 int
	if count >= 200 {
		step := count / 8
		m1 = med3(a, cmp, ctx, L+step, L+2*step, L+3*step)
		m3 = med3(a, cmp, ctx, m+step, m+2*step, m+3*step)
	} else {
		step := count / 4
		m1 = L + step
		m3 = m + step
	}
	return med3(a, cmp, ctx, m1, m, m3)
}

// classify runs the seven-case (3-5-?, 7-5-?, 5-5-?) dispatch from spec
// §4.2/§9: it decides which partition shape to use, applies the adaptive
// chklim short-circuit, and reports whether the subrange is already fully
// resolved (ascending, descending, or uniformly pivot-equal) with nothing
// left to partition.
func classify(a *Array, cmp Comparator, ctx any, L, R, m, n int, chklim *int) (useA, skip bool) {
	switch cLM := cmp.Compare(a.At(L), a.At(m), ctx); {
	case cLM < 0: // 3-5-?
		switch cMR := cmp.Compare(a.At(m), a.At(R), ctx); {
		case cMR < 0: // 3-5-7: candidate ascending run
			triggered := *chklim != 0 && n >= *chklim
			if triggered {
				*chklim = 0
			}
			if triggered && ascending(a, cmp, ctx, L, R) {
				return false, true
			}
			return true, false
		case cMR > 0: // 3-5-4 / 3-5-2
			if cmp.Compare(a.At(L), a.At(R), ctx) <= 0 {
				a.Swap(m, R)
			} else {
				a.Rot3(R, m, L)
			}
			return true, false
		default: // 3-5-5
			return false, false
		}
	case cLM > 0: // 7-5-?
		switch cMR := cmp.Compare(a.At(m), a.At(R), ctx); {
		case cMR > 0: // 7-5-3: candidate descending run
			triggered := *chklim != 0 && n >= *chklim
			if triggered {
				*chklim = 0
			}
			if triggered && descending(a, cmp, ctx, L, R) {
				a.reverseRun(L, R-L+1)
				return false, true
			}
			a.Swap(L, R)
			return true, false
		case cMR < 0: // 7-5-8 / 7-5-6
			if cmp.Compare(a.At(L), a.At(R), ctx) <= 0 {
				a.Swap(L, m)
				return false, false
			}
			a.Rot3(L, m, R)
			return true, false
		default: // 7-5-5
			a.Swap(L, R)
			return true, false
		}
	default: // 5-5-?
		switch cMR := cmp.Compare(a.At(m), a.At(R), ctx); {
		case cMR < 0: // 5-5-7
			return true, false
		case cMR > 0: // 5-5-3
			a.Swap(L, R)
			return false, false
		default: // 5-5-5: every sampled point compares equal
			var a5 bool
			if allEqualScan(a, cmp, ctx, L, R, m, &a5) {
				return a5, false
			}
			return false, true
		}
	}
}

// med3 mirrors the original's med3 macro: the median of the three elements
// at x, y, z by index.
func med3(a *Array, cmp Comparator, ctx any, x, y, z int) int {
	if cmp.Compare(a.At(x), a.At(y), ctx) < 0 {
		if cmp.Compare(a.At(y), a.At(z), ctx) < 0 {
			return y
		}
		if cmp.Compare(a.At(x), a.At(z), ctx) < 0 {
			return z
		}
		return x
	}
	if cmp.Compare(a.At(y), a.At(z), ctx) > 0 {
		return y
	}
	if cmp.Compare(a.At(x), a.At(z), ctx) < 0 {
		return x
	}
	return z
}

func ascending(a *Array, cmp Comparator, ctx any, l, r int) bool {
	for i := l; i < r; i++ {
		if cmp.Compare(a.At(i), a.At(i+1), ctx) > 0 {
			return false
		}
	}
	return true
}

func descending(a *Array, cmp Comparator, ctx any, l, r int) bool {
	for i := l; i < r; i++ {
		if cmp.Compare(a.At(i), a.At(i+1), ctx) <= 0 {
			return false
		}
	}
	return true
}

// allEqualScan handles the 5-5-5 case: L, m, R all compared equal, so a
// linear scan decides whether the whole range is equal (returns false,
// nothing to sort) or finds a point that breaks the tie and picks a
// splitting direction (returns true with *useA set; L, R, m are otherwise
// unchanged and ready for the corresponding partition call).
func allEqualScan(a *Array, cmp Comparator, ctx any, L, R, m int, useA *bool) bool {
	for l := L + 1; l != R; l++ {
		if l == m {
			continue
		}
		switch t := cmp.Compare(a.At(l), a.At(m), ctx); {
		case t > 0:
			a.Swap(l, R)
			*useA = true
			return true
		case t < 0:
			a.Swap(L, l)
			*useA = false
			return true
		}
	}
	return false
}

// partitionTypeA implements the qs6 "type A" partition: left <= median <
// right. It returns the final (l, r) split point and whether each side
// turned out to consist entirely of pivot-equal elements.
func partitionTypeA(a *Array, cmp Comparator, ctx any, L, R, m int) (l, r int, eqL, eqR bool) {
	l, r = L, R
	eqL, eqR = true, true
	for {
		for {
			l++
			if l == r {
				l--
				if l != m {
					a.Swap(m, l)
				}
				l--
				return l, r, eqL, eqR
			}
			if l == m {
				continue
			}
			t := cmp.Compare(a.At(l), a.At(m), ctx)
			if t > 0 {
				eqR = false
				break
			}
			if t < 0 {
				eqL = false
			}
		}
		for {
			r--
			if l == r {
				l--
				if l != m {
					a.Swap(m, l)
				}
				l--
				return l, r, eqL, eqR
			}
			if r == m {
				m = l
				break
			}
			t := cmp.Compare(a.At(r), a.At(m), ctx)
			if t < 0 {
				eqL = false
				break
			}
			if t == 0 {
				break
			}
		}
		a.Swap(l, r)
	}
}

// partitionTypeB is the mirror-image partition: left < median <= right.
func partitionTypeB(a *Array, cmp Comparator, ctx any, L, R, m int) (l, r int, eqL, eqR bool) {
	l, r = L, R
	eqL, eqR = true, true
	for {
		for {
			r--
			if l == r {
				r++
				if r != m {
					a.Swap(r, m)
				}
				r++
				return l, r, eqL, eqR
			}
			if r == m {
				continue
			}
			t := cmp.Compare(a.At(r), a.At(m), ctx)
			if t < 0 {
				eqL = false
				break
			}
			if t > 0 {
				eqR = false
			}
		}
		for {
			l++
			if l == r {
				r++
				if r != m {
					a.Swap(r, m)
				}
				r++
				return l, r, eqL, eqR
			}
			if l == m {
				m = r
				break
			}
			t := cmp.Compare(a.At(l), a.At(m), ctx)
			if t > 0 {
				eqR = false
				break
			}
			if t == 0 {
				break
			}
		}
		a.Swap(l, r)
	}
}
