package sortcore

import "github.com/xsort-go/xsort/internal/sortlog"

// observingComparator decorates a Comparator with a Listener.OnCompare
// notification per call, the same decorator shape as the comparator-wrapping
// counters used in this tree's tests. Both engines
// install it once at the call boundary, rather than instrumenting every
// internal cmp.Compare call site, when ScopeCompare is enabled.
type observingComparator struct {
	inner    Comparator
	listener sortlog.Listener
}

func (o observingComparator) Compare(a, b []byte, ctx any) int {
	o.listener.OnCompare(a, b)
	return o.inner.Compare(a, b, ctx)
}
