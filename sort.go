// Package xsort is a generic, in-place comparison sort engine over opaque
// byte-addressed element arrays, offering two algorithms: an introspective
// quicksort (Quicksort) for unstable, allocation-free sorting, and a full
// Timsort (Timsort) for stable sorting that exploits existing order in the
// input (spec §1 "Purpose & Scope").
package xsort

import (
	"github.com/xsort-go/xsort/internal/sortcore"
	"github.com/xsort-go/xsort/internal/sortdebug"
)

// Quicksort sorts data in place, treating it as n elements of s bytes each,
// ordered by cfg's comparator. It is not stable and performs no dynamic
// allocation. A caller-supplied Comparator that panics has its panic
// converted into the returned error instead of crashing the
// process (spec §4.2, §7).
func Quicksort(data []byte, n, s int, cfg *Config) (err error) {
	a, cmp, cfgErr := prepare(data, n, s, cfg)
	if cfgErr != nil {
		return cfgErr
	}
	opt := sortcore.QuicksortOptions{
		Chklim:   cfg.chklim,
		Listener: cfg.listener,
		Scopes:   cfg.scopes,
	}
	sortdebug.Recover(func(e error) { err = e }, func() {
		sortcore.Quicksort(a, cmp, nil, opt)
	})
	return err
}

// Timsort stably sorts data in place, treating it as n elements of s bytes
// each, ordered by cfg's comparator. It allocates a single grow-only
// scratch buffer sized to the smaller of the two runs being merged at any
// point, via cfg's Allocator (spec §4.3, §6).
func Timsort(data []byte, n, s int, cfg *Config) (err error) {
	a, cmp, cfgErr := prepare(data, n, s, cfg)
	if cfgErr != nil {
		return cfgErr
	}
	opt := sortcore.TimsortOptions{
		Allocator:        cfg.allocator,
		Fatal:            cfg.fatal,
		Listener:         cfg.listener,
		Scopes:           cfg.scopes,
		InitialMinGallop: cfg.initialMinGallop,
	}
	sortdebug.Recover(func(e error) { err = e }, func() {
		sortcore.Timsort(a, cmp, nil, opt)
	})
	return err
}

func prepare(data []byte, n, s int, cfg *Config) (*sortcore.Array, Comparator, error) {
	if cfg == nil || cfg.comparator == nil {
		return nil, nil, ErrNilComparator
	}
	if n < 0 {
		return nil, nil, ErrNegativeLength
	}
	if n == 0 {
		return sortcore.NewArray(data, 0, s), cfg.comparator, nil
	}
	if len(data) < n*s {
		return nil, nil, ErrElementSize
	}
	return sortcore.NewArray(data, n, s), cfg.comparator, nil
}
