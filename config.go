package xsort

import (
	"github.com/xsort-go/xsort/internal/sortcore"
	"github.com/xsort-go/xsort/internal/sortlog"
)

// Comparator orders two elements, each passed as their raw bytes, given an
// arbitrary caller context (spec §6 "Comparator").
type Comparator = sortcore.Comparator

// Allocator is the collaborator Timsort's scratch buffer uses to obtain
// backing storage. The default, used when a Config carries none, is a
// plain Go make().
type Allocator = sortcore.Allocator

// FatalHandler is invoked, and expected never to return normally, when a
// sort hits an unrecoverable condition: today, only a scratch allocation
// that would exceed the scratch memory ceiling, a quarter of total system
// memory (spec §7).
type FatalHandler = sortcore.FatalHandler

// Listener receives opt-in engine observability events (spec §11.4). See
// package sortlog for the scope bitmask and event shapes.
type Listener = sortlog.Listener

// LogScopes selects which categories of event reach a Config's Listener.
type LogScopes = sortlog.LogScopes

const (
	ScopeNone    = sortlog.ScopeNone
	ScopeCompare = sortlog.ScopeCompare
	ScopeRun     = sortlog.ScopeRun
	ScopeMerge   = sortlog.ScopeMerge
	ScopeGallop  = sortlog.ScopeGallop
	ScopeScratch = sortlog.ScopeScratch
	ScopeAll     = sortlog.ScopeAll
)

// DefaultChklim and DefaultInitialMinGallop are the engine defaults used
// when a Config has not overridden them via WithChklim /
// WithInitialMinGallop.
const (
	DefaultChklim           = sortcore.DefaultChklim
	DefaultInitialMinGallop = sortcore.DefaultInitialMinGallop
)

// Config controls one sort call: the comparator, the memory collaborators,
// the algorithm tunables, and optional observability. The zero value is not
// usable; build one with NewConfig and the With* methods, mirroring the
// functional-options style used throughout this module's dependency tree.
type Config struct {
	comparator       Comparator
	allocator        Allocator
	fatal            FatalHandler
	listener         Listener
	scopes           LogScopes
	chklim           int
	initialMinGallop int
}

// configLess holds the defaults shared by every Config, so NewConfig and
// clone can never disagree about what "unset" means.
var configLess = &Config{
	allocator:        goAllocator{},
	fatal:            defaultFatal,
	listener:         sortlog.NopListener{},
	scopes:           ScopeNone,
	chklim:           DefaultChklim,
	initialMinGallop: DefaultInitialMinGallop,
}

// NewConfig returns a Config with no comparator set and every other field
// defaulted: a Go-native allocator, a panicking fatal handler, observability
// disabled, and the default chklim/minGallop tunables.
func NewConfig() *Config {
	ret := configLess.clone()
	return ret
}

func (c *Config) clone() *Config {
	return &Config{
		comparator:       c.comparator,
		allocator:        c.allocator,
		fatal:            c.fatal,
		listener:         c.listener,
		scopes:           c.scopes,
		chklim:           c.chklim,
		initialMinGallop: c.initialMinGallop,
	}
}

// WithComparator sets the ordering used by Quicksort and Timsort.
func (c *Config) WithComparator(cmp Comparator) *Config {
	ret := c.clone()
	ret.comparator = cmp
	return ret
}

// WithAllocator overrides the scratch-buffer allocator Timsort uses. A nil
// allocator reverts to the Go-native default.
func (c *Config) WithAllocator(a Allocator) *Config {
	ret := c.clone()
	if a == nil {
		a = goAllocator{}
	}
	ret.allocator = a
	return ret
}

// WithFatalHandler overrides what happens when a sort hits an
// unrecoverable condition. A nil handler reverts to the default, which
// panics with the error.
func (c *Config) WithFatalHandler(f FatalHandler) *Config {
	ret := c.clone()
	if f == nil {
		f = defaultFatal
	}
	ret.fatal = f
	return ret
}

// WithListener registers an observability listener and the scopes it
// should receive. Passing a nil listener or ScopeNone disables
// observability, which is also the default.
func (c *Config) WithListener(l Listener, scopes LogScopes) *Config {
	ret := c.clone()
	if l == nil {
		l = sortlog.NopListener{}
		scopes = ScopeNone
	}
	ret.listener = l
	ret.scopes = scopes
	return ret
}

// WithInitialMinGallop overrides Timsort's starting, and ratchet-reset,
// minGallop threshold (spec §4.3 "Galloping"). A non-positive value reverts
// to the default.
func (c *Config) WithInitialMinGallop(n int) *Config {
	ret := c.clone()
	if n <= 0 {
		n = DefaultInitialMinGallop
	}
	ret.initialMinGallop = n
	return ret
}

// WithChklim overrides Quicksort's adaptive ascending/descending
// short-circuit threshold (spec §4.2 "chklim"). A negative limit reverts to
// the default; zero is itself meaningful and disables the short-circuit.
func (c *Config) WithChklim(limit int) *Config {
	ret := c.clone()
	if limit < 0 {
		limit = DefaultChklim
	}
	ret.chklim = limit
	return ret
}

func defaultFatal(err error) {
	panic(err)
}

// goAllocator is the default Allocator: a plain Go make(), since Go's
// runtime is the only memory manager most callers will ever want.
type goAllocator struct{}

func (goAllocator) Alloc(n int) []byte { return make([]byte, n) }
