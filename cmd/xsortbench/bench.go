package main

import (
	"encoding/binary"
	"math/rand/v2"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/xsort-go/xsort"
)

type cellResult struct {
	Algorithm   string
	N           int
	ElementSize int
	Elapsed     time.Duration
	Comparisons int
}

// runMatrix runs every (algorithm, N, element size) cell in cfg
// concurrently, bounded by GOMAXPROCS, and returns results in a stable
// order (sizes outer, element sizes middle, algorithm inner).
func runMatrix(cfg matrixConfig) ([]cellResult, error) {
	type cell struct {
		alg  string
		n, s int
	}
	var cells []cell
	for _, n := range cfg.Sizes {
		for _, s := range cfg.ElementSizes {
			for _, alg := range cfg.Algorithms {
				cells = append(cells, cell{alg, n, s})
			}
		}
	}

	results := make([]cellResult, len(cells))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, c := range cells {
		i, c := i, c
		g.Go(func() error {
			r, err := runCell(c.alg, c.n, c.s, cfg.Seed+int64(i))
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// comparisonCounter is the xsort.Listener that drives the reported
// comparator-call count for a single cell. Each cell gets its own, run
// single-threaded within its runCell call, so no locking is needed.
type comparisonCounter struct{ count int }

func (c *comparisonCounter) OnCompare([]byte, []byte) { c.count++ }
func (c *comparisonCounter) OnRunDetected(int)        {}
func (c *comparisonCounter) OnMerge(int, int)         {}
func (c *comparisonCounter) OnGallopEnter()           {}
func (c *comparisonCounter) OnGallopExit()            {}
func (c *comparisonCounter) OnScratchGrow(int)        {}

type leadingInt64Comparator struct{}

func (leadingInt64Comparator) Compare(a, b []byte, _ any) int {
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

func runCell(alg string, n, elemSize int, seed int64) (cellResult, error) {
	data, err := randomInput(n, elemSize, seed)
	if err != nil {
		return cellResult{}, err
	}

	counter := &comparisonCounter{}
	cfg := xsort.NewConfig().
		WithComparator(leadingInt64Comparator{}).
		WithListener(counter, xsort.ScopeCompare)

	start := time.Now()
	switch alg {
	case "quicksort":
		err = xsort.Quicksort(data, n, elemSize, cfg)
	default:
		err = xsort.Timsort(data, n, elemSize, cfg)
	}
	elapsed := time.Since(start)
	if err != nil {
		return cellResult{}, err
	}

	return cellResult{
		Algorithm:   alg,
		N:           n,
		ElementSize: elemSize,
		Elapsed:     elapsed,
		Comparisons: counter.count,
	}, nil
}

func randomInput(n, elemSize int, seed int64) ([]byte, error) {
	if elemSize < 8 {
		elemSize = 8
	}
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
	data := make([]byte, n*elemSize)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint64(data[i*elemSize:], uint64(rng.Int64()))
	}
	return data, nil
}
