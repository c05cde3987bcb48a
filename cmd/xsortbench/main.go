// Command xsortbench runs a configurable matrix of Quicksort/Timsort
// benchmarks against randomly generated inputs and reports comparator
// counts and wall time per cell, concurrently across cells.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/KimMachineGun/automemlimit/memlimit"
	"go.uber.org/automaxprocs/maxprocs"
)

func main() {
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...any) {}))
	_, _ = memlimit.SetGoMemLimitWithOpts(memlimit.WithRatio(0.9))

	os.Exit(doMain(os.Args[1:], os.Stdout, os.Stderr))
}

// doMain is separated from main for unit testing.
func doMain(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("xsortbench", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a TOML benchmark matrix config")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *configPath == "" {
		fmt.Fprintln(stderr, "missing -config")
		fs.Usage()
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "loading config: %v\n", err)
		return 1
	}

	results, err := runMatrix(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "running matrix: %v\n", err)
		return 1
	}

	for _, r := range results {
		fmt.Fprintf(stdout, "%-10s n=%-8d s=%-5d elapsed=%-12s comparisons=%d\n",
			r.Algorithm, r.N, r.ElementSize, r.Elapsed, r.Comparisons)
	}
	return 0
}
