package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// matrixConfig describes a benchmark matrix: every combination of Sizes,
// ElementSizes, and Algorithms is run once per Seed.
type matrixConfig struct {
	Seed         int64    `toml:"seed"`
	Sizes        []int    `toml:"sizes"`
	ElementSizes []int    `toml:"element_sizes"`
	Algorithms   []string `toml:"algorithms"`
}

func loadConfig(path string) (matrixConfig, error) {
	var cfg matrixConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return matrixConfig{}, fmt.Errorf("decoding %s: %w", path, err)
	}
	if len(cfg.Sizes) == 0 {
		cfg.Sizes = []int{1000, 100000}
	}
	if len(cfg.ElementSizes) == 0 {
		cfg.ElementSizes = []int{8}
	}
	if len(cfg.Algorithms) == 0 {
		cfg.Algorithms = []string{"quicksort", "timsort"}
	}
	for _, alg := range cfg.Algorithms {
		if alg != "quicksort" && alg != "timsort" {
			return matrixConfig{}, fmt.Errorf("unknown algorithm %q", alg)
		}
	}
	return cfg, nil
}
