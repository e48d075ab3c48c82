package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// fileConfig mirrors the TOML config file. Every key is optional and
// only keys actually present in the file are applied.
type fileConfig struct {
	MaxDepth  int    `toml:"max_depth"`
	Canonical bool   `toml:"canonical"`
	Out       string `toml:"out"`
	Verbose   bool   `toml:"verbose"`
}

func loadToolConfig(path string, opts *options, set flagSet) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("max_depth") && !set.maxDepth {
		if raw.MaxDepth < 1 {
			return fmt.Errorf("config max_depth must be positive (got %d)", raw.MaxDepth)
		}
		opts.maxDepth = raw.MaxDepth
	}

	if meta.IsDefined("canonical") && !set.canonical {
		opts.canonical = raw.Canonical
	}

	if meta.IsDefined("out") && !set.out {
		opts.out = strings.TrimSpace(raw.Out)
	}

	if meta.IsDefined("verbose") && !set.verbose {
		opts.verbose = raw.Verbose
	}

	return nil
}
