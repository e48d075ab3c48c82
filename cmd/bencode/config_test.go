package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadToolConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
max_depth = 64
canonical = true
out = "out.bencode"
verbose = true
`)

	opts := defaultOptions()
	if err := loadToolConfig(path, &opts, flagSet{}); err != nil {
		t.Fatalf("load config: %v", err)
	}
	if opts.maxDepth != 64 {
		t.Fatalf("unexpected max depth: %d", opts.maxDepth)
	}
	if !opts.canonical {
		t.Fatalf("expected canonical enabled")
	}
	if opts.out != "out.bencode" {
		t.Fatalf("unexpected out: %q", opts.out)
	}
	if !opts.verbose {
		t.Fatalf("expected verbose enabled")
	}
}

func TestLoadToolConfigKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
canonical = true
`)

	opts := defaultOptions()
	if err := loadToolConfig(path, &opts, flagSet{}); err != nil {
		t.Fatalf("load config: %v", err)
	}
	if opts.maxDepth != defaultOptions().maxDepth {
		t.Fatalf("unexpected max depth: %d", opts.maxDepth)
	}
	if opts.out != "" {
		t.Fatalf("unexpected out: %q", opts.out)
	}
	if opts.verbose {
		t.Fatalf("expected verbose disabled")
	}
}

func TestLoadToolConfigFlagWins(t *testing.T) {
	path := writeConfig(t, `
max_depth = 64
canonical = true
`)

	opts := defaultOptions()
	opts.maxDepth = 8
	if err := loadToolConfig(path, &opts, flagSet{maxDepth: true}); err != nil {
		t.Fatalf("load config: %v", err)
	}
	if opts.maxDepth != 8 {
		t.Fatalf("flag value overridden: %d", opts.maxDepth)
	}
	if !opts.canonical {
		t.Fatalf("expected canonical from config")
	}
}

func TestLoadToolConfigBadDepth(t *testing.T) {
	path := writeConfig(t, `
max_depth = 0
`)

	opts := defaultOptions()
	if err := loadToolConfig(path, &opts, flagSet{}); err == nil {
		t.Fatalf("expected config error")
	}
}

func TestLoadToolConfigMissingFile(t *testing.T) {
	opts := defaultOptions()
	err := loadToolConfig(filepath.Join(t.TempDir(), "none.toml"), &opts, flagSet{})
	if err == nil {
		t.Fatalf("expected load error")
	}
}
