// Package config provides centralized configuration defaults for the fuzzymatch CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"fuzzymatch/pkg/fuzzy"
)

// FileName is the config file looked up by Load.
const FileName = "fuzzymatch.toml"

// ConfigFile represents the structure of fuzzymatch.toml
type ConfigFile struct {
	Defaults Defaults `toml:"defaults"`
}

// Defaults holds all default values
type Defaults struct {
	Threshold float64 `toml:"threshold"`
	Distance  float64 `toml:"distance"`
	Location  int     `toml:"location"`
	Limit     int     `toml:"limit"`
	Format    string  `toml:"format"`
	OutputDir string  `toml:"output_dir"`
	Parallel  bool    `toml:"parallel"`
	Workers   int     `toml:"workers"`
	Metrics   bool    `toml:"metrics"`
	Quiet     bool    `toml:"quiet"`
	Verbose   bool    `toml:"verbose"`
}

// Hardcoded fallback defaults (used if fuzzymatch.toml not found)
var fallbackDefaults = Defaults{
	Threshold: fuzzy.DefaultThreshold,
	Distance:  fuzzy.DefaultDistance,
	Location:  0,
	Limit:     10,
	Format:    "auto",
	OutputDir: "output",
	Parallel:  true,
	Workers:   0,
	Metrics:   false,
	Quiet:     false,
	Verbose:   false,
}

// Fallback returns the built-in configuration.
func Fallback() *ConfigFile {
	return &ConfigFile{Defaults: fallbackDefaults}
}

// loaded holds the parsed config (nil if not loaded yet)
var loaded *ConfigFile

// LoadFrom decodes the TOML file at path. Keys missing from the file keep
// their fallback values.
func LoadFrom(path string) (*ConfigFile, error) {
	cfg := Fallback()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return cfg, nil
}

// Load finds fuzzymatch.toml next to the working directory or executable
// and caches the result. An unreadable or missing file yields the fallback.
func Load() *ConfigFile {
	if loaded != nil {
		return loaded
	}

	for _, path := range searchPaths() {
		if _, err := os.Stat(path); err == nil {
			if cfg, err := LoadFrom(path); err == nil {
				loaded = cfg
				return loaded
			}
		}
	}

	// Return fallback if fuzzymatch.toml not found
	loaded = Fallback()
	return loaded
}

func searchPaths() []string {
	paths := []string{
		FileName,
		filepath.Join("..", FileName),
		filepath.Join("..", "..", FileName),
	}

	// Also try from executable location
	if exe, err := os.Executable(); err == nil {
		dir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(dir, FileName),
			filepath.Join(dir, "..", FileName),
		)
	}
	return paths
}

// Convenience accessors that load config on first access
var (
	DefaultThreshold = func() float64 { return Load().Defaults.Threshold }
	DefaultDistance  = func() float64 { return Load().Defaults.Distance }
	DefaultLocation  = func() int { return Load().Defaults.Location }
	DefaultLimit     = func() int { return Load().Defaults.Limit }
	DefaultFormat    = func() string { return Load().Defaults.Format }
	DefaultOutputDir = func() string { return Load().Defaults.OutputDir }
	DefaultParallel  = func() bool { return Load().Defaults.Parallel }
	DefaultWorkers   = func() int { return Load().Defaults.Workers }
	DefaultMetrics   = func() bool { return Load().Defaults.Metrics }
	DefaultQuiet     = func() bool { return Load().Defaults.Quiet }
	DefaultVerbose   = func() bool { return Load().Defaults.Verbose }
)

// MaxWorkers is the cap for parallel workers
const MaxWorkers = 8
