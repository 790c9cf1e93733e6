// Copyright (c) 2026 The AION Equihash Authors
// SPDX-License-Identifier: MIT

// Package config loads the solver's YAML configuration file. Every
// field except DiagnosticsDir also has a corresponding command-line
// flag; a flag given a non-zero value on the command line wins over the
// file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// SolverConfig is the on-disk configuration for the solve/verify CLI.
type SolverConfig struct {
	// Threads is the number of barrier-synchronised workers to run.
	// Zero means "use runtime.NumCPU()".
	Threads int `yaml:"threads"`

	// MemoryHeadroomMB is reserved above the engine's arena size when
	// checking available DRAM before a solve starts.
	MemoryHeadroomMB int64 `yaml:"memory_headroom_mb"`

	// Diagnostics, if true, writes a compressed run dump (header,
	// nonce, solutions, bucket statistics) into DiagnosticsDir after
	// every completed solve.
	Diagnostics bool `yaml:"diagnostics"`

	// DiagnosticsDir is where diagnostics dumps are written. Defaults
	// to the current directory if empty.
	DiagnosticsDir string `yaml:"diagnostics_dir"`
}

// Default returns the configuration used when no file is given.
func Default() SolverConfig {
	return SolverConfig{
		Threads:          0,
		MemoryHeadroomMB: 512,
		Diagnostics:      false,
		DiagnosticsDir:   ".",
	}
}

// Load reads and parses a SolverConfig from path. Unset fields in the
// file keep Default's values.
func Load(path string) (SolverConfig, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return SolverConfig{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SolverConfig{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}
