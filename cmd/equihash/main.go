// Copyright (c) 2026 The AION Equihash Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/aion-equihash/equihash"
	"github.com/aion-equihash/equihash/internal/config"
	"github.com/aion-equihash/equihash/internal/diagnostics"
	"github.com/google/uuid"
)

var (
	dashc        string
	dashThreads  int
	dashDiag     bool
	dashHeadroom int64
)

func init() {
	flag.StringVar(&dashc, "c", "", "path to a solver.yaml config file")
	flag.IntVar(&dashThreads, "threads", 0, "worker count (default: runtime.NumCPU())")
	flag.BoolVar(&dashDiag, "diag", false, "write a compressed diagnostics dump after each run")
	flag.Int64Var(&dashHeadroom, "headroom-mb", 0, "memory headroom in MiB (0: use config/default)")
}

func exitf(f string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, f+"\n", args...)
	os.Exit(1)
}

func loadConfig() config.SolverConfig {
	cfg := config.Default()
	if dashc != "" {
		var err error
		cfg, err = config.Load(dashc)
		if err != nil {
			exitf("equihash: %s", err)
		}
	}
	if dashThreads != 0 {
		cfg.Threads = dashThreads
	}
	if dashHeadroom != 0 {
		cfg.MemoryHeadroomMB = dashHeadroom
	}
	if dashDiag {
		cfg.Diagnostics = true
	}
	if cfg.Threads <= 0 {
		cfg.Threads = runtime.NumCPU()
	}
	return cfg
}

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "usage:\n")
		fmt.Fprintf(os.Stderr, "    %s solve <header-hex> <nonce-hex>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "        search for an Equihash solution\n")
		fmt.Fprintf(os.Stderr, "    %s verify <header-hex> <nonce-hex> <proof-hex>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "        check a candidate proof\n")
		fmt.Fprintf(os.Stderr, "flag usage:\n")
		flag.Usage()
		os.Exit(1)
	}

	switch args[0] {
	case "solve":
		if len(args) != 3 {
			exitf("usage: solve <header-hex> <nonce-hex>")
		}
		solve(args[1], args[2])
	case "verify":
		if len(args) != 4 {
			exitf("usage: verify <header-hex> <nonce-hex> <proof-hex>")
		}
		verify(args[1], args[2], args[3])
	default:
		exitf("unknown subcommand %q", args[0])
	}
}

func decodeHex(name, s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		exitf("%s: invalid hex: %s", name, err)
	}
	return b
}

func solve(headerHex, nonceHex string) {
	cfg := loadConfig()
	header := decodeHex("header", headerHex)
	nonce := decodeHex("nonce", nonceHex)

	runID := uuid.New()
	log.Printf("run=%s solve: threads=%d", runID, cfg.Threads)

	s, err := equihash.New(equihash.Default(), cfg.Threads, cfg.MemoryHeadroomMB)
	if err != nil {
		exitf("equihash: %s", err)
	}
	sols, err := s.Solve(context.Background(), header, nonce)
	if err != nil {
		exitf("equihash: %s", err)
	}
	bfull, hfull := s.Stats()
	log.Printf("run=%s found %d solution(s), bfull=%d hfull=%d", runID, len(sols), bfull, hfull)

	for i, sol := range sols {
		proofBytes := make([]byte, 0, equihash.ProofSize*4)
		for _, idx := range sol {
			proofBytes = append(proofBytes, byte(idx), byte(idx>>8), byte(idx>>16), byte(idx>>24))
		}
		fp := diagnostics.Fingerprint(0, 0, sol[:])
		fmt.Printf("solution %d: %x (fingerprint=%x)\n", i, proofBytes, fp)
	}

	if cfg.Diagnostics {
		solsSlice := make([][]uint32, len(sols))
		for i, sol := range sols {
			solsSlice[i] = append([]uint32(nil), sol[:]...)
		}
		dump := diagnostics.NewDump(header, nonce, solsSlice, bfull, hfull)
		dump.RunID = runID
		path := filepath.Join(cfg.DiagnosticsDir, runID.String()+".equihash.zst")
		if err := os.WriteFile(path, diagnostics.Encode(dump), 0o644); err != nil {
			log.Printf("run=%s: failed to write diagnostics dump: %s", runID, err)
		} else {
			log.Printf("run=%s: wrote diagnostics dump to %s", runID, path)
		}
	}
}

func verify(headerHex, nonceHex, proofHex string) {
	header := decodeHex("header", headerHex)
	nonce := decodeHex("nonce", nonceHex)
	proofBytes := decodeHex("proof", proofHex)
	if len(proofBytes) != equihash.ProofSize*4 {
		exitf("proof: expected %d bytes, got %d", equihash.ProofSize*4, len(proofBytes))
	}

	var indices [equihash.ProofSize]uint32
	for i := range indices {
		off := i * 4
		indices[i] = uint32(proofBytes[off]) | uint32(proofBytes[off+1])<<8 |
			uint32(proofBytes[off+2])<<16 | uint32(proofBytes[off+3])<<24
	}

	if err := equihash.Verify(header, nonce, indices); err != nil {
		exitf("invalid: %s", err)
	}
	fmt.Println("valid")
}
