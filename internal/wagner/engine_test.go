// Copyright (c) 2026 The AION Equihash Authors
// SPDX-License-Identifier: MIT

package wagner

import (
	"testing"

	"github.com/aion-equihash/equihash/internal/barrier"
	"github.com/aion-equihash/equihash/internal/hashstream"
)

func testStream(t *testing.T) *hashstream.Stream {
	t.Helper()
	p := hashstream.Personalization(210, 9)
	s, err := hashstream.New(p, make([]byte, 64))
	if err != nil {
		t.Fatalf("hashstream.New: %v", err)
	}
	return s
}

func TestRound0PopulatesBuckets(t *testing.T) {
	e := NewEngine(1)
	e.Reset()
	s := testStream(t)
	e.round0(s, 0, 1)

	var total uint32
	for b := uint32(0); b < NBuckets; b++ {
		total += e.heaps[0].count(b)
	}
	bfull, _ := e.Stats()
	if total+uint32(bfull) != NHashes {
		t.Fatalf("round0 accounted for %d+%d hashes, want %d", total, bfull, NHashes)
	}
}

func TestFullSolveFixedSeedFindsVerifiableSolutions(t *testing.T) {
	if testing.Short() {
		t.Skip("full 2^22-hash solve is expensive; skipped in -short mode")
	}
	e := NewEngine(1)
	e.Reset()
	s := testStream(t)
	pool := barrier.New(1)
	e.Run(s, pool)

	sols := e.Solutions()
	for _, sol := range sols {
		seen := make(map[uint32]bool, ProofSize)
		for _, idx := range sol {
			if idx >= NHashes {
				t.Fatalf("leaf index %d out of range", idx)
			}
			if seen[idx] {
				t.Fatalf("solution contains duplicate leaf %d", idx)
			}
			seen[idx] = true
		}
		for size := 1; size < ProofSize; size *= 2 {
			for base := 0; base+2*size <= ProofSize; base += 2 * size {
				if sol[base] >= sol[base+size] {
					t.Fatalf("Wagner ordering violated at base=%d size=%d", base, size)
				}
			}
		}
	}
}
