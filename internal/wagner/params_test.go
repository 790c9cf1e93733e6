// Copyright (c) 2026 The AION Equihash Authors
// SPDX-License-Identifier: MIT

package wagner

import "testing"

func TestHashSizeTable(t *testing.T) {
	want := [K + 1]int{26, 23, 20, 18, 15, 13, 10, 7, 5, 0}
	if hashSize != want {
		t.Fatalf("hashSize = %v, want %v", hashSize, want)
	}
}

func TestHashWords(t *testing.T) {
	cases := []struct{ bytes, words int }{
		{26, 7}, {23, 6}, {20, 5}, {18, 5}, {15, 4},
		{13, 4}, {10, 3}, {7, 2}, {5, 2}, {0, 0},
	}
	for _, c := range cases {
		if got := hashWords(c.bytes); got != c.words {
			t.Errorf("hashWords(%d) = %d, want %d", c.bytes, got, c.words)
		}
	}
}

func TestResidueOffsetNonNegative(t *testing.T) {
	for r := 0; r <= K; r++ {
		off := residueOffset(r)
		if off < 0 {
			t.Fatalf("round %d: negative residue offset %d", r, off)
		}
		if off+hashSize[r] != residueBytes(r) {
			t.Fatalf("round %d: offset %d + size %d != residueBytes %d", r, off, hashSize[r], residueBytes(r))
		}
	}
}

func TestDimensionsMatchSpec(t *testing.T) {
	if DigitBits != 21 || RestBits != 7 || BuckBits != 14 {
		t.Fatalf("bit-width constants drifted from spec")
	}
	if NBuckets != 16384 || SlotBits != 9 || NSlots != 329 {
		t.Fatalf("bucket/slot constants drifted from spec")
	}
	if ProofSize != 512 || NHashes != 1<<22 || HashLen != 27 || MaxSols != 10 {
		t.Fatalf("proof/hash constants drifted from spec")
	}
}
