// Copyright (c) 2026 The AION Equihash Authors
// SPDX-License-Identifier: MIT

// Package wagner implements the bucket-sorting Wagner collision engine
// for Equihash N=210, K=9 (AION0PoW): the layered bucket/heap data
// structure, the nine-round collision pipeline with its round-specific
// bit extraction, the tree-node encoding, and solution recovery.
package wagner

import "github.com/aion-equihash/equihash/ints"

// Fixed parameters for N=210, K=9.
const (
	DigitBits = 21
	RestBits  = 7
	BuckBits  = DigitBits - RestBits // 14
	NBuckets  = 1 << BuckBits        // 16384
	SlotBits  = RestBits + 2         // 9
	NSlots    = 329                  // floor(512*9/14)
	ProofSize = 512                  // 2^K
	K         = 9
	NHashes   = 1 << 22 // 2^(K+1+... ) = seed hashes enumerated
	NBlocks   = NHashes / 2
	HashLen   = 27
	MaxSols   = 10
	NRests    = 1 << RestBits // 128

	nilSlot = ^uint32(0)
)

// hashSize gives the number of residue bytes remaining after round r,
// for r = 0..K. This table is specific to N=210, K=9 and is not derived
// generically: it is the fixed per-round schedule by which Wagner's
// algorithm strips one 21-bit digit per round from a 210-bit hash.
var hashSize = [K + 1]int{26, 23, 20, 18, 15, 13, 10, 7, 5, 0}

// hashWords returns the number of 32-bit words needed to store n bytes.
func hashWords(n int) int {
	return int(ints.ChunkCount(uint32(n), 4))
}

// residueBytes returns the number of word-rounded bytes a round-r slot's
// residue occupies (excluding the trailing tag word).
func residueBytes(r int) int {
	return hashWords(hashSize[r]) * 4
}

// residueOffset returns the byte offset at which the hashSize[r] valid
// residue bytes begin within their word-rounded storage: the residue is
// kept right-aligned so that dropping whole leading words on later
// rounds never requires shifting the remaining bytes.
func residueOffset(r int) int {
	return residueBytes(r) - hashSize[r]
}

// slotWidth returns the total byte width of a round-r slot: residue
// words followed by one 32-bit tag word. Round K has no stored slot
// (round 9 only emits candidates), so it is not represented here.
func slotWidth(r int) int {
	return residueBytes(r) + 4
}

// ArenaBytes returns the total bytes NewEngine allocates for its two
// heap arenas, for use as a pre-flight memory-budget check.
func ArenaBytes() int64 {
	return 2 * int64(NBuckets) * int64(NSlots) * int64(slotWidth(0))
}
