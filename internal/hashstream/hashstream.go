// Copyright (c) 2026 The AION Equihash Authors
// SPDX-License-Identifier: MIT

// Package hashstream implements the personalised Blake2b-54 seed-hash
// stream that underlies both the solver and the verifier: a single base
// digest, seeded once with the AION0PoW personalisation block and the
// header||nonce prefix, from which every block's 54-byte output is
// derived by cloning the base state, absorbing the block index, and
// finalising the clone. The base digest itself is never mutated by a
// Block or Hash call, so it can be reused for all 2^21 blocks of a run.
package hashstream

import (
	"encoding/binary"
	"fmt"

	"github.com/gtank/blake2/blake2b"
)

const (
	// PersonalBytes is the width of the Blake2b personalisation block.
	PersonalBytes = 16
	// HashLen is the width of a single seed hash.
	HashLen = 27
	// BlockOut is the width of one block's Blake2b-54 output: two
	// HashLen-byte hashes.
	BlockOut = 2 * HashLen
)

// Personalization builds the 16-byte AION0PoW personalisation block for
// parameters n, k: ASCII "AION0PoW" followed by little-endian n and k.
func Personalization(n, k uint32) [PersonalBytes]byte {
	var p [PersonalBytes]byte
	copy(p[:8], "AION0PoW")
	binary.LittleEndian.PutUint32(p[8:12], n)
	binary.LittleEndian.PutUint32(p[12:16], k)
	return p
}

// Stream is a reusable seed-hash stream for one (header, nonce) pair.
type Stream struct {
	base *blake2b.Digest
}

// New seeds a Stream with the given personalisation block and
// header||nonce prefix.
func New(personal [PersonalBytes]byte, headerNonce []byte) (*Stream, error) {
	d, err := blake2b.NewDigest(nil, nil, personal[:], BlockOut)
	if err != nil {
		return nil, fmt.Errorf("hashstream: %w", err)
	}
	if _, err := d.Write(headerNonce); err != nil {
		return nil, fmt.Errorf("hashstream: absorbing header||nonce: %w", err)
	}
	return &Stream{base: d}, nil
}

// Block returns the 54-byte output for block index b by cloning the
// base state, absorbing little-endian b, and finalising the clone. The
// base state is left untouched.
func (s *Stream) Block(b uint32, out *[BlockOut]byte) {
	clone := *s.base
	var idx [4]byte
	binary.LittleEndian.PutUint32(idx[:], b)
	clone.Write(idx[:])
	sum := clone.Sum(out[:0])
	copy(out[:], sum)
}

// Hash returns the HashLen-byte seed hash at index i, 0 <= i < 2^22:
// block i/2, half i%2.
func (s *Stream) Hash(i uint32, out *[HashLen]byte) {
	var block [BlockOut]byte
	s.Block(i/2, &block)
	off := (i % 2) * HashLen
	copy(out[:], block[off:off+HashLen])
}
