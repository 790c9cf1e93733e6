// Copyright (c) 2026 The AION Equihash Authors
// SPDX-License-Identifier: MIT

package equihash

import (
	"context"
	"testing"
)

func testHeaderNonce() (header, nonce []byte) {
	return []byte("block header bytes"), make([]byte, NonceLen)
}

func TestVerifyRejectsWrongNonceLength(t *testing.T) {
	header, nonce := testHeaderNonce()
	short := nonce[:NonceLen-1]
	var indices [ProofSize]uint32
	if err := Verify(header, short, indices); err != VerifyHeaderLength {
		t.Fatalf("got %v, want VerifyHeaderLength", err)
	}
}

func TestVerifyRejectsDuplicateIndices(t *testing.T) {
	header, nonce := testHeaderNonce()
	var indices [ProofSize]uint32 // all zero: every index equals every other
	if err := Verify(header, nonce, indices); err != VerifyDuplicate {
		t.Fatalf("got %v, want VerifyDuplicate", err)
	}
}

func TestVerifyRejectsOutOfOrderHalves(t *testing.T) {
	header, nonce := testHeaderNonce()
	var indices [ProofSize]uint32
	for i := range indices {
		indices[i] = uint32(i)
	}
	// Swap the top-level halves so indices[0] > indices[half].
	half := ProofSize / 2
	for i := 0; i < half; i++ {
		indices[i], indices[half+i] = indices[half+i], indices[i]
	}
	if err := Verify(header, nonce, indices); err != VerifyOutOfOrder {
		t.Fatalf("got %v, want VerifyOutOfOrder", err)
	}
}

func TestVerifyRejectsCorruptedLeaf(t *testing.T) {
	header, nonce := testHeaderNonce()
	s, err := New(Default(), 1, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	sols, err := s.Solve(context.Background(), header, nonce)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(sols) == 0 {
		t.Skip("no solution found for this fixed header/nonce; nothing to corrupt")
	}
	sol := sols[0]
	if err := Verify(header, nonce, sol); err != nil {
		t.Fatalf("solver-emitted proof failed to verify: %v", err)
	}
	sol[0] ^= 1 // flip one leaf index, breaking the xor-to-zero chain
	if err := Verify(header, nonce, sol); err != VerifyNonzeroXOR && err != VerifyOutOfOrder {
		t.Fatalf("got %v, want VerifyNonzeroXOR or VerifyOutOfOrder", err)
	}
}

func TestSolveThenVerifyAgree(t *testing.T) {
	if testing.Short() {
		t.Skip("full 2^22-hash solve is expensive; skipped in -short mode")
	}
	header, nonce := testHeaderNonce()
	s, err := New(Default(), 1, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	sols, err := s.Solve(context.Background(), header, nonce)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(sols) == 0 {
		t.Fatal("expected at least one solution for a fixed deterministic seed")
	}
	for i, sol := range sols {
		if err := Verify(header, nonce, sol); err != nil {
			t.Fatalf("solution %d failed to verify: %v", i, err)
		}
	}
}

func TestSolveIsDeterministic(t *testing.T) {
	if testing.Short() {
		t.Skip("full 2^22-hash solve is expensive; skipped in -short mode")
	}
	header, nonce := testHeaderNonce()
	s, err := New(Default(), 1, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	first, err := s.Solve(context.Background(), header, nonce)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	second, err := s.Solve(context.Background(), header, nonce)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("solution count changed across reuse: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("solution %d differs across reuse", i)
		}
	}
}

func TestNewRejectsUnsupportedParams(t *testing.T) {
	_, err := New(Params{N: 96, K: 5}, 1, 0)
	if err == nil {
		t.Fatal("expected error for unsupported parameters")
	}
}
