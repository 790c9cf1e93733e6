// Copyright (c) 2026 The AION Equihash Authors
// SPDX-License-Identifier: MIT

// Package equihash implements the AION0PoW Equihash solver and
// verifier: N=210, K=9, RESTBITS=7. It is the public surface over the
// collision engine in internal/wagner.
package equihash

import (
	"fmt"

	"github.com/aion-equihash/equihash/internal/wagner"
)

// Params names the Equihash parameter pair a Solver or Verify call
// operates under. Only N=210, K=9 is implemented: the collision
// engine's bit-field extraction in internal/wagner is hand-tuned to
// this exact pair, not generic over N and K.
type Params struct {
	N uint32
	K uint32
}

// Default returns the AION0PoW parameter pair.
func Default() Params {
	return Params{N: 210, K: 9}
}

func (p Params) validate() error {
	if p != Default() {
		return fmt.Errorf("equihash: unsupported parameters N=%d,K=%d (only N=210,K=9 is implemented)", p.N, p.K)
	}
	return nil
}

// ProofSize is the number of leaf indices in a solution.
const ProofSize = wagner.ProofSize

// NonceLen is the required length of the nonce argument to Solve/Verify.
const NonceLen = 32
