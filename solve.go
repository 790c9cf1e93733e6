// Copyright (c) 2026 The AION Equihash Authors
// SPDX-License-Identifier: MIT

package equihash

import (
	"context"
	"fmt"

	"github.com/aion-equihash/equihash/internal/barrier"
	"github.com/aion-equihash/equihash/internal/hashstream"
	"github.com/aion-equihash/equihash/internal/memguard"
	"github.com/aion-equihash/equihash/internal/wagner"
)

// defaultHeadroom is reserved above the engine's own arena when
// checking system memory, to leave room for the Go runtime, the
// caller's own state, and everything else sharing the machine. Used
// when New is given a headroomMB of zero.
const defaultHeadroom = 512 << 20 // 512 MiB

// Solver holds the dual-heap collision engine and worker pool for one
// Params value. Construct once and reuse across many Solve calls: the
// arena is not reallocated between solves, only reset.
type Solver struct {
	params Params
	engine *wagner.Engine
	pool   *barrier.Pool
	lastBF uint64
	lastHF uint64
}

// New allocates a Solver for p using threads concurrent workers.
// threads is clamped to at least 1. headroomMB is the memory headroom,
// in MiB, reserved above the engine's arena for the pre-flight memory
// check; zero selects defaultHeadroom. Only Default() is accepted.
func New(p Params, threads int, headroomMB int64) (*Solver, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if threads < 1 {
		threads = 1
	}
	headroom := int64(defaultHeadroom)
	if headroomMB > 0 {
		headroom = headroomMB << 20
	}
	if err := memguard.Check(wagner.ArenaBytes(), headroom); err != nil {
		return nil, err
	}
	return &Solver{
		params: p,
		engine: wagner.NewEngine(threads),
		pool:   barrier.New(threads),
	}, nil
}

// Stats returns the bucket-overflow (bfull) and probable-duplicate
// (hfull) counters from the most recently completed Solve call.
func (s *Solver) Stats() (bfull, hfull uint64) {
	return s.lastBF, s.lastHF
}

// Solve runs one full solve attempt against header||nonce and returns
// the proofs the collision engine found, at most 10 (each already
// satisfying Wagner ordering and global uniqueness). nonce must be
// exactly NonceLen bytes. ctx is checked once before the pipeline
// starts; the barrier-synchronised rounds themselves are not
// cancellable mid-flight, since a round is a single bounded scan over
// the fixed 2^22-hash problem space.
func (s *Solver) Solve(ctx context.Context, header, nonce []byte) ([][ProofSize]uint32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(nonce) != NonceLen {
		return nil, fmt.Errorf("equihash: nonce must be %d bytes, got %d", NonceLen, len(nonce))
	}

	personal := hashstream.Personalization(s.params.N, s.params.K)
	headerNonce := make([]byte, 0, len(header)+len(nonce))
	headerNonce = append(headerNonce, header...)
	headerNonce = append(headerNonce, nonce...)

	stream, err := hashstream.New(personal, headerNonce)
	if err != nil {
		return nil, fmt.Errorf("equihash: %w", err)
	}

	s.engine.Reset()
	s.engine.Run(stream, s.pool)
	s.lastBF, s.lastHF = s.engine.Stats()

	return s.engine.Solutions(), nil
}
