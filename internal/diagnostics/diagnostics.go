// Copyright (c) 2026 The AION Equihash Authors
// SPDX-License-Identifier: MIT

// Package diagnostics encodes optional, off-the-hot-path solver output —
// a solution proof or a failed-verification trace — for offline
// debugging. None of this is on the solve/verify critical path.
package diagnostics

import (
	"encoding/binary"
	"fmt"
	"runtime"

	"github.com/dchest/siphash"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
)

var (
	encoder *zstd.Encoder
	decoder *zstd.Decoder
)

func init() {
	e, err := zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1))
	if err != nil {
		panic(err)
	}
	encoder = e
	d, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(runtime.GOMAXPROCS(0)))
	if err != nil {
		panic(err)
	}
	decoder = d
}

// Dump is a single solver invocation's diagnostic record: enough to
// reproduce and inspect a run offline without re-running the solver.
type Dump struct {
	RunID  uuid.UUID
	Header []byte
	Nonce  []byte
	Proofs [][]uint32
	BFull  uint64
	HFull  uint64
}

// NewDump stamps a fresh run ID and packages the given solver output.
func NewDump(header, nonce []byte, proofs [][]uint32, bfull, hfull uint64) Dump {
	return Dump{
		RunID:  uuid.New(),
		Header: header,
		Nonce:  nonce,
		Proofs: proofs,
		BFull:  bfull,
		HFull:  hfull,
	}
}

// Fingerprint returns a compact 64-bit digest of a single proof, suitable
// for logging alongside solve statistics without dumping all 512 indices.
func Fingerprint(k0, k1 uint64, proof []uint32) uint64 {
	buf := make([]byte, 4*len(proof))
	for i, v := range proof {
		binary.LittleEndian.PutUint32(buf[i*4:], v)
	}
	return siphash.Hash(k0, k1, buf)
}

// Encode serializes and zstd-compresses a Dump.
func Encode(d Dump) []byte {
	raw := marshal(d)
	return encoder.EncodeAll(raw, nil)
}

// Decode reverses Encode.
func Decode(src []byte) (Dump, error) {
	raw, err := decoder.DecodeAll(src, nil)
	if err != nil {
		return Dump{}, fmt.Errorf("diagnostics: decompress: %w", err)
	}
	return unmarshal(raw)
}

func marshal(d Dump) []byte {
	var buf []byte
	buf = append(buf, d.RunID[:]...)
	buf = appendChunk(buf, d.Header)
	buf = appendChunk(buf, d.Nonce)
	buf = appendUint64(buf, d.BFull)
	buf = appendUint64(buf, d.HFull)
	buf = appendUint64(buf, uint64(len(d.Proofs)))
	for _, p := range d.Proofs {
		buf = appendUint64(buf, uint64(len(p)))
		for _, v := range p {
			buf = appendUint32(buf, v)
		}
	}
	return buf
}

func unmarshal(buf []byte) (Dump, error) {
	var d Dump
	if len(buf) < 16 {
		return d, fmt.Errorf("diagnostics: truncated dump")
	}
	copy(d.RunID[:], buf[:16])
	buf = buf[16:]

	var err error
	d.Header, buf, err = readChunk(buf)
	if err != nil {
		return d, err
	}
	d.Nonce, buf, err = readChunk(buf)
	if err != nil {
		return d, err
	}
	d.BFull, buf, err = readUint64(buf)
	if err != nil {
		return d, err
	}
	d.HFull, buf, err = readUint64(buf)
	if err != nil {
		return d, err
	}
	var nproofs uint64
	nproofs, buf, err = readUint64(buf)
	if err != nil {
		return d, err
	}
	d.Proofs = make([][]uint32, nproofs)
	for i := range d.Proofs {
		var n uint64
		n, buf, err = readUint64(buf)
		if err != nil {
			return d, err
		}
		p := make([]uint32, n)
		for j := range p {
			var v uint32
			v, buf, err = readUint32(buf)
			if err != nil {
				return d, err
			}
			p[j] = v
		}
		d.Proofs[i] = p
	}
	return d, nil
}

func appendChunk(buf, chunk []byte) []byte {
	buf = appendUint64(buf, uint64(len(chunk)))
	return append(buf, chunk...)
}

func readChunk(buf []byte) ([]byte, []byte, error) {
	n, rest, err := readUint64(buf)
	if err != nil {
		return nil, buf, err
	}
	if uint64(len(rest)) < n {
		return nil, buf, fmt.Errorf("diagnostics: truncated chunk")
	}
	return rest[:n], rest[n:], nil
}

func appendUint64(buf []byte, v uint64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	return append(buf, tmp[:]...)
}

func readUint64(buf []byte) (uint64, []byte, error) {
	if len(buf) < 8 {
		return 0, buf, fmt.Errorf("diagnostics: truncated uint64")
	}
	return binary.LittleEndian.Uint64(buf), buf[8:], nil
}

func appendUint32(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

func readUint32(buf []byte) (uint32, []byte, error) {
	if len(buf) < 4 {
		return 0, buf, fmt.Errorf("diagnostics: truncated uint32")
	}
	return binary.LittleEndian.Uint32(buf), buf[4:], nil
}
