// Copyright (c) 2026 The AION Equihash Authors
// SPDX-License-Identifier: MIT

package wagner

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/aion-equihash/equihash/internal/memops"
)

// heap is one of the two bucket arenas (H0/H1). It is allocated once at
// the widest round-0 slot width and reused for every later round; only
// the leading slotWidth(r) bytes of each slot are meaningful in round
// r, the rest is stale data from an earlier round that the next write
// will overwrite before it is ever read.
type heap struct {
	data    []byte   // NBuckets * NSlots * slotWidth(0) bytes
	counts  []uint32 // NBuckets populated-slot counters
	overrun uint64   // bucket-full count (bfull), incremented atomically by reserve
}

func newHeap() *heap {
	return &heap{
		data:   make([]byte, NBuckets*NSlots*slotWidth(0)),
		counts: make([]uint32, NBuckets),
	}
}

// reset clears slot counters for a fresh solve. Slot contents need not
// be zeroed: every slot is fully overwritten before it is read, since a
// slot's content is only valid up to the count recorded for its bucket.
func (h *heap) reset() {
	memops.ZeroMemory(h.counts)
	h.overrun = 0
}

// reserve atomically claims the next free slot index in bucket b,
// returns ^uint32(0) if the bucket is already full.
func (h *heap) reserve(b uint32) uint32 {
	s := atomic.AddUint32(&h.counts[b], 1) - 1
	if s >= NSlots {
		atomic.AddUint32(&h.counts[b], ^uint32(0)) // undo: cap at NSlots
		atomic.AddUint64(&h.overrun, 1)
		return nilSlot
	}
	return s
}

// count returns the number of populated slots in bucket b, capped at
// NSlots (overflow was already rejected by reserve).
func (h *heap) count(b uint32) uint32 {
	n := atomic.LoadUint32(&h.counts[b])
	if n > NSlots {
		return NSlots
	}
	return n
}

// slot returns the byte window for bucket b, slot s, sized for round r.
func (h *heap) slot(r int, b, s uint32) []byte {
	base := (int(b)*NSlots + int(s)) * slotWidth(0)
	return h.data[base : base+slotWidth(r)]
}

// tag reads the tag word stored after the round-r residue in bucket b,
// slot s.
func (h *heap) tag(r int, b, s uint32) Tag {
	w := h.slot(r, b, s)
	return Tag(binary.LittleEndian.Uint32(w[residueBytes(r):]))
}

// setTag writes the tag word for bucket b, slot s, round r.
func (h *heap) setTag(r int, b, s uint32, t Tag) {
	w := h.slot(r, b, s)
	binary.LittleEndian.PutUint32(w[residueBytes(r):], uint32(t))
}

// residue returns the valid (non-padding) residue bytes of bucket b,
// slot s at round r. Index 0 of the returned slice is what the
// round-specific bit-field expressions in digits.go call prevbo.
func (h *heap) residue(r int, b, s uint32) []byte {
	w := h.slot(r, b, s)
	return w[residueOffset(r):residueBytes(r)]
}

// fullResidue returns the entire word-rounded residue storage for
// bucket b, slot s at round r, including the leading padding bytes
// that residue trims off. Used only when writing a new round's residue,
// which xors whole words of the source.
func (h *heap) fullResidue(r int, b, s uint32) []byte {
	w := h.slot(r, b, s)
	return w[:residueBytes(r)]
}
