// Copyright (c) 2026 The AION Equihash Authors
// SPDX-License-Identifier: MIT

package wagner

import (
	"sort"
	"sync/atomic"

	"github.com/aion-equihash/equihash/internal/barrier"
	"github.com/aion-equihash/equihash/internal/hashstream"
	"github.com/aion-equihash/equihash/ints"
)

// Engine owns the two heap arenas and the solution buffer for one set
// of Equihash parameters. It is allocated once and reused across many
// header/nonce solves by calling Reset.
type Engine struct {
	heaps   [2]*heap
	sols    [MaxSols][ProofSize]uint32
	nsols   uint32
	hfull   uint64
	scratch []scratchBuf // one per worker, indexed by thread id
}

// scratchBuf holds the per-bucket collision-grouping lists a worker
// reuses across buckets, avoiding an allocation per bucket per round.
type scratchBuf struct {
	head [NRests]uint32
	next [NSlots]uint32
}

// NewEngine allocates the dual-heap arena for up to threads concurrent
// workers. The arena is ArenaBytes() (about 329MiB) regardless of
// threads: both heaps are sized at the round-0 slot width. threads only
// sizes the per-worker scratch buffers.
func NewEngine(threads int) *Engine {
	if threads < 1 {
		threads = 1
	}
	e := &Engine{
		heaps:   [2]*heap{newHeap(), newHeap()},
		scratch: make([]scratchBuf, threads),
	}
	return e
}

// Reset clears solution and bucket-slot counts for a fresh solve.
func (e *Engine) Reset() {
	e.heaps[0].reset()
	e.heaps[1].reset()
	e.nsols = 0
	e.hfull = 0
}

// Stats returns the bucket-overflow and probable-duplicate counters
// accumulated by the most recent Solve call.
func (e *Engine) Stats() (bfull, hfull uint64) {
	return e.heaps[0].overrun + e.heaps[1].overrun, e.hfull
}

// Run drives the full nine-round pipeline over the given seed-hash
// stream using pool's workers: each round is a barrier, every worker's
// writes to the destination heap in round r happen-before every
// worker's reads in round r+1.
func (e *Engine) Run(stream *hashstream.Stream, pool *barrier.Pool) {
	threads := pool.Threads()
	pool.Round(func(w int) { e.round0(stream, w, threads) })
	for r := 1; r < K; r++ {
		r := r
		pool.Round(func(w int) { e.collisionRound(r, &e.scratch[w], w, threads) })
	}
	pool.Round(func(w int) { e.finalRound(&e.scratch[w], w, threads) })
}

// Solutions returns the proofs found by the most recent Solve call.
func (e *Engine) Solutions() [][ProofSize]uint32 {
	n := int(e.nsols)
	n = int(ints.Min(uint32(n), uint32(MaxSols)))
	out := make([][ProofSize]uint32, n)
	copy(out, e.sols[:n])
	return out
}

// round0 enumerates the seed hashes assigned to this worker (blocks
// worker, worker+threads, worker+2*threads, ...) and bucket-sorts them
// into heap 0.
func (e *Engine) round0(stream *hashstream.Stream, worker, threads int) {
	dst := e.heaps[0]
	var block [hashstream.BlockOut]byte
	for b := uint32(worker); b < NBlocks; b += uint32(threads) {
		stream.Block(b, &block)
		for j := 0; j < 2; j++ {
			hash := block[j*hashstream.HashLen : (j+1)*hashstream.HashLen]
			bucket := uint32(hash[0])<<6 | uint32(hash[1])>>2
			slot := dst.reserve(bucket)
			if slot == nilSlot {
				continue
			}
			copy(dst.residue(0, bucket, slot), hash[1:])
			dst.setTag(0, bucket, slot, LeafTag(2*b+uint32(j)))
		}
	}
}

// collisionRound runs round r (1 <= r <= K-1) of the collision engine:
// it scans every bucket of the source heap, groups slots by their
// RESTBITS sub-digit, and for every intra-bucket pair computes the xor
// residue and routes it into the destination heap.
func (e *Engine) collisionRound(r int, scratch *scratchBuf, worker, threads int) {
	src, dst := e.heaps[(r-1)%2], e.heaps[r%2]
	rf := rounds[r-1]
	dunits := hashWords(hashSize[r-1]) - hashWords(hashSize[r])
	var hfull uint64
	for b := uint32(worker); b < NBuckets; b += uint32(threads) {
		n := src.count(b)
		for i := range scratch.head {
			scratch.head[i] = nilSlot
		}
		for s := uint32(0); s < n; s++ {
			rs := src.residue(r-1, b, s)
			key := rf.restKey(rs)
			for o := scratch.head[key]; o != nilSlot; o = scratch.next[o] {
				ro := src.residue(r-1, b, o)
				if lastWordEqual(ro, rs) {
					hfull++
					continue
				}
				var xorBuf [4]byte
				for k := range xorBuf {
					xorBuf[k] = ro[k] ^ rs[k]
				}
				bucketID := rf.xorBucket(xorBuf[:])
				slot := dst.reserve(bucketID)
				if slot == nilSlot {
					continue
				}
				fa := src.fullResidue(r-1, b, o)
				fb := src.fullResidue(r-1, b, s)
				df := dst.fullResidue(r, bucketID, slot)
				off := dunits * 4
				for k := range df {
					df[k] = fa[off+k] ^ fb[off+k]
				}
				dst.setTag(r, bucketID, slot, InnerTag(b, o, s))
			}
			scratch.next[s] = scratch.head[key]
			scratch.head[key] = s
		}
	}
	atomic.AddUint64(&e.hfull, hfull)
}

// finalRound runs round K (the final match): it finds
// pairs whose entire remaining 21-bit digit matches and emits a
// candidate proof for each.
func (e *Engine) finalRound(scratch *scratchBuf, worker, threads int) {
	src := e.heaps[(K-1)%2]
	rf := rounds[K-1]
	for b := uint32(worker); b < NBuckets; b += uint32(threads) {
		n := src.count(b)
		for i := range scratch.head {
			scratch.head[i] = nilSlot
		}
		for s := uint32(0); s < n; s++ {
			rs := src.residue(K-1, b, s)
			key := rf.restKey(rs)
			for o := scratch.head[key]; o != nilSlot; o = scratch.next[o] {
				ro := src.residue(K-1, b, o)
				if digit9Match(ro, rs) {
					e.candidate(b, o, s)
				}
			}
			scratch.next[s] = scratch.head[key]
			scratch.head[key] = s
		}
	}
}

func lastWordEqual(a, b []byte) bool {
	n := len(a)
	return a[n-4] == b[n-4] && a[n-3] == b[n-3] && a[n-2] == b[n-2] && a[n-1] == b[n-1]
}

// candidate reconstructs the 512-leaf proof rooted at the round-K match
// (bucket, s0, s1) and accepts it as a solution if it passes Wagner
// ordering, the probably-disjoint check, and the global-uniqueness
// scan.
func (e *Engine) candidate(bucket, s0, s1 uint32) {
	heapIdx := (K - 1) % 2
	h := e.heaps[heapIdx]
	tag0 := h.tag(K-1, bucket, s0)
	tag1 := h.tag(K-1, bucket, s1)
	if !probablyDisjoint(tag0, tag1) {
		return
	}

	var buf [ProofSize]uint32
	half := ProofSize / 2
	if !e.listIndices(K-1, heapIdx, tag0, buf[:half]) {
		return
	}
	if !e.listIndices(K-1, heapIdx, tag1, buf[half:]) {
		return
	}
	if buf[0] == buf[half] {
		return
	}
	if buf[0] > buf[half] {
		var tmp [ProofSize / 2]uint32
		copy(tmp[:], buf[:half])
		copy(buf[:half], buf[half:])
		copy(buf[half:], tmp[:])
	}
	if hasDuplicate(buf[:]) {
		return
	}

	soli := atomic.AddUint32(&e.nsols, 1) - 1
	if soli < MaxSols {
		e.sols[soli] = buf
	}
}

// listIndices expands the tag t, produced by round r and stored in
// heaps[heapIdx], into the leaf indices of its subtree, written into
// buf (len(buf) == 1<<r). It enforces Wagner ordering and the
// probably-disjoint check at every internal node.
func (e *Engine) listIndices(r int, heapIdx int, t Tag, buf []uint32) bool {
	if r == 0 {
		buf[0] = t.Leaf()
		return true
	}
	b, s0, s1 := t.Bucket(), t.Slot0(), t.Slot1()
	childHeap := heapIdx ^ 1
	h := e.heaps[childHeap]
	tag0 := h.tag(r-1, b, s0)
	tag1 := h.tag(r-1, b, s1)
	if !probablyDisjoint(tag0, tag1) {
		return false
	}
	half := len(buf) / 2
	if !e.listIndices(r-1, childHeap, tag0, buf[:half]) {
		return false
	}
	if !e.listIndices(r-1, childHeap, tag1, buf[half:]) {
		return false
	}
	if buf[0] == buf[half] {
		return false
	}
	if buf[0] > buf[half] {
		tmp := make([]uint32, half)
		copy(tmp, buf[:half])
		copy(buf[:half], buf[half:])
		copy(buf[half:], tmp)
	}
	return true
}

func hasDuplicate(indices []uint32) bool {
	cp := make([]uint32, len(indices))
	copy(cp, indices)
	sort.Slice(cp, func(i, j int) bool { return cp[i] < cp[j] })
	for i := 1; i < len(cp); i++ {
		if cp[i] == cp[i-1] {
			return true
		}
	}
	return false
}
