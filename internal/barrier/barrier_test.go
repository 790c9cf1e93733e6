// Copyright (c) 2026 The AION Equihash Authors
// SPDX-License-Identifier: MIT

package barrier

import (
	"sync/atomic"
	"testing"
)

func TestRoundVisitsEveryWorker(t *testing.T) {
	const n = 8
	p := New(n)
	var seen [n]int32
	p.Round(func(w int) {
		atomic.StoreInt32(&seen[w], 1)
	})
	for i, v := range seen {
		if v != 1 {
			t.Fatalf("worker %d did not run", i)
		}
	}
}

func TestRoundIsABarrier(t *testing.T) {
	p := New(4)
	var counter int64
	for round := 0; round < 10; round++ {
		before := atomic.LoadInt64(&counter)
		p.Round(func(w int) {
			atomic.AddInt64(&counter, 1)
		})
		after := atomic.LoadInt64(&counter)
		if after != before+4 {
			t.Fatalf("round %d: expected exactly 4 increments to be visible, got %d", round, after-before)
		}
	}
}

func TestSingleWorkerRunsInline(t *testing.T) {
	p := New(1)
	ran := false
	p.Round(func(w int) {
		if w != 0 {
			t.Fatalf("expected worker id 0, got %d", w)
		}
		ran = true
	})
	if !ran {
		t.Fatalf("worker did not run")
	}
}
