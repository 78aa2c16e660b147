// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/ringq"
)

// TestRingMPBasic tests basic multi-producer ring operations.
// RingMP's sequence numbers make every physical slot usable.
func TestRingMPBasic(t *testing.T) {
	q := ringq.NewRingMP[int](4)

	if q.Cap() != 4 {
		t.Fatalf("Cap: got %d, want 4", q.Cap())
	}

	for i := range 4 {
		v := i + 100
		if err := q.Enqueue(&v); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}

	v := 999
	if err := q.Enqueue(&v); !errors.Is(err, ringq.ErrWouldBlock) {
		t.Fatalf("Enqueue on full: got %v, want ErrWouldBlock", err)
	}

	for i := range 4 {
		val, err := q.Dequeue()
		if err != nil {
			t.Fatalf("Dequeue(%d): %v", i, err)
		}
		if val != i+100 {
			t.Fatalf("Dequeue(%d): got %d, want %d", i, val, i+100)
		}
	}

	if _, err := q.Dequeue(); !errors.Is(err, ringq.ErrWouldBlock) {
		t.Fatalf("Dequeue on empty: got %v, want ErrWouldBlock", err)
	}
}

// TestRingMPWrapAround tests sequence number recycling over multiple
// fill/drain cycles.
func TestRingMPWrapAround(t *testing.T) {
	q := ringq.NewRingMP[int](4)

	for round := range 10 {
		for i := range 4 {
			v := round*100 + i
			if err := q.Enqueue(&v); err != nil {
				t.Fatalf("round %d enqueue %d: %v", round, i, err)
			}
		}

		for i := range 4 {
			val, err := q.Dequeue()
			if err != nil {
				t.Fatalf("round %d dequeue %d: %v", round, i, err)
			}
			expected := round*100 + i
			if val != expected {
				t.Fatalf("round %d dequeue %d: got %d, want %d", round, i, val, expected)
			}
		}
	}
}

// TestRingMPSize verifies the size snapshot against a single-threaded
// fill and drain.
func TestRingMPSize(t *testing.T) {
	q := ringq.NewRingMP[int](8)

	for i := range 8 {
		v := i
		if err := q.Enqueue(&v); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
		if q.Size() != i+1 {
			t.Fatalf("Size after %d enqueues: got %d", i+1, q.Size())
		}
	}

	for i := range 8 {
		if _, err := q.Dequeue(); err != nil {
			t.Fatalf("Dequeue(%d): %v", i, err)
		}
	}
	if q.Size() != 0 {
		t.Fatalf("Size after drain: got %d", q.Size())
	}
}
