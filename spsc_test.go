// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/ringq"
)

// TestSPSCTryPath tests the bounded TryEnqueue path, which never grows.
func TestSPSCTryPath(t *testing.T) {
	q := ringq.NewSPSC[int](4)

	if q.Cap() != 3 {
		t.Fatalf("Cap: got %d, want 3", q.Cap())
	}

	for i := range 3 {
		v := i + 100
		if err := q.TryEnqueue(&v); err != nil {
			t.Fatalf("TryEnqueue(%d): %v", i, err)
		}
	}

	v := 999
	if err := q.TryEnqueue(&v); !errors.Is(err, ringq.ErrWouldBlock) {
		t.Fatalf("TryEnqueue on full: got %v, want ErrWouldBlock", err)
	}
	if q.Cap() != 3 {
		t.Fatalf("Cap changed by TryEnqueue: got %d", q.Cap())
	}

	for i := range 3 {
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

// TestSPSCGrowth verifies that the growing Enqueue never fails and
// preserves order and values across several resize boundaries.
func TestSPSCGrowth(t *testing.T) {
	q := ringq.NewSPSC[int](4)

	const n = 100
	for i := range n {
		v := i
		q.Enqueue(&v)
	}

	// 4 → 8 → 16 → 32 → 64 → 128; usable 127 fits 100
	if q.Cap() != 127 {
		t.Fatalf("Cap after growth: got %d, want 127", q.Cap())
	}
	if q.Size() != n {
		t.Fatalf("Size after growth: got %d, want %d", q.Size(), n)
	}

	for i := range n {
		val, err := q.Dequeue()
		if err != nil {
			t.Fatalf("Dequeue(%d): %v", i, err)
		}
		if val != i {
			t.Fatalf("Dequeue(%d): got %d, want %d", i, val, i)
		}
	}
	if !q.Empty() {
		t.Fatal("queue not empty after drain")
	}
}

// TestSPSCGrowthMidRing grows with head in the middle of the buffer, so
// the copy has to carry a wrapped live range across the boundary.
func TestSPSCGrowthMidRing(t *testing.T) {
	q := ringq.NewSPSC[int](8)

	next := 0
	for range 5 {
		v := next
		q.Enqueue(&v)
		next++
	}
	for range 3 {
		if _, err := q.Dequeue(); err != nil {
			t.Fatalf("Dequeue: %v", err)
		}
	}

	// head is now at 3; push until well past two growths
	for next < 40 {
		v := next
		q.Enqueue(&v)
		next++
	}

	for want := 3; want < 40; want++ {
		val, err := q.Dequeue()
		if err != nil {
			t.Fatalf("Dequeue(%d): %v", want, err)
		}
		if val != want {
			t.Fatalf("Dequeue: got %d, want %d", val, want)
		}
	}
	if _, err := q.Dequeue(); !errors.Is(err, ringq.ErrWouldBlock) {
		t.Fatalf("Dequeue on drained: got %v, want ErrWouldBlock", err)
	}
}

// TestSPSCPeekPop tests the consumer-side non-returning operations.
func TestSPSCPeekPop(t *testing.T) {
	q := ringq.NewSPSC[string](4)

	if _, err := q.Peek(); !errors.Is(err, ringq.ErrWouldBlock) {
		t.Fatalf("Peek on empty: got %v, want ErrWouldBlock", err)
	}
	if err := q.Pop(); !errors.Is(err, ringq.ErrWouldBlock) {
		t.Fatalf("Pop on empty: got %v, want ErrWouldBlock", err)
	}

	for _, s := range []string{"a", "b", "c"} {
		s := s
		q.Enqueue(&s)
	}

	// Peek does not remove
	for range 3 {
		val, err := q.Peek()
		if err != nil {
			t.Fatalf("Peek: %v", err)
		}
		if val != "a" {
			t.Fatalf("Peek: got %q, want %q", val, "a")
		}
	}
	if q.Size() != 3 {
		t.Fatalf("Size after Peek: got %d, want 3", q.Size())
	}

	// Pop removes without returning
	if err := q.Pop(); err != nil {
		t.Fatalf("Pop: %v", err)
	}
	val, err := q.Peek()
	if err != nil {
		t.Fatalf("Peek after Pop: %v", err)
	}
	if val != "b" {
		t.Fatalf("Peek after Pop: got %q, want %q", val, "b")
	}
	if q.Size() != 2 {
		t.Fatalf("Size after Pop: got %d, want 2", q.Size())
	}
}

// TestSPSCSnapshots verifies Empty/Full/Size against the growing and
// non-growing paths.
func TestSPSCSnapshots(t *testing.T) {
	q := ringq.NewSPSC[int](4)

	if !q.Empty() || q.Full() || q.Size() != 0 {
		t.Fatalf("fresh queue: Empty=%v Full=%v Size=%d", q.Empty(), q.Full(), q.Size())
	}

	for i := range 3 {
		v := i
		q.Enqueue(&v)
	}
	if !q.Full() {
		t.Fatal("expected Full at usable capacity")
	}
	if q.Size() != q.Cap() {
		t.Fatalf("full: Size=%d Cap=%d", q.Size(), q.Cap())
	}

	// Growing enqueue un-fulls the queue
	v := 3
	q.Enqueue(&v)
	if q.Full() {
		t.Fatal("still Full after growth")
	}
	if q.Cap() != 7 {
		t.Fatalf("Cap after growth: got %d, want 7", q.Cap())
	}
	if q.Size() != 4 {
		t.Fatalf("Size after growth: got %d, want 4", q.Size())
	}
}

// TestSPSCZeroValue tests that the zero value is valid cargo.
func TestSPSCZeroValue(t *testing.T) {
	q := ringq.NewSPSC[int](4)
	v := 0
	q.Enqueue(&v)
	val, err := q.Dequeue()
	if err != nil {
		t.Fatalf("Dequeue: %v", err)
	}
	if val != 0 {
		t.Fatalf("got %d, want 0", val)
	}
}
