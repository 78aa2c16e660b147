// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import (
	"sync/atomic"

	"code.hybscloud.com/atomix"
)

// SPSC is a growable single-producer single-consumer queue.
//
// Exactly one goroutine may call the producer operations (Enqueue,
// TryEnqueue) and exactly one, possibly different, goroutine may call the
// consumer operations (Dequeue, Peek, Pop). The hot paths are wait-free:
// with only one goroutine per end there is nothing to retry.
//
// TryEnqueue is bounded and fails on overflow. Enqueue instead doubles
// the buffer in place and cannot fail. Growth runs entirely inside the
// producer's call and never touches head: indices are monotonic, the
// copy preserves each element's logical position, and the buffer and its
// mask are published together through a single atomic pointer. The
// consumer keeps draining through head the whole time, so no lock is
// needed. One slot is kept empty; the usable capacity is the current
// buffer size minus one.
//
// Memory: O(capacity), doubling on overflow; a growth event is O(size)
type SPSC[T any] struct {
	_     pad
	head  atomix.Uint64 // Consumer reads from here
	_     pad
	tail  atomix.Uint64 // Producer writes here
	_     pad
	state atomic.Pointer[spscState[T]]
}

// spscState is an immutable buffer+mask pair. Growth builds a new one
// and publishes it atomically; readers always see a matching buffer and
// mask.
type spscState[T any] struct {
	buffer []T
	mask   uint64
}

// NewSPSC creates a new growable SPSC queue with the given initial
// capacity. Panics if capacity is not a power of two or is less than 2.
func NewSPSC[T any](capacity int) *SPSC[T] {
	n := checkCapacity(capacity)
	q := &SPSC[T]{}
	q.state.Store(&spscState[T]{
		buffer: make([]T, n),
		mask:   n - 1,
	})
	return q
}

// TryEnqueue adds an element without growing the buffer (producer only).
// Returns ErrWouldBlock if the queue is full.
func (q *SPSC[T]) TryEnqueue(elem *T) error {
	s := q.state.Load()
	tail := q.tail.LoadRelaxed()
	if tail-q.head.LoadAcquire() >= s.mask {
		return ErrWouldBlock
	}
	s.buffer[tail&s.mask] = *elem
	q.tail.StoreRelease(tail + 1)
	return nil
}

// Enqueue adds an element, doubling the buffer if it is full (producer
// only). It cannot fail; allocation failure aborts the program, as there
// is no sensible recovery.
func (q *SPSC[T]) Enqueue(elem *T) {
	for q.TryEnqueue(elem) != nil {
		q.grow()
	}
}

// grow doubles the buffer (producer only). Each live element keeps its
// logical index, so head and tail carry over unchanged and the consumer
// is never disturbed; a concurrently consumed element is simply copied
// to a position below head that nobody will read.
func (q *SPSC[T]) grow() {
	s := q.state.Load()
	n := (s.mask + 1) * 2
	next := &spscState[T]{
		buffer: make([]T, n),
		mask:   n - 1,
	}

	head := q.head.LoadAcquire()
	tail := q.tail.LoadRelaxed()
	for i := head; i != tail; i++ {
		next.buffer[i&next.mask] = s.buffer[i&s.mask]
	}

	q.state.Store(next)
}

// Dequeue removes and returns the oldest element (consumer only).
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *SPSC[T]) Dequeue() (T, error) {
	head := q.head.LoadRelaxed()
	if head == q.tail.LoadAcquire() {
		var zero T
		return zero, ErrWouldBlock
	}
	s := q.state.Load()
	elem := s.buffer[head&s.mask]
	var zero T
	s.buffer[head&s.mask] = zero
	q.head.StoreRelease(head + 1)
	return elem, nil
}

// Peek returns the oldest element without removing it (consumer only).
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *SPSC[T]) Peek() (T, error) {
	head := q.head.LoadRelaxed()
	if head == q.tail.LoadAcquire() {
		var zero T
		return zero, ErrWouldBlock
	}
	s := q.state.Load()
	return s.buffer[head&s.mask], nil
}

// Pop removes the oldest element without returning it (consumer only).
// Returns ErrWouldBlock if the queue is empty.
func (q *SPSC[T]) Pop() error {
	head := q.head.LoadRelaxed()
	if head == q.tail.LoadAcquire() {
		return ErrWouldBlock
	}
	s := q.state.Load()
	var zero T
	s.buffer[head&s.mask] = zero
	q.head.StoreRelease(head + 1)
	return nil
}

// Empty reports whether the queue appeared empty at the instant of the
// call.
func (q *SPSC[T]) Empty() bool {
	return q.head.LoadAcquire() == q.tail.LoadAcquire()
}

// Full reports whether the queue appeared full at the instant of the
// call. A full queue still accepts Enqueue, which grows the buffer.
func (q *SPSC[T]) Full() bool {
	s := q.state.Load()
	head := q.head.LoadAcquire()
	tail := q.tail.LoadAcquire()
	return tail-head >= s.mask
}

// Size returns a point-in-time snapshot of the element count.
func (q *SPSC[T]) Size() int {
	head := q.head.LoadAcquire()
	tail := q.tail.LoadAcquire()
	if tail < head {
		return 0
	}
	return int(tail - head)
}

// Cap returns the current usable capacity (one slot is kept empty).
// It increases when Enqueue grows the buffer.
func (q *SPSC[T]) Cap() int {
	return int(q.state.Load().mask)
}
