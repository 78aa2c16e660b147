// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// Ring is a bounded circular queue guarded by compare-and-swap on its
// head and tail indices.
//
// Exactly one goroutine may call Enqueue. Any number of goroutines may
// call Dequeue or Steal concurrently; losing consumers retry their CAS.
// One slot is always kept empty to disambiguate full from empty, so the
// usable capacity is one less than the physical buffer size.
//
// The enqueue side writes the slot before publishing it with a CAS on
// tail. That ordering is only safe with a single producer: a losing CAS
// after a successful slot write would re-write a slot a winning producer
// already owns. For multiple producers use [RingMP], which reserves the
// slot before writing.
//
// Memory: O(capacity) with no per-slot overhead
type Ring[T any] struct {
	_      pad
	head   atomix.Uint64 // Consumers CAS here
	_      pad
	tail   atomix.Uint64 // Producer publishes here
	_      pad
	buffer []T
	mask   uint64
}

// NewRing creates a new bounded ring queue.
// Panics if capacity is not a power of two or is less than 2.
// The usable capacity is capacity-1.
func NewRing[T any](capacity int) *Ring[T] {
	n := checkCapacity(capacity)
	return &Ring[T]{
		buffer: make([]T, n),
		mask:   n - 1,
	}
}

// Enqueue adds an element to the queue (producer only).
// Returns ErrWouldBlock if the queue is full.
func (q *Ring[T]) Enqueue(elem *T) error {
	sw := spin.Wait{}
	tail := q.tail.LoadAcquire()
	for {
		next := (tail + 1) & q.mask
		if next == q.head.LoadAcquire() {
			return ErrWouldBlock
		}
		q.buffer[tail] = *elem
		if q.tail.CompareAndSwapAcqRel(tail, next) {
			return nil
		}
		sw.Once()
		tail = q.tail.LoadAcquire()
	}
}

// Dequeue removes and returns the oldest element (any consumer).
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
//
// The slot is read before the claiming CAS; a consumer that loses the
// CAS discards its copy and retries with a fresh head.
func (q *Ring[T]) Dequeue() (T, error) {
	sw := spin.Wait{}
	head := q.head.LoadAcquire()
	for {
		if head == q.tail.LoadAcquire() {
			var zero T
			return zero, ErrWouldBlock
		}
		elem := q.buffer[head]
		if q.head.CompareAndSwapAcqRel(head, (head+1)&q.mask) {
			return elem, nil
		}
		sw.Once()
		head = q.head.LoadAcquire()
	}
}

// Steal is semantically identical to Dequeue. It exists so that the same
// instance can serve multiple concurrent consumers with the call site
// marking which goroutine is a foreign one.
func (q *Ring[T]) Steal() (T, error) {
	return q.Dequeue()
}

// Empty reports whether the queue appeared empty at the instant of the
// call. Concurrent mutation may invalidate the answer immediately.
func (q *Ring[T]) Empty() bool {
	return q.head.LoadAcquire() == q.tail.LoadAcquire()
}

// Full reports whether the queue appeared full at the instant of the call.
func (q *Ring[T]) Full() bool {
	tail := q.tail.LoadAcquire()
	return (tail+1)&q.mask == q.head.LoadAcquire()
}

// Size returns a point-in-time snapshot of the element count.
func (q *Ring[T]) Size() int {
	head := q.head.LoadAcquire()
	tail := q.tail.LoadAcquire()
	return int((tail - head + q.mask + 1) & q.mask)
}

// Cap returns the usable capacity (one slot is kept empty).
func (q *Ring[T]) Cap() int {
	return int(q.mask)
}
