// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

// Queue is the combined producer-consumer interface for a bounded FIFO
// queue.
//
// Queue provides non-blocking Enqueue and Dequeue operations. Both
// operations return ErrWouldBlock when they cannot proceed (queue full or
// empty). The growable [SPSC] queue is not a Queue: its growing Enqueue
// cannot fail and therefore has a different signature.
type Queue[T any] interface {
	Producer[T]
	Consumer[T]
	Cap() int
}

// Producer is the interface for enqueueing elements.
//
// The element is passed by pointer to avoid copying large structs. The
// queue stores a copy of the pointed-to value, so the original can be
// modified after Enqueue returns.
//
// How many goroutines may act as producers depends on the concrete type:
// [Ring] admits exactly one, [RingMP] any number.
type Producer[T any] interface {
	// Enqueue adds an element to the queue (non-blocking).
	// Returns nil on success, ErrWouldBlock if the queue is full.
	Enqueue(elem *T) error
}

// Consumer is the interface for dequeueing elements.
//
// The element is returned by value, copied out of the queue's internal
// buffer.
type Consumer[T any] interface {
	// Dequeue removes and returns the oldest element (non-blocking).
	// Returns (zero-value, ErrWouldBlock) if the queue is empty.
	Dequeue() (T, error)
}

// Stealer is implemented by queues that allow additional concurrent
// consumers alongside the primary one. Steal is semantically identical to
// Dequeue; the separate name marks call sites that run on foreign threads.
type Stealer[T any] interface {
	// Steal removes and returns the oldest element (non-blocking).
	// Returns (zero-value, ErrWouldBlock) if the queue is empty or the
	// caller lost a race to another consumer.
	Steal() (T, error)
}
