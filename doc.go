// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ringq provides fixed-capacity, array-backed, lock-free queues
// for moving values between goroutines without a mutex.
//
// The package offers four queue types, each with its own concurrency
// contract:
//
//   - Ring: bounded CAS ring buffer; one producer, any number of
//     concurrent consumers (Dequeue/Steal)
//   - RingMP: bounded ring for multiple producers and consumers,
//     reserving slots by CAS before writing
//   - SPSC: growable single-producer single-consumer queue, wait-free on
//     the hot path, doubling its buffer when full
//   - Deque: bounded Chase-Lev work-stealing deque; one owner pushes and
//     pops at the tail, any number of thieves steal from the head
//
// Spill pairs a Deque with an unbounded owner-local overflow buffer for
// schedulers that must never drop work.
//
// # Quick Start
//
//	q := ringq.NewRing[Task](1024)
//	q := ringq.NewSPSC[Event](512)
//	d := ringq.NewDeque(4096)
//
// Capacity must be a power of two (panic otherwise). All queues keep one
// slot empty to disambiguate full from empty, except RingMP, whose
// per-slot sequence numbers make every slot usable.
//
// # Basic Usage
//
//	q := ringq.NewRing[int](1024)
//
//	// Enqueue (non-blocking)
//	v := 42
//	if err := q.Enqueue(&v); ringq.IsWouldBlock(err) {
//	    // Queue is full - handle backpressure
//	}
//
//	// Dequeue (non-blocking)
//	elem, err := q.Dequeue()
//	if err == nil {
//	    process(elem)
//	}
//
// Work stealing:
//
//	d := ringq.NewDeque(1024)
//
//	// Owner
//	d.Push(handle, func() { parkSomewhere(handle) })
//	h, err := d.Pop() // newest first
//
//	// Thieves, from any goroutine
//	h, err := d.Steal() // oldest first
//
// The deque stores pointer-sized handles (uintptr): indices into a
// caller-owned arena, or encoded small values. This keeps every slot a
// single machine word that can be loaded and stored atomically.
//
// # Roles, Not Locks
//
// No operation blocks and no operation takes a lock. What keeps the hot
// paths safe is the role discipline declared by each type: producer,
// consumer, owner, thief. Violating a role constraint (two producers on
// an SPSC, two owners on a Deque) is undefined behavior, not a detected
// error. Nothing may be calling into a queue while it is being torn down.
//
// Empty/Full/Size are point-in-time snapshots. Concurrent mutation may
// invalidate them the instant they return; use them for retry loops and
// monitoring, not as authoritative control flow.
//
// # Error Handling
//
// Queues return [ErrWouldBlock] when an operation cannot proceed: full
// on the enqueue side, empty or a lost race on the dequeue side. The
// error is sourced from [code.hybscloud.com/iox] for ecosystem
// consistency; pair it with iox.Backoff in retry loops:
//
//	backoff := iox.Backoff{}
//	for q.Enqueue(&item) != nil {
//	    backoff.Wait()
//	}
//	backoff.Reset()
//
// An invalid capacity (zero, one, or not a power of two) panics at
// construction; it is a configuration error, never a runtime outcome.
// The growable SPSC.Enqueue cannot fail: the one condition it does not
// absorb, allocation failure while growing, aborts the program.
//
// # Race Detection
//
// Go's race detector tracks explicit synchronization primitives but
// cannot observe happens-before relationships established through atomic
// memory orderings on separate variables. The algorithms here rely on
// exactly such orderings, so stress tests that hammer generic slots are
// excluded from race builds via the RaceEnabled flag.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for atomic primitives
// with explicit memory ordering, [code.hybscloud.com/iox] for semantic
// errors, [code.hybscloud.com/spin] for CPU pause in CAS retry loops,
// and [github.com/eapache/queue] for the Spill overflow buffer.
package ringq
