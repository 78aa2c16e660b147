// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import "code.hybscloud.com/atomix"

// Deque is a bounded lock-free work-stealing deque implementing the
// Chase-Lev protocol as refined for weak memory models by Lê et al.
// ("Correct and Efficient Work-Stealing for Weak Memory Models",
// PPoPP'13).
//
// One owner goroutine pushes and pops at the tail end (LIFO from the
// owner's perspective); any number of thief goroutines steal from the
// head end (approximate FIFO). Elements are pointer-sized handles: an
// index into a caller-owned arena, or a uintptr-encoded value. Slots are
// atomic because a thief reads a slot concurrently with the owner's
// writes.
//
// head and tail increase monotonically for the lifetime of the deque and
// are masked only when indexing, so the live range is always
// head <= tail. One slot is kept unused; the usable capacity is the
// buffer size minus one.
//
// Memory: O(capacity), 8 bytes per slot
type Deque struct {
	_      pad
	head   atomix.Int64 // Steal end, advanced by CAS from thieves and the owner's last-element pop
	_      pad
	tail   atomix.Int64 // Owner end, written only by the owner
	_      pad
	buffer []atomix.Uintptr
	mask   int64
}

// NewDeque creates a new work-stealing deque.
// Panics if capacity is not a power of two or is less than 2.
// The usable capacity is capacity-1.
func NewDeque(capacity int) *Deque {
	n := int64(checkCapacity(capacity))
	return &Deque{
		buffer: make([]atomix.Uintptr, n),
		mask:   n - 1,
	}
}

// TryPush inserts a handle at the tail end (owner only).
// Returns ErrWouldBlock if the deque is full.
func (d *Deque) TryPush(v uintptr) error {
	tail := d.tail.LoadRelaxed()
	head := d.head.LoadAcquire()

	if tail-head >= d.mask {
		return ErrWouldBlock
	}

	d.buffer[tail&d.mask].StoreRelaxed(v)
	// The release store of tail publishes the slot write to any thief
	// that acquire-loads the new tail.
	d.tail.StoreRelease(tail + 1)
	return nil
}

// Push inserts a handle at the tail end, invoking onFull instead of
// failing when the deque is full (owner only).
func (d *Deque) Push(v uintptr, onFull func()) {
	if d.TryPush(v) != nil {
		onFull()
	}
}

// Pop removes and returns the most recently pushed handle (owner only).
// Returns (0, ErrWouldBlock) if the deque is empty or the last element
// was stolen first; the two outcomes are not distinguished.
func (d *Deque) Pop() (uintptr, error) {
	// Speculatively claim the last slot before looking at head. The
	// sequentially consistent store/load pair orders this claim against
	// a concurrent Steal's head/tail reads.
	tail := d.tail.LoadRelaxed() - 1
	d.tail.Store(tail)
	head := d.head.Load()

	if head > tail {
		// Already empty; undo the decrement.
		d.tail.StoreRelaxed(tail + 1)
		return 0, ErrWouldBlock
	}

	v := d.buffer[tail&d.mask].LoadRelaxed()
	if head == tail {
		// Exactly one element left: race any thief for it. Whoever
		// advances head owns the slot.
		won := d.head.CompareAndSwap(head, head+1)
		d.tail.StoreRelaxed(tail + 1)
		if !won {
			return 0, ErrWouldBlock
		}
	}
	return v, nil
}

// Steal removes and returns the oldest handle (any goroutine).
// Returns (0, ErrWouldBlock) if the deque is empty or another thief or
// the owner's Pop claimed the element first; the two outcomes are not
// distinguished. Thieves never touch tail.
func (d *Deque) Steal() (uintptr, error) {
	// head must be read before tail; the sequentially consistent loads
	// order this read pair against a concurrent Pop's tail decrement.
	head := d.head.Load()
	tail := d.tail.Load()

	if head >= tail {
		return 0, ErrWouldBlock
	}

	// Read the candidate before claiming it. If the CAS below succeeds,
	// head did not move in between, so the owner cannot have wrapped
	// tail onto this slot (pushes stop at head+capacity-1).
	v := d.buffer[head&d.mask].LoadRelaxed()
	if !d.head.CompareAndSwap(head, head+1) {
		return 0, ErrWouldBlock
	}
	return v, nil
}

// Empty reports whether the deque appeared empty at the instant of the
// call.
func (d *Deque) Empty() bool {
	tail := d.tail.LoadRelaxed()
	head := d.head.LoadRelaxed()
	return tail <= head
}

// Size returns a point-in-time snapshot of the element count.
func (d *Deque) Size() int {
	tail := d.tail.LoadRelaxed()
	head := d.head.LoadRelaxed()
	if tail < head {
		return 0
	}
	return int(tail - head)
}

// Cap returns the usable capacity (one slot is kept unused).
func (d *Deque) Cap() int {
	return int(d.mask)
}
