// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import "github.com/eapache/queue"

// Spill pairs a [Deque] with an unbounded owner-local overflow buffer.
//
// A bounded work-stealing deque rejects pushes when full; schedulers
// usually park the excess somewhere rather than drop it. Spill keeps the
// excess in a plain FIFO that only the owner touches, so the hot deque
// path stays lock-free while Push never fails.
//
// All methods except Steal are owner-only. Spilled handles are invisible
// to thieves until Refill moves them back into the deque.
type Spill struct {
	dq       *Deque
	overflow *queue.Queue
}

// NewSpill creates a Spill around a new deque with the given capacity.
// Panics if capacity is not a power of two or is less than 2.
func NewSpill(capacity int) *Spill {
	return &Spill{
		dq:       NewDeque(capacity),
		overflow: queue.New(),
	}
}

// Push inserts a handle, spilling to the overflow buffer when the deque
// is full (owner only).
func (s *Spill) Push(v uintptr) {
	s.dq.Push(v, func() {
		s.overflow.Add(v)
	})
}

// Pop removes a handle, preferring the deque (newest first) and falling
// back to the oldest spilled handle (owner only).
// Returns (0, ErrWouldBlock) when both are empty.
func (s *Spill) Pop() (uintptr, error) {
	if v, err := s.dq.Pop(); err == nil {
		return v, nil
	}
	if s.overflow.Length() > 0 {
		return s.overflow.Remove().(uintptr), nil
	}
	return 0, ErrWouldBlock
}

// Refill moves spilled handles back into the deque while space permits
// (owner only). Returns the number of handles moved.
func (s *Spill) Refill() int {
	moved := 0
	for s.overflow.Length() > 0 {
		if s.dq.TryPush(s.overflow.Peek().(uintptr)) != nil {
			break
		}
		s.overflow.Remove()
		moved++
	}
	return moved
}

// Steal removes the oldest handle from the deque (any goroutine).
// Spilled handles cannot be stolen.
func (s *Spill) Steal() (uintptr, error) {
	return s.dq.Steal()
}

// Size returns a point-in-time snapshot of the total element count,
// including spilled handles (owner only; the overflow buffer is not
// goroutine-safe).
func (s *Spill) Size() int {
	return s.dq.Size() + s.overflow.Length()
}

// Spilled returns the number of handles currently parked in the overflow
// buffer (owner only).
func (s *Spill) Spilled() int {
	return s.overflow.Length()
}
