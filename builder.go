// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

// Options configures queue creation and algorithm selection.
type Options struct {
	// Producer/Consumer constraints (determines queue type)
	singleProducer bool
	singleConsumer bool

	// Capacity (must be a power of two, at least 2)
	capacity int
}

// Builder creates queues with fluent configuration.
//
// The builder selects the algorithm from the declared producer/consumer
// constraints. Direct constructors remain the primary API; the builder
// exists for call sites that pick the pattern from configuration.
//
// Example:
//
//	// Single dispatcher, stealing workers
//	q := ringq.Build[Task](ringq.New(1024).SingleProducer())
//
//	// Growable pipeline stage
//	q := ringq.BuildSPSC[Event](ringq.New(512).SingleProducer().SingleConsumer())
type Builder struct {
	opts Options
}

// New creates a queue builder with the given capacity.
// Panics if capacity is not a power of two or is less than 2.
func New(capacity int) *Builder {
	checkCapacity(capacity)
	return &Builder{opts: Options{capacity: capacity}}
}

// SingleProducer declares that only one goroutine will enqueue.
func (b *Builder) SingleProducer() *Builder {
	b.opts.singleProducer = true
	return b
}

// SingleConsumer declares that only one goroutine will dequeue.
func (b *Builder) SingleConsumer() *Builder {
	b.opts.singleConsumer = true
	return b
}

// Build creates a bounded Queue[T] from the declared constraints.
//
// Algorithm selection:
//
//	SingleProducer (consumers free) → Ring  (write-then-CAS, concurrent consumers)
//	otherwise                       → RingMP (slot reservation by CAS, full MPMC)
//
// For the growable single-producer single-consumer queue use
// [BuildSPSC]; its growing enqueue has a different signature and is not
// a Queue[T].
func Build[T any](b *Builder) Queue[T] {
	if b.opts.singleProducer {
		return NewRing[T](b.opts.capacity)
	}
	return NewRingMP[T](b.opts.capacity)
}

// BuildRing creates a Ring with compile-time type safety.
// Panics if the builder is not configured with SingleProducer().
func BuildRing[T any](b *Builder) *Ring[T] {
	if !b.opts.singleProducer {
		panic("ringq: BuildRing requires SingleProducer()")
	}
	return NewRing[T](b.opts.capacity)
}

// BuildRingMP creates a RingMP with compile-time type safety.
func BuildRingMP[T any](b *Builder) *RingMP[T] {
	return NewRingMP[T](b.opts.capacity)
}

// BuildSPSC creates a growable SPSC queue with compile-time type safety.
// Panics if the builder is not configured with
// SingleProducer().SingleConsumer().
func BuildSPSC[T any](b *Builder) *SPSC[T] {
	if !b.opts.singleProducer || !b.opts.singleConsumer {
		panic("ringq: BuildSPSC requires SingleProducer().SingleConsumer()")
	}
	return NewSPSC[T](b.opts.capacity)
}

// BuildDeque creates a work-stealing deque.
// Panics if the builder is not configured with SingleProducer(): the
// deque's push and pop ends belong to exactly one owner goroutine.
func (b *Builder) BuildDeque() *Deque {
	if !b.opts.singleProducer {
		panic("ringq: BuildDeque requires SingleProducer()")
	}
	return NewDeque(b.opts.capacity)
}
