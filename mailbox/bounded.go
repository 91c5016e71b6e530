// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mailbox

import (
	"context"
	"sync/atomic"
)

// DefaultCapacity is used when a non-positive capacity is requested.
const DefaultCapacity = 1024

// Bounded is a fixed capacity mailbox. Senders wait for room, the receiver
// dropping the mailbox with [Bounded.Close] fails every pending and future
// send.
type Bounded[T any] struct {
	items  chan T
	closed chan struct{}

	closing atomic.Bool

	// Metrics
	dropped   atomic.Uint64
	enqueued  atomic.Uint64
	dequeued  atomic.Uint64
	highWater atomic.Int64
}

func NewBounded[T any](capacity int) *Bounded[T] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Bounded[T]{
		items:  make(chan T, capacity),
		closed: make(chan struct{}),
	}
}

// Send waits until v is queued, the receiver is dropped, or ctx is done.
func (b *Bounded[T]) Send(ctx context.Context, v T) error {
	if b.isClosed() {
		b.dropped.Add(1)
		return &ClosedError[T]{Value: v}
	}

	select {
	case <-b.closed:
		b.dropped.Add(1)
		return &ClosedError[T]{Value: v}
	case <-ctx.Done():
		b.dropped.Add(1)
		return ctx.Err()
	case b.items <- v:
		b.enqueued.Add(1)
		b.updateHighWater()
		return nil
	}
}

// TrySend queues v only if there is room right now.
func (b *Bounded[T]) TrySend(v T) error {
	if b.isClosed() {
		b.dropped.Add(1)
		return &ClosedError[T]{Value: v}
	}

	select {
	case b.items <- v:
		b.enqueued.Add(1)
		b.updateHighWater()
		return nil
	default:
		b.dropped.Add(1)
		return ErrFull
	}
}

// Recv returns the next value. Values queued before Close are still
// delivered; afterwards Recv returns [ErrEmpty].
func (b *Bounded[T]) Recv(ctx context.Context) (T, error) {
	select {
	case v := <-b.items:
		b.dequeued.Add(1)
		return v, nil
	default:
	}

	var zero T
	select {
	case v := <-b.items:
		b.dequeued.Add(1)
		return v, nil
	case <-b.closed:
		select {
		case v := <-b.items:
			b.dequeued.Add(1)
			return v, nil
		default:
			return zero, ErrEmpty
		}
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

func (b *Bounded[T]) Len() int {
	return len(b.items)
}

func (b *Bounded[T]) Cap() int {
	return cap(b.items)
}

// Close drops the receiving side.
func (b *Bounded[T]) Close() {
	if b.closing.CompareAndSwap(false, true) {
		close(b.closed)
	}
}

func (b *Bounded[T]) isClosed() bool {
	select {
	case <-b.closed:
		return true
	default:
		return false
	}
}

func (b *Bounded[T]) updateHighWater() {
	size := int64(len(b.items))
	for {
		highWater := b.highWater.Load()
		if size <= highWater || b.highWater.CompareAndSwap(highWater, size) {
			return
		}
	}
}

// Metrics returns mailbox statistics
func (b *Bounded[T]) Metrics() Metrics {
	return Metrics{
		Size:      len(b.items),
		Enqueued:  b.enqueued.Load(),
		Dequeued:  b.dequeued.Load(),
		Dropped:   b.dropped.Load(),
		HighWater: b.highWater.Load(),
	}
}

// Metrics contains mailbox statistics
type Metrics struct {
	Size      int
	Enqueued  uint64
	Dequeued  uint64
	Dropped   uint64
	HighWater int64
}
