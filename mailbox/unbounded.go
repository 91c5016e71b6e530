// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package mailbox provides single-receiver queues that report a dropped
// receiver to their senders instead of panicking like a closed channel.
package mailbox

import (
	"context"
	"sync"
)

// Unbounded is a mailbox whose Send never waits.
type Unbounded[T any] struct {
	lock   sync.Mutex
	queue  []T
	closed bool

	// notify holds at most one pending wake-up for the receiver.
	notify chan struct{}
}

func NewUnbounded[T any]() *Unbounded[T] {
	return &Unbounded[T]{
		notify: make(chan struct{}, 1),
	}
}

// Send queues v. It fails with *SendError[T] once the receiver is dropped.
func (u *Unbounded[T]) Send(v T) error {
	u.lock.Lock()
	defer u.lock.Unlock()

	if u.closed {
		return &SendError[T]{Value: v}
	}

	u.queue = append(u.queue, v)
	select {
	case u.notify <- struct{}{}:
	default:
	}
	return nil
}

// Recv returns the next value, waiting for one if the queue is empty.
func (u *Unbounded[T]) Recv(ctx context.Context) (T, error) {
	for {
		v, ok, err := u.pop()
		if ok || err != nil {
			return v, err
		}

		select {
		case <-u.notify:
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}
}

func (u *Unbounded[T]) pop() (T, bool, error) {
	u.lock.Lock()
	defer u.lock.Unlock()

	var zero T
	if len(u.queue) == 0 {
		if u.closed {
			return zero, false, ErrEmpty
		}
		return zero, false, nil
	}

	v := u.queue[0]
	u.queue[0] = zero
	u.queue = u.queue[1:]
	return v, true, nil
}

func (u *Unbounded[T]) Len() int {
	u.lock.Lock()
	defer u.lock.Unlock()

	return len(u.queue)
}

// Close drops the receiving side. Queued values are still returned by Recv.
func (u *Unbounded[T]) Close() {
	u.lock.Lock()
	defer u.lock.Unlock()

	if u.closed {
		return
	}
	u.closed = true
	select {
	case u.notify <- struct{}{}:
	default:
	}
}
