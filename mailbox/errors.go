// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mailbox

import "errors"

var (
	// ErrClosed is matched through errors.Is by every error returned from a
	// send on a mailbox whose receiver has been dropped.
	ErrClosed = errors.New("mailbox closed")
	// ErrEmpty is returned by a receive on a closed, drained mailbox.
	ErrEmpty = errors.New("mailbox closed and drained")
	// ErrFull is returned by a non-blocking send on a mailbox at capacity.
	ErrFull = errors.New("mailbox is full")
)

// SendError is returned by [Unbounded.Send] once the receiver is gone. The
// unsent value is handed back to the caller.
type SendError[T any] struct {
	Value T
}

func (*SendError[T]) Error() string {
	return "sending on a closed channel"
}

func (*SendError[T]) Is(target error) bool {
	return target == ErrClosed
}

// ClosedError is returned by [Bounded.Send] once the receiver is gone. The
// unsent value is handed back to the caller.
type ClosedError[T any] struct {
	Value T
}

func (*ClosedError[T]) Error() string {
	return "channel closed"
}

func (*ClosedError[T]) Is(target error) bool {
	return target == ErrClosed
}
