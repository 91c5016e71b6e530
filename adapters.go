// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package p2pnet

import (
	"errors"

	"github.com/luxfi/p2pnet/convert"
	"github.com/luxfi/p2pnet/deadline"
	"github.com/luxfi/p2pnet/lock"
	"github.com/luxfi/p2pnet/mailbox"
	"github.com/luxfi/p2pnet/reader"
)

// FromIO wraps a failed read, write, dial or deadline update on a peer
// connection.
func FromIO(err error) *Error {
	return &Error{kind: KindIO, cause: err}
}

// FromConversion wraps a byte slice that could not fill a fixed-size array.
func FromConversion(err *convert.LengthError) *Error {
	return &Error{kind: KindConversion, cause: err}
}

// FromReader wraps a packet body that could not be decoded.
func FromReader(err *reader.Error) *Error {
	return &Error{kind: KindReader, cause: err}
}

// FromTimeout wraps an operation that outlived its deadline.
func FromTimeout(err *deadline.Elapsed) *Error {
	return &Error{kind: KindTimeout, cause: err}
}

// FromPoison keeps the text of a poisoned lock. The guarded value is
// dropped.
func FromPoison[T any](err *lock.PoisonError[T]) *Error {
	return Poison(err.Error())
}

// FromSend keeps the text of a send on an unbounded mailbox whose receiver is
// gone. The unsent value is dropped.
func FromSend[T any](err *mailbox.SendError[T]) *Error {
	return Send(err.Error())
}

// FromAsyncSend keeps the text of a send on a bounded mailbox whose receiver
// is gone. It yields the same kind as [FromSend].
func FromAsyncSend[T any](err *mailbox.ClosedError[T]) *Error {
	return Send(err.Error())
}

// Lift converts any error into an *Error and returns it as an error. A nil
// err yields a nil error, so Lift can wrap a return value directly.
func Lift(err error) error {
	if err == nil {
		return nil
	}
	return AsError(err)
}

// AsError converts a non-nil error into an *Error. It returns a nil *Error
// for a nil err; use [Lift] where the result is returned as an error.
//
// An *Error already in the chain is returned as is. Known foreign failures are
// mapped to their kind; poison and send failures are recognized through
// [lock.ErrPoisoned] and [mailbox.ErrClosed] because their generic types
// cannot be named here. Everything else is treated as an I/O failure.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}

	var (
		p2pErr     *Error
		readerErr  *reader.Error
		lengthErr  *convert.LengthError
		elapsedErr *deadline.Elapsed
	)
	switch {
	case errors.As(err, &p2pErr):
		return p2pErr
	case errors.As(err, &readerErr):
		return FromReader(readerErr)
	case errors.As(err, &lengthErr):
		return FromConversion(lengthErr)
	case errors.As(err, &elapsedErr):
		return FromTimeout(elapsedErr)
	case errors.Is(err, lock.ErrPoisoned):
		return Poison(err.Error())
	case errors.Is(err, mailbox.ErrClosed):
		return Send(err.Error())
	default:
		return FromIO(err)
	}
}
