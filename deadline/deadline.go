// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package deadline bounds how long an operation may take.
package deadline

import (
	"context"
	"errors"
	"time"
)

// Elapsed is returned when an operation did not finish before its deadline.
type Elapsed struct {
	// After is the duration the operation was allowed to run.
	After time.Duration
}

func (*Elapsed) Error() string {
	return "deadline has elapsed"
}

func (*Elapsed) Unwrap() error {
	return context.DeadlineExceeded
}

// Run calls fn with a context that expires after d.
//
// If d passes before fn returns, Run returns *Elapsed without waiting for fn;
// fn observes the expiry through its context. Errors returned by fn in time
// are passed through unchanged. Cancellation of the parent ctx is reported as
// ctx.Err(), not as *Elapsed.
func Run[T any](ctx context.Context, d time.Duration, fn func(context.Context) (T, error)) (T, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	type result struct {
		value T
		err   error
	}
	done := make(chan result, 1)
	go func() {
		v, err := fn(timeoutCtx)
		done <- result{value: v, err: err}
	}()

	var zero T
	select {
	case r := <-done:
		if r.err != nil && expired(ctx, timeoutCtx) {
			return zero, &Elapsed{After: d}
		}
		return r.value, r.err
	case <-timeoutCtx.Done():
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		return zero, &Elapsed{After: d}
	}
}

// expired reports whether timeoutCtx ended because of its own deadline rather
// than the parent's.
func expired(parent, timeoutCtx context.Context) bool {
	return parent.Err() == nil && errors.Is(timeoutCtx.Err(), context.DeadlineExceeded)
}
