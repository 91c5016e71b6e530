// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package lock provides a mutex that remembers when a holder panicked while
// holding it.
package lock

import (
	"errors"
	"sync"
)

// ErrPoisoned is matched by every [PoisonError] through errors.Is.
var ErrPoisoned = errors.New("poisoned lock: another task failed inside")

// PoisonError is returned when acquiring a [Mutex] whose previous holder
// panicked. It carries the guarded value so the caller may still recover it.
type PoisonError[T any] struct {
	guard *T
}

func (*PoisonError[T]) Error() string {
	return ErrPoisoned.Error()
}

func (*PoisonError[T]) Is(target error) bool {
	return target == ErrPoisoned
}

// Into returns the guarded value despite the poisoning. The caller must hold
// no expectation that the value's invariants still hold.
func (e *PoisonError[T]) Into() *T {
	return e.guard
}

// Mutex guards a value of type T.
type Mutex[T any] struct {
	mu       sync.Mutex
	value    T
	poisoned bool
}

func New[T any](value T) *Mutex[T] {
	return &Mutex[T]{value: value}
}

// With runs fn while holding the lock.
//
// If fn panics the mutex is poisoned and the panic continues up the stack.
// Every later call returns a *PoisonError[T] without running fn, until
// [Mutex.ClearPoison] is called.
func (m *Mutex[T]) With(fn func(*T) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.poisoned {
		return &PoisonError[T]{guard: &m.value}
	}

	completed := false
	defer func() {
		if !completed {
			m.poisoned = true
		}
	}()

	err := fn(&m.value)
	completed = true
	return err
}

func (m *Mutex[T]) IsPoisoned() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.poisoned
}

func (m *Mutex[T]) ClearPoison() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.poisoned = false
}
