// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package peer tracks the peers a node is connected to.
package peer

import (
	"errors"
	"slices"

	"github.com/luxfi/math/set"

	"github.com/luxfi/p2pnet"
	"github.com/luxfi/p2pnet/lock"
)

type state struct {
	// addrs maps a connected peer id to the address it was reserved with.
	addrs map[uint64]string
	inUse set.Set[string]
}

// Registry admits at most one session per peer id and per address.
type Registry struct {
	state *lock.Mutex[state]
}

func NewRegistry() *Registry {
	return &Registry{
		state: lock.New(state{
			addrs: make(map[uint64]string),
			inUse: set.NewSet[string](0),
		}),
	}
}

// Reserve records a connected peer. It fails if the id or the address is
// already reserved. An empty addr reserves the id only.
func (r *Registry) Reserve(id uint64, addr string) error {
	return r.with(func(s *state) error {
		if _, ok := s.addrs[id]; ok {
			return p2pnet.PeerIDAlreadyUsed(id)
		}
		if addr == "" {
			s.addrs[id] = addr
			return nil
		}
		if s.inUse.Contains(addr) {
			return p2pnet.PeerAlreadyConnected(addr)
		}
		s.addrs[id] = addr
		s.inUse.Add(addr)
		return nil
	})
}

// Release forgets the peer. Releasing an unknown id is a no-op.
func (r *Registry) Release(id uint64) error {
	return r.with(func(s *state) error {
		addr, ok := s.addrs[id]
		if !ok {
			return nil
		}
		delete(s.addrs, id)
		s.inUse.Remove(addr)
		return nil
	})
}

func (r *Registry) Has(id uint64) (bool, error) {
	var has bool
	err := r.with(func(s *state) error {
		_, has = s.addrs[id]
		return nil
	})
	return has, err
}

// Addresses returns the reserved addresses in sorted order.
func (r *Registry) Addresses() ([]string, error) {
	var addrs []string
	err := r.with(func(s *state) error {
		addrs = s.inUse.List()
		return nil
	})
	slices.Sort(addrs)
	return addrs, err
}

func (r *Registry) Len() (int, error) {
	var n int
	err := r.with(func(s *state) error {
		n = len(s.addrs)
		return nil
	})
	return n, err
}

func (r *Registry) with(fn func(*state) error) error {
	err := r.state.With(fn)
	var poisonErr *lock.PoisonError[state]
	if errors.As(err, &poisonErr) {
		return p2pnet.FromPoison(poisonErr)
	}
	return err
}
