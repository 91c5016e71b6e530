// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package throttle limits how often a peer may ask for a chain sync.
package throttle

import (
	"errors"
	"time"

	"golang.org/x/time/rate"

	"github.com/luxfi/p2pnet"
	"github.com/luxfi/p2pnet/lock"
)

// DefaultMinInterval is the sync interval used when none is configured.
const DefaultMinInterval = 5 * time.Second

type limiters map[uint64]*rate.Limiter

// SyncThrottle admits one chain sync request per peer every MinInterval.
type SyncThrottle struct {
	minInterval time.Duration
	limiters    *lock.Mutex[limiters]

	// now is replaced in tests.
	now func() time.Time
}

func NewSyncThrottle(minInterval time.Duration) *SyncThrottle {
	if minInterval <= 0 {
		minInterval = DefaultMinInterval
	}
	return &SyncThrottle{
		minInterval: minInterval,
		limiters:    lock.New(make(limiters)),
		now:         time.Now,
	}
}

func (t *SyncThrottle) MinInterval() time.Duration {
	return t.minInterval
}

// Allow returns [p2pnet.ErrRequestSyncChainTooFast] if peerID asked for a
// sync less than MinInterval ago.
func (t *SyncThrottle) Allow(peerID uint64) error {
	now := t.now()
	return t.with(func(l *limiters) error {
		limiter, ok := (*l)[peerID]
		if !ok {
			limiter = rate.NewLimiter(rate.Every(t.minInterval), 1)
			(*l)[peerID] = limiter
		}
		if !limiter.AllowN(now, 1) {
			return p2pnet.ErrRequestSyncChainTooFast
		}
		return nil
	})
}

// Forget drops the history of peerID.
func (t *SyncThrottle) Forget(peerID uint64) error {
	return t.with(func(l *limiters) error {
		delete(*l, peerID)
		return nil
	})
}

func (t *SyncThrottle) with(fn func(*limiters) error) error {
	err := t.limiters.With(fn)
	var poisonErr *lock.PoisonError[limiters]
	if errors.As(err, &poisonErr) {
		return p2pnet.FromPoison(poisonErr)
	}
	return err
}
