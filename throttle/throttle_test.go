// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package throttle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/p2pnet"
)

func TestSyncThrottle(t *testing.T) {
	tests := []struct {
		name     string
		elapsed  time.Duration
		expected error
	}{
		{
			name:     "immediately",
			elapsed:  0,
			expected: p2pnet.ErrRequestSyncChainTooFast,
		},
		{
			name:     "before interval",
			elapsed:  9 * time.Second,
			expected: p2pnet.ErrRequestSyncChainTooFast,
		},
		{
			name:    "after interval",
			elapsed: 11 * time.Second,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			now := time.Unix(1_700_000_000, 0)
			throttle := NewSyncThrottle(10 * time.Second)
			throttle.now = func() time.Time { return now }

			require.NoError(throttle.Allow(1))
			// Other peers are tracked separately.
			require.NoError(throttle.Allow(2))

			now = now.Add(tt.elapsed)
			err := throttle.Allow(1)
			require.ErrorIs(err, tt.expected)
			if tt.expected != nil {
				require.Equal(p2pnet.ClassRateLimit, p2pnet.ClassOf(err))
				require.Equal(p2pnet.ActionDrop, p2pnet.ClassOf(err).Action())
			}
		})
	}
}

func TestSyncThrottleForget(t *testing.T) {
	require := require.New(t)

	throttle := NewSyncThrottle(time.Hour)
	require.NoError(throttle.Allow(1))
	require.ErrorIs(throttle.Allow(1), p2pnet.ErrRequestSyncChainTooFast)

	require.NoError(throttle.Forget(1))
	require.NoError(throttle.Allow(1))
}

func TestSyncThrottleDefaultInterval(t *testing.T) {
	require.Equal(t, DefaultMinInterval, NewSyncThrottle(0).MinInterval())
}
