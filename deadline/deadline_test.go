// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package deadline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRunInTime(t *testing.T) {
	require := require.New(t)

	v, err := Run(context.Background(), time.Second, func(context.Context) (int, error) {
		return 7, nil
	})
	require.NoError(err)
	require.Equal(7, v)

	errSentinel := errors.New("sentinel")
	_, err = Run(context.Background(), time.Second, func(context.Context) (int, error) {
		return 0, errSentinel
	})
	require.ErrorIs(err, errSentinel)
}

func TestRunElapsed(t *testing.T) {
	require := require.New(t)

	_, err := Run(context.Background(), 10*time.Millisecond, func(ctx context.Context) (struct{}, error) {
		<-ctx.Done()
		return struct{}{}, ctx.Err()
	})

	var elapsed *Elapsed
	require.ErrorAs(err, &elapsed)
	require.Equal(10*time.Millisecond, elapsed.After)
	require.Equal("deadline has elapsed", err.Error())
	require.ErrorIs(err, context.DeadlineExceeded)
}

func TestRunParentCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, time.Second, func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})
	require.ErrorIs(t, err, context.Canceled)
	require.NotErrorAs(t, err, new(*Elapsed))
}
