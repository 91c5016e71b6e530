// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/luxfi/log"

	"github.com/luxfi/p2pnet"
	"github.com/luxfi/p2pnet/packet"
	"github.com/luxfi/p2pnet/session/sessionmock"
	"github.com/luxfi/p2pnet/throttle"
)

func TestNoOpHandler(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	h := NoOpHandler{}
	require.NoError(h.HandlePing(ctx, 1, &packet.Ping{}))
	require.NoError(h.HandleChainResponse(ctx, 1, &packet.ChainResponse{}))

	response, err := h.HandleChainRequest(ctx, 1, &packet.ChainRequest{})
	require.NoError(err)
	require.Nil(response)
}

func TestThrottledHandler(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	handler := sessionmock.NewHandler(ctrl)
	expected := &packet.ChainResponse{CommonHeight: 4}
	handler.EXPECT().HandleChainRequest(ctx, uint64(1), gomock.Any()).Return(expected, nil).Times(1)
	handler.EXPECT().HandleChainRequest(ctx, uint64(2), gomock.Any()).Return(nil, nil).Times(1)
	handler.EXPECT().HandlePing(ctx, uint64(1), gomock.Any()).Return(nil).Times(2)

	throttled := NewThrottledHandler(handler, throttle.NewSyncThrottle(time.Hour), log.NewNoOpLogger())

	response, err := throttled.HandleChainRequest(ctx, 1, &packet.ChainRequest{})
	require.NoError(err)
	require.Same(expected, response)

	// Only chain requests are throttled.
	require.NoError(throttled.HandlePing(ctx, 1, &packet.Ping{}))
	require.NoError(throttled.HandlePing(ctx, 1, &packet.Ping{}))

	_, err = throttled.HandleChainRequest(ctx, 1, &packet.ChainRequest{})
	require.ErrorIs(err, p2pnet.ErrRequestSyncChainTooFast)

	_, err = throttled.HandleChainRequest(ctx, 2, &packet.ChainRequest{})
	require.NoError(err)
}
