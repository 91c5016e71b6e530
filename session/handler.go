// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package session

import (
	"context"

	"github.com/luxfi/log"

	"github.com/luxfi/p2pnet/packet"
	"github.com/luxfi/p2pnet/throttle"
)

var (
	_ Handler = (*NoOpHandler)(nil)
	_ Handler = (*TestHandler)(nil)
	_ Handler = (*ThrottledHandler)(nil)
)

// Handler is the application logic behind a session. A returned error is
// classified by the session: rate limited requests are dropped, anything else
// ends the session.
type Handler interface {
	HandlePing(ctx context.Context, peerID uint64, ping *packet.Ping) error
	// HandleChainRequest may return a response, which is sent back to the
	// peer.
	HandleChainRequest(
		ctx context.Context,
		peerID uint64,
		request *packet.ChainRequest,
	) (*packet.ChainResponse, error)
	HandleChainResponse(ctx context.Context, peerID uint64, response *packet.ChainResponse) error
}

// NoOpHandler drops all packets
type NoOpHandler struct{}

func (NoOpHandler) HandlePing(context.Context, uint64, *packet.Ping) error {
	return nil
}

func (NoOpHandler) HandleChainRequest(context.Context, uint64, *packet.ChainRequest) (*packet.ChainResponse, error) {
	return nil, nil
}

func (NoOpHandler) HandleChainResponse(context.Context, uint64, *packet.ChainResponse) error {
	return nil
}

func NewThrottledHandler(handler Handler, throttle *throttle.SyncThrottle, log log.Logger) *ThrottledHandler {
	return &ThrottledHandler{
		handler:  handler,
		throttle: throttle,
		log:      log,
	}
}

// ThrottledHandler rejects chain requests that arrive faster than the
// throttle allows.
type ThrottledHandler struct {
	handler  Handler
	throttle *throttle.SyncThrottle
	log      log.Logger
}

func (t ThrottledHandler) HandlePing(ctx context.Context, peerID uint64, ping *packet.Ping) error {
	return t.handler.HandlePing(ctx, peerID, ping)
}

func (t ThrottledHandler) HandleChainRequest(ctx context.Context, peerID uint64, request *packet.ChainRequest) (*packet.ChainResponse, error) {
	if err := t.throttle.Allow(peerID); err != nil {
		t.log.Debug("throttling chain request",
			log.Uint64("peerID", peerID),
			log.Int("numBlocks", len(request.Blocks)),
		)
		return nil, err
	}

	return t.handler.HandleChainRequest(ctx, peerID, request)
}

func (t ThrottledHandler) HandleChainResponse(ctx context.Context, peerID uint64, response *packet.ChainResponse) error {
	return t.handler.HandleChainResponse(ctx, peerID, response)
}

type TestHandler struct {
	HandlePingF          func(ctx context.Context, peerID uint64, ping *packet.Ping) error
	HandleChainRequestF  func(ctx context.Context, peerID uint64, request *packet.ChainRequest) (*packet.ChainResponse, error)
	HandleChainResponseF func(ctx context.Context, peerID uint64, response *packet.ChainResponse) error
}

func (t TestHandler) HandlePing(ctx context.Context, peerID uint64, ping *packet.Ping) error {
	if t.HandlePingF == nil {
		return nil
	}

	return t.HandlePingF(ctx, peerID, ping)
}

func (t TestHandler) HandleChainRequest(ctx context.Context, peerID uint64, request *packet.ChainRequest) (*packet.ChainResponse, error) {
	if t.HandleChainRequestF == nil {
		return nil, nil
	}

	return t.HandleChainRequestF(ctx, peerID, request)
}

func (t TestHandler) HandleChainResponse(ctx context.Context, peerID uint64, response *packet.ChainResponse) error {
	if t.HandleChainResponseF == nil {
		return nil
	}

	return t.HandleChainResponseF(ctx, peerID, response)
}
