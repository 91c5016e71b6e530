// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package session

import (
	"time"

	"github.com/luxfi/constants"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/luxfi/version"

	"github.com/luxfi/p2pnet/handshake"
	"github.com/luxfi/p2pnet/mailbox"
	"github.com/luxfi/p2pnet/packet"
	"github.com/luxfi/p2pnet/peer"
	"github.com/luxfi/p2pnet/throttle"
)

const DefaultHandshakeTimeout = 10 * time.Second

// ChainTip reports the local chain tip advertised in our handshake.
type ChainTip func() (height uint64, top ids.ID)

type Config struct {
	NetworkID [16]byte
	Genesis   ids.ID
	// Version is the client version sent in our handshake and compared with
	// the peer's.
	Version *version.Application
	// PeerID identifies this node to its peers.
	PeerID uint64
	// LocalPort is the port this node accepts connections on.
	LocalPort uint16
	Tip       ChainTip

	// Largest packet body, in bytes, read or written
	MaxPacketSize uint32
	// Most peer addresses accepted in, and shared through, a handshake
	MaxPeers         int
	HandshakeTimeout time.Duration
	SyncMinInterval  time.Duration
	// Number of outbound packets queued before Send waits
	OutboundQueueSize int
	// Size, in bytes, of the buffer this peer reads packets into
	ReadBufferSize int
	// Size, in bytes, of the buffer this peer writes packets into
	WriteBufferSize int

	Log      log.Logger
	Metrics  *Metrics
	Registry *peer.Registry
	// Throttle limits chain requests. A nil Throttle admits every request.
	Throttle *throttle.SyncThrottle
}

// DefaultConfig returns a config with every limit set and fresh shared state.
// Metrics are left unset; sessions without metrics do not report any.
func DefaultConfig() Config {
	return Config{
		Version:           version.CurrentApp,
		Tip:               func() (uint64, ids.ID) { return 0, ids.Empty },
		MaxPacketSize:     packet.DefaultMaxSize,
		MaxPeers:          handshake.DefaultMaxPeers,
		HandshakeTimeout:  DefaultHandshakeTimeout,
		SyncMinInterval:   throttle.DefaultMinInterval,
		OutboundQueueSize: mailbox.DefaultCapacity,
		ReadBufferSize:    constants.DefaultNetworkPeerReadBufferSize,
		WriteBufferSize:   constants.DefaultNetworkPeerWriteBufferSize,
		Log:               log.NewNoOpLogger(),
		Registry:          peer.NewRegistry(),
		Throttle:          throttle.NewSyncThrottle(throttle.DefaultMinInterval),
	}
}
