// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package handshake

import (
	"net/netip"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/luxfi/version"

	"github.com/luxfi/p2pnet"
	"github.com/luxfi/p2pnet/packet"
)

// DefaultMaxPeers is the number of shared peers accepted when
// [Validator.MaxPeers] is zero.
const DefaultMaxPeers = 32

const malformedHandshakeLog = "malformed handshake"

// Registry admits peers that passed validation.
type Registry interface {
	Reserve(id uint64, addr string) error
}

// Validator checks the first packet received from a peer.
type Validator struct {
	NetworkID [16]byte
	Genesis   ids.ID
	MaxPeers  int
	// Version is the local client version. Peers running a newer version are
	// admitted and logged.
	Version *version.Application
	// Registry, if set, reserves the peer id and address once every other
	// check passed. The address is empty when remote is not valid.
	Registry Registry
	Log      log.Logger
}

// Validate returns the remote handshake if first is an acceptable handshake
// from remote.
func (v *Validator) Validate(remote netip.AddrPort, first packet.Packet) (*Handshake, error) {
	logger := v.Log
	if logger == nil {
		logger = log.NewNoOpLogger()
	}

	h, ok := first.(*Handshake)
	if !ok {
		logger.Debug(malformedHandshakeLog,
			log.Stringer("remote", remote),
			log.Stringer("packetID", first.ID()),
			log.String("reason", "first packet is not a handshake"),
		)
		return nil, p2pnet.ErrExpectedHandshake
	}

	if h.NetworkID != v.NetworkID {
		logger.Debug(malformedHandshakeLog,
			log.Stringer("remote", remote),
			log.String("field", "networkID"),
			log.Binary("peerNetworkID", h.NetworkID[:]),
			log.Binary("ourNetworkID", v.NetworkID[:]),
		)
		return nil, p2pnet.ErrInvalidNetworkID
	}

	if reason, ok := v.checkFields(h); !ok {
		logger.Debug(malformedHandshakeLog,
			log.Stringer("remote", remote),
			log.Uint64("peerID", h.PeerID),
			log.String("reason", reason),
		)
		return nil, p2pnet.ErrInvalidHandshake
	}

	for _, addr := range h.Peers {
		if ap, err := netip.ParseAddrPort(addr); err != nil || ap.Port() == 0 {
			logger.Debug(malformedHandshakeLog,
				log.Stringer("remote", remote),
				log.Uint64("peerID", h.PeerID),
				log.UserString("peerAddress", addr),
			)
			return nil, p2pnet.InvalidPeerAddress(addr)
		}
	}

	if v.Version != nil && v.Version.Before(&h.Version) {
		logger.Debug("peer attempting to connect with newer version. You may want to update your client",
			log.Uint64("peerID", h.PeerID),
			log.Stringer("peerVersion", &h.Version),
		)
	}

	if v.Registry != nil {
		// Connections without an IP endpoint are only keyed by peer id.
		var addr string
		if remote.IsValid() {
			addr = netip.AddrPortFrom(remote.Addr(), h.LocalPort).String()
		}
		if err := v.Registry.Reserve(h.PeerID, addr); err != nil {
			logger.Debug("rejecting peer",
				log.Uint64("peerID", h.PeerID),
				log.String("addr", addr),
				log.Err(err),
			)
			return nil, err
		}
	}
	return h, nil
}

func (v *Validator) checkFields(h *Handshake) (string, bool) {
	maxPeers := v.MaxPeers
	if maxPeers == 0 {
		maxPeers = DefaultMaxPeers
	}

	switch {
	case h.Genesis != v.Genesis:
		return "genesis mismatch", false
	case h.Version.Name == "":
		return "empty client name", false
	case h.LocalPort == 0:
		return "invalid local port", false
	case len(h.Peers) > maxPeers:
		return "too many shared peers", false
	default:
		return "", true
	}
}
