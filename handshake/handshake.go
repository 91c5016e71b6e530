// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package handshake defines the first packet of every session and the rules
// a remote handshake must pass before the peer is admitted.
package handshake

import (
	"github.com/luxfi/ids"
	"github.com/luxfi/version"

	"github.com/luxfi/p2pnet/packet"
	"github.com/luxfi/p2pnet/reader"
)

// MaxSharedPeers bounds the peer list a handshake can carry on the wire.
const MaxSharedPeers = 1024

var _ packet.Packet = (*Handshake)(nil)

type Handshake struct {
	Version   version.Application
	NetworkID [16]byte
	PeerID    uint64
	// LocalPort is the port the sender accepts connections on.
	LocalPort uint16
	// UTCTime is the sender's clock in unix seconds.
	UTCTime uint64
	Height  uint64
	TopHash ids.ID
	Genesis ids.ID
	// Peers are addresses, in host:port form, the sender is connected to.
	Peers []string
}

// Register adds the handshake body to c.
func Register(c packet.Codec) {
	c.Register(packet.HandshakeID, func() packet.Packet { return &Handshake{} })
}

func (*Handshake) ID() packet.ID {
	return packet.HandshakeID
}

func (h *Handshake) Marshal(w *reader.Writer) {
	w.WriteText(h.Version.Name)
	w.WriteUint32(uint32(h.Version.Major))
	w.WriteUint32(uint32(h.Version.Minor))
	w.WriteUint32(uint32(h.Version.Patch))
	w.WriteFixed(h.NetworkID[:])
	w.WriteUint64(h.PeerID)
	w.WriteUint16(h.LocalPort)
	w.WriteUint64(h.UTCTime)
	w.WriteUint64(h.Height)
	w.WriteHash(h.TopHash)
	w.WriteHash(h.Genesis)
	w.WriteVarint(uint64(len(h.Peers)))
	for _, p := range h.Peers {
		w.WriteText(p)
	}
}

func (h *Handshake) Unmarshal(r *reader.Reader) error {
	var err error
	if h.Version.Name, err = r.Text(); err != nil {
		return err
	}
	for _, field := range []*int{&h.Version.Major, &h.Version.Minor, &h.Version.Patch} {
		v, err := r.Uint32()
		if err != nil {
			return err
		}
		*field = int(v)
	}
	if err := r.Fill(h.NetworkID[:]); err != nil {
		return err
	}
	if h.PeerID, err = r.Uint64(); err != nil {
		return err
	}
	if h.LocalPort, err = r.Uint16(); err != nil {
		return err
	}
	if h.UTCTime, err = r.Uint64(); err != nil {
		return err
	}
	if h.Height, err = r.Uint64(); err != nil {
		return err
	}
	if h.TopHash, err = r.Hash(); err != nil {
		return err
	}
	if h.Genesis, err = r.Hash(); err != nil {
		return err
	}

	n, err := r.Len(MaxSharedPeers)
	if err != nil || n == 0 {
		h.Peers = nil
		return err
	}
	h.Peers = make([]string, n)
	for i := range h.Peers {
		if h.Peers[i], err = r.Text(); err != nil {
			return err
		}
	}
	return nil
}
