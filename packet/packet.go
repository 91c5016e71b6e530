// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package packet frames and parses the packets exchanged between peers.
//
// Every packet is sent as a 4 byte big-endian length followed by the body.
// The first byte of the body is the packet ID, the rest is decoded by the
// body type registered for that ID in a [Codec].
package packet

import (
	"strconv"

	"github.com/luxfi/p2pnet/reader"
)

type ID uint8

const (
	HandshakeID ID = iota
	PingID
	ChainRequestID
	ChainResponseID
)

func (id ID) String() string {
	switch id {
	case HandshakeID:
		return "handshake"
	case PingID:
		return "ping"
	case ChainRequestID:
		return "chain_request"
	case ChainResponseID:
		return "chain_response"
	default:
		return "unknown(" + strconv.Itoa(int(id)) + ")"
	}
}

// Packet is a decoded packet body.
type Packet interface {
	ID() ID
	// Marshal appends the body, without its ID, to w.
	Marshal(w *reader.Writer)
	// Unmarshal decodes the body, without its ID, from r.
	Unmarshal(r *reader.Reader) error
}

// Codec maps packet IDs to constructors of empty bodies.
type Codec map[ID]func() Packet

// NewCodec returns a codec that knows every body defined in this package.
// The handshake body lives in its own package and must be registered on top.
func NewCodec() Codec {
	return Codec{
		PingID:          func() Packet { return &Ping{} },
		ChainRequestID:  func() Packet { return &ChainRequest{} },
		ChainResponseID: func() Packet { return &ChainResponse{} },
	}
}

func (c Codec) Register(id ID, newPacket func() Packet) {
	c[id] = newPacket
}
