// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package p2pnet

import (
	"errors"
	"strconv"
)

// Kind identifies which failure an [Error] describes.
type Kind uint8

const (
	// KindUnknown is reported by [KindOf] for errors that are not an *Error.
	KindUnknown Kind = iota

	KindDisconnected
	KindInvalidHandshake
	KindExpectedHandshake
	KindInvalidPeerAddress
	KindInvalidNetworkID
	KindPeerIDAlreadyUsed
	KindPeerAlreadyConnected

	// KindIO wraps an I/O failure.
	KindIO
	// KindPoison carries the text of a lock poisoning.
	KindPoison
	// KindSend carries the text of a failed send on a blocking or
	// asynchronous mailbox. The two origins are deliberately not
	// distinguished.
	KindSend
	// KindConversion wraps a fixed-size buffer conversion failure.
	KindConversion
	// KindReader wraps a packet-reader failure.
	KindReader

	KindInvalidPacket
	KindInvalidPacketSize
	KindInvalidPacketNotFullRead
	KindRequestSyncChainTooFast

	// KindTimeout wraps an elapsed deadline.
	KindTimeout

	numKinds
)

var kindNames = [numKinds]string{
	KindUnknown:                  "Unknown",
	KindDisconnected:             "Disconnected",
	KindInvalidHandshake:         "InvalidHandshake",
	KindExpectedHandshake:        "ExpectedHandshake",
	KindInvalidPeerAddress:       "InvalidPeerAddress",
	KindInvalidNetworkID:         "InvalidNetworkID",
	KindPeerIDAlreadyUsed:        "PeerIDAlreadyUsed",
	KindPeerAlreadyConnected:     "PeerAlreadyConnected",
	KindIO:                       "IO",
	KindPoison:                   "Poison",
	KindSend:                     "Send",
	KindConversion:               "Conversion",
	KindReader:                   "Reader",
	KindInvalidPacket:            "InvalidPacket",
	KindInvalidPacketSize:        "InvalidPacketSize",
	KindInvalidPacketNotFullRead: "InvalidPacketNotFullRead",
	KindRequestSyncChainTooFast:  "RequestSyncChainTooFast",
	KindTimeout:                  "Timeout",
}

// messages holds the rendering of every kind without a payload.
var messages = [numKinds]string{
	KindDisconnected:             "Peer disconnected",
	KindInvalidHandshake:         "Invalid handshake",
	KindExpectedHandshake:        "Expected Handshake packet",
	KindInvalidNetworkID:         "Invalid network ID",
	KindInvalidPacket:            "Invalid packet ID",
	KindInvalidPacketSize:        "Packet size exceed limit",
	KindInvalidPacketNotFullRead: "Received valid packet with not used bytes",
	KindRequestSyncChainTooFast:  "Request sync chain too fast",
}

func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return "Kind(" + strconv.FormatUint(uint64(k), 10) + ")"
}

// wrapsCause reports whether errors of this kind carry an underlying error.
func (k Kind) wrapsCause() bool {
	switch k {
	case KindIO, KindConversion, KindReader, KindTimeout:
		return true
	default:
		return false
	}
}

// hasPayload reports whether errors of this kind carry a peer address, a peer
// id or captured text.
func (k Kind) hasPayload() bool {
	switch k {
	case KindInvalidPeerAddress, KindPeerIDAlreadyUsed, KindPeerAlreadyConnected, KindPoison, KindSend:
		return true
	default:
		return false
	}
}

// Error is the single failure value of the peer-to-peer layer.
//
// Exactly one kind is set per value and it never changes. Values are built
// where the failure happens, either with one of the constructors below or by
// an adapter from a foreign error, and are then returned up the call chain.
type Error struct {
	kind Kind
	// text is the peer address for address kinds and the captured message for
	// poison and send kinds.
	text string
	// id is the peer id for KindPeerIDAlreadyUsed.
	id uint64
	// cause is set for the kinds that wrap another error.
	cause error
}

var (
	// ErrDisconnected is returned when the peer closed the connection.
	ErrDisconnected = &Error{kind: KindDisconnected}
	// ErrInvalidHandshake is returned when the handshake content is
	// malformed or incompatible.
	ErrInvalidHandshake = &Error{kind: KindInvalidHandshake}
	// ErrExpectedHandshake is returned when the first packet of a connection
	// is not a handshake.
	ErrExpectedHandshake = &Error{kind: KindExpectedHandshake}
	// ErrInvalidNetworkID is returned when the peer runs on another network.
	ErrInvalidNetworkID = &Error{kind: KindInvalidNetworkID}
	// ErrInvalidPacket is returned for an unrecognized packet id.
	ErrInvalidPacket = &Error{kind: KindInvalidPacket}
	// ErrInvalidPacketSize is returned when a packet exceeds the configured
	// size limit.
	ErrInvalidPacketSize = &Error{kind: KindInvalidPacketSize}
	// ErrInvalidPacketNotFullRead is returned when a packet decoded
	// successfully but left bytes unread.
	ErrInvalidPacketNotFullRead = &Error{kind: KindInvalidPacketNotFullRead}
	// ErrRequestSyncChainTooFast is returned when a peer asks for a chain
	// sync before the minimum interval has elapsed.
	ErrRequestSyncChainTooFast = &Error{kind: KindRequestSyncChainTooFast}
)

// InvalidPeerAddress reports an address shared by a peer that failed
// validation.
func InvalidPeerAddress(addr string) *Error {
	return &Error{kind: KindInvalidPeerAddress, text: addr}
}

// PeerIDAlreadyUsed reports a handshake with a peer id that is already
// connected.
func PeerIDAlreadyUsed(id uint64) *Error {
	return &Error{kind: KindPeerIDAlreadyUsed, id: id}
}

// PeerAlreadyConnected reports a second connection from the same address.
func PeerAlreadyConnected(addr string) *Error {
	return &Error{kind: KindPeerAlreadyConnected, text: addr}
}

// Poison builds a KindPoison error from already rendered text. Prefer
// [FromPoison] when the poison error value is at hand.
func Poison(msg string) *Error {
	return &Error{kind: KindPoison, text: msg}
}

// Send builds a KindSend error from already rendered text. Prefer [FromSend]
// or [FromAsyncSend] when the send error value is at hand.
func Send(msg string) *Error {
	return &Error{kind: KindSend, text: msg}
}

// Error renders the message shown to operators.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}

	switch e.kind {
	case KindInvalidPeerAddress:
		return "Invalid peer address, " + e.text
	case KindPeerIDAlreadyUsed:
		return "Peer id " + strconv.FormatUint(e.id, 10) + " is already used!"
	case KindPeerAlreadyConnected:
		return "Peer already connected: " + e.text
	case KindPoison:
		return "Poison Error: " + e.text
	case KindSend:
		return "Send Error: " + e.text
	}

	if e.kind.wrapsCause() {
		if e.cause != nil {
			if msg := e.cause.Error(); msg != "" {
				return msg
			}
		}
		return e.kind.String()
	}

	if e.kind < numKinds && messages[e.kind] != "" {
		return messages[e.kind]
	}
	return e.kind.String()
}

// Kind returns the kind of e.
func (e *Error) Kind() Kind {
	return e.kind
}

// Addr returns the peer address of KindInvalidPeerAddress and
// KindPeerAlreadyConnected errors.
func (e *Error) Addr() string {
	switch e.kind {
	case KindInvalidPeerAddress, KindPeerAlreadyConnected:
		return e.text
	default:
		return ""
	}
}

// PeerID returns the id of a KindPeerIDAlreadyUsed error.
func (e *Error) PeerID() uint64 {
	return e.id
}

// Detail returns the text captured from a poison or send failure.
func (e *Error) Detail() string {
	switch e.kind {
	case KindPoison, KindSend:
		return e.text
	default:
		return ""
	}
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is an *Error of the same kind. Targets of kinds
// without a payload, such as [ErrInvalidPacket], match every error of their
// kind. Targets of the address, peer id, poison and send kinds match only an
// equal payload, including an empty address or a zero id.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil || t.kind != e.kind {
		return false
	}
	if t.cause != nil {
		return false
	}
	if !t.kind.hasPayload() {
		return true
	}
	return t.text == e.text && t.id == e.id
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var p2pErr *Error
	if errors.As(err, &p2pErr) {
		return p2pErr.kind
	}
	return KindUnknown
}
