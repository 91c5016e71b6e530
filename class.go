// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package p2pnet

// Class groups kinds by how a session should react to them.
type Class uint8

const (
	// ClassProtocol is a peer breaking the handshake or identity rules.
	ClassProtocol Class = iota
	// ClassStructural is a malformed packet on the wire.
	ClassStructural
	// ClassResource is a local or transport failure.
	ClassResource
	// ClassRateLimit is a peer asking too often.
	ClassRateLimit
	// ClassTimeout is an operation that outlived its deadline.
	ClassTimeout
)

func (c Class) String() string {
	switch c {
	case ClassProtocol:
		return "protocol"
	case ClassStructural:
		return "structural"
	case ClassResource:
		return "resource"
	case ClassRateLimit:
		return "rate_limit"
	case ClassTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Action is what a session does after an error of a given class.
type Action uint8

const (
	// ActionDisconnect ends the session with the peer.
	ActionDisconnect Action = iota
	// ActionDrop discards the offending request and keeps the session.
	ActionDrop
	// ActionSurface returns the error to the caller, which decides.
	ActionSurface
)

func (a Action) String() string {
	switch a {
	case ActionDisconnect:
		return "disconnect"
	case ActionDrop:
		return "drop"
	case ActionSurface:
		return "surface"
	default:
		return "unknown"
	}
}

// Class returns the class of k. Kinds outside the known set are resource
// failures.
func (k Kind) Class() Class {
	switch k {
	case KindDisconnected,
		KindInvalidHandshake,
		KindExpectedHandshake,
		KindInvalidPeerAddress,
		KindInvalidNetworkID,
		KindPeerIDAlreadyUsed,
		KindPeerAlreadyConnected:
		return ClassProtocol
	case KindInvalidPacket,
		KindInvalidPacketSize,
		KindInvalidPacketNotFullRead:
		return ClassStructural
	case KindRequestSyncChainTooFast:
		return ClassRateLimit
	case KindTimeout:
		return ClassTimeout
	default:
		return ClassResource
	}
}

// Action returns the recommended reaction to errors of class c.
func (c Class) Action() Action {
	switch c {
	case ClassProtocol, ClassStructural:
		return ActionDisconnect
	case ClassRateLimit:
		return ActionDrop
	default:
		return ActionSurface
	}
}

// ClassOf classifies any error. Errors that are not an *Error are resource
// failures.
func ClassOf(err error) Class {
	return KindOf(err).Class()
}
