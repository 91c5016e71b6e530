// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package session runs the packet exchange with one connected peer.
package session

import (
	"bufio"
	"context"
	"errors"
	"net"
	"net/netip"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/luxfi/version"

	"github.com/luxfi/p2pnet"
	"github.com/luxfi/p2pnet/deadline"
	"github.com/luxfi/p2pnet/handshake"
	"github.com/luxfi/p2pnet/mailbox"
	"github.com/luxfi/p2pnet/packet"
)

const (
	disconnectingLog = "disconnecting from peer"
	droppingLog      = "dropping packet"
)

// Supervisor runs a single session. It is not reusable.
type Supervisor struct {
	config    *Config
	handler   Handler
	codec     packet.Codec
	validator *handshake.Validator
	outbound  *mailbox.Bounded[packet.Packet]

	remote atomic.Pointer[handshake.Handshake]
}

func NewSupervisor(config *Config, handler Handler) *Supervisor {
	if config.Log == nil {
		config.Log = log.NewNoOpLogger()
	}
	if config.Version == nil {
		config.Version = version.CurrentApp
	}
	if config.Tip == nil {
		config.Tip = func() (uint64, ids.ID) { return 0, ids.Empty }
	}
	if config.MaxPeers <= 0 {
		config.MaxPeers = handshake.DefaultMaxPeers
	}
	if config.Throttle != nil {
		handler = NewThrottledHandler(handler, config.Throttle, config.Log)
	}

	codec := packet.NewCodec()
	handshake.Register(codec)

	validator := &handshake.Validator{
		NetworkID: config.NetworkID,
		Genesis:   config.Genesis,
		MaxPeers:  config.MaxPeers,
		Version:   config.Version,
		Log:       config.Log,
	}
	if config.Registry != nil {
		validator.Registry = config.Registry
	}

	return &Supervisor{
		config:    config,
		handler:   handler,
		codec:     codec,
		validator: validator,
		outbound:  mailbox.NewBounded[packet.Packet](config.OutboundQueueSize),
	}
}

// Remote returns the handshake of the peer, or nil before the handshake
// completed.
func (s *Supervisor) Remote() *handshake.Handshake {
	return s.remote.Load()
}

// Send queues p for the peer. Packets queued before Run are sent right after
// the handshake.
func (s *Supervisor) Send(ctx context.Context, p packet.Packet) error {
	err := s.outbound.Send(ctx, p)
	var closedErr *mailbox.ClosedError[packet.Packet]
	if errors.As(err, &closedErr) {
		return p2pnet.FromAsyncSend(closedErr)
	}
	return err
}

// Run exchanges handshakes over conn and then serves the peer until the
// session fails or ctx is done. conn is closed when Run returns.
//
// Rate limited requests are dropped and the session continues. Every other
// error ends the session and is returned as an *p2pnet.Error, unless ctx
// ended it.
func (s *Supervisor) Run(ctx context.Context, conn net.Conn) error {
	defer func() {
		s.outbound.Close()
		_ = conn.Close()
	}()

	var (
		remoteAddr = addrPort(conn.RemoteAddr())
		r          = packet.NewReader(
			bufio.NewReaderSize(conn, s.config.ReadBufferSize),
			s.config.MaxPacketSize,
			s.codec,
		)
		w = bufio.NewWriterSize(conn, s.config.WriteBufferSize)
	)

	remote, err := deadline.Run(ctx, s.config.HandshakeTimeout, func(ctx context.Context) (*handshake.Handshake, error) {
		return s.handshake(ctx, remoteAddr, r, w)
	})
	if err != nil {
		return s.fail(ctx, remoteAddr, 0, err)
	}
	s.remote.Store(remote)
	defer s.release(remote.PeerID)

	s.config.Log.Debug("peer connected",
		log.Uint64("peerID", remote.PeerID),
		log.Stringer("remote", remoteAddr),
		log.Stringer("peerVersion", &remote.Version),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		s.outbound.Close()
		_ = conn.Close()
		return nil
	})
	g.Go(func() error {
		return s.readLoop(gctx, remote.PeerID, r)
	})
	g.Go(func() error {
		return s.writeLoop(gctx, w)
	})
	return s.fail(ctx, remoteAddr, remote.PeerID, g.Wait())
}

func (s *Supervisor) handshake(
	ctx context.Context,
	remoteAddr netip.AddrPort,
	r *packet.Reader,
	w *bufio.Writer,
) (*handshake.Handshake, error) {
	var (
		g      errgroup.Group
		remote *handshake.Handshake
	)
	g.Go(func() error {
		local, err := s.localHandshake()
		if err != nil {
			return err
		}
		return s.write(w, local, true)
	})
	g.Go(func() error {
		first, err := r.Read()
		if err != nil {
			return err
		}
		s.config.Metrics.Received(first)
		remote, err = s.validator.Validate(remoteAddr, first)
		return err
	})
	if err := g.Wait(); err != nil {
		if remote != nil {
			s.release(remote.PeerID)
		}
		return nil, err
	}

	// The deadline may have elapsed while the peer was being admitted.
	if err := ctx.Err(); err != nil {
		s.release(remote.PeerID)
		return nil, err
	}
	return remote, nil
}

func (s *Supervisor) localHandshake() (*handshake.Handshake, error) {
	height, top := s.config.Tip()
	h := &handshake.Handshake{
		Version:   *s.config.Version,
		NetworkID: s.config.NetworkID,
		PeerID:    s.config.PeerID,
		LocalPort: s.config.LocalPort,
		UTCTime:   uint64(time.Now().Unix()),
		Height:    height,
		TopHash:   top,
		Genesis:   s.config.Genesis,
	}
	if s.config.Registry != nil {
		peers, err := s.config.Registry.Addresses()
		if err != nil {
			return nil, err
		}
		if len(peers) > s.config.MaxPeers {
			peers = peers[:s.config.MaxPeers]
		}
		h.Peers = peers
	}
	return h, nil
}

func (s *Supervisor) readLoop(ctx context.Context, peerID uint64, r *packet.Reader) error {
	for {
		p, err := r.Read()
		if err == nil {
			s.config.Metrics.Received(p)
			err = s.handle(ctx, peerID, p)
		}
		if err == nil {
			continue
		}

		err = p2pnet.Lift(err)
		if p2pnet.ClassOf(err).Action() != p2pnet.ActionDrop {
			return err
		}

		s.config.Metrics.Error(err)
		s.config.Metrics.Drop(p2pnet.ClassOf(err).String())
		s.config.Log.Debug(droppingLog,
			log.Uint64("peerID", peerID),
			log.Err(err),
		)
	}
}

func (s *Supervisor) handle(ctx context.Context, peerID uint64, p packet.Packet) error {
	switch p := p.(type) {
	case *packet.Ping:
		return s.handler.HandlePing(ctx, peerID, p)
	case *packet.ChainRequest:
		response, err := s.handler.HandleChainRequest(ctx, peerID, p)
		if err != nil || response == nil {
			return err
		}
		return s.Send(ctx, response)
	case *packet.ChainResponse:
		return s.handler.HandleChainResponse(ctx, peerID, p)
	case *handshake.Handshake:
		s.config.Log.Debug("malformed handshake",
			log.Uint64("peerID", peerID),
			log.String("reason", "already received handshake"),
		)
		return p2pnet.ErrInvalidHandshake
	default:
		return p2pnet.ErrInvalidPacket
	}
}

func (s *Supervisor) writeLoop(ctx context.Context, w *bufio.Writer) error {
	for {
		p, err := s.outbound.Recv(ctx)
		if err != nil {
			return err
		}
		// Flush once nothing else is queued.
		if err := s.write(w, p, s.outbound.Len() == 0); err != nil {
			return err
		}
	}
}

func (s *Supervisor) write(w *bufio.Writer, p packet.Packet, flush bool) error {
	if err := packet.Write(w, p, s.config.MaxPacketSize); err != nil {
		return err
	}
	if flush {
		if err := w.Flush(); err != nil {
			return p2pnet.FromIO(err)
		}
	}
	s.config.Metrics.Sent(p)
	return nil
}

// fail converts the error that ended the session into what Run returns.
func (s *Supervisor) fail(ctx context.Context, remoteAddr netip.AddrPort, peerID uint64, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if err == nil {
		return nil
	}

	var elapsed *deadline.Elapsed
	if errors.As(err, &elapsed) {
		err = p2pnet.FromTimeout(elapsed)
	}
	p2pErr := p2pnet.AsError(err)
	class := p2pnet.ClassOf(p2pErr)

	s.config.Metrics.Error(p2pErr)
	s.config.Log.Debug(disconnectingLog,
		log.Uint64("peerID", peerID),
		log.Stringer("remote", remoteAddr),
		log.Stringer("errorKind", p2pErr.Kind()),
		log.Stringer("class", class),
		log.Stringer("action", class.Action()),
		log.Err(p2pErr),
	)
	return p2pErr
}

func (s *Supervisor) release(peerID uint64) {
	if s.config.Registry != nil {
		if err := s.config.Registry.Release(peerID); err != nil {
			s.config.Log.Warn("failed to release peer",
				log.Uint64("peerID", peerID),
				log.Err(err),
			)
		}
	}
	if s.config.Throttle != nil {
		if err := s.config.Throttle.Forget(peerID); err != nil {
			s.config.Log.Warn("failed to forget peer",
				log.Uint64("peerID", peerID),
				log.Err(err),
			)
		}
	}
}

func addrPort(addr net.Addr) netip.AddrPort {
	if tcpAddr, ok := addr.(*net.TCPAddr); ok {
		return tcpAddr.AddrPort()
	}
	ap, _ := netip.ParseAddrPort(addr.String())
	return ap
}
