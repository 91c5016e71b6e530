// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package packet

import (
	"encoding/binary"
	"errors"
	"io"
	"net"

	"github.com/luxfi/constants"

	"github.com/luxfi/p2pnet"
	"github.com/luxfi/p2pnet/convert"
	"github.com/luxfi/p2pnet/reader"
)

// LenSize is the size of the length prefix of a frame.
const LenSize = 4

// DefaultMaxSize bounds a packet body when no other limit is configured.
const DefaultMaxSize = uint32(constants.DefaultMaxMessageSize)

// Reader reads framed packets from a stream.
type Reader struct {
	r       io.Reader
	maxSize uint32
	codec   Codec
	lenBuf  [LenSize]byte
}

// NewReader returns a Reader that rejects bodies larger than maxSize. A
// maxSize of zero means [DefaultMaxSize].
func NewReader(r io.Reader, maxSize uint32, codec Codec) *Reader {
	if maxSize == 0 {
		maxSize = DefaultMaxSize
	}
	return &Reader{
		r:       r,
		maxSize: maxSize,
		codec:   codec,
	}
}

// Read returns the next packet.
//
// A stream that ends cleanly before a frame starts is reported as
// [p2pnet.ErrDisconnected]. A stream that ends inside a frame is an I/O
// failure.
func (r *Reader) Read() (Packet, error) {
	if _, err := io.ReadFull(r.r, r.lenBuf[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, p2pnet.ErrDisconnected
		}
		return nil, p2pnet.FromIO(err)
	}

	size, err := readLen(r.lenBuf[:], r.maxSize)
	if err != nil {
		return nil, err
	}

	body := make([]byte, size)
	if _, err := io.ReadFull(r.r, body); err != nil {
		return nil, p2pnet.FromIO(err)
	}
	return Decode(body, r.codec)
}

// Decode parses a body, ID byte included.
func Decode(body []byte, codec Codec) (Packet, error) {
	if len(body) == 0 {
		return nil, p2pnet.ErrInvalidPacketSize
	}

	newPacket, ok := codec[ID(body[0])]
	if !ok {
		return nil, p2pnet.ErrInvalidPacket
	}

	p := newPacket()
	r := reader.New(body[1:])
	if err := p.Unmarshal(r); err != nil {
		return nil, p2pnet.Lift(err)
	}
	if r.Remaining() != 0 {
		return nil, p2pnet.ErrInvalidPacketNotFullRead
	}
	return p, nil
}

// Encode returns the body of p, ID byte included.
func Encode(p Packet) []byte {
	w := reader.NewWriter(64)
	w.WriteUint8(uint8(p.ID()))
	p.Marshal(w)
	return w.Bytes()
}

// Write frames p and writes it to w. A maxSize of zero means
// [DefaultMaxSize].
func Write(w io.Writer, p Packet, maxSize uint32) error {
	if maxSize == 0 {
		maxSize = DefaultMaxSize
	}

	body := Encode(p)
	lenBytes, err := writeLen(uint32(len(body)), maxSize)
	if err != nil {
		return err
	}

	buf := net.Buffers{lenBytes[:], body}
	if _, err := buf.WriteTo(w); err != nil {
		return p2pnet.FromIO(err)
	}
	return nil
}

func readLen(b []byte, maxSize uint32) (uint32, error) {
	size, err := convert.Uint32(b)
	if err != nil {
		return 0, p2pnet.Lift(err)
	}
	if size == 0 || size > maxSize {
		return 0, p2pnet.ErrInvalidPacketSize
	}
	return size, nil
}

func writeLen(size, maxSize uint32) ([LenSize]byte, error) {
	var b [LenSize]byte
	if size == 0 || size > maxSize {
		return b, p2pnet.ErrInvalidPacketSize
	}
	binary.BigEndian.PutUint32(b[:], size)
	return b, nil
}
