// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package packet

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/ids"

	"github.com/luxfi/p2pnet"
)

func frame(body []byte) []byte {
	b := binary.BigEndian.AppendUint32(nil, uint32(len(body)))
	return append(b, body...)
}

func TestReaderFailures(t *testing.T) {
	ping := Encode(&Ping{Height: 1})

	tests := []struct {
		name         string
		stream       []byte
		maxSize      uint32
		expectedErr  error
		expectedKind p2pnet.Kind
	}{
		{
			name:         "clean eof",
			stream:       nil,
			expectedErr:  p2pnet.ErrDisconnected,
			expectedKind: p2pnet.KindDisconnected,
		},
		{
			name:         "eof inside length",
			stream:       []byte{0, 0},
			expectedErr:  io.ErrUnexpectedEOF,
			expectedKind: p2pnet.KindIO,
		},
		{
			name:         "zero length",
			stream:       []byte{0, 0, 0, 0},
			expectedErr:  p2pnet.ErrInvalidPacketSize,
			expectedKind: p2pnet.KindInvalidPacketSize,
		},
		{
			name:         "length above limit",
			stream:       frame(ping),
			maxSize:      uint32(len(ping) - 1),
			expectedErr:  p2pnet.ErrInvalidPacketSize,
			expectedKind: p2pnet.KindInvalidPacketSize,
		},
		{
			name:         "eof inside body",
			stream:       frame(ping)[:LenSize+3],
			expectedErr:  io.ErrUnexpectedEOF,
			expectedKind: p2pnet.KindIO,
		},
		{
			name:         "unknown id",
			stream:       frame([]byte{0xff}),
			expectedErr:  p2pnet.ErrInvalidPacket,
			expectedKind: p2pnet.KindInvalidPacket,
		},
		{
			name:         "short body",
			stream:       frame(ping[:len(ping)-1]),
			expectedKind: p2pnet.KindReader,
		},
		{
			name:         "trailing bytes",
			stream:       frame(append(append([]byte{}, ping...), 0)),
			expectedErr:  p2pnet.ErrInvalidPacketNotFullRead,
			expectedKind: p2pnet.KindInvalidPacketNotFullRead,
		},
		{
			name:         "too many locator hashes",
			stream:       frame([]byte{byte(ChainRequestID), MaxChainRequestBlocks + 1}),
			expectedKind: p2pnet.KindReader,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			r := NewReader(bytes.NewReader(tt.stream), tt.maxSize, NewCodec())
			p, err := r.Read()
			require.Nil(p)
			if tt.expectedErr != nil {
				require.ErrorIs(err, tt.expectedErr)
			}
			require.Equal(tt.expectedKind, p2pnet.KindOf(err))
		})
	}
}

func TestWriteRead(t *testing.T) {
	require := require.New(t)

	packets := []Packet{
		&Ping{
			Height:    12,
			TopHash:   ids.GenerateTestID(),
			PeerCount: 3,
		},
		&ChainRequest{
			Blocks: []ids.ID{ids.GenerateTestID(), ids.GenerateTestID()},
		},
		&ChainResponse{
			CommonHeight: 9,
			Blocks:       []ids.ID{ids.GenerateTestID()},
		},
		&ChainRequest{},
		&ChainResponse{CommonHeight: 4},
	}

	var stream bytes.Buffer
	for _, p := range packets {
		require.NoError(Write(&stream, p, 0))
	}

	r := NewReader(&stream, 0, NewCodec())
	for _, expected := range packets {
		p, err := r.Read()
		require.NoError(err)
		require.Equal(expected, p)
	}

	_, err := r.Read()
	require.ErrorIs(err, p2pnet.ErrDisconnected)
}

func TestWriteTooLarge(t *testing.T) {
	require := require.New(t)

	var stream bytes.Buffer
	err := Write(&stream, &ChainRequest{Blocks: make([]ids.ID, 4)}, 16)
	require.ErrorIs(err, p2pnet.ErrInvalidPacketSize)
	require.Zero(stream.Len())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errWrite
}

var errWrite = errors.New("broken pipe")

func TestWriteIOFailure(t *testing.T) {
	require := require.New(t)

	err := Write(failingWriter{}, &Ping{}, 0)
	require.ErrorIs(err, errWrite)
	require.Equal(p2pnet.KindIO, p2pnet.KindOf(err))
}

func TestIDString(t *testing.T) {
	require := require.New(t)

	require.Equal("chain_request", ChainRequestID.String())
	require.Equal("unknown(9)", ID(9).String())
}
