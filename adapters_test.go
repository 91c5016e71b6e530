// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package p2pnet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/p2pnet/convert"
	"github.com/luxfi/p2pnet/deadline"
	"github.com/luxfi/p2pnet/lock"
	"github.com/luxfi/p2pnet/mailbox"
	"github.com/luxfi/p2pnet/reader"
)

func TestFromConversion(t *testing.T) {
	require := require.New(t)

	var buf [4]byte
	err := convert.Fill(buf[:], []byte{1, 2, 3})

	var lengthErr *convert.LengthError
	require.ErrorAs(err, &lengthErr)

	p2pErr := FromConversion(lengthErr)
	require.Equal(KindConversion, p2pErr.Kind())
	require.Equal("could not convert slice to array", p2pErr.Error())

	var found *convert.LengthError
	require.ErrorAs(p2pErr, &found)
	require.Equal(4, found.Expected)
	require.Equal(3, found.Actual)
}

func TestFromReader(t *testing.T) {
	require := require.New(t)

	r := reader.New([]byte{0x00})
	_, err := r.Uint32()

	var readerErr *reader.Error
	require.ErrorAs(err, &readerErr)

	p2pErr := FromReader(readerErr)
	require.Equal(KindReader, p2pErr.Kind())
	require.Equal(readerErr.Error(), p2pErr.Error())
	require.ErrorIs(p2pErr, readerErr)
}

func TestFromPoison(t *testing.T) {
	require := require.New(t)

	m := lock.New(0)
	require.Panics(func() {
		_ = m.With(func(*int) error {
			panic("boom")
		})
	})

	err := m.With(func(*int) error { return nil })
	var poisonErr *lock.PoisonError[int]
	require.ErrorAs(err, &poisonErr)

	p2pErr := FromPoison(poisonErr)
	require.Equal(KindPoison, p2pErr.Kind())
	require.Equal("Poison Error: "+poisonErr.Error(), p2pErr.Error())
	require.Equal("Poison Error: poisoned lock: another task failed inside", p2pErr.Error())
}

func TestSendAdaptersShareKind(t *testing.T) {
	require := require.New(t)

	unbounded := mailbox.NewUnbounded[[]byte]()
	unbounded.Close()
	err := unbounded.Send([]byte{1})
	var sendErr *mailbox.SendError[[]byte]
	require.ErrorAs(err, &sendErr)

	bounded := mailbox.NewBounded[[]byte](1)
	bounded.Close()
	err = bounded.Send(context.Background(), []byte{1})
	var closedErr *mailbox.ClosedError[[]byte]
	require.ErrorAs(err, &closedErr)

	blocking := FromSend(sendErr)
	async := FromAsyncSend(closedErr)
	require.Equal(KindSend, blocking.Kind())
	require.Equal(blocking.Kind(), async.Kind())
	require.Equal("Send Error: sending on a closed channel", blocking.Error())
	require.Equal("Send Error: channel closed", async.Error())
}

func TestFromTimeout(t *testing.T) {
	require := require.New(t)

	_, err := deadline.Run(context.Background(), time.Millisecond, func(ctx context.Context) (struct{}, error) {
		<-ctx.Done()
		return struct{}{}, ctx.Err()
	})
	var elapsed *deadline.Elapsed
	require.ErrorAs(err, &elapsed)

	p2pErr := FromTimeout(elapsed)
	require.Equal(KindTimeout, p2pErr.Kind())
	require.Equal("deadline has elapsed", p2pErr.Error())

	var found *deadline.Elapsed
	require.ErrorAs(p2pErr, &found)
	require.Equal(time.Millisecond, found.After)
	require.ErrorIs(p2pErr, context.DeadlineExceeded)
}

func TestLift(t *testing.T) {
	lengthErr := &convert.LengthError{Expected: 32, Actual: 1}
	tests := []struct {
		name         string
		err          error
		expectedKind Kind
		expectedText string
	}{
		{
			name:         "existing error",
			err:          fmt.Errorf("context: %w", ErrInvalidPacketSize),
			expectedKind: KindInvalidPacketSize,
			expectedText: "Packet size exceed limit",
		},
		{
			name:         "reader error",
			err:          &reader.Error{Kind: reader.ErrInvalidValue},
			expectedKind: KindReader,
			expectedText: "Invalid value",
		},
		{
			name:         "length error",
			err:          lengthErr,
			expectedKind: KindConversion,
			expectedText: "could not convert slice to array",
		},
		{
			name:         "reader wrapping a length error",
			err:          &reader.Error{Kind: reader.ErrTryInto, Err: lengthErr},
			expectedKind: KindReader,
		},
		{
			name:         "elapsed",
			err:          &deadline.Elapsed{After: time.Second},
			expectedKind: KindTimeout,
			expectedText: "deadline has elapsed",
		},
		{
			name:         "poisoned",
			err:          fmt.Errorf("registry: %w", lock.ErrPoisoned),
			expectedKind: KindPoison,
			expectedText: "Poison Error: registry: poisoned lock: another task failed inside",
		},
		{
			name:         "closed mailbox",
			err:          &mailbox.ClosedError[int]{Value: 1},
			expectedKind: KindSend,
			expectedText: "Send Error: channel closed",
		},
		{
			name:         "eof",
			err:          io.EOF,
			expectedKind: KindIO,
			expectedText: "EOF",
		},
		{
			name:         "closed conn",
			err:          net.ErrClosed,
			expectedKind: KindIO,
		},
		{
			name:         "anything else",
			err:          errors.New("connection reset by peer"),
			expectedKind: KindIO,
			expectedText: "connection reset by peer",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			converted := AsError(tt.err)
			require.NotNil(converted)
			require.Equal(tt.expectedKind, converted.Kind())
			if tt.expectedText != "" {
				require.Equal(tt.expectedText, converted.Error())
			}

			lifted := Lift(tt.err)
			require.Error(lifted)
			require.Equal(tt.expectedKind, KindOf(lifted))
		})
	}
}

func TestLiftNil(t *testing.T) {
	require := require.New(t)

	liftNil := func() error {
		return Lift(nil)
	}
	require.NoError(liftNil())

	var err error = Lift(nil)
	require.True(err == nil)
	require.Nil(AsError(nil))
}

func TestLiftKeepsIdentity(t *testing.T) {
	require := require.New(t)

	err := PeerIDAlreadyUsed(9)
	wrapped := fmt.Errorf("handshake: %w", err)
	require.Same(err, AsError(wrapped))
	require.Equal(error(err), Lift(wrapped))
}
