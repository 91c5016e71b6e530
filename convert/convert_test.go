// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package convert

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/ids"
)

func TestFill(t *testing.T) {
	tests := []struct {
		name        string
		src         []byte
		expectedErr *LengthError
	}{
		{
			name: "exact",
			src:  []byte{1, 2, 3, 4},
		},
		{
			name:        "short",
			src:         []byte{1, 2, 3},
			expectedErr: &LengthError{Expected: 4, Actual: 3},
		},
		{
			name:        "long",
			src:         []byte{1, 2, 3, 4, 5},
			expectedErr: &LengthError{Expected: 4, Actual: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			var arr [4]byte
			err := Fill(arr[:], tt.src)
			if tt.expectedErr == nil {
				require.NoError(err)
				require.Equal([4]byte(tt.src), arr)
				return
			}

			var lengthErr *LengthError
			require.ErrorAs(err, &lengthErr)
			require.Equal(tt.expectedErr, lengthErr)
			require.Equal("could not convert slice to array", err.Error())
			require.Zero(arr)
		})
	}
}

func TestIntegers(t *testing.T) {
	require := require.New(t)

	v16, err := Uint16([]byte{0x23, 0x28})
	require.NoError(err)
	require.Equal(uint16(9000), v16)

	v32, err := Uint32([]byte{0, 0, 1, 0})
	require.NoError(err)
	require.Equal(uint32(256), v32)

	v64, err := Uint64([]byte{0, 0, 0, 0, 0, 0, 0, 42})
	require.NoError(err)
	require.Equal(uint64(42), v64)

	_, err = Uint32([]byte{1, 2, 3})
	require.ErrorAs(err, new(*LengthError))
}

func TestID(t *testing.T) {
	require := require.New(t)

	expected := ids.GenerateTestID()
	id, err := ID(expected[:])
	require.NoError(err)
	require.Equal(expected, id)

	_, err = ID(expected[:31])
	var lengthErr *LengthError
	require.ErrorAs(err, &lengthErr)
	require.Equal(ids.IDLen, lengthErr.Expected)
	require.Equal(31, lengthErr.Actual)
	require.Equal("expected 32 bytes, got 31", lengthErr.Detail())
}
