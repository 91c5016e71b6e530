// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package convert turns variable-length byte slices into fixed-size values.
package convert

import (
	"encoding/binary"
	"fmt"

	"github.com/luxfi/ids"
)

// LengthError is returned when a slice cannot fill a fixed-size array because
// its length differs from the array's.
type LengthError struct {
	Expected int
	Actual   int
}

func (*LengthError) Error() string {
	return "could not convert slice to array"
}

// Detail describes both lengths. It is not part of Error so the rendered
// message stays stable for operators.
func (e *LengthError) Detail() string {
	return fmt.Sprintf("expected %d bytes, got %d", e.Expected, e.Actual)
}

// Fill copies src into dst. dst is expected to be a full fixed-size array
// sliced with [:].
func Fill(dst, src []byte) error {
	if len(dst) != len(src) {
		return &LengthError{
			Expected: len(dst),
			Actual:   len(src),
		}
	}
	copy(dst, src)
	return nil
}

func Uint16(b []byte) (uint16, error) {
	var arr [2]byte
	if err := Fill(arr[:], b); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(arr[:]), nil
}

func Uint32(b []byte) (uint32, error) {
	var arr [4]byte
	if err := Fill(arr[:], b); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(arr[:]), nil
}

func Uint64(b []byte) (uint64, error) {
	var arr [8]byte
	if err := Fill(arr[:], b); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(arr[:]), nil
}

// ID converts a 32 byte slice into a hash.
func ID(b []byte) (ids.ID, error) {
	var id ids.ID
	if err := Fill(id[:], b); err != nil {
		return ids.Empty, err
	}
	return id, nil
}
