// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package reader decodes and encodes the bodies of peer packets.
//
// Fixed-width integers are big-endian. Variable-length fields (byte strings,
// strings and list lengths) are prefixed with a protobuf varint.
package reader

import (
	"errors"
	"unicode/utf8"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/luxfi/ids"
	"github.com/luxfi/p2pnet/convert"
)

// MaxStringLen bounds strings read with [Reader.Text].
const MaxStringLen = 255

// ErrorKind identifies why a packet body could not be read.
type ErrorKind uint8

const (
	// ErrInvalidSize is returned when the body is shorter than the field
	// being read, or a length prefix is out of range.
	ErrInvalidSize ErrorKind = iota + 1
	// ErrInvalidValue is returned when a field decodes to a value outside its
	// domain, such as a bool that is neither 0 nor 1.
	ErrInvalidValue
	// ErrInvalidString is returned for strings that are not valid UTF-8.
	ErrInvalidString
	// ErrTryInto is returned when bytes could not be converted into a fixed
	// size value.
	ErrTryInto
)

func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidSize:
		return "Invalid size"
	case ErrInvalidValue:
		return "Invalid value"
	case ErrInvalidString:
		return "Invalid string"
	case ErrTryInto:
		return "Error while converting bytes"
	default:
		return "Unknown reader error"
	}
}

// Error is a packet-reader failure.
type Error struct {
	Kind ErrorKind
	// Err is the underlying failure, if any.
	Err error
}

func (e *Error) Error() string {
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind) *Error {
	return &Error{Kind: kind}
}

// Reader consumes a packet body from the front.
type Reader struct {
	bytes []byte
	total int
}

func New(b []byte) *Reader {
	return &Reader{
		bytes: b,
		total: len(b),
	}
}

// Remaining returns how many bytes have not been read yet.
func (r *Reader) Remaining() int {
	return len(r.bytes)
}

// Total returns the size of the body given to [New].
func (r *Reader) Total() int {
	return r.total
}

func (r *Reader) next(n int) ([]byte, error) {
	if n < 0 || n > len(r.bytes) {
		return nil, newError(ErrInvalidSize)
	}
	b := r.bytes[:n]
	r.bytes = r.bytes[n:]
	return b, nil
}

func (r *Reader) Uint8() (uint8, error) {
	b, err := r.next(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) Bool() (bool, error) {
	v, err := r.Uint8()
	if err != nil {
		return false, err
	}
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, newError(ErrInvalidValue)
	}
}

func (r *Reader) Uint16() (uint16, error) {
	b, err := r.next(2)
	if err != nil {
		return 0, err
	}
	v, err := convert.Uint16(b)
	if err != nil {
		return 0, tryInto(err)
	}
	return v, nil
}

func (r *Reader) Uint32() (uint32, error) {
	b, err := r.next(4)
	if err != nil {
		return 0, err
	}
	v, err := convert.Uint32(b)
	if err != nil {
		return 0, tryInto(err)
	}
	return v, nil
}

func (r *Reader) Uint64() (uint64, error) {
	b, err := r.next(8)
	if err != nil {
		return 0, err
	}
	v, err := convert.Uint64(b)
	if err != nil {
		return 0, tryInto(err)
	}
	return v, nil
}

// Hash reads a 32 byte hash.
func (r *Reader) Hash() (ids.ID, error) {
	b, err := r.next(ids.IDLen)
	if err != nil {
		return ids.Empty, err
	}
	id, err := convert.ID(b)
	if err != nil {
		return ids.Empty, tryInto(err)
	}
	return id, nil
}

// Varint reads a protobuf varint.
func (r *Reader) Varint() (uint64, error) {
	v, n := protowire.ConsumeVarint(r.bytes)
	if n < 0 {
		return 0, &Error{
			Kind: ErrInvalidSize,
			Err:  protowire.ParseError(n),
		}
	}
	r.bytes = r.bytes[n:]
	return v, nil
}

// Len reads a varint list or byte length and checks it against limit.
func (r *Reader) Len(limit int) (int, error) {
	v, err := r.Varint()
	if err != nil {
		return 0, err
	}
	if v > uint64(limit) {
		return 0, newError(ErrInvalidSize)
	}
	return int(v), nil
}

// Bytes reads a length-prefixed byte string. The returned slice aliases the
// body.
func (r *Reader) Bytes(limit int) ([]byte, error) {
	n, err := r.Len(limit)
	if err != nil {
		return nil, err
	}
	return r.next(n)
}

// Fill reads exactly len(dst) bytes into dst.
func (r *Reader) Fill(dst []byte) error {
	b, err := r.next(len(dst))
	if err != nil {
		return err
	}
	if err := convert.Fill(dst, b); err != nil {
		return tryInto(err)
	}
	return nil
}

// Text reads a length-prefixed UTF-8 string of at most [MaxStringLen] bytes.
func (r *Reader) Text() (string, error) {
	b, err := r.Bytes(MaxStringLen)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", newError(ErrInvalidString)
	}
	return string(b), nil
}

func tryInto(err error) *Error {
	var lengthErr *convert.LengthError
	if !errors.As(err, &lengthErr) {
		return &Error{Kind: ErrInvalidValue, Err: err}
	}
	return &Error{
		Kind: ErrTryInto,
		Err:  lengthErr,
	}
}
