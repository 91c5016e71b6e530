// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package reader

import (
	"encoding/binary"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/luxfi/ids"
)

// Writer appends fields in the layout [Reader] expects.
type Writer struct {
	bytes []byte
}

func NewWriter(capacity int) *Writer {
	return &Writer{
		bytes: make([]byte, 0, capacity),
	}
}

func (w *Writer) Bytes() []byte {
	return w.bytes
}

func (w *Writer) Len() int {
	return len(w.bytes)
}

func (w *Writer) WriteUint8(v uint8) {
	w.bytes = append(w.bytes, v)
}

func (w *Writer) WriteBool(v bool) {
	if v {
		w.WriteUint8(1)
		return
	}
	w.WriteUint8(0)
}

func (w *Writer) WriteUint16(v uint16) {
	w.bytes = binary.BigEndian.AppendUint16(w.bytes, v)
}

func (w *Writer) WriteUint32(v uint32) {
	w.bytes = binary.BigEndian.AppendUint32(w.bytes, v)
}

func (w *Writer) WriteUint64(v uint64) {
	w.bytes = binary.BigEndian.AppendUint64(w.bytes, v)
}

func (w *Writer) WriteHash(id ids.ID) {
	w.bytes = append(w.bytes, id[:]...)
}

func (w *Writer) WriteFixed(b []byte) {
	w.bytes = append(w.bytes, b...)
}

func (w *Writer) WriteVarint(v uint64) {
	w.bytes = protowire.AppendVarint(w.bytes, v)
}

func (w *Writer) WriteBytes(b []byte) {
	w.bytes = protowire.AppendBytes(w.bytes, b)
}

func (w *Writer) WriteText(s string) {
	w.bytes = protowire.AppendString(w.bytes, s)
}
