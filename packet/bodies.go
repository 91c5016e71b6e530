// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package packet

import (
	"github.com/luxfi/ids"

	"github.com/luxfi/p2pnet/reader"
)

const (
	// MaxChainRequestBlocks bounds the locator hashes of a chain request.
	MaxChainRequestBlocks = 64
	// MaxChainResponseBlocks bounds the hashes returned for a chain request.
	MaxChainResponseBlocks = 2000
)

var (
	_ Packet = (*Ping)(nil)
	_ Packet = (*ChainRequest)(nil)
	_ Packet = (*ChainResponse)(nil)
)

// Ping advertises the sender's chain tip.
type Ping struct {
	Height    uint64
	TopHash   ids.ID
	PeerCount uint32
}

func (*Ping) ID() ID {
	return PingID
}

func (p *Ping) Marshal(w *reader.Writer) {
	w.WriteUint64(p.Height)
	w.WriteHash(p.TopHash)
	w.WriteUint32(p.PeerCount)
}

func (p *Ping) Unmarshal(r *reader.Reader) error {
	var err error
	if p.Height, err = r.Uint64(); err != nil {
		return err
	}
	if p.TopHash, err = r.Hash(); err != nil {
		return err
	}
	p.PeerCount, err = r.Uint32()
	return err
}

// ChainRequest asks for the blocks following the first known locator hash.
type ChainRequest struct {
	Blocks []ids.ID
}

func (*ChainRequest) ID() ID {
	return ChainRequestID
}

func (c *ChainRequest) Marshal(w *reader.Writer) {
	writeHashes(w, c.Blocks)
}

func (c *ChainRequest) Unmarshal(r *reader.Reader) error {
	var err error
	c.Blocks, err = readHashes(r, MaxChainRequestBlocks)
	return err
}

// ChainResponse answers a [ChainRequest] with the height of the common
// ancestor and the hashes that follow it.
type ChainResponse struct {
	CommonHeight uint64
	Blocks       []ids.ID
}

func (*ChainResponse) ID() ID {
	return ChainResponseID
}

func (c *ChainResponse) Marshal(w *reader.Writer) {
	w.WriteUint64(c.CommonHeight)
	writeHashes(w, c.Blocks)
}

func (c *ChainResponse) Unmarshal(r *reader.Reader) error {
	var err error
	if c.CommonHeight, err = r.Uint64(); err != nil {
		return err
	}
	c.Blocks, err = readHashes(r, MaxChainResponseBlocks)
	return err
}

func writeHashes(w *reader.Writer, hashes []ids.ID) {
	w.WriteVarint(uint64(len(hashes)))
	for _, h := range hashes {
		w.WriteHash(h)
	}
}

func readHashes(r *reader.Reader, limit int) ([]ids.ID, error) {
	n, err := r.Len(limit)
	if err != nil || n == 0 {
		return nil, err
	}
	hashes := make([]ids.ID, n)
	for i := range hashes {
		if hashes[i], err = r.Hash(); err != nil {
			return nil, err
		}
	}
	return hashes, nil
}
