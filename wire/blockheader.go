// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"io"
	"time"

	"github.com/ash-chain/ashd/daghash"
)

// BlockHeaderPayload is the number of bytes a block header takes up:
// Version (4) + PrevHash (32) + MerkleRoot (32) + EpochBlockHash (32) +
// ExtendedMetadataHash (32) + Timestamp (8) + Bits (4) + Height (8) +
// Nonce (8).
const BlockHeaderPayload = 4 + 4*daghash.HashSize + 8 + 4 + 8 + 8

// BlockHeader defines information about a block: linkage to its single
// predecessor, the merkle commitment to its transactions, the periodic
// epoch-block checkpoint reference (spec.md §4.5, GLOSSARY "Epoch block"),
// the extended-metadata commitment, and the proof-of-work fields a miner
// searches over.
type BlockHeader struct {
	// Version of the block. Fixed at 1 except in development-network mode
	// (spec.md §4.5 step 3, §6 blockVersion option).
	Version int32

	// PrevHash is the hash of the previous block in the chain.
	PrevHash daghash.Hash

	// MerkleRoot commits to the ordered set of transactions in the block.
	MerkleRoot daghash.Hash

	// EpochBlockHash is the periodic checkpoint reference. It is set to
	// PrevHash when Height is a multiple of the epoch size, and inherited
	// from the previous header otherwise (spec.md §4.5 step 3).
	EpochBlockHash daghash.Hash

	// ExtendedMetadataHash commits to block metadata outside the
	// transaction set (spec.md §4.5 step 3).
	ExtendedMetadataHash daghash.Hash

	// Timestamp of block creation, corrected against the median time of
	// the recent chain (spec.md §4.5 step 3).
	Timestamp time.Time

	// Bits is the compact proof-of-work difficulty target.
	Bits uint32

	// Height is this block's height above genesis.
	Height uint64

	// Nonce is the value a miner searches over to satisfy the
	// proof-of-work target.
	Nonce uint64
}

// BlockHash computes the block identifier hash for the given block header.
func (h *BlockHeader) BlockHash() *daghash.Hash {
	buf := bytes.NewBuffer(make([]byte, 0, BlockHeaderPayload))
	_ = writeBlockHeader(buf, h)
	return daghash.DoubleHashP(buf.Bytes())
}

// SerializeSize returns the number of bytes it would take to serialize the
// block header.
func (h *BlockHeader) SerializeSize() int {
	return BlockHeaderPayload
}

// Serialize encodes the header to w using the canonical on-disk format.
func (h *BlockHeader) Serialize(w io.Writer) error {
	return writeBlockHeader(w, h)
}

// Deserialize decodes a header from r into h.
func (h *BlockHeader) Deserialize(r io.Reader) error {
	return readBlockHeader(r, h)
}

func writeBlockHeader(w io.Writer, h *BlockHeader) error {
	if err := writeElement(w, uint32(h.Version)); err != nil {
		return err
	}
	for _, hash := range []*daghash.Hash{&h.PrevHash, &h.MerkleRoot, &h.EpochBlockHash, &h.ExtendedMetadataHash} {
		if err := writeHash(w, hash); err != nil {
			return err
		}
	}
	if err := writeUint64(w, uint64(h.Timestamp.Unix())); err != nil {
		return err
	}
	if err := writeElement(w, h.Bits); err != nil {
		return err
	}
	if err := writeUint64(w, h.Height); err != nil {
		return err
	}
	return writeUint64(w, h.Nonce)
}

func readBlockHeader(r io.Reader, h *BlockHeader) error {
	var version uint32
	if err := readElement(r, &version); err != nil {
		return err
	}
	h.Version = int32(version)

	for _, hash := range []*daghash.Hash{&h.PrevHash, &h.MerkleRoot, &h.EpochBlockHash, &h.ExtendedMetadataHash} {
		if err := readHash(r, hash); err != nil {
			return err
		}
	}

	var ts uint64
	if err := readUint64(r, &ts); err != nil {
		return err
	}
	h.Timestamp = time.Unix(int64(ts), 0).UTC()

	if err := readElement(r, &h.Bits); err != nil {
		return err
	}
	if err := readUint64(r, &h.Height); err != nil {
		return err
	}
	return readUint64(r, &h.Nonce)
}
