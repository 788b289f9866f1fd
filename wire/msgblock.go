// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"io"

	"github.com/ash-chain/ashd/daghash"
)

// defaultTransactionAlloc is the default size used for pre-allocating the
// transaction slice during block deserialization.
const defaultTransactionAlloc = 2048

// MsgBlock implements a fully assembled block: the header plus the ordered
// transaction list, with the coinbase always occupying index 0
// (spec.md §4.5 step 5).
type MsgBlock struct {
	Header       BlockHeader
	Transactions []*MsgTx
}

// NewMsgBlock returns a new block message with the provided header and no
// transactions.
func NewMsgBlock(header *BlockHeader) *MsgBlock {
	return &MsgBlock{
		Header:       *header,
		Transactions: make([]*MsgTx, 0, defaultTransactionAlloc),
	}
}

// AddTransaction adds a transaction to the message.
func (msg *MsgBlock) AddTransaction(tx *MsgTx) {
	msg.Transactions = append(msg.Transactions, tx)
}

// SerializeSize returns the number of bytes it would take to serialize the
// block.
func (msg *MsgBlock) SerializeSize() int {
	n := msg.Header.SerializeSize() + VarIntSerializeSize(uint64(len(msg.Transactions)))
	for _, tx := range msg.Transactions {
		n += tx.SerializeSize()
	}
	return n
}

// Serialize encodes the block to w.
func (msg *MsgBlock) Serialize(w io.Writer) error {
	if err := writeBlockHeader(w, &msg.Header); err != nil {
		return err
	}
	if err := WriteVarInt(w, uint64(len(msg.Transactions))); err != nil {
		return err
	}
	for _, tx := range msg.Transactions {
		if err := tx.Serialize(w); err != nil {
			return err
		}
	}
	return nil
}

// Deserialize decodes a block from r into msg.
func (msg *MsgBlock) Deserialize(r io.Reader) error {
	if err := readBlockHeader(r, &msg.Header); err != nil {
		return err
	}
	count, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	msg.Transactions = make([]*MsgTx, count)
	for i := range msg.Transactions {
		tx := &MsgTx{}
		if err := tx.Deserialize(r); err != nil {
			return err
		}
		msg.Transactions[i] = tx
	}
	return nil
}

// BlockHash returns the hash of the block's header.
func (msg *MsgBlock) BlockHash() *daghash.Hash {
	return msg.Header.BlockHash()
}

// TxIDs returns the transaction ids of every transaction in the block, in
// block order, for merkle root construction and relay bookkeeping.
func (msg *MsgBlock) TxIDs() []*daghash.TxID {
	ids := make([]*daghash.TxID, len(msg.Transactions))
	for i, tx := range msg.Transactions {
		id := tx.TxID()
		ids[i] = daghash.TxIDFromHash((*daghash.Hash)(&id))
	}
	return ids
}

// BuildMerkleTreeStore builds a merkle tree by adding the passed transaction
// ids to the bottom leaves, then pairing the nodes into their parent nodes
// until a single root remains, duplicating the final node of any level that
// has an odd number of nodes (the standard Bitcoin-style Merkle tree used by
// the header assembler, spec.md §4.5 step 4).
func BuildMerkleTreeStore(txIDs []*daghash.TxID) []*daghash.Hash {
	if len(txIDs) == 0 {
		return []*daghash.Hash{{}}
	}

	nextPoT := nextPowerOfTwo(len(txIDs))
	arraySize := nextPoT*2 - 1
	merkles := make([]*daghash.Hash, arraySize)

	for i, txID := range txIDs {
		merkles[i] = (*daghash.Hash)(txID)
	}

	offset := nextPoT
	for i := 0; i < arraySize-offset; i += 2 {
		switch {
		case merkles[i] == nil:
			merkles[offset] = nil
		case merkles[i+1] == nil:
			newHash := hashMerkleBranches(merkles[i], merkles[i])
			merkles[offset] = newHash
		default:
			newHash := hashMerkleBranches(merkles[i], merkles[i+1])
			merkles[offset] = newHash
		}
		offset++
	}

	return merkles
}

// MerkleRoot builds the merkle tree for the given transaction ids and
// returns its root hash.
func MerkleRoot(txIDs []*daghash.TxID) daghash.Hash {
	merkles := BuildMerkleTreeStore(txIDs)
	root := merkles[len(merkles)-1]
	if root == nil {
		return daghash.Hash{}
	}
	return *root
}

// hashMerkleBranches takes two hashes, treated as the left and right tree
// nodes, and returns the hash of their concatenation.
func hashMerkleBranches(left, right *daghash.Hash) *daghash.Hash {
	var buf [daghash.HashSize * 2]byte
	copy(buf[:daghash.HashSize], left[:])
	copy(buf[daghash.HashSize:], right[:])
	newHash := daghash.DoubleHashH(buf[:])
	return &newHash
}

// nextPowerOfTwo returns the next highest power of two from a given number
// if it is not already a power of two. This is a helper function used during
// merkle root calculation.
func nextPowerOfTwo(n int) int {
	if n&(n-1) == 0 {
		return n
	}

	exponent := uint(0)
	for ; n > 0; exponent++ {
		n >>= 1
	}
	return 1 << exponent
}
