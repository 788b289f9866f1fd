// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"bytes"

	"github.com/ash-chain/ashd/daghash"
	"github.com/ash-chain/ashd/wire"
)

// TxIndexUnknown is the value returned for a transaction index that is unknown.
// This is typically because the transaction has not been inserted into a block
// yet.
const TxIndexUnknown = -1

// Tx defines a transaction that provides easier and more efficient manipulation
// of raw transactions. It also memoizes the hash for the transaction on its
// first access so subsequent accesses don't have to repeat the relatively
// expensive hashing operations, matching the resource accountant's need to
// hash every candidate at most once per selection pass.
type Tx struct {
	msgTx   *wire.MsgTx
	txID    *daghash.TxID
	txIndex int
}

// MsgTx returns the underlying wire.MsgTx for the transaction.
func (t *Tx) MsgTx() *wire.MsgTx {
	return t.msgTx
}

// ID returns the transaction identifier for the transaction, generating and
// caching it on its first call.
func (t *Tx) ID() *daghash.TxID {
	if t.txID != nil {
		return t.txID
	}
	id := t.msgTx.TxID()
	t.txID = &id
	return t.txID
}

// Hash is an alias of ID kept for the on-disk block-identifier naming
// convention used elsewhere in the chain.
func (t *Tx) Hash() *daghash.Hash {
	return (*daghash.Hash)(t.ID())
}

// Index returns the index the transaction was assigned within a block. This
// index is 0 based, and returns TxIndexUnknown if the transaction has not
// been inserted into a block.
func (t *Tx) Index() int {
	return t.txIndex
}

// SetIndex sets the index the transaction was assigned within a block.
func (t *Tx) SetIndex(index int) {
	t.txIndex = index
}

// IsCoinBase determines whether the transaction is a coinbase transaction.
func (t *Tx) IsCoinBase() bool {
	return t.msgTx.IsCoinBase()
}

// Serialize encodes the underlying wire.MsgTx to w.
func (t *Tx) Serialize(w *bytes.Buffer) error {
	return t.msgTx.Serialize(w)
}

// NewTx returns a new instance of a transaction given an underlying
// wire.MsgTx. See Tx.
func NewTx(msgTx *wire.MsgTx) *Tx {
	return &Tx{
		txIndex: TxIndexUnknown,
		msgTx:   msgTx,
	}
}

// NewTxFromBytes returns a new instance of a transaction given the
// serialized bytes. See Tx.
func NewTxFromBytes(serializedTx []byte) (*Tx, error) {
	br := bytes.NewReader(serializedTx)
	return NewTxFromReader(br)
}

// NewTxFromReader returns a new instance of a transaction given a
// Reader to deserialize the transaction from.
func NewTxFromReader(r *bytes.Reader) (*Tx, error) {
	msgTx := new(wire.MsgTx)
	if err := msgTx.Deserialize(r); err != nil {
		return nil, err
	}
	return NewTx(msgTx), nil
}
