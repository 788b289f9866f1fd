// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"io"

	"github.com/ash-chain/ashd/daghash"
)

// TxVersion is the current latest supported transaction version.
const TxVersion = 1

// defaultTxInOutAlloc is the default size used for pre-allocating transaction
// inputs and outputs during deserialization.
const defaultTxInOutAlloc = 8

// MsgTx implements the transaction wire message. It is used to deliver
// transaction information in response to a getdata message and is also used
// to relay newly mined transactions.
type MsgTx struct {
	Version  int32
	TxIn     []*TxIn
	TxOut    []*TxOut
	LockTime uint64
}

// NewMsgTx returns a new tx message with the given version, no inputs and
// no outputs.
func NewMsgTx(version int32) *MsgTx {
	return &MsgTx{
		Version: version,
		TxIn:    make([]*TxIn, 0, defaultTxInOutAlloc),
		TxOut:   make([]*TxOut, 0, defaultTxInOutAlloc),
	}
}

// AddTxIn adds a transaction input to the message.
func (msg *MsgTx) AddTxIn(ti *TxIn) {
	msg.TxIn = append(msg.TxIn, ti)
}

// AddTxOut adds a transaction output to the message.
func (msg *MsgTx) AddTxOut(to *TxOut) {
	msg.TxOut = append(msg.TxOut, to)
}

// IsCoinBase determines whether the transaction is a coinbase transaction. A
// coinbase transaction is one with a single input with a previous output
// transaction id of all zeroes and an index of the maximum value.
func (msg *MsgTx) IsCoinBase() bool {
	if len(msg.TxIn) != 1 {
		return false
	}
	prevOut := &msg.TxIn[0].PreviousOutPoint
	return prevOut.Index == 0xffffffff && prevOut.TxID == (daghash.TxID{})
}

// Copy creates a deep copy of the transaction so that callers may mutate it
// (for example to roll the coinbase extra nonce, C4's IncrementExtraNonce)
// without aliasing the original.
func (msg *MsgTx) Copy() *MsgTx {
	newTx := &MsgTx{
		Version:  msg.Version,
		TxIn:     make([]*TxIn, len(msg.TxIn)),
		TxOut:    make([]*TxOut, len(msg.TxOut)),
		LockTime: msg.LockTime,
	}
	for i, ti := range msg.TxIn {
		newIn := *ti
		newIn.SignatureScript = append([]byte(nil), ti.SignatureScript...)
		newTx.TxIn[i] = &newIn
	}
	for i, to := range msg.TxOut {
		newOut := *to
		newOut.ScriptPubKey = append([]byte(nil), to.ScriptPubKey...)
		newTx.TxOut[i] = &newOut
	}
	return newTx
}

// SerializeSize returns the number of bytes it would take to serialize the
// transaction.
func (msg *MsgTx) SerializeSize() int {
	n := 4 + VarIntSerializeSize(uint64(len(msg.TxIn))) +
		VarIntSerializeSize(uint64(len(msg.TxOut))) + 8

	for _, txIn := range msg.TxIn {
		n += txIn.SerializeSize()
	}
	for _, txOut := range msg.TxOut {
		n += txOut.SerializeSize()
	}
	return n
}

// Serialize encodes the transaction to w.
func (msg *MsgTx) Serialize(w io.Writer) error {
	if err := writeElement(w, uint32(msg.Version)); err != nil {
		return err
	}
	if err := WriteVarInt(w, uint64(len(msg.TxIn))); err != nil {
		return err
	}
	for _, ti := range msg.TxIn {
		if err := writeTxIn(w, ti); err != nil {
			return err
		}
	}
	if err := WriteVarInt(w, uint64(len(msg.TxOut))); err != nil {
		return err
	}
	for _, to := range msg.TxOut {
		if err := writeTxOut(w, to); err != nil {
			return err
		}
	}
	return writeUint64(w, msg.LockTime)
}

// Deserialize decodes a transaction from r into msg.
func (msg *MsgTx) Deserialize(r io.Reader) error {
	var version uint32
	if err := readElement(r, &version); err != nil {
		return err
	}
	msg.Version = int32(version)

	inCount, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	msg.TxIn = make([]*TxIn, inCount)
	for i := range msg.TxIn {
		ti := &TxIn{}
		if err := readTxIn(r, ti); err != nil {
			return err
		}
		msg.TxIn[i] = ti
	}

	outCount, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	msg.TxOut = make([]*TxOut, outCount)
	for i := range msg.TxOut {
		to := &TxOut{}
		if err := readTxOut(r, to); err != nil {
			return err
		}
		msg.TxOut[i] = to
	}

	return readUint64(r, &msg.LockTime)
}

// TxID generates the Hash for the transaction, used as its unique identifier
// across the mempool and the block template.
func (msg *MsgTx) TxID() daghash.TxID {
	var buf bytes.Buffer
	buf.Grow(msg.SerializeSize())
	// Errors only happen on writer failures, which a growable buffer
	// never produces.
	_ = msg.Serialize(&buf)
	return daghash.TxID(daghash.DoubleHashH(buf.Bytes()))
}
