// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "io"

// MaxSigScriptSize is the largest unlocking script readTxIn accepts when
// decoding a transaction input. The coinbase builder (C4) checks its own,
// smaller limit (maxCoinbaseScriptSigSize in package mining).
const MaxSigScriptSize = 10000

// TxIn defines a transaction input. For the coinbase transaction, this is
// the only input and PreviousOutPoint has an all-zero TxID and index
// 0xffffffff.
type TxIn struct {
	PreviousOutPoint OutPoint
	SignatureScript  []byte
	Sequence         uint64
}

// NewTxIn returns a new transaction input with the provided previous
// outpoint and unlocking script.
func NewTxIn(prevOut *OutPoint, signatureScript []byte) *TxIn {
	return &TxIn{
		PreviousOutPoint: *prevOut,
		SignatureScript:  signatureScript,
		Sequence:         MaxTxInSequenceNum,
	}
}

// MaxTxInSequenceNum is the maximum sequence number an input can have.
const MaxTxInSequenceNum uint64 = 0xffffffffffffffff

// SerializeSize returns the number of bytes it would take to serialize the
// transaction input.
func (t *TxIn) SerializeSize() int {
	// PreviousOutPoint.TxID (32) + Index (4) + serialized varint size for
	// the length of SignatureScript + SignatureScript bytes + Sequence (8).
	return 32 + 4 + VarIntSerializeSize(uint64(len(t.SignatureScript))) +
		len(t.SignatureScript) + 8
}

func writeTxIn(w io.Writer, ti *TxIn) error {
	if err := writeOutPoint(w, &ti.PreviousOutPoint); err != nil {
		return err
	}
	if err := WriteVarBytes(w, ti.SignatureScript); err != nil {
		return err
	}
	return writeUint64(w, ti.Sequence)
}

func readTxIn(r io.Reader, ti *TxIn) error {
	if err := readOutPoint(r, &ti.PreviousOutPoint); err != nil {
		return err
	}
	sigScript, err := ReadVarBytes(r, uint64(MaxSigScriptSize), "tx input signature script")
	if err != nil {
		return err
	}
	ti.SignatureScript = sigScript
	return readUint64(r, &ti.Sequence)
}

func writeUint64(w io.Writer, v uint64) error {
	var buf [8]byte
	littleEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func readUint64(r io.Reader, v *uint64) error {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	*v = littleEndian.Uint64(buf[:])
	return nil
}
