// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "io"

// MaxMessagePayload is the maximum bytes a message can be regardless of other
// individual limits imposed by messages themselves.
const MaxMessagePayload = 1024 * 1024 * 32

// TxOut defines a transaction output with a value in base units and a
// public key script for locking the output.
type TxOut struct {
	Value        int64
	ScriptPubKey []byte
}

// NewTxOut returns a new transaction output with the provided value and
// locking script.
func NewTxOut(value int64, scriptPubKey []byte) *TxOut {
	return &TxOut{Value: value, ScriptPubKey: scriptPubKey}
}

// SerializeSize returns the number of bytes it would take to serialize the
// transaction output.
func (t *TxOut) SerializeSize() int {
	return 8 + VarIntSerializeSize(uint64(len(t.ScriptPubKey))) + len(t.ScriptPubKey)
}

func writeTxOut(w io.Writer, to *TxOut) error {
	if err := writeInt64(w, to.Value); err != nil {
		return err
	}
	return WriteVarBytes(w, to.ScriptPubKey)
}

func readTxOut(r io.Reader, to *TxOut) error {
	if err := readInt64(r, &to.Value); err != nil {
		return err
	}
	scriptPubKey, err := ReadVarBytes(r, uint64(MaxMessagePayload), "tx output script")
	if err != nil {
		return err
	}
	to.ScriptPubKey = scriptPubKey
	return nil
}

func writeInt64(w io.Writer, v int64) error {
	return writeUint64(w, uint64(v))
}

func readInt64(r io.Reader, v *int64) error {
	var u uint64
	if err := readUint64(r, &u); err != nil {
		return err
	}
	*v = int64(u)
	return nil
}
