// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"io"

	"github.com/ash-chain/ashd/daghash"
)

// OutPoint defines a transaction output to be used as an input in another
// transaction.
type OutPoint struct {
	TxID  daghash.TxID
	Index uint32
}

// NewOutPoint returns a new transaction outpoint point with the provided
// hash and index.
func NewOutPoint(txID *daghash.TxID, index uint32) *OutPoint {
	return &OutPoint{TxID: *txID, Index: index}
}

// String returns the OutPoint in the human-readable form "txid:index".
func (o OutPoint) String() string {
	return fmt.Sprintf("%s:%d", o.TxID.String(), o.Index)
}

func writeOutPoint(w io.Writer, op *OutPoint) error {
	if err := writeHash(w, (*daghash.Hash)(&op.TxID)); err != nil {
		return err
	}
	return writeElement(w, op.Index)
}

func readOutPoint(r io.Reader, op *OutPoint) error {
	if err := readHash(r, (*daghash.Hash)(&op.TxID)); err != nil {
		return err
	}
	return readElement(r, &op.Index)
}

func writeElement(w io.Writer, v uint32) error {
	var buf [4]byte
	littleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func readElement(r io.Reader, v *uint32) error {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	*v = littleEndian.Uint32(buf[:])
	return nil
}
