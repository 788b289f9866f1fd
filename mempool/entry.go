// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mempool implements the in-memory unconfirmed transaction pool the
// template assembler draws candidates from: an ancestor-score ordered index
// plus the ancestor/descendant bookkeeping the selector queries while
// committing packages.
package mempool

import (
	"github.com/ash-chain/ashd/daghash"
	"github.com/ash-chain/ashd/util"
)

// Entry caches the per-transaction and ancestor-aggregate statistics the
// package selector scores candidates by.
type Entry struct {
	Tx          *util.Tx
	Size        uint64
	SigOpCount  int64
	Fee         util.Amount
	ModifiedFee util.Amount

	// Ancestor aggregates over the transitive closure of in-mempool
	// ancestors, self included.
	AncestorSize       uint64
	AncestorFee        util.Amount
	AncestorSigOpCount int64

	parents  map[daghash.TxID]*Entry
	children map[daghash.TxID]*Entry
}

// TxID returns the entry's transaction identifier.
func (e *Entry) TxID() daghash.TxID {
	return *e.Tx.ID()
}

// AncestorScoreFee implements the Scored interface: the ancestor-aggregate
// modified fee used as the ancestor-score numerator.
func (e *Entry) AncestorScoreFee() util.Amount {
	return e.AncestorFee
}

// AncestorScoreSize implements the Scored interface: the ancestor-aggregate
// size used as the ancestor-score denominator.
func (e *Entry) AncestorScoreSize() uint64 {
	return e.AncestorSize
}

// AncestorScoreTxID implements the Scored interface's tie-break key.
func (e *Entry) AncestorScoreTxID() daghash.TxID {
	return e.TxID()
}

// Parents returns the entry's direct in-mempool parents.
func (e *Entry) Parents() map[daghash.TxID]*Entry {
	return e.parents
}

// Children returns the entry's direct in-mempool children.
func (e *Entry) Children() map[daghash.TxID]*Entry {
	return e.children
}
