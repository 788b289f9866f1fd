// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import (
	"github.com/ash-chain/ashd/daghash"
	"github.com/ash-chain/ashd/internal/logs"
	"github.com/ash-chain/ashd/util"
	"github.com/pkg/errors"
)

// Pool is the concrete mempool implementation: an ordered ancestor-score
// index over its Entry set plus the ancestor/descendant enumeration and
// unbroadcast bookkeeping the template assembler and broadcast coordinator
// consume (spec.md §6 "Mempool interface consumed"). It has no consensus
// validation of its own — that remains an external collaborator's job; Pool
// only maintains the bookkeeping structure selection needs.
type Pool struct {
	entries     map[daghash.TxID]*Entry
	scoreIndex  *ScoreIndex
	unbroadcast map[daghash.TxID]struct{}
}

// New returns a new, empty transaction pool.
func New() *Pool {
	return &Pool{
		entries:     make(map[daghash.TxID]*Entry),
		scoreIndex:  NewScoreIndex(),
		unbroadcast: make(map[daghash.TxID]struct{}),
	}
}

// ErrTxAlreadyInPool is returned by AddTransaction when the transaction's id
// is already present.
var ErrTxAlreadyInPool = errors.New("transaction already in mempool")

// ErrParentNotFound is returned by AddTransaction when a requested parent
// txid is not present in the pool.
var ErrParentNotFound = errors.New("parent transaction not found in mempool")

// AddTransaction inserts tx into the pool with the given individual fee and
// the txids of its direct in-mempool parents (inputs spending other mempool
// transactions). Ancestor aggregates are computed by walking the parent
// links recorded here, then the entry is placed into the ancestor-score
// index.
func (p *Pool) AddTransaction(tx *util.Tx, fee util.Amount, parentTxIDs []daghash.TxID) (*Entry, error) {
	txID := *tx.ID()
	if _, ok := p.entries[txID]; ok {
		return nil, errors.Wrapf(ErrTxAlreadyInPool, "txid %s", txID)
	}

	size := uint64(tx.MsgTx().SerializeSize())

	entry := &Entry{
		Tx:          tx,
		Size:        size,
		Fee:         fee,
		ModifiedFee: fee,
		parents:     make(map[daghash.TxID]*Entry),
		children:    make(map[daghash.TxID]*Entry),
	}

	for _, parentID := range parentTxIDs {
		parent, ok := p.entries[parentID]
		if !ok {
			return nil, errors.Wrapf(ErrParentNotFound, "txid %s", parentID)
		}
		entry.parents[parentID] = parent
		parent.children[txID] = entry
	}

	ancestors := p.calculateAncestorsOf(entry)
	entry.AncestorSize = size
	entry.AncestorFee = entry.ModifiedFee
	entry.AncestorSigOpCount = entry.SigOpCount
	for _, ancestor := range ancestors {
		entry.AncestorSize += ancestor.Size
		entry.AncestorFee += ancestor.ModifiedFee
		entry.AncestorSigOpCount += ancestor.SigOpCount
	}

	p.entries[txID] = entry
	p.scoreIndex.Insert(entry)

	log.Tracef("added %s to mempool, ancestor size %d fee %d", txID, entry.AncestorSize, entry.AncestorFee)
	return entry, nil
}

// Exists reports whether txID is present in the pool.
func (p *Pool) Exists(txID daghash.TxID) bool {
	_, ok := p.entries[txID]
	return ok
}

// Get returns the entry for txID, if present.
func (p *Pool) Get(txID daghash.TxID) (*Entry, bool) {
	e, ok := p.entries[txID]
	return e, ok
}

// ScoreIndex returns the pool's native ancestor-score index, the iterator
// the package selector (C3) walks alongside C2's modified-entry index.
func (p *Pool) ScoreIndex() *ScoreIndex {
	return p.scoreIndex
}

// CalculateAncestors returns the full transitive closure of entry's
// in-mempool ancestors.
func (p *Pool) CalculateAncestors(entry *Entry) map[daghash.TxID]*Entry {
	set := make(map[daghash.TxID]*Entry)
	var walk func(*Entry)
	walk = func(e *Entry) {
		for id, parent := range e.parents {
			if _, seen := set[id]; seen {
				continue
			}
			set[id] = parent
			walk(parent)
		}
	}
	walk(entry)
	return set
}

func (p *Pool) calculateAncestorsOf(entry *Entry) map[daghash.TxID]*Entry {
	return p.CalculateAncestors(entry)
}

// CalculateDescendants returns the full transitive closure of entry's
// in-mempool descendants.
func (p *Pool) CalculateDescendants(entry *Entry) map[daghash.TxID]*Entry {
	set := make(map[daghash.TxID]*Entry)
	var walk func(*Entry)
	walk = func(e *Entry) {
		for id, child := range e.children {
			if _, seen := set[id]; seen {
				continue
			}
			set[id] = child
			walk(child)
		}
	}
	walk(entry)
	return set
}

// AddUnbroadcast marks txID as awaiting its first relay attempt.
func (p *Pool) AddUnbroadcast(txID daghash.TxID) {
	p.unbroadcast[txID] = struct{}{}
}

// IsUnbroadcast reports whether txID is marked as awaiting relay.
func (p *Pool) IsUnbroadcast(txID daghash.TxID) bool {
	_, ok := p.unbroadcast[txID]
	return ok
}

var log = logs.Logger(logs.SubsystemMempool)
