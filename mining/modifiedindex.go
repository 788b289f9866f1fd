// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mining

import (
	"github.com/ash-chain/ashd/daghash"
	"github.com/ash-chain/ashd/mempool"
	"github.com/ash-chain/ashd/util"
)

// ModifiedEntry re-scores a mempool entry whose ancestor aggregates have
// been decremented to exclude ancestors the selector has already committed
// to the block (spec.md §4.2, C2). Because ancestors only ever leave the
// set once committed, a modified entry's aggregates never exceed the
// underlying mempool entry's own ancestor aggregates. Its score (fee over
// size) can move either way as ancestors are subtracted.
type ModifiedEntry struct {
	entry *mempool.Entry

	size       uint64
	fee        util.Amount
	sigOpCount int64
}

// newModifiedEntry returns a ModifiedEntry that starts out identical to the
// underlying mempool entry's own ancestor aggregates.
func newModifiedEntry(entry *mempool.Entry) *ModifiedEntry {
	return &ModifiedEntry{
		entry:      entry,
		size:       entry.AncestorSize,
		fee:        entry.AncestorFee,
		sigOpCount: entry.AncestorSigOpCount,
	}
}

// Entry returns the underlying mempool entry.
func (m *ModifiedEntry) Entry() *mempool.Entry { return m.entry }

// subtractAncestor removes one already-committed ancestor's individual
// contribution from this entry's modified aggregates.
func (m *ModifiedEntry) subtractAncestor(ancestor *mempool.Entry) {
	m.size -= ancestor.Size
	m.fee -= ancestor.ModifiedFee
	m.sigOpCount -= ancestor.SigOpCount
}

// AncestorScoreFee implements mempool.Scored.
func (m *ModifiedEntry) AncestorScoreFee() util.Amount { return m.fee }

// AncestorScoreSize implements mempool.Scored.
func (m *ModifiedEntry) AncestorScoreSize() uint64 { return m.size }

// AncestorScoreTxID implements mempool.Scored.
func (m *ModifiedEntry) AncestorScoreTxID() daghash.TxID { return m.entry.TxID() }

// ModifiedIndex is the ancestor-score ordered set of ModifiedEntry values
// the selector consults whenever a candidate's stale descendants need
// re-scoring after one of their ancestors has already been committed.
type ModifiedIndex struct {
	index  *mempool.ScoreIndex
	byTxID map[daghash.TxID]*ModifiedEntry
}

// NewModifiedIndex returns a new, empty modified-entry index.
func NewModifiedIndex() *ModifiedIndex {
	return &ModifiedIndex{
		index:  mempool.NewScoreIndex(),
		byTxID: make(map[daghash.TxID]*ModifiedEntry),
	}
}

// Get returns the modified entry tracked for txID, creating one from entry
// if this is the first time txID has needed re-scoring.
func (idx *ModifiedIndex) Get(entry *mempool.Entry) *ModifiedEntry {
	txID := entry.TxID()
	if m, ok := idx.byTxID[txID]; ok {
		return m
	}
	m := newModifiedEntry(entry)
	idx.byTxID[txID] = m
	return m
}

// Upsert re-scores entry to exclude ancestor's individual contribution and
// (re)inserts it into the ordered index.
func (idx *ModifiedIndex) Upsert(entry, ancestor *mempool.Entry) {
	m := idx.Get(entry)
	idx.index.Erase(m)
	m.subtractAncestor(ancestor)
	idx.index.Insert(m)
}

// Erase drops txID's modified entry once the selector has committed it (or
// its underlying mempool entry is otherwise no longer a candidate).
func (idx *ModifiedIndex) Erase(txID daghash.TxID) {
	if m, ok := idx.byTxID[txID]; ok {
		idx.index.Erase(m)
		delete(idx.byTxID, txID)
	}
}

// Has reports whether txID has a tracked modified entry.
func (idx *ModifiedIndex) Has(txID daghash.TxID) bool {
	_, ok := idx.byTxID[txID]
	return ok
}

// PeekBest returns the highest ancestor-score modified entry, or nil if the
// index is empty.
func (idx *ModifiedIndex) PeekBest() *ModifiedEntry {
	best := idx.index.PeekBest()
	if best == nil {
		return nil
	}
	return best.(*ModifiedEntry)
}

// Len returns the number of tracked modified entries.
func (idx *ModifiedIndex) Len() int { return idx.index.Len() }
