// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import (
	"github.com/ash-chain/ashd/daghash"
	"github.com/ash-chain/ashd/util"
	"github.com/google/btree"
)

// Scored is anything orderable by ancestor-score: a native mempool Entry, or
// a mining package's ModifiedEntry whose aggregates have been decremented by
// already-committed ancestors. Both index kinds (the mempool's native index
// and C2's modified-entry index) share this one ordered-set implementation.
type Scored interface {
	AncestorScoreFee() util.Amount
	AncestorScoreSize() uint64
	AncestorScoreTxID() daghash.TxID
}

// ScoreIndex is an ordered set over Scored values, keyed by ancestor-score
// (ancestor modified fee / ancestor size) with a TxId tie-break so the order
// is total and stable (spec.md §3, AncestorScore).
type ScoreIndex struct {
	tree *btree.BTree
}

// NewScoreIndex returns a new, empty ancestor-score index.
func NewScoreIndex() *ScoreIndex {
	return &ScoreIndex{tree: btree.New(32)}
}

type scoreItem struct {
	v Scored
}

// Less implements btree.Item. Items sort in ascending ancestor-score order
// so that the highest-scoring entry is the tree's maximum.
func (a scoreItem) Less(other btree.Item) bool {
	b := other.(scoreItem)

	lhsScore := float64(a.v.AncestorScoreFee()) / float64(a.v.AncestorScoreSize())
	rhsScore := float64(b.v.AncestorScoreFee()) / float64(b.v.AncestorScoreSize())
	if lhsScore != rhsScore {
		return lhsScore < rhsScore
	}

	lhsID, rhsID := a.v.AncestorScoreTxID(), b.v.AncestorScoreTxID()
	return lhsID.Less(&rhsID)
}

// Insert adds v to the index at the position its current score gives it. An
// item already present is replaced only if it has the same score and TxId;
// an item whose score has changed since it was inserted is not found, so it
// must be erased under its old score before the new score is inserted.
func (idx *ScoreIndex) Insert(v Scored) {
	idx.tree.ReplaceOrInsert(scoreItem{v})
}

// Erase removes the item matching v's current score and TxId from the index,
// if present.
func (idx *ScoreIndex) Erase(v Scored) {
	idx.tree.Delete(scoreItem{v})
}

// PeekBest returns the highest ancestor-score item in the index, or nil if
// the index is empty.
func (idx *ScoreIndex) PeekBest() Scored {
	item := idx.tree.Max()
	if item == nil {
		return nil
	}
	return item.(scoreItem).v
}

// Len returns the number of items in the index.
func (idx *ScoreIndex) Len() int {
	return idx.tree.Len()
}

// Descend walks the index in descending ancestor-score order (best first),
// stopping early if visit returns false. The selector uses this once per
// CreateNewBlock call to take a snapshot ordering of the mempool's native
// index to scan alongside C2.
func (idx *ScoreIndex) Descend(visit func(Scored) bool) {
	idx.tree.Descend(func(item btree.Item) bool {
		return visit(item.(scoreItem).v)
	})
}
