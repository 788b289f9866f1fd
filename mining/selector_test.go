// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mining_test

import (
	"testing"

	"github.com/ash-chain/ashd/daghash"
	"github.com/ash-chain/ashd/mempool"
	"github.com/ash-chain/ashd/mining"
	"github.com/ash-chain/ashd/util"
	"github.com/ash-chain/ashd/wire"
)

func buildTx(lockTime uint64, extraOutputs int) *util.Tx {
	msgTx := wire.NewMsgTx(wire.TxVersion)
	msgTx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&daghash.TxID{}, 0), []byte{0x01, 0x02, 0x03}))
	msgTx.AddTxOut(wire.NewTxOut(1000, []byte{0x76, 0xa9, 0x14}))
	for i := 0; i < extraOutputs; i++ {
		msgTx.AddTxOut(wire.NewTxOut(1000, []byte{0x76, 0xa9, 0x14}))
	}
	msgTx.LockTime = lockTime
	return util.NewTx(msgTx)
}

// S1 — Parent-child priority inversion: a low-fee parent whose child pays a
// large fee must still be selected (and ordered parent-first) because the
// package's combined ancestor-score beats the parent's lone score.
func TestSelectorParentChildPriorityInversion(t *testing.T) {
	pool := mempool.New()

	parentTx := buildTx(0, 0)
	parentEntry, err := pool.AddTransaction(parentTx, 1000, nil)
	if err != nil {
		t.Fatalf("add parent: %v", err)
	}

	childTx := buildTx(1, 0)
	childEntry, err := pool.AddTransaction(childTx, 10000, []daghash.TxID{parentEntry.TxID()})
	if err != nil {
		t.Fatalf("add child: %v", err)
	}

	accountant := mining.NewResourceAccountant(1_000_000, 1_000_000)
	state := mining.NewSelectionState(accountant)
	chain := newFakeChain()
	// printPriority true here also exercises the per-commit priority log.
	selector := mining.NewSelector(pool, chain, state, 0, 1, 0, true)

	committed := selector.Run()
	if len(committed) != 2 {
		t.Fatalf("len(committed) = %d, want 2", len(committed))
	}
	if committed[0].TxID() != parentEntry.TxID() {
		t.Errorf("committed[0] = %s, want parent %s", committed[0].TxID(), parentEntry.TxID())
	}
	if committed[1].TxID() != childEntry.TxID() {
		t.Errorf("committed[1] = %s, want child %s", committed[1].TxID(), childEntry.TxID())
	}
}

// S2 — Stale descendant rescoring: after committing {A, B}, D's mempool
// cached ancestor-score still reflects ancestor A and must be rescored
// through C2 with A's contribution removed before it is compared again.
func TestSelectorStaleDescendantRescoring(t *testing.T) {
	pool := mempool.New()

	aTx := buildTx(0, 0)
	aEntry, err := pool.AddTransaction(aTx, 100, nil)
	if err != nil {
		t.Fatalf("add A: %v", err)
	}

	bTx := buildTx(1, 0)
	bEntry, err := pool.AddTransaction(bTx, 10000, []daghash.TxID{aEntry.TxID()})
	if err != nil {
		t.Fatalf("add B: %v", err)
	}

	dTx := buildTx(2, 0)
	dEntry, err := pool.AddTransaction(dTx, 50, []daghash.TxID{aEntry.TxID()})
	if err != nil {
		t.Fatalf("add D: %v", err)
	}

	accountant := mining.NewResourceAccountant(1_000_000, 1_000_000)
	state := mining.NewSelectionState(accountant)
	chain := newFakeChain()
	selector := mining.NewSelector(pool, chain, state, 0, 1, 0, false)

	committed := selector.Run()

	seen := make(map[daghash.TxID]bool)
	for _, e := range committed {
		seen[e.TxID()] = true
	}
	if !seen[aEntry.TxID()] || !seen[bEntry.TxID()] {
		t.Fatal("expected A and B to be committed")
	}
	if !seen[dEntry.TxID()] {
		t.Error("expected D to be committed once rescored without A's contribution")
	}
}

// S3 — Size cap: a tight ceiling must stop the selector once remaining
// headroom drops below the fit margin, without consuming every candidate.
func TestSelectorSizeCap(t *testing.T) {
	pool := mempool.New()
	var allTxIDs []daghash.TxID

	for i := 0; i < 10; i++ {
		tx := buildTx(uint64(i), 5)
		entry, err := pool.AddTransaction(tx, util.Amount(10000-i*100), nil)
		if err != nil {
			t.Fatalf("add tx %d: %v", i, err)
		}
		allTxIDs = append(allTxIDs, entry.TxID())
	}

	// A small ceiling leaves room for only a few of the ten candidates
	// once the fit margin and per-tx size are accounted for.
	accountant := mining.NewResourceAccountant(2200, 1_000_000)
	state := mining.NewSelectionState(accountant)
	chain := newFakeChain()
	selector := mining.NewSelector(pool, chain, state, 0, 1, 0, false)

	committed := selector.Run()
	if len(committed) == 0 {
		t.Fatal("expected at least one transaction to be committed")
	}
	if len(committed) >= len(allTxIDs) {
		t.Errorf("len(committed) = %d, want fewer than all %d candidates", len(committed), len(allTxIDs))
	}
	if accountant.BlockSize() > 2200 {
		t.Errorf("BlockSize() = %d, exceeds ceiling 2200", accountant.BlockSize())
	}
}
