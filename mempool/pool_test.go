// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool_test

import (
	"testing"

	"github.com/ash-chain/ashd/daghash"
	"github.com/ash-chain/ashd/mempool"
	"github.com/ash-chain/ashd/util"
	"github.com/ash-chain/ashd/wire"
)

func sampleTx(lockTime uint64) *util.Tx {
	msgTx := wire.NewMsgTx(wire.TxVersion)
	msgTx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&daghash.TxID{}, 0), []byte{0x01}))
	msgTx.AddTxOut(wire.NewTxOut(1000, []byte{0x76, 0xa9}))
	msgTx.LockTime = lockTime
	return util.NewTx(msgTx)
}

func TestAddTransactionNoParents(t *testing.T) {
	pool := mempool.New()
	tx := sampleTx(0)

	entry, err := pool.AddTransaction(tx, 100, nil)
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}

	if entry.AncestorFee != 100 {
		t.Errorf("AncestorFee = %d, want 100", entry.AncestorFee)
	}
	if entry.AncestorSize != entry.Size {
		t.Errorf("AncestorSize = %d, want %d", entry.AncestorSize, entry.Size)
	}
	if !pool.Exists(*tx.ID()) {
		t.Error("Exists = false, want true")
	}
}

func TestAddTransactionWithParent(t *testing.T) {
	pool := mempool.New()
	parentTx := sampleTx(0)
	parentEntry, err := pool.AddTransaction(parentTx, 1000, nil)
	if err != nil {
		t.Fatalf("AddTransaction(parent): %v", err)
	}

	childTx := sampleTx(1)
	childEntry, err := pool.AddTransaction(childTx, 10000, []daghash.TxID{parentEntry.TxID()})
	if err != nil {
		t.Fatalf("AddTransaction(child): %v", err)
	}

	wantAncestorFee := parentEntry.Fee + childEntry.Fee
	if childEntry.AncestorFee != wantAncestorFee {
		t.Errorf("child AncestorFee = %d, want %d", childEntry.AncestorFee, wantAncestorFee)
	}

	ancestors := pool.CalculateAncestors(childEntry)
	if len(ancestors) != 1 {
		t.Fatalf("len(ancestors) = %d, want 1", len(ancestors))
	}
	if _, ok := ancestors[parentEntry.TxID()]; !ok {
		t.Error("parent missing from child's ancestor set")
	}

	descendants := pool.CalculateDescendants(parentEntry)
	if len(descendants) != 1 {
		t.Fatalf("len(descendants) = %d, want 1", len(descendants))
	}
	if _, ok := descendants[childEntry.TxID()]; !ok {
		t.Error("child missing from parent's descendant set")
	}
}

func TestAddTransactionMissingParent(t *testing.T) {
	pool := mempool.New()
	tx := sampleTx(0)
	var missing daghash.TxID
	missing[0] = 0xff

	_, err := pool.AddTransaction(tx, 100, []daghash.TxID{missing})
	if err == nil {
		t.Fatal("AddTransaction: expected error for missing parent, got nil")
	}
}

func TestScoreIndexOrdersByAncestorScore(t *testing.T) {
	index := mempool.NewScoreIndex()

	low := &mempool.Entry{AncestorFee: 100, AncestorSize: 1000}
	high := &mempool.Entry{AncestorFee: 10000, AncestorSize: 100}
	index.Insert(low)
	index.Insert(high)

	best := index.PeekBest()
	if best != mempool.Scored(high) {
		t.Error("PeekBest did not return the higher-feerate entry")
	}
}
