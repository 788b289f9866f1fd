// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mining_test

import (
	"sync"
	"testing"

	"github.com/ash-chain/ashd/daghash"
	"github.com/ash-chain/ashd/mempool"
	"github.com/ash-chain/ashd/mining"
	"github.com/ash-chain/ashd/util"
)

type fakeAcceptor struct {
	testResult mining.AcceptResult
	result     mining.AcceptResult
}

func (a *fakeAcceptor) TestAccept(tx *util.Tx) mining.AcceptResult { return a.testResult }
func (a *fakeAcceptor) Accept(tx *util.Tx) mining.AcceptResult     { return a.result }

type fakeRelay struct {
	relayed []daghash.TxID
}

func (r *fakeRelay) RelayTransaction(txID daghash.TxID) { r.relayed = append(r.relayed, txID) }

// S4 — Broadcast already-in-chain: a UTXO view that already reports the
// transaction's output as unspent must short-circuit before touching the
// mempool at all.
func TestBroadcastAlreadyInChain(t *testing.T) {
	chain := newFakeChain()
	tx := buildTx(0, 0)
	chain.unspentOutpoints[*tx.ID()] = map[uint32]bool{0: true}

	pool := mempool.New()
	acceptor := &fakeAcceptor{}
	relay := &fakeRelay{}
	var chainLock sync.RWMutex
	coordinator := mining.NewBroadcastCoordinator(chain, pool, acceptor, relay, &chainLock)

	code := coordinator.BroadcastTransaction(tx, 0, true, false)
	if code != mining.AlreadyInChain {
		t.Errorf("BroadcastTransaction = %s, want ALREADY_IN_CHAIN", code)
	}
	if pool.Exists(*tx.ID()) {
		t.Error("transaction should not have been added to the mempool")
	}
	if len(relay.relayed) != 0 {
		t.Error("transaction should not have been relayed")
	}
}

// S5 — Broadcast max-fee gate: the test-mode acceptance run reports a fee
// above maxFee, so the transaction must be rejected before ever reaching
// commit-mode acceptance or the mempool.
func TestBroadcastMaxFeeExceeded(t *testing.T) {
	chain := newFakeChain()
	tx := buildTx(0, 0)

	pool := mempool.New()
	acceptor := &fakeAcceptor{
		testResult: mining.AcceptResult{Accepted: true, Fee: 500},
	}
	relay := &fakeRelay{}
	var chainLock sync.RWMutex
	coordinator := mining.NewBroadcastCoordinator(chain, pool, acceptor, relay, &chainLock)

	code := coordinator.BroadcastTransaction(tx, 400, true, false)
	if code != mining.MaxFeeExceeded {
		t.Errorf("BroadcastTransaction = %s, want MAX_FEE_EXCEEDED", code)
	}
	if pool.Exists(*tx.ID()) {
		t.Error("transaction should not have been added to the mempool")
	}
}

func TestBroadcastAcceptedAndRelayed(t *testing.T) {
	chain := newFakeChain()
	tx := buildTx(0, 0)

	pool := mempool.New()
	acceptor := &fakeAcceptor{
		testResult: mining.AcceptResult{Accepted: true, Fee: 100},
		result:     mining.AcceptResult{Accepted: true, Fee: 100},
	}
	relay := &fakeRelay{}
	var chainLock sync.RWMutex
	coordinator := mining.NewBroadcastCoordinator(chain, pool, acceptor, relay, &chainLock)

	code := coordinator.BroadcastTransaction(tx, 400, true, true)
	if code != mining.OK {
		t.Errorf("BroadcastTransaction = %s, want OK", code)
	}
	if len(relay.relayed) != 1 || relay.relayed[0] != *tx.ID() {
		t.Error("expected the transaction to be relayed exactly once")
	}
	if !pool.IsUnbroadcast(*tx.ID()) {
		t.Error("expected the transaction to be registered in the unbroadcast set")
	}
}
