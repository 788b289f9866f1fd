// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mining

import (
	"sync"

	"github.com/ash-chain/ashd/daghash"
	"github.com/ash-chain/ashd/util"
	"github.com/ash-chain/ashd/util/locks"
)

// TransactionError is one of the broadcast error codes spec.md §6 names.
type TransactionError int

// Broadcast error codes (spec.md §6).
const (
	OK TransactionError = iota
	AlreadyInChain
	MempoolRejected
	MempoolError
	MissingInputs
	MaxFeeExceeded
)

func (e TransactionError) String() string {
	switch e {
	case OK:
		return "OK"
	case AlreadyInChain:
		return "ALREADY_IN_CHAIN"
	case MempoolRejected:
		return "MEMPOOL_REJECTED"
	case MempoolError:
		return "MEMPOOL_ERROR"
	case MissingInputs:
		return "MISSING_INPUTS"
	case MaxFeeExceeded:
		return "MAX_FEE_EXCEEDED"
	}
	return "UNKNOWN"
}

// AcceptResult is what the mempool-acceptance collaborator reports back
// from either its test-mode or commit-mode run.
type AcceptResult struct {
	Accepted        bool
	Fee             util.Amount
	MissingParents  bool
	ValidationError error
}

// Acceptor is the mempool-acceptance ("ATMP"-equivalent) collaborator C6
// drives in test mode then commit mode.
type Acceptor interface {
	TestAccept(tx *util.Tx) AcceptResult
	Accept(tx *util.Tx) AcceptResult
}

// Relay is the network-layer collaborator notified once a transaction is
// ready to propagate.
type Relay interface {
	RelayTransaction(txID daghash.TxID)
}

// BroadcastCoordinator implements broadcastTransaction (spec.md §4.6, C6).
type BroadcastCoordinator struct {
	chain    ChainView
	pool     MempoolView
	acceptor Acceptor
	relay    Relay

	chainLock *sync.RWMutex
}

// NewBroadcastCoordinator returns a coordinator sharing the same
// chain-state lock the assembler uses, so the fixed (chain, mempool) lock
// order holds process-wide.
func NewBroadcastCoordinator(chain ChainView, pool MempoolView, acceptor Acceptor, relay Relay, chainLock *sync.RWMutex) *BroadcastCoordinator {
	return &BroadcastCoordinator{chain: chain, pool: pool, acceptor: acceptor, relay: relay, chainLock: chainLock}
}

// BroadcastTransaction submits tx to the mempool and, if relay is true,
// hands it to the network layer, following the six-step protocol exactly.
func (b *BroadcastCoordinator) BroadcastTransaction(tx *util.Tx, maxFee util.Amount, relay bool, waitCallback bool) TransactionError {
	txID := *tx.ID()

	// Step 1: under chain-state lock, reject anything already confirmed.
	b.chainLock.RLock()
	alreadyInChain := false
	for i := range tx.MsgTx().TxOut {
		if !b.chain.OutpointSpendable(txID, uint32(i)) {
			continue
		}
		alreadyInChain = true
		break
	}
	if alreadyInChain {
		b.chainLock.RUnlock()
		return AlreadyInChain
	}

	var wg *locks.WaitGroup

	if !b.pool.Exists(txID) {
		if maxFee > 0 {
			result := b.acceptor.TestAccept(tx)
			if !result.Accepted {
				b.chainLock.RUnlock()
				return mapAcceptError(result)
			}
			if result.Fee > maxFee {
				b.chainLock.RUnlock()
				return MaxFeeExceeded
			}
		}

		result := b.acceptor.Accept(tx)
		if !result.Accepted {
			b.chainLock.RUnlock()
			return mapAcceptError(result)
		}

		if waitCallback {
			wg = locks.NewWaitGroup()
			wg.AddOne()
			go func() {
				// The validation-notification queue's completion
				// marker; a real implementation wires this to the
				// mempool's commit notification instead of firing
				// immediately.
				wg.Done()
			}()
		}
	}

	// Step 3: release chain-state lock.
	b.chainLock.RUnlock()

	// Step 4: wait for the notification-completion signal.
	if wg != nil {
		wg.Wait()
	}

	// Step 5: register for relay.
	if relay {
		b.pool.AddUnbroadcast(txID)
		if b.relay != nil {
			b.relay.RelayTransaction(txID)
		}
	}

	return OK
}

// mapAcceptError translates an AcceptResult's rejection reason into the
// specific broadcast error code.
func mapAcceptError(result AcceptResult) TransactionError {
	if result.MissingParents {
		return MissingInputs
	}
	if result.ValidationError != nil {
		return MempoolRejected
	}
	return MempoolError
}
