// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mining

import (
	"time"

	"github.com/ash-chain/ashd/daghash"
	"github.com/ash-chain/ashd/mempool"
	"github.com/ash-chain/ashd/util"
	"github.com/ash-chain/ashd/wire"
)

// TipInfo is the subset of the current chain tip the assembler needs to
// build on top of, as returned by ChainView.ActiveTip.
type TipInfo struct {
	BlockHash      daghash.Hash
	Height         uint64
	EpochBlockHash daghash.Hash
	MedianTimePast time.Time
	Bits           uint32
}

// ChainView is the external chain-state collaborator the assembler and the
// broadcast coordinator consult (spec.md §6, "Chain-state interface"). It
// is deliberately narrow: everything it exposes is either a pure read of
// already-validated chain state, or a service (difficulty, subsidy,
// validity checking) the assembler treats as a black box.
type ChainView interface {
	// ActiveTip returns the chain tip a new template is built on top of.
	ActiveTip() TipInfo

	// OutpointSpendable reports whether (txid, index) is an unspent output
	// in the current UTXO view.
	OutpointSpendable(txID daghash.TxID, index uint32) bool

	// GetNextWorkRequired computes the target-bits field for a block
	// built on top of the tip at the given timestamp.
	GetNextWorkRequired(tip TipInfo, timestamp time.Time) uint32

	// GetBlockSubsidy returns the newly-minted subsidy for a block at the
	// given height under the given target bits.
	GetBlockSubsidy(height uint64, bits uint32) util.Amount

	// GetAdjustedTime returns the node's network-adjusted clock.
	GetAdjustedTime() time.Time

	// GetMinerFundRequiredOutputs returns the protocol-mandated outputs
	// that must be deducted from the miner's coinbase share when the
	// miner fund is enabled.
	GetMinerFundRequiredOutputs(height uint64) []*wire.TxOut

	// IsFinalForBlock runs the consensus contextual finality check
	// (absolute/relative lock-time against height and median-time-past).
	IsFinalForBlock(tx *util.Tx, height uint64, lockTimeCutoff int64) bool

	// TestBlockValidity runs every consensus check except proof-of-work
	// and Merkle-root (the miner fills those in afterward).
	TestBlockValidity(block *wire.MsgBlock) error

	// EpochNumBlocks is the height interval between epoch-block
	// checkpoints.
	EpochNumBlocks() uint64
}

// MempoolView is the subset of the mempool the assembler and broadcast
// coordinator consume (spec.md §6, "Mempool interface consumed").
type MempoolView interface {
	ScoreIndex() *mempool.ScoreIndex
	Exists(txID daghash.TxID) bool
	Get(txID daghash.TxID) (*mempool.Entry, bool)
	CalculateAncestors(entry *mempool.Entry) map[daghash.TxID]*mempool.Entry
	CalculateDescendants(entry *mempool.Entry) map[daghash.TxID]*mempool.Entry
	AddUnbroadcast(txID daghash.TxID)
}
