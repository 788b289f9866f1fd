// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mining

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ash-chain/ashd/mempool"
	"github.com/ash-chain/ashd/util"
	"github.com/ash-chain/ashd/wire"
)

// stats holds the process-wide observables the assembler publishes each
// time CreateNewBlock builds a template (spec.md §5, "Process-wide state").
// They are recorded before the final validity check, so a template that
// then fails that check is still counted.
// Readers tolerate torn reads, so plain atomics are enough — no additional
// lock is taken around them.
type stats struct {
	lastBlockTxCount int64
	lastBlockSize    int64
}

func (s *stats) record(txCount, size int) {
	atomic.StoreInt64(&s.lastBlockTxCount, int64(txCount))
	atomic.StoreInt64(&s.lastBlockSize, int64(size))
}

// LastBlockTxCount returns the transaction count of the most recently built
// template.
func (s *stats) LastBlockTxCount() int64 { return atomic.LoadInt64(&s.lastBlockTxCount) }

// LastBlockSize returns the serialized size of the most recently built
// template.
func (s *stats) LastBlockSize() int64 { return atomic.LoadInt64(&s.lastBlockSize) }

// Assembler orchestrates C1 through C4 into a finished BlockTemplate
// (spec.md §4.5, C5). It owns the fixed lock-acquisition order (chain
// before mempool) every call to CreateNewBlock and broadcastTransaction
// must follow (spec.md §5).
type Assembler struct {
	chain ChainView
	pool  MempoolView

	chainLock   *sync.RWMutex
	mempoolLock *sync.RWMutex

	opts     Options
	coinbase *CoinbaseBuilder

	Stats stats
}

// NewAssembler returns an assembler wired to the given chain and mempool
// collaborators under the given options. chainLock and mempoolLock are
// shared with every other subsystem that touches the same chain/mempool
// state, so that lock order is enforced process-wide, not just within this
// package.
func NewAssembler(chain ChainView, pool MempoolView, chainLock, mempoolLock *sync.RWMutex, opts Options) *Assembler {
	return &Assembler{
		chain:       chain,
		pool:        pool,
		chainLock:   chainLock,
		mempoolLock: mempoolLock,
		opts:        opts,
		coinbase:    NewCoinbaseBuilder(chain, opts.ExcessiveBlockSize),
	}
}

// BlockTemplate is the result of CreateNewBlock: a block ready to be
// solved, alongside per-entry fee/sigop bookkeeping (spec.md §3,
// BlockTemplate).
type BlockTemplate struct {
	Block       *wire.MsgBlock
	Fees        []util.Amount
	SigOpCounts []int64
	Height      uint64
}

// CreateNewBlock builds a new block template paying minerAddr, following
// C5's eight steps exactly.
func (a *Assembler) CreateNewBlock(minerAddr util.Address) (*BlockTemplate, error) {
	// Step 2: acquire locks in fixed order (chain, mempool).
	a.chainLock.RLock()
	defer a.chainLock.RUnlock()
	a.mempoolLock.RLock()
	defer a.mempoolLock.RUnlock()

	tip := a.chain.ActiveTip()
	height := tip.Height + 1

	// Step 3: populate header.
	timestamp := tip.MedianTimePast.Add(time.Second)
	if adjusted := a.chain.GetAdjustedTime(); adjusted.After(timestamp) {
		timestamp = adjusted
	}
	bits := a.chain.GetNextWorkRequired(tip, timestamp)

	header := wire.BlockHeader{
		Version:   1,
		PrevHash:  tip.BlockHash,
		Timestamp: timestamp,
		Bits:      bits,
		Height:    height,
	}
	if a.opts.dev != nil {
		header.Version = *a.opts.dev
	}
	if height%a.chain.EpochNumBlocks() == 0 {
		header.EpochBlockHash = tip.BlockHash
	} else {
		header.EpochBlockHash = tip.EpochBlockHash
	}

	// Step 1: reset selection state.
	accountant := NewResourceAccountant(a.opts.MaxGeneratedBlockSize, maxSigOpsPerBlock)
	state := NewSelectionState(accountant)
	lockTimeCutoff := tip.MedianTimePast.Unix()
	selector := NewSelector(a.pool, a.chain, state, a.opts.BlockMinFeeRate, height, lockTimeCutoff, a.opts.PrintPriority)

	// Step 4: run the selector.
	committed := selector.Run()

	totalFees := util.Amount(0)
	entries := make([]*mempool.Entry, len(committed))
	copy(entries, committed)
	for _, e := range entries {
		totalFees += e.Fee
	}

	// Step 5: canonical ordering by TxId ascending (positions >= 1; the
	// coinbase is inserted at position 0 afterward).
	sort.Slice(entries, func(i, j int) bool {
		idI, idJ := entries[i].TxID(), entries[j].TxID()
		return idI.Less(&idJ)
	})

	var requiredOutputs []*wire.TxOut
	if a.opts.EnableMinerFund {
		requiredOutputs = a.chain.GetMinerFundRequiredOutputs(height)
	}

	// Step 6: synthesize the coinbase and place it at position 0.
	coinbaseTx, err := a.coinbase.Build(height, bits, totalFees, minerAddr, requiredOutputs)
	if err != nil {
		return nil, err
	}

	block := wire.NewMsgBlock(&header)
	block.AddTransaction(coinbaseTx)
	fees := make([]util.Amount, 0, len(entries)+1)
	sigOps := make([]int64, 0, len(entries)+1)
	fees = append(fees, -totalFees)
	sigOps = append(sigOps, 0)
	for _, e := range entries {
		block.AddTransaction(e.Tx.MsgTx())
		fees = append(fees, e.Fee)
		sigOps = append(sigOps, e.SigOpCount)
	}

	block.Header.MerkleRoot = wire.MerkleRoot(block.TxIDs())

	// Step 7: compute serialized size; record process-wide statistics.
	size := block.SerializeSize()
	a.Stats.record(len(block.Transactions), size)

	// Step 8: consensus validity check, PoW and Merkle checks disabled.
	if err := a.chain.TestBlockValidity(block); err != nil {
		return nil, err
	}

	return &BlockTemplate{
		Block:       block,
		Fees:        fees,
		SigOpCounts: sigOps,
		Height:      height,
	}, nil
}
