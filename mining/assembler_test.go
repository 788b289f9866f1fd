// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mining_test

import (
	"sync"
	"testing"
	"time"

	"github.com/ash-chain/ashd/daghash"
	"github.com/ash-chain/ashd/mempool"
	"github.com/ash-chain/ashd/mining"
)

func newTestAssembler(chain *fakeChain, pool *mempool.Pool) *mining.Assembler {
	var chainLock, mempoolLock sync.RWMutex
	opts := mining.DefaultOptions(32_000_000, 0)
	return mining.NewAssembler(chain, pool, &chainLock, &mempoolLock, opts)
}

// Empty-mempool template (spec.md §8): an empty mempool yields a
// coinbase-only template with a non-zero serialized size, built at the
// height one above the tip.
func TestCreateNewBlockEmptyMempool(t *testing.T) {
	chain := newFakeChain()
	chain.tip = mining.TipInfo{
		BlockHash:      daghash.Hash{0x01},
		Height:         10,
		MedianTimePast: time.Unix(1_700_000_000, 0),
		Bits:           0x1d00ffff,
	}
	pool := mempool.New()

	assembler := newTestAssembler(chain, pool)
	template, err := assembler.CreateNewBlock(testMinerAddr())
	if err != nil {
		t.Fatalf("CreateNewBlock: %v", err)
	}

	if len(template.Block.Transactions) != 1 {
		t.Fatalf("len(Transactions) = %d, want 1 (coinbase only)", len(template.Block.Transactions))
	}
	if template.Block.SerializeSize() <= 0 {
		t.Error("expected a non-zero serialized block size")
	}
	if template.Height != 11 {
		t.Errorf("Height = %d, want 11", template.Height)
	}
}

// S6 — Epoch boundary: at a height that is a multiple of the epoch size,
// epochBlockHash must be the tip's own hash; one block later, it must carry
// forward the tip's already-inherited epoch hash instead.
func TestCreateNewBlockEpochBoundary(t *testing.T) {
	chain := newFakeChain()
	chain.epochNumBlocks = 100
	tipHash := daghash.Hash{0xaa}
	inheritedEpochHash := daghash.Hash{0xbb}

	// height = epochNumBlocks * k - 1, so height+1 lands exactly on the
	// epoch boundary.
	chain.tip = mining.TipInfo{
		BlockHash:      tipHash,
		Height:         99,
		EpochBlockHash: inheritedEpochHash,
		MedianTimePast: time.Unix(1_700_000_000, 0),
		Bits:           0x1d00ffff,
	}
	pool := mempool.New()
	assembler := newTestAssembler(chain, pool)

	template, err := assembler.CreateNewBlock(testMinerAddr())
	if err != nil {
		t.Fatalf("CreateNewBlock: %v", err)
	}
	if template.Block.Header.EpochBlockHash != tipHash {
		t.Errorf("EpochBlockHash = %x, want tip hash %x at the epoch boundary", template.Block.Header.EpochBlockHash, tipHash)
	}

	// One block later, height+1 is no longer a multiple of epochNumBlocks;
	// the new block must inherit the tip's epoch hash instead.
	chain.tip.Height = 100
	chain.tip.BlockHash = daghash.Hash{0xcc}
	chain.tip.EpochBlockHash = tipHash

	template2, err := assembler.CreateNewBlock(testMinerAddr())
	if err != nil {
		t.Fatalf("CreateNewBlock (2nd): %v", err)
	}
	if template2.Block.Header.EpochBlockHash != tipHash {
		t.Errorf("EpochBlockHash = %x, want inherited tip epoch hash %x", template2.Block.Header.EpochBlockHash, tipHash)
	}
}

// Monotone fee accounting (spec.md §8): after N commits, totalFees equals
// the sum of the committed entries' fees, reflected in the coinbase's
// negative fee-total bookkeeping entry.
func TestCreateNewBlockMonotoneFeeAccounting(t *testing.T) {
	chain := newFakeChain()
	chain.tip = mining.TipInfo{
		BlockHash:      daghash.Hash{0x01},
		Height:         10,
		MedianTimePast: time.Unix(1_700_000_000, 0),
		Bits:           0x1d00ffff,
	}
	pool := mempool.New()
	tx1 := buildTx(0, 0)
	tx2 := buildTx(1, 0)
	if _, err := pool.AddTransaction(tx1, 100, nil); err != nil {
		t.Fatalf("add tx1: %v", err)
	}
	if _, err := pool.AddTransaction(tx2, 200, nil); err != nil {
		t.Fatalf("add tx2: %v", err)
	}

	assembler := newTestAssembler(chain, pool)
	template, err := assembler.CreateNewBlock(testMinerAddr())
	if err != nil {
		t.Fatalf("CreateNewBlock: %v", err)
	}

	if len(template.Fees) != 3 {
		t.Fatalf("len(Fees) = %d, want 3 (coinbase + 2 txs)", len(template.Fees))
	}
	if template.Fees[0] != -300 {
		t.Errorf("coinbase fee entry = %d, want -300", template.Fees[0])
	}
}
