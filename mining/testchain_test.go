// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mining_test

import (
	"time"

	"github.com/ash-chain/ashd/daghash"
	"github.com/ash-chain/ashd/mining"
	"github.com/ash-chain/ashd/util"
	"github.com/ash-chain/ashd/wire"
)

// testMinerAddr returns a fixed pay-to-pubkey-hash address for tests that
// need a concrete miner payout destination.
func testMinerAddr() util.Address {
	addr, err := util.NewAddressPubKeyHash(make([]byte, 20), util.PrefixMainNet)
	if err != nil {
		panic(err)
	}
	return addr
}

// fakeChain is a minimal ChainView test double. Every method returns a
// fixed, configurable value; it exists so selector/assembler/broadcast
// tests can exercise their own logic without a real consensus engine.
type fakeChain struct {
	tip              mining.TipInfo
	unspentOutpoints map[daghash.TxID]map[uint32]bool
	subsidy          util.Amount
	adjustedTime     time.Time
	requiredOutputs  []*wire.TxOut
	epochNumBlocks   uint64
	finalByDefault   bool
	validityErr      error
}

func newFakeChain() *fakeChain {
	return &fakeChain{
		unspentOutpoints: make(map[daghash.TxID]map[uint32]bool),
		subsidy:          5_000_000_000,
		adjustedTime:     time.Unix(1_700_000_000, 0),
		epochNumBlocks:   100,
		finalByDefault:   true,
	}
}

func (c *fakeChain) ActiveTip() mining.TipInfo { return c.tip }

func (c *fakeChain) OutpointSpendable(txID daghash.TxID, index uint32) bool {
	return c.unspentOutpoints[txID][index]
}

func (c *fakeChain) GetNextWorkRequired(tip mining.TipInfo, timestamp time.Time) uint32 {
	return tip.Bits
}

func (c *fakeChain) GetBlockSubsidy(height uint64, bits uint32) util.Amount { return c.subsidy }

func (c *fakeChain) GetAdjustedTime() time.Time { return c.adjustedTime }

func (c *fakeChain) GetMinerFundRequiredOutputs(height uint64) []*wire.TxOut {
	return c.requiredOutputs
}

func (c *fakeChain) IsFinalForBlock(tx *util.Tx, height uint64, lockTimeCutoff int64) bool {
	return c.finalByDefault
}

func (c *fakeChain) TestBlockValidity(block *wire.MsgBlock) error { return c.validityErr }

func (c *fakeChain) EpochNumBlocks() uint64 { return c.epochNumBlocks }
