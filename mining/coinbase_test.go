// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mining_test

import (
	"testing"

	"github.com/ash-chain/ashd/daghash"
	"github.com/ash-chain/ashd/mining"
	"github.com/ash-chain/ashd/util"
	"github.com/ash-chain/ashd/wire"
)

func TestGetBlockRewardFromFeesBurnsRemainder(t *testing.T) {
	tests := []struct {
		fees int64
		want int64
	}{
		{fees: 100, want: 50},
		{fees: 101, want: 50}, // odd remainder burned, not rounded to the miner
		{fees: 0, want: 0},
		{fees: 1, want: 0},
	}
	for _, tt := range tests {
		got := mining.GetBlockRewardFromFees(util.Amount(tt.fees))
		if int64(got) != tt.want {
			t.Errorf("GetBlockRewardFromFees(%d) = %d, want %d", tt.fees, got, tt.want)
		}
	}
}

func TestCoinbaseBuilderBuild(t *testing.T) {
	chain := newFakeChain()
	chain.subsidy = 1000
	builder := mining.NewCoinbaseBuilder(chain, 32_000_000)

	tx, err := builder.Build(100, 0x1d00ffff, 101, testMinerAddr(), nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if len(tx.TxOut) != 2 {
		t.Fatalf("len(TxOut) = %d, want 2", len(tx.TxOut))
	}
	if tx.TxOut[0].Value != 0 {
		t.Errorf("marker output value = %d, want 0", tx.TxOut[0].Value)
	}
	wantMinerValue := int64(1000 + 50) // subsidy + feeReward(101/2 = 50)
	if tx.TxOut[1].Value != wantMinerValue {
		t.Errorf("miner output value = %d, want %d", tx.TxOut[1].Value, wantMinerValue)
	}
	if uint64(tx.SerializeSize()) < 100 {
		t.Errorf("coinbase serialize size = %d, want >= 100 (minTxSize)", tx.SerializeSize())
	}
}

func TestCoinbaseBuilderMinerFundDeduction(t *testing.T) {
	chain := newFakeChain()
	chain.subsidy = 1000
	builder := mining.NewCoinbaseBuilder(chain, 32_000_000)

	required := []*wire.TxOut{wire.NewTxOut(200, []byte{0x51})}
	tx, err := builder.Build(100, 0x1d00ffff, 0, testMinerAddr(), required)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if len(tx.TxOut) != 3 {
		t.Fatalf("len(TxOut) = %d, want 3", len(tx.TxOut))
	}
	wantMinerValue := int64(1000 - 200)
	if tx.TxOut[1].Value != wantMinerValue {
		t.Errorf("miner output value = %d, want %d", tx.TxOut[1].Value, wantMinerValue)
	}
	if tx.TxOut[2].Value != 200 {
		t.Errorf("required output value = %d, want 200", tx.TxOut[2].Value)
	}
}

func newTestBlockWithCoinbase(t *testing.T, builder *mining.CoinbaseBuilder, prevHash daghash.Hash) *wire.MsgBlock {
	t.Helper()
	header := wire.BlockHeader{PrevHash: prevHash}
	block := wire.NewMsgBlock(&header)
	coinbase, err := builder.Build(1, 0x1d00ffff, 0, testMinerAddr(), nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	block.AddTransaction(coinbase)
	return block
}

func TestIncrementExtraNonceRollsScriptWithinSameTip(t *testing.T) {
	chain := newFakeChain()
	builder := mining.NewCoinbaseBuilder(chain, 32_000_000)
	block := newTestBlockWithCoinbase(t, builder, daghash.Hash{})

	if err := builder.IncrementExtraNonce(block); err != nil {
		t.Fatalf("IncrementExtraNonce (1st): %v", err)
	}
	firstScript := append([]byte(nil), block.Transactions[0].TxIn[0].SignatureScript...)
	firstRoot := block.Header.MerkleRoot

	if err := builder.IncrementExtraNonce(block); err != nil {
		t.Fatalf("IncrementExtraNonce (2nd): %v", err)
	}
	secondScript := block.Transactions[0].TxIn[0].SignatureScript

	if string(firstScript) == string(secondScript) {
		t.Error("expected signature script to change between successive extra-nonce rolls")
	}
	if block.Header.MerkleRoot == firstRoot {
		t.Error("expected Merkle root to change after re-rolling the coinbase")
	}
	if len(block.Transactions[0].TxIn[0].SignatureScript) > 100 {
		t.Errorf("coinbase signature script length %d exceeds maximum", len(block.Transactions[0].TxIn[0].SignatureScript))
	}
}

// Extra-nonce reset law (spec.md §8): a builder shared across two
// successive tips resets its counter to 1 on the first call after prevHash
// changes.
func TestIncrementExtraNonceResetsOnTipChange(t *testing.T) {
	chain := newFakeChain()
	builder := mining.NewCoinbaseBuilder(chain, 32_000_000)

	firstTip := daghash.Hash{0x01}
	blockA := newTestBlockWithCoinbase(t, builder, firstTip)
	if err := builder.IncrementExtraNonce(blockA); err != nil {
		t.Fatalf("IncrementExtraNonce (tip A): %v", err)
	}
	afterTipAScript := blockA.Transactions[0].TxIn[0].SignatureScript

	secondTip := daghash.Hash{0x02}
	blockB := newTestBlockWithCoinbase(t, builder, secondTip)
	if err := builder.IncrementExtraNonce(blockB); err != nil {
		t.Fatalf("IncrementExtraNonce (tip B): %v", err)
	}
	afterTipBScript := blockB.Transactions[0].TxIn[0].SignatureScript

	if string(afterTipAScript) != string(afterTipBScript) {
		t.Error("expected the counter to restart at the same value (1) on a new tip")
	}
}
