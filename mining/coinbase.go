// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mining

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/ash-chain/ashd/daghash"
	"github.com/ash-chain/ashd/txscript"
	"github.com/ash-chain/ashd/util"
	"github.com/ash-chain/ashd/wire"
)

// coinbasePrefix tags the unspendable marker output (output 0) so that a
// height can be recovered from any coinbase without parsing the rest of
// the transaction.
var coinbasePrefix = []byte("/ashd/")

// maxCoinbaseScriptSigSize bounds the coinbase's unlocking script,
// mirroring consensus' own ceiling on it.
const maxCoinbaseScriptSigSize = 100

// GetBlockRewardFromFees computes the miner's share of the collected fees.
// Integer division means the remainder sompi is burned, not rounded to the
// miner — this is deliberate, not a bug to "fix".
func GetBlockRewardFromFees(totalFees util.Amount) util.Amount {
	return totalFees / 2
}

// CoinbaseBuilder constructs and re-rolls the block's first transaction
// (spec.md §4.4, C4).
type CoinbaseBuilder struct {
	chain ChainView

	mu                 sync.Mutex
	lastPrevHash       daghash.Hash
	extraNonce         uint64
	excessiveBlockSize uint64
}

// NewCoinbaseBuilder returns a coinbase builder whose extra-nonce counter
// resets the first time it observes a given previous-block hash.
func NewCoinbaseBuilder(chain ChainView, excessiveBlockSize uint64) *CoinbaseBuilder {
	return &CoinbaseBuilder{chain: chain, excessiveBlockSize: excessiveBlockSize}
}

// Build synthesizes the coinbase transaction for a template at the given
// height, paying minerAddr and (if required-outputs is non-empty)
// deducting the protocol-mandated outputs from the miner's share.
func (b *CoinbaseBuilder) Build(height uint64, bits uint32, totalFees util.Amount, minerAddr util.Address, requiredOutputs []*wire.TxOut) (*wire.MsgTx, error) {
	subsidy := b.chain.GetBlockSubsidy(height, bits)
	feeReward := GetBlockRewardFromFees(totalFees)

	minerScript, err := txscript.PayToAddrScript(minerAddr)
	if err != nil {
		return nil, err
	}

	tx := wire.NewMsgTx(wire.TxVersion)
	tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&daghash.TxID{}, 0xffffffff), nil))

	markerScript, err := markerScript(height)
	if err != nil {
		return nil, err
	}
	tx.AddTxOut(wire.NewTxOut(0, markerScript))

	minerValue := subsidy + feeReward
	for _, req := range requiredOutputs {
		minerValue -= util.Amount(req.Value)
	}
	if minerValue < 0 {
		return nil, fmt.Errorf("miner fund required outputs exceed coinbase value")
	}
	tx.AddTxOut(wire.NewTxOut(int64(minerValue), minerScript))
	for _, req := range requiredOutputs {
		tx.AddTxOut(req)
	}

	tx.TxIn[0].SignatureScript = []byte{txscript.OP_0, txscript.OP_0}
	padCoinbaseScriptSig(tx)

	return tx, nil
}

// markerScript builds output 0's unspendable OP_RETURN marker, carrying the
// chain's coinbase prefix and the block height.
func markerScript(height uint64) ([]byte, error) {
	heightBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(heightBytes, height)
	data := append(append([]byte{}, coinbasePrefix...), heightBytes...)
	return txscript.NullDataScript(data)
}

// padCoinbaseScriptSig pads tx's (coinbase) signature script with zero
// bytes until the serialized transaction reaches minTxSize. The "-1" below
// is not an off-by-one slip: it accounts for the length-prefix byte the
// script encoder itself will add when pushing the padding, so the final
// serialized size lands exactly on minTxSize rather than one byte over.
func padCoinbaseScriptSig(tx *wire.MsgTx) {
	size := uint64(tx.SerializeSize())
	if size >= minTxSize {
		return
	}
	padLen := minTxSize - size - 1
	pad := make([]byte, padLen)
	script, _ := (&txscript.ScriptBuilder{}).AddData(pad).Script()
	tx.TxIn[0].SignatureScript = append(tx.TxIn[0].SignatureScript, script...)
}

// IncrementExtraNonce rolls the extra-nonce counter, rebuilds the coinbase
// unlocking script around it, re-pads to minTxSize, replaces the coinbase
// in block, and recomputes the Merkle root. The counter resets to 1 on the
// first call after block observes a new previous-block hash.
func (b *CoinbaseBuilder) IncrementExtraNonce(block *wire.MsgBlock) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.lastPrevHash != block.Header.PrevHash {
		b.extraNonce = 0
		b.lastPrevHash = block.Header.PrevHash
	}
	b.extraNonce++

	nonceBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(nonceBytes, b.extraNonce)
	sizeTag := []byte(fmt.Sprintf("/EB%d/", b.excessiveBlockSize))

	oldCoinbase := block.Transactions[0]
	newCoinbase := oldCoinbase.Copy()
	script, err := (&txscript.ScriptBuilder{}).AddData(nonceBytes).AddData(sizeTag).Script()
	if err != nil {
		return err
	}
	newCoinbase.TxIn[0].SignatureScript = script
	padCoinbaseScriptSig(newCoinbase)

	if len(newCoinbase.TxIn[0].SignatureScript) > maxCoinbaseScriptSigSize {
		return fmt.Errorf("coinbase signature script length %d exceeds maximum %d",
			len(newCoinbase.TxIn[0].SignatureScript), maxCoinbaseScriptSigSize)
	}

	block.Transactions[0] = newCoinbase

	txIDs := block.TxIDs()
	block.Header.MerkleRoot = wire.MerkleRoot(txIDs)
	return nil
}
