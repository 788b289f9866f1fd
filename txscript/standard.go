// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"github.com/ash-chain/ashd/util"
)

// NullDataScript creates a provably pruneable script containing data that
// carries no spendable value. The coinbase builder uses this to mark the
// unspendable sentinel output it prepends before the miner payout
// (spec.md §4.4).
func NullDataScript(data []byte) ([]byte, error) {
	return (&ScriptBuilder{}).AddOp(OP_RETURN).AddData(data).Script()
}

// PayToAddrScript creates a new script to pay a transaction output to the
// specified address, selecting the standard pay-to-pubkey-hash or
// pay-to-script-hash form based on the address's concrete type.
func PayToAddrScript(addr util.Address) ([]byte, error) {
	switch addr := addr.(type) {
	case *util.AddressPubKeyHash:
		return payToPubKeyHashScript(addr.ScriptAddress())
	case *util.AddressScriptHash:
		return payToScriptHashScript(addr.ScriptAddress())
	}
	return nil, ErrScriptNotCanonical("unsupported address type")
}

func payToPubKeyHashScript(pubKeyHash []byte) ([]byte, error) {
	return (&ScriptBuilder{}).
		AddOp(OP_DUP).
		AddOp(OP_HASH160).
		AddData(pubKeyHash).
		AddOp(OP_EQUALVERIFY).
		AddOp(OP_CHECKSIG).
		Script()
}

func payToScriptHashScript(scriptHash []byte) ([]byte, error) {
	return (&ScriptBuilder{}).
		AddOp(OP_HASH160).
		AddData(scriptHash).
		AddOp(OP_EQUAL).
		Script()
}

// GetSigOpCount counts the number of signature operations a script
// contributes. It recognizes only the fixed shapes this chain's standard
// scripts take (P2PKH's single OP_CHECKSIG and P2SH/bare-multisig's
// OP_CHECKMULTISIG), which is sufficient for the resource accountant's
// per-candidate sigop budget (spec.md §4.1).
func GetSigOpCount(script []byte) int {
	count := 0
	for i := 0; i < len(script); {
		op := script[i]
		switch {
		case op == OP_CHECKSIG:
			count++
			i++
		case op == OP_CHECKMULTISIG:
			// Conservatively charge the maximum multisig size, matching
			// the "accurate" accounting the teacher's consensus layer
			// uses for legacy (non-segwit-style) scripts.
			count += 20
			i++
		case op < OP_PUSHDATA1:
			i += int(op) + 1
		case op == OP_PUSHDATA1:
			if i+1 >= len(script) {
				return count
			}
			i += int(script[i+1]) + 2
		case op == OP_PUSHDATA2:
			if i+2 >= len(script) {
				return count
			}
			n := int(script[i+1]) | int(script[i+2])<<8
			i += n + 3
		case op == OP_PUSHDATA4:
			if i+4 >= len(script) {
				return count
			}
			n := int(script[i+1]) | int(script[i+2])<<8 | int(script[i+3])<<16 | int(script[i+4])<<24
			i += n + 5
		default:
			i++
		}
	}
	return count
}
