// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"fmt"
)

// ErrScriptNotCanonical identifies a non-canonical script. The caller may
// ignore this error if it is creating a non-canonical script intentionally.
type ErrScriptNotCanonical string

func (e ErrScriptNotCanonical) Error() string {
	return string(e)
}

// ScriptBuilder provides a facility for building custom scripts. It allows
// the easy construction of small scripts, such as a coinbase's OP_RETURN
// marker or a pay-to-pubkey-hash locking script, without having to work with
// byte slices directly.
type ScriptBuilder struct {
	script []byte
	err    error
}

// AddOp pushes the passed opcode to the end of the script.
func (b *ScriptBuilder) AddOp(op byte) *ScriptBuilder {
	if b.err != nil {
		return b
	}
	b.script = append(b.script, op)
	return b
}

// AddData pushes the passed data to the end of the script, choosing the
// minimal canonical encoding for its length.
func (b *ScriptBuilder) AddData(data []byte) *ScriptBuilder {
	if b.err != nil {
		return b
	}

	if len(data) > MaxScriptSize {
		b.err = fmt.Errorf("adding %d bytes of data would exceed the maximum allowed script size of %d bytes", len(data), MaxScriptSize)
		return b
	}

	b.script = append(b.script, canonicalDataSize(len(data))...)
	b.script = append(b.script, data...)
	return b
}

// canonicalDataSize returns the canonical push opcode(s) (excluding the data
// bytes themselves) required to push dataLen bytes of data.
func canonicalDataSize(dataLen int) []byte {
	switch {
	case dataLen < OP_PUSHDATA1:
		return []byte{byte(dataLen)}
	case dataLen <= 0xff:
		return []byte{OP_PUSHDATA1, byte(dataLen)}
	case dataLen <= 0xffff:
		return []byte{OP_PUSHDATA2, byte(dataLen), byte(dataLen >> 8)}
	default:
		return []byte{OP_PUSHDATA4, byte(dataLen), byte(dataLen >> 8), byte(dataLen >> 16), byte(dataLen >> 24)}
	}
}

// Script returns the currently built script. Any errors encountered during
// building are returned alongside whatever script was successfully built so
// far.
func (b *ScriptBuilder) Script() ([]byte, error) {
	return b.script, b.err
}

// MaxScriptSize is the maximum allowed length of a raw script, mirroring
// consensus' cap on the scripts a transaction may carry.
const MaxScriptSize = 10000
