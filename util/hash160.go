// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"crypto/sha256"

	"golang.org/x/crypto/ripemd160"
)

// Hash160 calculates the hash ripemd160(sha256(b)), used as the short
// digest backing pay-to-pubkey-hash and pay-to-script-hash addresses.
func Hash160(b []byte) []byte {
	sha := sha256.Sum256(b)
	ripe := ripemd160.New()
	// ripemd160.Hash.Write never returns an error.
	_, _ = ripe.Write(sha[:])
	return ripe.Sum(nil)
}
