// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package daghash provides the 256-bit hash identifiers used throughout the
// chain: block hashes and transaction ids.
package daghash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// HashSize is the number of bytes in a hash.
const HashSize = 32

// MaxHashStringSize is the maximum length of a Hash hash string.
const MaxHashStringSize = HashSize * 2

// ErrHashStrSize describes an error that indicates the caller specified a
// hash string that has too many characters.
var ErrHashStrSize = fmt.Errorf("max hash string length is %d bytes", MaxHashStringSize)

// Hash is used in several of the chain's messages and block files to identify
// an entity (a block or a transaction). It typically is the double sha256 of
// the serialized form of whatever is being hashed.
type Hash [HashSize]byte

// TxID is the unique identifier of a transaction. It is an alias of Hash
// kept distinct at the type level so that transaction ids and block hashes
// are not accidentally interchanged at call sites.
type TxID Hash

// String returns the Hash as the hexadecimal string of the byte-reversed
// hash, matching the display convention used across the Bitcoin-derived
// tooling this package follows.
func (hash Hash) String() string {
	for i := 0; i < HashSize/2; i++ {
		hash[i], hash[HashSize-1-i] = hash[HashSize-1-i], hash[i]
	}
	return hex.EncodeToString(hash[:])
}

// CloneBytes returns a copy of the bytes which represent the hash as a byte
// slice.
func (hash *Hash) CloneBytes() []byte {
	newHash := make([]byte, HashSize)
	copy(newHash, hash[:])
	return newHash
}

// SetBytes sets the bytes which represent the hash. An error is returned if
// the number of bytes passed in is not HashSize.
func (hash *Hash) SetBytes(newHash []byte) error {
	nhlen := len(newHash)
	if nhlen != HashSize {
		return fmt.Errorf("invalid hash length of %d, want %d", nhlen, HashSize)
	}
	copy(hash[:], newHash)
	return nil
}

// IsEqual returns true if target is the same as the hash.
func (hash *Hash) IsEqual(target *Hash) bool {
	if hash == nil && target == nil {
		return true
	}
	if hash == nil || target == nil {
		return false
	}
	return *hash == *target
}

// Less reports whether hash sorts before target. Used as the stable tie
// break for the ancestor-score ordering (spec.md §3, AncestorScore).
func (hash *Hash) Less(target *Hash) bool {
	for i := HashSize - 1; i >= 0; i-- {
		if hash[i] != target[i] {
			return hash[i] < target[i]
		}
	}
	return false
}

// NewHash returns a new Hash from a byte slice. An error is returned if the
// number of bytes passed in is not HashSize.
func NewHash(newHash []byte) (*Hash, error) {
	var sh Hash
	err := sh.SetBytes(newHash)
	if err != nil {
		return nil, err
	}
	return &sh, nil
}

// NewHashFromStr creates a Hash from a hash string. The string should be the
// hexadecimal string of a byte-reversed hash, but any missing characters
// result in zero padding at the end of the Hash.
func NewHashFromStr(hash string) (*Hash, error) {
	ret := new(Hash)
	err := Decode(ret, hash)
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// Decode decodes the byte-reversed hexadecimal string encoding of a Hash to a
// destination.
func Decode(dst *Hash, src string) error {
	if len(src) > MaxHashStringSize {
		return ErrHashStrSize
	}

	var srcBytes []byte
	if len(src)%2 == 0 {
		srcBytes = []byte(src)
	} else {
		srcBytes = make([]byte, 1+len(src))
		srcBytes[0] = '0'
		copy(srcBytes[1:], src)
	}

	var reversedHash Hash
	_, err := hex.Decode(reversedHash[HashSize-hex.DecodedLen(len(srcBytes)):], srcBytes)
	if err != nil {
		return err
	}

	for i, b := range reversedHash[:HashSize/2] {
		dst[i], dst[HashSize-1-i] = reversedHash[HashSize-1-i], b
	}
	return nil
}

// DoubleHashH computes double sha256 of the data and returns it as a Hash.
func DoubleHashH(b []byte) Hash {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	return Hash(second)
}

// DoubleHashP computes double sha256 of the data and returns it as a pointer
// to a Hash, matching the teacher's allocation-avoiding convention for hot
// header-hashing paths.
func DoubleHashP(b []byte) *Hash {
	hash := DoubleHashH(b)
	return &hash
}

// String returns the TxID as the byte-reversed hexadecimal string, same
// convention as Hash.
func (id TxID) String() string {
	return Hash(id).String()
}

// IsEqual returns true if target is the same as the id.
func (id *TxID) IsEqual(target *TxID) bool {
	return (*Hash)(id).IsEqual((*Hash)(target))
}

// Less reports whether id sorts before target using the canonical
// transaction-ordering tie break (spec.md §4.5, §4.3 step 7).
func (id *TxID) Less(target *TxID) bool {
	return (*Hash)(id).Less((*Hash)(target))
}

// TxIDFromHash reinterprets a Hash as a TxID.
func TxIDFromHash(hash *Hash) *TxID {
	return (*TxID)(hash)
}
