// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"errors"
	"fmt"

	"github.com/ash-chain/ashd/util/base58"
	"golang.org/x/crypto/ripemd160"
)

var (
	// ErrChecksumMismatch describes an error where decoding failed due
	// to a bad checksum.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrUnknownAddressType describes an error where an address can not
	// decoded as a specific address type due to the string encoding
	// begining with an identifier byte unknown to any of the networks in
	// versionBytesToNetPrefix, or with an unknown address-type nibble.
	ErrUnknownAddressType = errors.New("unknown address type")
)

const (
	// PubKeyHash addresses always have the low four bits of the version
	// byte set to 0; the high four bits carry the network.
	pubKeyHashAddrID = 0x00

	// ScriptHash addresses always have the low four bits of the version
	// byte set to 8; the high four bits carry the network.
	scriptHashAddrID = 0x08
)

// NetPrefix identifies which network an address was encoded for, so a node
// configured for one network refuses to relay or pay out to an address
// encoded for another.
type NetPrefix int

// Constants that define the networks an address may be encoded for. Every
// network is assigned a unique prefix.
const (
	// PrefixUnknown is the zero value, returned on parse failure.
	PrefixUnknown NetPrefix = iota

	// PrefixMainNet is the prefix for the main network.
	PrefixMainNet

	// PrefixRegTest is the prefix for the regression test network.
	PrefixRegTest

	// PrefixTestNet is the prefix for the test network.
	PrefixTestNet

	// PrefixSimNet is the prefix for the simulation network.
	PrefixSimNet
)

var netPrefixVersionBytes = map[NetPrefix]byte{
	PrefixMainNet: 0x00,
	PrefixRegTest: 0x10,
	PrefixTestNet: 0x20,
	PrefixSimNet:  0x30,
}

var versionBytesToNetPrefix = map[byte]NetPrefix{
	0x00: PrefixMainNet,
	0x10: PrefixRegTest,
	0x20: PrefixTestNet,
	0x30: PrefixSimNet,
}

var netPrefixNames = map[NetPrefix]string{
	PrefixMainNet: "mainnet",
	PrefixRegTest: "regtest",
	PrefixTestNet: "testnet",
	PrefixSimNet:  "simnet",
}

// String returns the human-readable name of the network prefix.
func (prefix NetPrefix) String() string {
	if name, ok := netPrefixNames[prefix]; ok {
		return name
	}
	return "unknown"
}

// encodeAddress returns a human-readable payment address given a network
// prefix and a ripemd160 hash which encodes the network and address type.
// It is used in both pay-to-pubkey-hash (P2PKH) and pay-to-script-hash
// (P2SH) address encoding.
func encodeAddress(prefix NetPrefix, hash160 []byte, addrType byte) string {
	netVersion, ok := netPrefixVersionBytes[prefix]
	if !ok {
		netVersion = netPrefixVersionBytes[PrefixMainNet]
	}
	// addrType (pubKeyHashAddrID or scriptHashAddrID) distinguishes P2PKH
	// from P2SH within the same network by offsetting the version byte.
	return base58.CheckEncode(hash160[:ripemd160.Size], netVersion+addrType)
}

// Address is an interface type for any type of destination a transaction
// output may spend to.  This package implements pay-to-pubkey-hash (P2PKH)
// and pay-to-script-hash (P2SH).  Address is designed to be generic
// enough that other kinds of addresses may be added in the future without
// changing the decoding and encoding API.
type Address interface {
	// String returns the string encoding of the transaction output
	// destination.
	//
	// Please note that String differs subtly from EncodeAddress: String
	// will return the value as a string without any conversion, while
	// EncodeAddress may convert destination types (for example,
	// converting pubkeys to P2PKH addresses) before encoding as a
	// payment address string.
	String() string

	// EncodeAddress returns the string encoding of the payment address
	// associated with the Address value.  See the comment on String
	// for how this method differs from String.
	EncodeAddress() string

	// ScriptAddress returns the raw bytes of the address to be used
	// when inserting the address into a txout's script.
	ScriptAddress() []byte

	// IsForPrefix returns whether or not the address is associated with the
	// passed bitcoin network.
	IsForPrefix(prefix NetPrefix) bool
}

// DecodeAddress decodes the string encoding of an address and returns
// the Address if addr is a valid encoding for a known address type.
//
// The network encoded in the address's version byte must equal
// defaultPrefix; otherwise an error is returned. Only 20-byte P2PKH and P2SH
// payloads are accepted.
func DecodeAddress(addr string, defaultPrefix NetPrefix) (Address, error) {
	decoded, netVersion, err := base58.CheckDecode(addr)
	if err != nil {
		return nil, fmt.Errorf("decoded address is of unknown format: %s", err)
	}

	if len(decoded) != ripemd160.Size {
		return nil, errors.New("decoded address is of unknown size")
	}

	prefix, ok := versionBytesToNetPrefix[netVersion&0xf0]
	if !ok {
		return nil, ErrUnknownAddressType
	}
	if defaultPrefix != prefix {
		return nil, fmt.Errorf("decoded address is of wrong network: got %s, want %s", prefix, defaultPrefix)
	}

	switch netVersion & 0x0f {
	case pubKeyHashAddrID:
		return newAddressPubKeyHash(defaultPrefix, decoded)
	case scriptHashAddrID:
		return newAddressScriptHashFromHash(defaultPrefix, decoded)
	default:
		return nil, ErrUnknownAddressType
	}
}

// AddressPubKeyHash is an Address for a pay-to-pubkey-hash (P2PKH)
// transaction.
type AddressPubKeyHash struct {
	prefix NetPrefix
	hash   [ripemd160.Size]byte
}

// NewAddressPubKeyHashFromPublicKey return a new AddressPubKeyHash from given public key
func NewAddressPubKeyHashFromPublicKey(publicKey []byte, prefix NetPrefix) (*AddressPubKeyHash, error) {
	pkHash := Hash160(publicKey)
	return newAddressPubKeyHash(prefix, pkHash)
}

// NewAddressPubKeyHash returns a new AddressPubKeyHash.  pkHash mustbe 20
// bytes.
func NewAddressPubKeyHash(pkHash []byte, prefix NetPrefix) (*AddressPubKeyHash, error) {
	return newAddressPubKeyHash(prefix, pkHash)
}

// newAddressPubKeyHash is the internal API to create a pubkey hash address
// with a known leading identifier byte for a network, rather than looking
// it up through its parameters.  This is useful when creating a new address
// structure from a string encoding where the identifer byte is already
// known.
func newAddressPubKeyHash(prefix NetPrefix, pkHash []byte) (*AddressPubKeyHash, error) {
	// Check for a valid pubkey hash length.
	if len(pkHash) != ripemd160.Size {
		return nil, errors.New("pkHash must be 20 bytes")
	}

	addr := &AddressPubKeyHash{prefix: prefix}
	copy(addr.hash[:], pkHash)
	return addr, nil
}

// EncodeAddress returns the string encoding of a pay-to-pubkey-hash
// address.  Part of the Address interface.
func (a *AddressPubKeyHash) EncodeAddress() string {
	return encodeAddress(a.prefix, a.hash[:], pubKeyHashAddrID)
}

// ScriptAddress returns the bytes to be included in a txout script to pay
// to a pubkey hash.  Part of the Address interface.
func (a *AddressPubKeyHash) ScriptAddress() []byte {
	return a.hash[:]
}

// IsForPrefix returns whether or not the pay-to-pubkey-hash address is associated
// with the passed bitcoin network.
func (a *AddressPubKeyHash) IsForPrefix(prefix NetPrefix) bool {
	return a.prefix == prefix
}

// String returns a human-readable string for the pay-to-pubkey-hash address.
// This is equivalent to calling EncodeAddress, but is provided so the type can
// be used as a fmt.Stringer.
func (a *AddressPubKeyHash) String() string {
	return a.EncodeAddress()
}

// Hash160 returns the underlying array of the pubkey hash.  This can be useful
// when an array is more appropiate than a slice (for example, when used as map
// keys).
func (a *AddressPubKeyHash) Hash160() *[ripemd160.Size]byte {
	return &a.hash
}

// AddressScriptHash is an Address for a pay-to-script-hash (P2SH)
// transaction.
type AddressScriptHash struct {
	prefix NetPrefix
	hash   [ripemd160.Size]byte
}

// NewAddressScriptHash returns a new AddressScriptHash.
func NewAddressScriptHash(serializedScript []byte, prefix NetPrefix) (*AddressScriptHash, error) {
	scriptHash := Hash160(serializedScript)
	return newAddressScriptHashFromHash(prefix, scriptHash)
}

// NewAddressScriptHashFromHash returns a new AddressScriptHash.  scriptHash
// must be 20 bytes.
func NewAddressScriptHashFromHash(scriptHash []byte, prefix NetPrefix) (*AddressScriptHash, error) {
	return newAddressScriptHashFromHash(prefix, scriptHash)
}

// newAddressScriptHashFromHash is the internal API to create a script hash
// address with a known leading identifier byte for a network, rather than
// looking it up through its parameters.  This is useful when creating a new
// address structure from a string encoding where the identifer byte is already
// known.
func newAddressScriptHashFromHash(prefix NetPrefix, scriptHash []byte) (*AddressScriptHash, error) {
	// Check for a valid script hash length.
	if len(scriptHash) != ripemd160.Size {
		return nil, errors.New("scriptHash must be 20 bytes")
	}

	addr := &AddressScriptHash{prefix: prefix}
	copy(addr.hash[:], scriptHash)
	return addr, nil
}

// EncodeAddress returns the string encoding of a pay-to-script-hash
// address.  Part of the Address interface.
func (a *AddressScriptHash) EncodeAddress() string {
	return encodeAddress(a.prefix, a.hash[:], scriptHashAddrID)
}

// ScriptAddress returns the bytes to be included in a txout script to pay
// to a script hash.  Part of the Address interface.
func (a *AddressScriptHash) ScriptAddress() []byte {
	return a.hash[:]
}

// IsForPrefix returns whether or not the pay-to-script-hash address is associated
// with the passed bitcoin network.
func (a *AddressScriptHash) IsForPrefix(prefix NetPrefix) bool {
	return a.prefix == prefix
}

// String returns a human-readable string for the pay-to-script-hash address.
// This is equivalent to calling EncodeAddress, but is provided so the type can
// be used as a fmt.Stringer.
func (a *AddressScriptHash) String() string {
	return a.EncodeAddress()
}

// Hash160 returns the underlying array of the script hash.  This can be useful
// when an array is more appropiate than a slice (for example, when used as map
// keys).
func (a *AddressScriptHash) Hash160() *[ripemd160.Size]byte {
	return &a.hash
}
