// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mining

// ResourceAccountant tracks the running size and sigop cost of the block
// under assembly (spec.md §4.1, C1). It is consulted twice per candidate:
// once with fits() against the candidate package's aggregate size before
// any of the package's transactions are added, and once per transaction via
// commit() as each is actually placed in the block.
type ResourceAccountant struct {
	maxSize   uint64
	maxSigOps int64

	blockSize   uint64
	blockSigOps int64
}

// NewResourceAccountant returns an accountant whose running totals already
// reserve the coinbase's header and transaction overhead.
func NewResourceAccountant(maxSize uint64, maxSigOps int64) *ResourceAccountant {
	return &ResourceAccountant{
		maxSize:     maxSize,
		maxSigOps:   maxSigOps,
		blockSize:   coinbaseReservedSize,
		blockSigOps: coinbaseReservedSigOps,
	}
}

// Fits reports whether a package of the given aggregate size and sigop
// count could be added while leaving more than fitMargin bytes of headroom
// under the size ceiling and keeping the sigop total below its ceiling.
func (a *ResourceAccountant) Fits(packageSize uint64, packageSigOps int64) bool {
	if a.blockSigOps+packageSigOps >= a.maxSigOps {
		return false
	}
	projected := a.blockSize + packageSize
	if projected > a.maxSize {
		return false
	}
	return a.maxSize-projected > fitMargin
}

// Commit records an individual transaction's actual size and sigop cost
// against the running totals. Unlike Fits, which tests a whole package at
// once, Commit is called once per transaction as it is placed.
func (a *ResourceAccountant) Commit(size uint64, sigOps int64) {
	a.blockSize += size
	a.blockSigOps += sigOps
}

// BlockSize returns the running serialized size, including the coinbase
// reservation and every transaction committed so far.
func (a *ResourceAccountant) BlockSize() uint64 {
	return a.blockSize
}

// BlockSigOps returns the running sigop count, including the coinbase
// reservation and every transaction committed so far.
func (a *ResourceAccountant) BlockSigOps() int64 {
	return a.blockSigOps
}

// Remaining returns how many bytes remain before the configured ceiling,
// ignoring fitMargin.
func (a *ResourceAccountant) Remaining() uint64 {
	if a.blockSize >= a.maxSize {
		return 0
	}
	return a.maxSize - a.blockSize
}
