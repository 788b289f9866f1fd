// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mining

// Size reserved for the block header and the coinbase transaction when
// accounting for how much room the selector has left to pack further
// transactions into (spec.md §4.1, Resource Accountant).
const (
	coinbaseReservedSize   = 1000
	coinbaseReservedSigOps = 100

	// fitMargin is the headroom a candidate package must leave under the
	// configured ceiling: a package fits only if more than fitMargin bytes
	// remain after it, so packages are rejected once the remaining
	// headroom would be fitMargin or less, even if they would technically
	// still squeeze in.
	fitMargin = 1000

	// maxConsecutiveFailures bounds how many fit-test failures the
	// selector tolerates before concluding the block is full and ending
	// the scan (spec.md §4.3, step 4).
	maxConsecutiveFailures = 1000

	// defaultMaxGeneratedBlockSize is the ceiling applied when the
	// operator has not requested a smaller block via Options.
	defaultMaxGeneratedBlockSize = 2_000_000

	// minTxSize is the minimum serialized size a transaction (including
	// the coinbase) must reach; below it, the coinbase builder pads the
	// coinbase's signature script.
	minTxSize = 100
)

// Options configures the resource accountant and the coinbase builder.
// DefaultOptions reproduces the asymmetric margin arithmetic the reference
// miner applies when deriving nMaxGeneratedBlockSize from the network's
// excessive block size and an optional operator override — preserved
// exactly rather than simplified, since the 1000/3000-byte margins are a
// deliberate safety cushion, not an approximation.
type Options struct {
	// ExcessiveBlockSize is the network-wide hard cap a block may never
	// exceed; it bounds every other size derived below.
	ExcessiveBlockSize uint64

	// RequestedMaxBlockSize is the operator's "-blockmaxsize"-equivalent
	// override. Zero means no override was requested.
	RequestedMaxBlockSize uint64

	// MaxGeneratedBlockSize is the computed ceiling the resource
	// accountant enforces. Populated by DefaultOptions; callers building
	// Options by hand may set it directly instead.
	MaxGeneratedBlockSize uint64

	// BlockMinFeeRate is the minimum fee rate, in amount per byte, a
	// package's aggregate fee/size must clear the score gate
	// (spec.md §4.3, step 3). A zero value disables the gate.
	BlockMinFeeRate float64

	// EnableMinerFund, if true, directs the coinbase builder to deduct
	// the chain's required miner-fund outputs from the miner's payout
	// share before finalizing the coinbase.
	EnableMinerFund bool

	// CoinbaseFlags is a software tag DefaultOptions sets to "/ashd/". The
	// coinbase builder does not read it: the coinbase's signature script
	// carries only the extra-nonce, the excessive-block-size tag and any
	// padding.
	CoinbaseFlags string

	// PrintPriority, if true, has the selector log each committed package's
	// fee and txid as it is placed in the block (spec.md §6, printPriority).
	PrintPriority bool

	// dev, when non-nil, overrides the header version field. Exposed
	// only through WithDevBlockVersion so production callers can't set
	// it by accident.
	dev *int32
}

// WithDevBlockVersion returns a copy of opts with the header version
// pinned to version, for development-network use only.
func (opts Options) WithDevBlockVersion(version int32) Options {
	opts.dev = &version
	return opts
}

// maxSigOpsPerBlock bounds the total signature-check operations a block's
// transactions may contribute.
const maxSigOpsPerBlock = 20000

// DefaultOptions derives MaxGeneratedBlockSize from excessiveBlockSize and an
// optional operator-requested override, applying the same asymmetric
// margins as the reference implementation: a fixed 1000-byte margin under
// the excessive size, and — when the operator has requested a smaller
// block — a separate 3000-byte margin under that request, the override
// only taking effect if it leaves at least one byte after subtracting it.
func DefaultOptions(excessiveBlockSize, requestedMaxBlockSize uint64) Options {
	opts := Options{
		ExcessiveBlockSize:    excessiveBlockSize,
		RequestedMaxBlockSize: requestedMaxBlockSize,
		CoinbaseFlags:         "/ashd/",
	}

	ceiling := excessiveBlockSize - fitMargin
	if ceiling > defaultMaxGeneratedBlockSize {
		ceiling = defaultMaxGeneratedBlockSize
	}

	if requestedMaxBlockSize > 3000 {
		requested := requestedMaxBlockSize - 3000
		if requested < ceiling {
			ceiling = requested
		}
	}

	opts.MaxGeneratedBlockSize = ceiling
	return opts
}
