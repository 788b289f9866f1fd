// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"strconv"
)

// SompiPerCoin is the number of base units in one coin, mirroring
// btcsuite's SatoshiPerBitcoin convention.
const SompiPerCoin = 100000000

// Amount represents the base monetary unit (sompi). A single Amount is
// equal to 1 / SompiPerCoin of a coin.
type Amount int64

// ToCoin converts a monetary amount in base units to a floating point
// representation in coins.
func (a Amount) ToCoin() float64 {
	return float64(a) / float64(SompiPerCoin)
}

// String returns the Amount formatted as a human-readable coin value.
func (a Amount) String() string {
	return strconv.FormatFloat(a.ToCoin(), 'f', -1, 64) + " coin"
}
