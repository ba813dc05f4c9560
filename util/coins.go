// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"strconv"
	"strings"

	"github.com/bitmark-inc/keyshares/fault"
)

// CoinDecimals - number of fractional digits in a coin
const CoinDecimals = 9

// Coin - one whole coin in the smallest unit
const Coin uint64 = 1000000000

// FormatCoins - smallest units as a decimal coin amount, trailing zeros removed
func FormatCoins(value uint64) string {
	whole := strconv.FormatUint(value/Coin, 10)
	fraction := value % Coin
	if 0 == fraction {
		return whole
	}
	f := strconv.FormatUint(fraction, 10)
	f = strings.Repeat("0", CoinDecimals-len(f)) + f
	return whole + "." + strings.TrimRight(f, "0")
}

// ParseCoins - decimal coin amount to smallest units
func ParseCoins(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if "" == s {
		return 0, fault.InvalidAmount
	}

	parts := strings.SplitN(s, ".", 2)
	whole, err := strconv.ParseUint(parts[0], 10, 64)
	if nil != err {
		return 0, fault.InvalidAmount
	}
	if whole > ^uint64(0)/Coin {
		return 0, fault.Overflow
	}
	value := whole * Coin

	if 2 == len(parts) {
		f := parts[1]
		if 0 == len(f) || len(f) > CoinDecimals {
			return 0, fault.InvalidAmount
		}
		f += strings.Repeat("0", CoinDecimals-len(f))
		fraction, err := strconv.ParseUint(f, 10, 64)
		if nil != err {
			return 0, fault.InvalidAmount
		}
		if value+fraction < value {
			return 0, fault.Overflow
		}
		value += fraction
	}
	return value, nil
}
