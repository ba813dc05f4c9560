// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package pricing - the bonding curve
//
// key number i (counting from zero) costs BasePrice + i²·CurveStep, so
// the cost of a run of keys is a difference of two sums of squares
//
// all amounts are in nano units, 10⁹ = one coin
package pricing

import (
	"math/bits"
)

// curve constants
const (
	BasePrice     uint64 = 1000000 // 0.001 coin floor on every key
	CurveStep     uint64 = 62500   // 1/16000 coin per i²
	MaximumSupply uint64 = 65536   // keeps every Price result inside uint64
	Percent       uint64 = 100
)

// Quote - a priced request
type Quote struct {
	Cost        uint64 `json:"cost"`
	ProtocolFee uint64 `json:"protocolFee"`
	SubjectFee  uint64 `json:"subjectFee"`
}

// Total - cost plus both fees
func (q Quote) Total() uint64 {
	return q.Cost + q.ProtocolFee + q.SubjectFee
}

// Net - cost less both fees, what a seller receives
func (q Quote) Net() uint64 {
	return q.Cost - q.ProtocolFee - q.SubjectFee
}

// Valid - true if a supply range can be priced
func Valid(supply uint64, amount uint64) bool {
	if supply > MaximumSupply || amount > MaximumSupply {
		return false
	}
	return supply+amount <= MaximumSupply
}

// Price - cost of the keys with indexes [supply, supply+amount)
//
// the caller must check Valid first
func Price(supply uint64, amount uint64) uint64 {
	if 0 == amount {
		return 0
	}
	squares := sumOfSquares(supply+amount) - sumOfSquares(supply)
	return amount*BasePrice + squares*CurveStep
}

// FeeSplit - truncating percentages of a cost
//
// protocolPercent + subjectPercent must not exceed 100
func FeeSplit(cost uint64, protocolPercent uint64, subjectPercent uint64) (uint64, uint64) {
	return percentage(cost, protocolPercent), percentage(cost, subjectPercent)
}

// BuyQuote - price and fees to add amount keys on top of supply
func BuyQuote(supply uint64, amount uint64, protocolPercent uint64, subjectPercent uint64) Quote {
	cost := Price(supply, amount)
	protocolFee, subjectFee := FeeSplit(cost, protocolPercent, subjectPercent)
	return Quote{
		Cost:        cost,
		ProtocolFee: protocolFee,
		SubjectFee:  subjectFee,
	}
}

// SellQuote - price and fees to remove amount keys from the top of supply
//
// amount must not exceed supply
func SellQuote(supply uint64, amount uint64, protocolPercent uint64, subjectPercent uint64) Quote {
	cost := Price(supply-amount, amount)
	protocolFee, subjectFee := FeeSplit(cost, protocolPercent, subjectPercent)
	return Quote{
		Cost:        cost,
		ProtocolFee: protocolFee,
		SubjectFee:  subjectFee,
	}
}

// Σ i² for i in [0, n)
func sumOfSquares(n uint64) uint64 {
	if 0 == n {
		return 0
	}
	return (n - 1) * n * (2*n - 1) / 6
}

// cost·percent/100 without overflowing the intermediate product
func percentage(cost uint64, percent uint64) uint64 {
	hi, lo := bits.Mul64(cost, percent)
	q, _ := bits.Div64(hi, lo, Percent)
	return q
}
