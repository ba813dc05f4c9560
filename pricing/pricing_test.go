// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/keyshares/pricing"
)

func TestPriceOfNothing(t *testing.T) {
	assert.Equal(t, uint64(0), pricing.Price(0, 0), "wrong price(0, 0)")
	assert.Equal(t, uint64(0), pricing.Price(1234, 0), "wrong price(n, 0)")
}

func TestPriceKnownValues(t *testing.T) {
	// keys 0, 1, 2: 3·base + (0 + 1 + 4)·step
	assert.Equal(t, 3*pricing.BasePrice+5*pricing.CurveStep, pricing.Price(0, 3), "wrong price(0, 3)")

	// keys 3..7: 5·base + (9 + 16 + 25 + 36 + 49)·step
	assert.Equal(t, 5*pricing.BasePrice+135*pricing.CurveStep, pricing.Price(3, 5), "wrong price(3, 5)")
}

func TestPriceIsAdditive(t *testing.T) {
	for supply := uint64(0); supply < 50; supply += 7 {
		for a := uint64(0); a < 20; a += 1 {
			for b := uint64(0); b < 20; b += 3 {
				whole := pricing.Price(supply, a+b)
				parts := pricing.Price(supply, a) + pricing.Price(supply+a, b)
				assert.Equal(t, whole, parts, "supply: %d  a: %d  b: %d", supply, a, b)
			}
		}
	}
}

func TestPriceMonotonicInAmount(t *testing.T) {
	for _, supply := range []uint64{0, 1, 2, 10, 1000, pricing.MaximumSupply - 100} {
		previous := pricing.Price(supply, 0)
		for amount := uint64(1); amount <= 100; amount += 1 {
			current := pricing.Price(supply, amount)
			assert.True(t, current > previous, "supply: %d amount: %d  %d <= %d", supply, amount, current, previous)
			previous = current
		}
	}
}

func TestPriceMonotonicInSupply(t *testing.T) {
	for _, amount := range []uint64{1, 2, 5, 100} {
		previous := pricing.Price(0, amount)
		for supply := uint64(1); supply <= 500; supply += 1 {
			current := pricing.Price(supply, amount)
			assert.True(t, current > previous, "supply: %d amount: %d  %d <= %d", supply, amount, current, previous)
			previous = current
		}
	}
}

func TestPriceAtTheLimit(t *testing.T) {
	assert.True(t, pricing.Valid(0, pricing.MaximumSupply), "full range must be valid")
	assert.False(t, pricing.Valid(1, pricing.MaximumSupply), "range past the limit must be invalid")
	assert.False(t, pricing.Valid(^uint64(0), 2), "wrapping range must be invalid")

	whole := pricing.Price(0, pricing.MaximumSupply)
	last := pricing.Price(pricing.MaximumSupply-1, 1)
	assert.True(t, whole > last, "overflow in closed form")
}

func TestFeeSplit(t *testing.T) {
	items := []struct {
		cost     uint64
		protocol uint64
		subject  uint64
		expectP  uint64
		expectS  uint64
	}{
		{0, 5, 5, 0, 0},
		{100, 5, 5, 5, 5},
		{119, 5, 5, 5, 5},
		{120, 5, 5, 6, 6},
		{999, 10, 0, 99, 0},
		{1000, 50, 50, 500, 500},
		{^uint64(0), 100, 0, ^uint64(0), 0},
	}

	for i, item := range items {
		p, s := pricing.FeeSplit(item.cost, item.protocol, item.subject)
		assert.Equal(t, item.expectP, p, "%d: wrong protocol fee", i)
		assert.Equal(t, item.expectS, s, "%d: wrong subject fee", i)
		assert.True(t, p+s <= item.cost || 0 == item.cost, "%d: fees exceed cost", i)
	}
}

func TestQuotes(t *testing.T) {
	buy := pricing.BuyQuote(3, 5, 5, 5)
	assert.Equal(t, pricing.Price(3, 5), buy.Cost, "wrong buy cost")
	assert.Equal(t, buy.Cost*5/100, buy.ProtocolFee, "wrong buy protocol fee")
	assert.Equal(t, buy.Cost+buy.ProtocolFee+buy.SubjectFee, buy.Total(), "wrong total")

	// selling the same keys back prices the same range
	sell := pricing.SellQuote(8, 5, 5, 5)
	assert.Equal(t, buy.Cost, sell.Cost, "buy and sell of the same range differ")
	assert.Equal(t, sell.Cost-sell.ProtocolFee-sell.SubjectFee, sell.Net(), "wrong net")
}
