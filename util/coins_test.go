// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/keyshares/fault"
	"github.com/bitmark-inc/keyshares/util"
)

func TestFormatCoins(t *testing.T) {
	tests := []struct {
		value    uint64
		expected string
	}{
		{0, "0"},
		{1, "0.000000001"},
		{50000000, "0.05"},
		{1000000000, "1"},
		{1234567890, "1.23456789"},
		{10 * util.Coin, "10"},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, util.FormatCoins(test.value), "value: %d", test.value)
	}
}

func TestParseCoins(t *testing.T) {
	tests := []struct {
		s        string
		expected uint64
		err      error
	}{
		{"0", 0, nil},
		{"1", util.Coin, nil},
		{" 0.05 ", 50000000, nil},
		{"1.23456789", 1234567890, nil},
		{"0.000000001", 1, nil},
		{"", 0, fault.InvalidAmount},
		{"abc", 0, fault.InvalidAmount},
		{"1.", 0, fault.InvalidAmount},
		{"1.0000000001", 0, fault.InvalidAmount},
		{"-1", 0, fault.InvalidAmount},
		{"18446744074", 0, fault.Overflow},
	}
	for _, test := range tests {
		value, err := util.ParseCoins(test.s)
		assert.Equal(t, test.err, err, "text: %q", test.s)
		assert.Equal(t, test.expected, value, "text: %q", test.s)
	}
}

func TestCoinsRoundTrip(t *testing.T) {
	for _, value := range []uint64{1, 999999999, 1000000001, 123456789012345} {
		s := util.FormatCoins(value)
		actual, err := util.ParseCoins(s)
		assert.Nil(t, err, "parse: %q", s)
		assert.Equal(t, value, actual, "round trip: %q", s)
	}
}
