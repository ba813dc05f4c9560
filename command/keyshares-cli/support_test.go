// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/keyshares/address"
	"github.com/bitmark-inc/keyshares/util"
)

func TestCheckAddress(t *testing.T) {
	subject := address.Treasury("subject")

	a, err := checkAddress("subject", " "+subject.String()+" ")
	assert.Nil(t, err, "valid address")
	assert.Equal(t, subject, a, "wrong address")

	_, err = checkAddress("subject", "")
	assert.NotNil(t, err, "blank address accepted")

	_, err = checkAddress("subject", "0OIl")
	assert.NotNil(t, err, "invalid base58 accepted")

	a, err = checkOptionalAddress("holder", "")
	assert.Nil(t, err, "blank optional address")
	assert.True(t, a.IsZero(), "blank must be zero")
}

func TestCheckCoins(t *testing.T) {
	n, err := checkCoins("value", "")
	assert.Nil(t, err, "blank coins")
	assert.Equal(t, uint64(0), n, "blank must be zero")

	n, err = checkCoins("value", "1.5")
	assert.Nil(t, err, "coins")
	assert.Equal(t, util.Coin+util.Coin/2, n, "wrong coins")

	_, err = checkCoins("value", "x")
	assert.NotNil(t, err, "invalid coins accepted")
}

func TestCheckClaim(t *testing.T) {
	claim, err := checkClaim("supply", "")
	assert.Nil(t, err, "blank claim")
	assert.Nil(t, claim, "blank claim must be nil")

	claim, err = checkClaim("supply", "0")
	assert.Nil(t, err, "zero claim")
	if assert.NotNil(t, claim, "zero claim must be kept") {
		assert.Equal(t, uint64(0), *claim, "wrong claim")
	}

	_, err = checkClaim("supply", "-1")
	assert.NotNil(t, err, "negative claim accepted")
}
