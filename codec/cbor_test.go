// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package codec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/keyshares/codec"
)

type sample struct {
	QueryId   uint64   `cbor:"1,keyasint"`
	Subject   [32]byte `cbor:"2,keyasint"`
	Increment bool     `cbor:"3,keyasint"`
}

func TestRoundTrip(t *testing.T) {
	original := sample{
		QueryId:   42,
		Subject:   [32]byte{1, 2, 3},
		Increment: true,
	}

	packed, err := codec.Marshal(original)
	assert.Nil(t, err, "wrong marshal")
	assert.NotEmpty(t, packed, "empty packed data")

	var unpacked sample
	err = codec.Unmarshal(packed, &unpacked)
	assert.Nil(t, err, "wrong unmarshal")
	assert.Equal(t, original, unpacked, "wrong round trip")
}

func TestDeterministicMapOrder(t *testing.T) {
	a := map[string]uint64{"zebra": 1, "apple": 2, "mango": 3}
	b := map[string]uint64{"mango": 3, "zebra": 1, "apple": 2}

	for i := 0; i < 20; i += 1 {
		packedA, err := codec.Marshal(a)
		assert.Nil(t, err, "wrong marshal a")
		packedB, err := codec.Marshal(b)
		assert.Nil(t, err, "wrong marshal b")
		assert.Equal(t, packedA, packedB, "map encoding not deterministic")
	}
}

func TestUnmarshalGarbage(t *testing.T) {
	var s sample
	err := codec.Unmarshal([]byte{0xff, 0x00, 0x13}, &s)
	assert.NotNil(t, err, "garbage accepted")
}
