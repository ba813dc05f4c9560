// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package codec

import (
	"github.com/fxamacker/cbor/v2"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if nil != err {
		panic("codec: CBOR encoder initialisation failed: " + err.Error())
	}

	// unknown fields are ignored so older records still decode
	decMode, err = cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthForbidden,
	}.DecMode()
	if nil != err {
		panic("codec: CBOR decoder initialisation failed: " + err.Error())
	}
}

// Marshal - pack a value
func Marshal(v interface{}) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal - unpack into a pointer
func Unmarshal(data []byte, v interface{}) error {
	return decMode.Unmarshal(data, v)
}
