// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package address

import (
	"bytes"
	"encoding/hex"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/keyshares/codec"
	"github.com/bitmark-inc/keyshares/fault"
)

// Length - number of bytes in an address
const Length = 32

// kinds of actor code
const (
	Registry = "registry"
	Key      = "key"
	Wallet   = "wallet"
)

// Address - identifies an actor or an external identity
type Address [Length]byte

// Zero - the unset address
var Zero Address

// Template - the inputs an address is derived from
type Template struct {
	Kind       string    `cbor:"1,keyasint" json:"kind"`
	Fields     []Address `cbor:"2,keyasint,omitempty" json:"fields,omitempty"`
	Parameters []uint64  `cbor:"3,keyasint,omitempty" json:"parameters,omitempty"`
}

// Derive - compute the address for a template
func Derive(template Template) Address {
	packed, err := codec.Marshal(template)
	if nil != err {
		// only fails for unsupported types, which a Template cannot hold
		panic("address: template marshal failed: " + err.Error())
	}
	return Address(sha3.Sum256(packed))
}

// Of - shorthand for a template with identity fields only
func Of(kind string, fields ...Address) Address {
	return Derive(Template{
		Kind:   kind,
		Fields: fields,
	})
}

// Treasury - address of a named external identity
func Treasury(name string) Address {
	return Address(sha3.Sum256([]byte("treasury:" + name)))
}

// FromBytes - convert a byte slice to an address
func FromBytes(b []byte) (Address, error) {
	var a Address
	if Length != len(b) {
		return a, fault.WrongAddressLength
	}
	copy(a[:], b)
	return a, nil
}

// FromBase58 - parse the text form of an address
func FromBase58(s string) (Address, error) {
	b, err := base58.Decode(s)
	if nil != err {
		return Zero, fault.InvalidAddress
	}
	return FromBytes(b)
}

// IsZero - true if the address was never set
func (a Address) IsZero() bool {
	return a == Zero
}

// Equal - compare two addresses
func (a Address) Equal(b Address) bool {
	return bytes.Equal(a[:], b[:])
}

// String - base58 text form
func (a Address) String() string {
	return base58.Encode(a[:])
}

// GoString - for %#v
func (a Address) GoString() string {
	return "<address:" + hex.EncodeToString(a[:]) + ">"
}

// MarshalText - base58 for JSON
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText - base58 from JSON
func (a *Address) UnmarshalText(s []byte) error {
	b, err := FromBase58(string(s))
	if nil != err {
		return err
	}
	*a = b
	return nil
}
