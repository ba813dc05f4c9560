// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the avaiable tables.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++      = concatenation of byte data
// 3. address = 32 byte actor address SHA3-256(CBOR(template))
// 4. n       = big endian uint64 (8 bytes)
// 5. name    = UTF-8 text
//
// Actors:
//
//	C ++ address               - deployed code
//	                             data: CBOR(template)
//	S ++ address ++ name       - persistent actor state
//	                             data: CBOR(value)
//
// Coins:
//
//	W ++ address               - coin balance in nano units
//	                             data: n
//
// Statistics:
//
//	X ++ name                  - running totals (burned, funded, messages)
//	                             data: n
//
// Testing:
//
//	Z ++ key                   - testing data
package storage
