// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package address - deterministic actor addressing
//
// An actor's address is the SHA3-256 digest of its packed template:
// the kind of code it runs plus the identity fields it was created
// for.  Anyone holding the same template computes the same address,
// so nothing needs to keep a lookup table of deployed actors.
//
//	registry:  Derive(Template{Kind: Registry, Fields: [feeDestination], Parameters: [...]})
//	key:       Derive(Template{Kind: Key, Fields: [registry, subject]})
//	wallet:    Derive(Template{Kind: Wallet, Fields: [registry, holder, subject]})
//	treasury:  Treasury(name) - an external identity with no code
package address
