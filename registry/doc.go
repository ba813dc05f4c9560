// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package registry - the singleton actor pricing and coordinating all
// key operations
//
// a request reserves the next query id, then the registry drives the
// key supply actor first and the holder's wallet second:
//
//	NewKey:   InitKey -> KeyInitialised -> AdjustBalance -> BalanceAdjusted
//	TradeKey: AdjustSupply -> SupplyAdjusted -> AdjustBalance -> BalanceAdjusted
//
// a rejected supply step settles as a failure with nothing changed, a
// rejected balance step first sends RevertSupply to undo the supply
// change; fees move only on success and the query record is deleted
// at settlement either way, so a late or repeated confirmation finds
// nothing to act on
package registry
