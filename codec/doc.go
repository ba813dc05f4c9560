// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package codec - the single CBOR configuration used for message
// bodies, actor state records and address templates
//
// encoding uses Core Deterministic Encoding (RFC 8949 §4.2) so the
// same value always packs to the same bytes, which address derivation
// depends on
package codec
