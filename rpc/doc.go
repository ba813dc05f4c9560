// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - this is to setup and handle all of the incoming JSON RPC requests
// from clients requiring keysharesd services
//
// standard golang RPC services can be used on the client side to
// access these services
//
// the same methods are available over TCP (one JSON-RPC codec per
// connection) and as a single POST to /keysharesd/rpc
package rpc
