// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package settlement - remembers what happened to recent registry queries
//
// Publish is an actor.Observer that copies registry events onto
// messagebus.Bus.Settlement; the Tracker drains that queue in the
// background, caches an Outcome per query and forwards every event to
// the broadcast bus
//
// the registry deletes a query when it settles, so this cache is the
// only place a client can find out whether its request succeeded
package settlement
