// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus - queues for events leaving the actor runtime
//
// Settlement carries registry outcomes to the settlement tracker,
// Broadcast fans every event out to any number of listeners (e.g. a
// client streaming settlements) and drops for listeners that lag
package messagebus
