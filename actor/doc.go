// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package actor - asynchronous actors with value carrying messages
//
// every address has a mailbox drained one message at a time; a message
// that reaches code runs with the actor's state wrapped in a storage
// transaction which is committed only if the handler returns nil
//
// value rules:
//   - the sender is debited when a message is sent, a send that cannot
//     be covered fails at once
//   - MessageFee is taken from the attached value and burned whenever
//     code runs
//   - a failing bounceable message returns its remaining value to the
//     sender as a bounced message, otherwise the value stays with the
//     destination
//   - a bounceable message to an address without code is bounced in
//     full, a plain transfer is credited
//
// so that  Σ coins + burned + in flight == funded
package actor
