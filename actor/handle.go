// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package actor

import (
	"github.com/bitmark-inc/keyshares/address"
)

//go:generate mockgen -destination=../rpc/mocks/runtime.go -package=mocks -mock_names=Handle=MockRuntime github.com/bitmark-inc/keyshares/actor Handle
//go:generate mockgen -destination=../rpc/mocks/reader.go -package=mocks github.com/bitmark-inc/keyshares/actor Reader

// Handle - the runtime as seen by clients outside it
type Handle interface {
	Send(m *Message) (uint64, error)
	Fund(to address.Address, amount uint64) error
	Coins(a address.Address) uint64
	IsActive(a address.Address) bool
	Get(a address.Address, f func(Reader) error) error
	MessageFee() uint64
	Statistics() Statistics
}

var _ Handle = (*Runtime)(nil)
