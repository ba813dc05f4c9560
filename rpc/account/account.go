// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"github.com/bitmark-inc/keyshares/actor"
	"github.com/bitmark-inc/keyshares/address"
	"github.com/bitmark-inc/keyshares/fault"
	"github.com/bitmark-inc/keyshares/rpc/ratelimit"
	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"
)

const (
	rateLimitAccount = 200
	rateBurstAccount = 100

	rateLimitFund = 2
	rateBurstFund = 5
)

// Account - type for the RPC
type Account struct {
	Log         *logger.L
	Limiter     *rate.Limiter
	FundLimiter *rate.Limiter
	Runtime     actor.Handle
	Faucet      bool
	ReadOnly    bool
}

// New - coin balances, transfers and the optional faucet
func New(log *logger.L, runtime actor.Handle, faucet bool, readOnly bool) *Account {
	return &Account{
		Log:         log,
		Limiter:     rate.NewLimiter(rateLimitAccount, rateBurstAccount),
		FundLimiter: rate.NewLimiter(rateLimitFund, rateBurstFund),
		Runtime:     runtime,
		Faucet:      faucet,
		ReadOnly:    readOnly,
	}
}

// BalanceArguments - the address to look up
type BalanceArguments struct {
	Address address.Address `json:"address"`
}

// BalanceReply - coins held and whether code runs at the address
type BalanceReply struct {
	Address address.Address `json:"address"`
	Coins   uint64          `json:"coins"`
	Active  bool            `json:"active"`
}

// Balance - coins of any address
func (account *Account) Balance(arguments *BalanceArguments, reply *BalanceReply) error {
	if err := ratelimit.Limit(account.Limiter); nil != err {
		return err
	}
	if nil == arguments || arguments.Address.IsZero() {
		return fault.InvalidAddress
	}

	reply.Address = arguments.Address
	reply.Coins = account.Runtime.Coins(arguments.Address)
	reply.Active = account.Runtime.IsActive(arguments.Address)
	return nil
}

// ---

// FundArguments - coins to mint into an address
type FundArguments struct {
	Address address.Address `json:"address"`
	Amount  uint64          `json:"amount"`
}

// Fund - faucet, only when enabled in the configuration
func (account *Account) Fund(arguments *FundArguments, reply *BalanceReply) error {
	if err := ratelimit.Limit(account.FundLimiter); nil != err {
		return err
	}
	if !account.Faucet {
		return fault.FaucetDisabled
	}
	if account.ReadOnly {
		return fault.NotAvailableInReadOnlyMode
	}
	if nil == arguments || arguments.Address.IsZero() {
		return fault.InvalidAddress
	}
	if 0 == arguments.Amount {
		return fault.InvalidAmount
	}

	err := account.Runtime.Fund(arguments.Address, arguments.Amount)
	if nil != err {
		return err
	}
	account.Log.Debugf("faucet: %s  amount: %d", arguments.Address, arguments.Amount)

	reply.Address = arguments.Address
	reply.Coins = account.Runtime.Coins(arguments.Address)
	reply.Active = account.Runtime.IsActive(arguments.Address)
	return nil
}

// ---

// TransferArguments - move coins between addresses
//
// with Bounce set a transfer to an address without code is returned
type TransferArguments struct {
	From   address.Address `json:"from"`
	To     address.Address `json:"to"`
	Value  uint64          `json:"value"`
	Bounce bool            `json:"bounce"`
}

// TransferReply - id of the queued message
type TransferReply struct {
	MessageId uint64 `json:"messageId"`
}

// Transfer - queue a plain coin transfer
func (account *Account) Transfer(arguments *TransferArguments, reply *TransferReply) error {
	if err := ratelimit.Limit(account.Limiter); nil != err {
		return err
	}
	if account.ReadOnly {
		return fault.NotAvailableInReadOnlyMode
	}
	if nil == arguments || arguments.From.IsZero() || arguments.To.IsZero() {
		return fault.InvalidAddress
	}
	if 0 == arguments.Value {
		return fault.InvalidAmount
	}

	m, err := actor.NewMessage(arguments.From, arguments.To, arguments.Value, "", nil)
	if nil != err {
		return err
	}
	m.Bounce = arguments.Bounce

	reply.MessageId, err = account.Runtime.Send(m)
	return err
}
