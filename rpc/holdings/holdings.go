// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package holdings

import (
	"github.com/bitmark-inc/keyshares/actor"
	"github.com/bitmark-inc/keyshares/address"
	"github.com/bitmark-inc/keyshares/fault"
	"github.com/bitmark-inc/keyshares/rpc/ratelimit"
	"github.com/bitmark-inc/keyshares/wallet"
	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"
)

const (
	rateLimitWallet = 200
	rateBurstWallet = 100
)

// Wallet - type for the RPC
type Wallet struct {
	Log      *logger.L
	Limiter  *rate.Limiter
	Runtime  actor.Handle
	Registry address.Address
}

// New - wallet lookups below one registry
func New(log *logger.L, runtime actor.Handle, registry address.Address) *Wallet {
	return &Wallet{
		Log:      log,
		Limiter:  rate.NewLimiter(rateLimitWallet, rateBurstWallet),
		Runtime:  runtime,
		Registry: registry,
	}
}

// BalanceArguments - a holder of a subject's keys
type BalanceArguments struct {
	Holder  address.Address `json:"holder"`
	Subject address.Address `json:"subject"`
}

// BalanceReply - keys held, Active is false if the wallet does not exist
type BalanceReply struct {
	Address address.Address `json:"address"`
	Active  bool            `json:"active"`
	Balance uint64          `json:"balance"`
}

// Balance - read a holder's wallet
func (w *Wallet) Balance(arguments *BalanceArguments, reply *BalanceReply) error {
	if err := ratelimit.Limit(w.Limiter); nil != err {
		return err
	}
	if nil == arguments || arguments.Holder.IsZero() || arguments.Subject.IsZero() {
		return fault.InvalidAddress
	}

	reply.Address = wallet.Address(w.Registry, arguments.Holder, arguments.Subject)
	err := w.Runtime.Get(reply.Address, func(r actor.Reader) error {
		var err error
		reply.Balance, err = wallet.Balance(r)
		return err
	})
	switch err {
	case nil:
		reply.Active = true
	case fault.NotActive:
		reply.Balance = 0
	default:
		return err
	}
	return nil
}
