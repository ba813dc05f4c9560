// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wallet - the actor holding one holder's keys of one subject
package wallet

import (
	"github.com/bitmark-inc/keyshares/actor"
	"github.com/bitmark-inc/keyshares/address"
	"github.com/bitmark-inc/keyshares/fault"
	"github.com/bitmark-inc/logger"
)

// Kind - template kind
const Kind = address.Wallet

// operations
const (
	OpAdjustBalance   = "AdjustBalance"
	OpBalanceAdjusted = "BalanceAdjusted"
)

const stateKey = "wallet"

// AdjustBalance - change the balance if it is still Expected
//
// the first increment with Expected zero creates the wallet
type AdjustBalance struct {
	QueryId   uint64 `cbor:"1,keyasint"`
	Expected  uint64 `cbor:"2,keyasint"`
	Delta     uint64 `cbor:"3,keyasint"`
	Increment bool   `cbor:"4,keyasint"`
}

// Confirmation - reply body
type Confirmation struct {
	QueryId uint64 `cbor:"1,keyasint"`
	Balance uint64 `cbor:"2,keyasint"`
}

type state struct {
	Holder  address.Address `cbor:"1,keyasint"`
	Subject address.Address `cbor:"2,keyasint"`
	Balance uint64          `cbor:"3,keyasint"`
}

// Template - the wallet of a holder for a subject's keys
func Template(registry address.Address, holder address.Address, subject address.Address) address.Template {
	return address.Template{
		Kind:   Kind,
		Fields: []address.Address{registry, holder, subject},
	}
}

// Address - derive the wallet actor address
func Address(registry address.Address, holder address.Address, subject address.Address) address.Address {
	return address.Derive(Template(registry, holder, subject))
}

// Code - wallet behaviour
type Code struct {
	log *logger.L
}

// New - create the wallet code
func New() *Code {
	return &Code{
		log: logger.New("wallet"),
	}
}

// Receive - process one message
func (c *Code) Receive(ctx actor.Context, m *actor.Message) error {
	t := ctx.Template()
	if Kind != t.Kind || 3 != len(t.Fields) {
		return fault.InvalidTemplate
	}
	registry := t.Fields[0]

	if m.Bounced {
		c.log.Warnf("%s: bounced %s: %s", ctx.Self(), m.Op, m.Error)
		return nil
	}

	if m.From != registry {
		return fault.Unauthorized
	}
	if OpAdjustBalance != m.Op {
		return fault.UnknownOperation
	}

	var req AdjustBalance
	if err := m.Decode(&req); nil != err {
		return err
	}

	var s state
	found, err := ctx.Get(stateKey, &s)
	if nil != err {
		return err
	}

	if !found {
		if !req.Increment || 0 != req.Expected {
			return fault.NotInitialised
		}
		s = state{
			Holder:  t.Fields[1],
			Subject: t.Fields[2],
			Balance: req.Delta,
		}
	} else {
		if req.Expected != s.Balance {
			return fault.StaleBalance
		}
		if req.Increment {
			if s.Balance+req.Delta < s.Balance {
				return fault.Overflow
			}
			s.Balance += req.Delta
		} else {
			if req.Delta > s.Balance {
				return fault.Underflow
			}
			s.Balance -= req.Delta
		}
	}

	if err := ctx.Put(stateKey, s); nil != err {
		return err
	}
	c.log.Debugf("%s: query: %d  balance: %d", ctx.Self(), req.QueryId, s.Balance)

	return ctx.Send(actor.Outgoing{
		To:    registry,
		Value: ctx.Value(),
		Op:    OpBalanceAdjusted,
		Body: Confirmation{
			QueryId: req.QueryId,
			Balance: s.Balance,
		},
	})
}

// Balance - getter for the balance
func Balance(r actor.Reader) (uint64, error) {
	s, err := load(r)
	if nil != err {
		return 0, err
	}
	return s.Balance, nil
}

// Holder - getter for the owner of the keys
func Holder(r actor.Reader) (address.Address, error) {
	s, err := load(r)
	if nil != err {
		return address.Zero, err
	}
	return s.Holder, nil
}

// Subject - getter for the subject
func Subject(r actor.Reader) (address.Address, error) {
	s, err := load(r)
	if nil != err {
		return address.Zero, err
	}
	return s.Subject, nil
}

func load(r actor.Reader) (state, error) {
	var s state
	if Kind != r.Template().Kind {
		return s, fault.InvalidTemplate
	}
	found, err := r.Get(stateKey, &s)
	if nil != err {
		return s, err
	}
	if !found {
		return s, fault.NotActive
	}
	return s, nil
}
