// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package keysupply - the actor holding the key supply of one subject
//
// only the registry that derived the address may change the supply,
// every change carries the supply the registry expects to find
//
// a change stays pending until the registry finalises or reverts it;
// while one is pending every other adjustment is stale, so a revert
// always restores exactly the supply that the change was checked against
package keysupply

import (
	"github.com/bitmark-inc/keyshares/actor"
	"github.com/bitmark-inc/keyshares/address"
	"github.com/bitmark-inc/keyshares/fault"
	"github.com/bitmark-inc/logger"
)

// Kind - template kind
const Kind = address.Key

// operations received from the registry
const (
	OpInitKey        = "InitKey"
	OpAdjustSupply   = "AdjustSupply"
	OpFinaliseSupply = "FinaliseSupply"
	OpRevertSupply   = "RevertSupply"
)

// confirmations sent back to the registry
const (
	OpKeyInitialised  = "KeyInitialised"
	OpSupplyAdjusted  = "SupplyAdjusted"
	OpSupplyFinalised = "SupplyFinalised"
	OpSupplyReverted  = "SupplyReverted"
)

const stateKey = "key"

// InitKey - create the supply
type InitKey struct {
	QueryId       uint64          `cbor:"1,keyasint"`
	Subject       address.Address `cbor:"2,keyasint"`
	InitialSupply uint64          `cbor:"3,keyasint"`
}

// AdjustSupply - change the supply if it is still Expected
type AdjustSupply struct {
	QueryId   uint64 `cbor:"1,keyasint"`
	Expected  uint64 `cbor:"2,keyasint"`
	Delta     uint64 `cbor:"3,keyasint"`
	Increment bool   `cbor:"4,keyasint"`
}

// FinaliseSupply - keep the pending change of a query
type FinaliseSupply struct {
	QueryId uint64 `cbor:"1,keyasint"`
}

// RevertSupply - undo the pending change of a query
type RevertSupply struct {
	QueryId uint64 `cbor:"1,keyasint"`
}

// Confirmation - body of every reply
type Confirmation struct {
	QueryId uint64 `cbor:"1,keyasint"`
	Supply  uint64 `cbor:"2,keyasint"`
}

type state struct {
	Subject address.Address `cbor:"1,keyasint"`
	Supply  uint64          `cbor:"2,keyasint"`
	Pending *change         `cbor:"3,keyasint,omitempty"`
}

// an applied change that may still be reverted
type change struct {
	QueryId   uint64 `cbor:"1,keyasint"`
	Delta     uint64 `cbor:"2,keyasint"`
	Increment bool   `cbor:"3,keyasint"`
	Init      bool   `cbor:"4,keyasint"`
}

// Template - the key of a subject under a registry
func Template(registry address.Address, subject address.Address) address.Template {
	return address.Template{
		Kind:   Kind,
		Fields: []address.Address{registry, subject},
	}
}

// Address - derive the key actor address
func Address(registry address.Address, subject address.Address) address.Address {
	return address.Derive(Template(registry, subject))
}

// Code - key supply behaviour
type Code struct {
	log *logger.L
}

// New - create the key supply code
func New() *Code {
	return &Code{
		log: logger.New("keysupply"),
	}
}

// Receive - process one message
func (c *Code) Receive(ctx actor.Context, m *actor.Message) error {
	t := ctx.Template()
	if Kind != t.Kind || 2 != len(t.Fields) {
		return fault.InvalidTemplate
	}
	registry := t.Fields[0]

	// a confirmation the registry refused, nothing to undo
	if m.Bounced {
		c.log.Warnf("%s: bounced %s: %s", ctx.Self(), m.Op, m.Error)
		return nil
	}

	if m.From != registry {
		return fault.Unauthorized
	}

	var s state
	found, err := ctx.Get(stateKey, &s)
	if nil != err {
		return err
	}

	switch m.Op {

	case OpInitKey:
		var req InitKey
		if err := m.Decode(&req); nil != err {
			return err
		}
		if found {
			return fault.AlreadyInitialised
		}
		if req.Subject != t.Fields[1] {
			return fault.InvalidItem
		}
		s = state{
			Subject: req.Subject,
			Supply:  req.InitialSupply,
			Pending: &change{
				QueryId:   req.QueryId,
				Delta:     req.InitialSupply,
				Increment: true,
				Init:      true,
			},
		}
		return c.reply(ctx, registry, OpKeyInitialised, req.QueryId, s)

	case OpAdjustSupply:
		var req AdjustSupply
		if err := m.Decode(&req); nil != err {
			return err
		}
		if !found {
			return fault.NotInitialised
		}
		if nil != s.Pending {
			c.log.Debugf("%s: query: %d  blocked by pending query: %d", ctx.Self(), req.QueryId, s.Pending.QueryId)
			return fault.StaleSupply
		}
		if req.Expected != s.Supply {
			return fault.StaleSupply
		}
		s.Supply, err = apply(s.Supply, req.Delta, req.Increment)
		if nil != err {
			return err
		}
		s.Pending = &change{
			QueryId:   req.QueryId,
			Delta:     req.Delta,
			Increment: req.Increment,
		}
		return c.reply(ctx, registry, OpSupplyAdjusted, req.QueryId, s)

	case OpFinaliseSupply:
		var req FinaliseSupply
		if err := m.Decode(&req); nil != err {
			return err
		}
		if err := c.matchPending(ctx, found, s, req.QueryId); nil != err {
			return err
		}
		s.Pending = nil
		return c.reply(ctx, registry, OpSupplyFinalised, req.QueryId, s)

	case OpRevertSupply:
		var req RevertSupply
		if err := m.Decode(&req); nil != err {
			return err
		}
		if err := c.matchPending(ctx, found, s, req.QueryId); nil != err {
			return err
		}
		if s.Pending.Init {
			ctx.Delete(stateKey)
			c.log.Debugf("%s: revert query: %d  key removed", ctx.Self(), req.QueryId)
			return c.confirm(ctx, registry, OpSupplyReverted, req.QueryId, 0)
		}
		s.Supply, err = apply(s.Supply, s.Pending.Delta, !s.Pending.Increment)
		if nil != err {
			c.log.Criticalf("%s: revert query: %d  supply: %d  delta: %d  error: %s", ctx.Self(), req.QueryId, s.Supply, s.Pending.Delta, err)
			return err
		}
		s.Pending = nil
		return c.reply(ctx, registry, OpSupplyReverted, req.QueryId, s)

	default:
		return fault.UnknownOperation
	}
}

// only the query holding the pending change may finish it
func (c *Code) matchPending(ctx actor.Context, found bool, s state, queryId uint64) error {
	if !found {
		return fault.NotInitialised
	}
	if nil == s.Pending || s.Pending.QueryId != queryId {
		c.log.Errorf("%s: query: %d  is not the pending change", ctx.Self(), queryId)
		return fault.UnexpectedStage
	}
	return nil
}

// store the new state and confirm
func (c *Code) reply(ctx actor.Context, registry address.Address, op string, queryId uint64, s state) error {
	if err := ctx.Put(stateKey, s); nil != err {
		return err
	}
	return c.confirm(ctx, registry, op, queryId, s.Supply)
}

// return all remaining value with the confirmation
func (c *Code) confirm(ctx actor.Context, registry address.Address, op string, queryId uint64, supply uint64) error {
	c.log.Debugf("%s: %s query: %d  supply: %d", ctx.Self(), op, queryId, supply)

	return ctx.Send(actor.Outgoing{
		To:    registry,
		Value: ctx.Value(),
		Op:    op,
		Body: Confirmation{
			QueryId: queryId,
			Supply:  supply,
		},
	})
}

func apply(supply uint64, delta uint64, increment bool) (uint64, error) {
	if increment {
		if supply+delta < supply {
			return supply, fault.Overflow
		}
		return supply + delta, nil
	}
	if delta > supply {
		return supply, fault.Underflow
	}
	return supply - delta, nil
}

// Supply - getter for the current supply
func Supply(r actor.Reader) (uint64, error) {
	s, err := load(r)
	if nil != err {
		return 0, err
	}
	return s.Supply, nil
}

// Pending - query id of the change not yet finalised, zero for none
func Pending(r actor.Reader) (uint64, error) {
	s, err := load(r)
	if nil != err {
		return 0, err
	}
	if nil == s.Pending {
		return 0, nil
	}
	return s.Pending.QueryId, nil
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
