// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"github.com/bitmark-inc/keyshares/actor"
	"github.com/bitmark-inc/keyshares/address"
	"github.com/bitmark-inc/keyshares/fault"
	"github.com/bitmark-inc/keyshares/keysupply"
	"github.com/bitmark-inc/keyshares/pricing"
)

// first Deploy fixes the configuration, later ones are only acknowledged
func (c *Code) deploy(ctx actor.Context, m *actor.Message) error {
	var req Deploy
	if err := m.Decode(&req); nil != err {
		return err
	}

	_, err := loadConfiguration(ctx)
	if nil == err {
		c.log.Infof("repeated deploy from: %s  query: %d", m.From, req.QueryId)
		return c.deployOk(ctx, m, req.QueryId)
	}
	if fault.NotDeployed != err {
		return err
	}

	p, err := parametersOf(ctx.Template())
	if nil != err {
		return err
	}
	if p.FeeDestination.IsZero() {
		p.FeeDestination = m.From
	}
	err = p.Check(ctx.MessageFee())
	if nil != err {
		return err
	}

	if err := ctx.Put(configurationKey, p); nil != err {
		return err
	}
	if err := ctx.Put(lastQueryIdKey, req.QueryId); nil != err {
		return err
	}

	c.log.Infof("deployed: %s  fee destination: %s  protocol: %d%%  subject: %d%%  gas: %d",
		ctx.Self(), p.FeeDestination, p.ProtocolFee, p.SubjectFee, p.GasConsumption)

	return c.deployOk(ctx, m, req.QueryId)
}

func (c *Code) deployOk(ctx actor.Context, m *actor.Message, queryId uint64) error {
	return ctx.Send(actor.Outgoing{
		To:    m.From,
		Value: ctx.Value(),
		Op:    OpDeployOk,
		Body: DeployOk{
			QueryId: queryId,
		},
	})
}

func (c *Code) newKey(ctx actor.Context, p Parameters, m *actor.Message) error {
	var req NewKey
	if err := m.Decode(&req); nil != err {
		return err
	}

	if m.From != req.Subject {
		return fault.Unauthorized
	}
	if 0 == req.InitialSupply {
		return fault.InvalidAmount
	}
	if !pricing.Valid(0, req.InitialSupply) {
		return fault.SupplyLimitExceeded
	}

	quote := pricing.BuyQuote(0, req.InitialSupply, p.ProtocolFee, p.SubjectFee)
	if m.Value < quote.Total()+p.GasConsumption {
		return fault.InsufficientFunds
	}

	id, err := nextQueryId(ctx)
	if nil != err {
		return err
	}

	q := &Query{
		Id:             id,
		Kind:           QueryMint,
		Origin:         ctx.MessageId(),
		Sender:         m.From,
		Subject:        req.Subject,
		Holder:         req.Subject,
		Amount:         req.InitialSupply,
		Increment:      true,
		ClaimedSupply:  0,
		ClaimedBalance: 0,
		Cost:           quote.Cost,
		ProtocolFee:    quote.ProtocolFee,
		SubjectFee:     quote.SubjectFee,
		Value:          m.Value,
		Stage:          StageSupply,
	}
	if err := hold(ctx, q, ctx.Value()); nil != err {
		return err
	}

	keyTemplate := keysupply.Template(ctx.Self(), req.Subject)
	err = c.forward(ctx, q, actor.Outgoing{
		To:    address.Derive(keyTemplate),
		Value: p.ForwardValue,
		Op:    keysupply.OpInitKey,
		Body: keysupply.InitKey{
			QueryId:       id,
			Subject:       req.Subject,
			InitialSupply: req.InitialSupply,
		},
		Bounce: true,
		Init:   &keyTemplate,
	})
	if nil != err {
		return err
	}

	return c.accept(ctx, q)
}

func (c *Code) tradeKey(ctx actor.Context, p Parameters, m *actor.Message) error {
	var req TradeKey
	if err := m.Decode(&req); nil != err {
		return err
	}

	if 0 == req.Amount {
		return fault.InvalidAmount
	}
	if req.Holder.IsZero() {
		req.Holder = m.From
	}

	var quote pricing.Quote
	kind := QueryBuy

	if req.Increment {
		if !pricing.Valid(req.ClaimedSupply, req.Amount) {
			return fault.SupplyLimitExceeded
		}
		quote = pricing.BuyQuote(req.ClaimedSupply, req.Amount, p.ProtocolFee, p.SubjectFee)
		if m.Value < quote.Total()+p.GasConsumption {
			return fault.InsufficientFunds
		}

	} else {
		kind = QuerySell
		if m.From != req.Holder {
			return fault.Unauthorized
		}
		if req.Amount > req.ClaimedSupply || req.Amount > req.ClaimedBalance {
			return fault.Underflow
		}
		if !pricing.Valid(req.ClaimedSupply-req.Amount, req.Amount) {
			return fault.SupplyLimitExceeded
		}
		quote = pricing.SellQuote(req.ClaimedSupply, req.Amount, p.ProtocolFee, p.SubjectFee)
		if m.Value < p.GasConsumption {
			return fault.InsufficientFunds
		}

		// coins before this request, less everything held for queries in flight
		total, err := reserved(ctx)
		if nil != err {
			return err
		}
		free := ctx.Balance() - ctx.Value()
		if free < total || free-total < quote.Cost {
			return fault.InsufficientReserve
		}
	}

	id, err := nextQueryId(ctx)
	if nil != err {
		return err
	}

	q := &Query{
		Id:             id,
		Kind:           kind,
		Origin:         ctx.MessageId(),
		Sender:         m.From,
		Subject:        req.Subject,
		Holder:         req.Holder,
		Amount:         req.Amount,
		Increment:      req.Increment,
		ClaimedSupply:  req.ClaimedSupply,
		ClaimedBalance: req.ClaimedBalance,
		Cost:           quote.Cost,
		ProtocolFee:    quote.ProtocolFee,
		SubjectFee:     quote.SubjectFee,
		Value:          m.Value,
		Stage:          StageSupply,
	}
	if err := hold(ctx, q, ctx.Value()); nil != err {
		return err
	}
	if QuerySell == kind {
		if err := hold(ctx, q, quote.Cost); nil != err {
			return err
		}
	}

	err = c.forward(ctx, q, actor.Outgoing{
		To:    KeyAddress(ctx.Self(), req.Subject),
		Value: p.ForwardValue,
		Op:    keysupply.OpAdjustSupply,
		Body: keysupply.AdjustSupply{
			QueryId:   id,
			Expected:  req.ClaimedSupply,
			Delta:     req.Amount,
			Increment: req.Increment,
		},
		Bounce: true,
	})
	if nil != err {
		return err
	}

	return c.accept(ctx, q)
}

// send on behalf of q, paid from the coins it holds
func (c *Code) forward(ctx actor.Context, q *Query, out actor.Outgoing) error {
	if err := ctx.Send(out); nil != err {
		return err
	}
	return c.release(ctx, q, out.Value)
}

// store a new query and advance the counter
func (c *Code) accept(ctx actor.Context, q *Query) error {
	if err := ctx.Put(lastQueryIdKey, q.Id); nil != err {
		return err
	}
	if err := ctx.Put(queryKey(q.Id), q); nil != err {
		return err
	}

	c.log.Infof("query: %d  %s  subject: %s  holder: %s  amount: %d  cost: %d",
		q.Id, q.Kind, q.Subject, q.Holder, q.Amount, q.Cost)

	return ctx.Emit(EventQueryAccepted, QueryAccepted{
		QueryId: q.Id,
		Origin:  q.Origin,
		Kind:    q.Kind,
	})
}
