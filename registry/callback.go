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
	"github.com/bitmark-inc/keyshares/wallet"
)

// Notification - body of every payment made at settlement
type Notification struct {
	QueryId uint64 `cbor:"1,keyasint"`
}

type payment struct {
	to    address.Address
	value uint64
	op    string
}

// KeyInitialised or SupplyAdjusted: move on to the wallet
func (c *Code) supplyConfirmed(ctx actor.Context, p Parameters, m *actor.Message) error {
	var conf keysupply.Confirmation
	if err := m.Decode(&conf); nil != err {
		return err
	}

	q, err := c.pending(ctx, conf.QueryId, m)
	if nil != err || nil == q {
		return err
	}
	if m.From != KeyAddress(ctx.Self(), q.Subject) {
		return fault.SenderMismatch
	}

	mint := keysupply.OpKeyInitialised == m.Op
	if StageSupply != q.Stage || mint != (QueryMint == q.Kind) {
		c.log.Warnf("query: %d  stage: %s  unexpected: %s", q.Id, q.Stage, m.Op)
		return nil
	}

	if err := hold(ctx, q, ctx.Value()); nil != err {
		return err
	}
	q.Stage = StageBalance

	walletTemplate := wallet.Template(ctx.Self(), q.Holder, q.Subject)
	out := actor.Outgoing{
		To:    address.Derive(walletTemplate),
		Value: p.ForwardValue,
		Op:    wallet.OpAdjustBalance,
		Body: wallet.AdjustBalance{
			QueryId:   q.Id,
			Expected:  q.ClaimedBalance,
			Delta:     q.Amount,
			Increment: q.Increment,
		},
		Bounce: true,
	}

	// only a deposit may create the wallet
	if q.Increment {
		out.Init = &walletTemplate
	}

	if err := c.forward(ctx, q, out); nil != err {
		return err
	}

	c.log.Debugf("query: %d  supply: %d  next: wallet", q.Id, conf.Supply)
	return ctx.Put(queryKey(q.Id), q)
}

// BalanceAdjusted: both steps done
func (c *Code) balanceConfirmed(ctx actor.Context, p Parameters, m *actor.Message) error {
	var conf wallet.Confirmation
	if err := m.Decode(&conf); nil != err {
		return err
	}

	q, err := c.pending(ctx, conf.QueryId, m)
	if nil != err || nil == q {
		return err
	}
	if m.From != WalletAddress(ctx.Self(), q.Holder, q.Subject) {
		return fault.SenderMismatch
	}
	if StageBalance != q.Stage {
		c.log.Warnf("query: %d  stage: %s  unexpected: %s", q.Id, q.Stage, m.Op)
		return nil
	}
	if err := hold(ctx, q, ctx.Value()); nil != err {
		return err
	}

	// release the key for the next query
	err = c.forward(ctx, q, actor.Outgoing{
		To:    KeyAddress(ctx.Self(), q.Subject),
		Value: p.ForwardValue,
		Op:    keysupply.OpFinaliseSupply,
		Body: keysupply.FinaliseSupply{
			QueryId: q.Id,
		},
		Bounce: true,
	})
	if nil != err {
		return err
	}

	return c.settle(ctx, p, q, nil)
}

// SupplyFinalised or SupplyReverted: the query has already settled
func (c *Code) supplyClosed(ctx actor.Context, p Parameters, m *actor.Message) error {
	var conf keysupply.Confirmation
	if err := m.Decode(&conf); nil != err {
		return err
	}
	if keysupply.OpSupplyReverted == m.Op {
		c.log.Infof("query: %d  supply reverted to: %d", conf.QueryId, conf.Supply)
	} else {
		c.log.Debugf("query: %d  supply finalised at: %d", conf.QueryId, conf.Supply)
	}
	return nil
}

// a message the registry sent was rejected
func (c *Code) bounced(ctx actor.Context, p Parameters, m *actor.Message) error {
	reason := m.Reason()

	switch m.Op {

	case keysupply.OpInitKey:
		var req keysupply.InitKey
		if err := m.Decode(&req); nil != err {
			return err
		}
		return c.supplyRejected(ctx, p, req.QueryId, m, reason)

	case keysupply.OpAdjustSupply:
		var req keysupply.AdjustSupply
		if err := m.Decode(&req); nil != err {
			return err
		}
		return c.supplyRejected(ctx, p, req.QueryId, m, reason)

	case wallet.OpAdjustBalance:
		var req wallet.AdjustBalance
		if err := m.Decode(&req); nil != err {
			return err
		}
		return c.balanceRejected(ctx, p, req.QueryId, m, reason)

	case keysupply.OpRevertSupply:
		var req keysupply.RevertSupply
		if err := m.Decode(&req); nil != err {
			return err
		}
		c.log.Criticalf("query: %d  supply revert at: %s  rejected: %s", req.QueryId, m.From, reason)
		return nil

	case keysupply.OpFinaliseSupply:
		var req keysupply.FinaliseSupply
		if err := m.Decode(&req); nil != err {
			return err
		}
		c.log.Criticalf("query: %d  supply finalise at: %s  rejected: %s", req.QueryId, m.From, reason)
		return nil

	default:
		c.log.Warnf("bounced: %s  from: %s  reason: %s", m.Op, m.From, reason)
		return nil
	}
}

// nothing was changed, just settle
func (c *Code) supplyRejected(ctx actor.Context, p Parameters, queryId uint64, m *actor.Message, reason error) error {
	q, err := c.pending(ctx, queryId, m)
	if nil != err || nil == q {
		return err
	}
	if m.From != KeyAddress(ctx.Self(), q.Subject) {
		return fault.SenderMismatch
	}
	if StageSupply != q.Stage {
		c.log.Warnf("query: %d  stage: %s  unexpected bounce: %s", q.Id, q.Stage, m.Op)
		return nil
	}
	if err := hold(ctx, q, ctx.Value()); nil != err {
		return err
	}
	return c.settle(ctx, p, q, reason)
}

// the supply already moved: undo it then settle
func (c *Code) balanceRejected(ctx actor.Context, p Parameters, queryId uint64, m *actor.Message, reason error) error {
	q, err := c.pending(ctx, queryId, m)
	if nil != err || nil == q {
		return err
	}
	if m.From != WalletAddress(ctx.Self(), q.Holder, q.Subject) {
		return fault.SenderMismatch
	}
	if StageBalance != q.Stage {
		c.log.Warnf("query: %d  stage: %s  unexpected bounce: %s", q.Id, q.Stage, m.Op)
		return nil
	}
	if err := hold(ctx, q, ctx.Value()); nil != err {
		return err
	}

	err = c.forward(ctx, q, actor.Outgoing{
		To:    KeyAddress(ctx.Self(), q.Subject),
		Value: p.ForwardValue,
		Op:    keysupply.OpRevertSupply,
		Body: keysupply.RevertSupply{
			QueryId: q.Id,
		},
		Bounce: true,
	})
	if nil != err {
		return err
	}
	return c.settle(ctx, p, q, reason)
}

// the query of a callback, nil if it has already settled
func (c *Code) pending(ctx actor.Context, queryId uint64, m *actor.Message) (*Query, error) {
	q, err := loadQuery(ctx, queryId)
	if fault.QueryNotFound == err {
		c.log.Debugf("%s from: %s  for settled query: %d", m.Op, m.From, queryId)
		return nil, nil
	}
	return q, err
}

// remove the query and move the coins
//
// reason == nil is success; everything q holds is released
// and a payment that cannot be made stays with the registry
func (c *Code) settle(ctx actor.Context, p Parameters, q *Query, reason error) error {
	ctx.Delete(queryKey(q.Id))

	var payments []payment
	if nil == reason {
		payments = append(payments,
			payment{to: p.FeeDestination, value: q.ProtocolFee, op: OpProtocolFee},
			payment{to: q.Subject, value: q.SubjectFee, op: OpSubjectFee},
		)
		fees := q.ProtocolFee + q.SubjectFee
		switch q.Kind {
		case QueryMint, QueryBuy:
			payments = append(payments, payment{to: q.Sender, value: q.Value - q.Cost - fees - p.GasConsumption, op: OpRefund})
		case QuerySell:
			payments = append(payments, payment{to: q.Holder, value: q.Cost - fees + q.Value - p.GasConsumption, op: OpPayout})
		}
	} else {
		payments = append(payments, payment{to: q.Sender, value: q.Value - p.GasConsumption, op: OpRefund})
	}

	for _, pay := range payments {
		if 0 == pay.value {
			continue
		}
		if pay.value > q.Held {
			c.log.Criticalf("query: %d  %s: %d  exceeds held: %d", q.Id, pay.op, pay.value, q.Held)
			continue
		}
		err := c.forward(ctx, q, actor.Outgoing{
			To:    pay.to,
			Value: pay.value,
			Op:    pay.op,
			Body: Notification{
				QueryId: q.Id,
			},
		})
		if nil != err {
			c.log.Criticalf("query: %d  %s: %d  to: %s  error: %s", q.Id, pay.op, pay.value, pay.to, err)
		}
	}

	// the rest, including the cost of a buy, becomes free balance
	if err := c.release(ctx, q, q.Held); nil != err {
		return err
	}

	settled := QuerySettled{
		QueryId: q.Id,
		Origin:  q.Origin,
		Kind:    q.Kind,
		Success: nil == reason,
	}
	if nil != reason {
		settled.Reason = reason.Error()
		c.log.Infof("query: %d  %s  failed: %s", q.Id, q.Kind, reason)
	} else {
		c.log.Infof("query: %d  %s  settled", q.Id, q.Kind)
	}

	return ctx.Emit(EventQuerySettled, settled)
}
