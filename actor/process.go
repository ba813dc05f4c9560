// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package actor

import (
	"github.com/bitmark-inc/keyshares/address"
	"github.com/bitmark-inc/keyshares/codec"
	"github.com/bitmark-inc/keyshares/fault"
	"github.com/bitmark-inc/keyshares/storage"
	"github.com/bitmark-inc/logger"
)

// deliver one message with the destination mailbox held
//
// returns the events to publish
func (r *Runtime) process(mb *mailbox, m *Message) []Event {
	mb.Lock()
	defer mb.Unlock()

	tx := Transaction{
		Id:      m.Id,
		From:    m.From,
		To:      m.To,
		Op:      m.Op,
		Value:   m.Value,
		Bounced: m.Bounced,
	}

	events, outgoing := r.deliver(m, &tx)

	r.trace.add(tx)
	messagesProcessed.WithLabelValues(tx.Status).Inc()

	// queue only after the trace so a reply can never be traced first
	for _, out := range outgoing {
		_, err := r.enqueue(out)
		if nil != err {
			r.log.Warnf("message: %d  dropped send to: %s  error: %s", m.Id, out.To, err)
		}
	}

	if StatusFailed == tx.Status {
		r.log.Debugf("message: %d  op: %q  to: %s  failed: %s", m.Id, m.Op, m.To, tx.Error)
	} else {
		r.log.Tracef("message: %d  op: %q  to: %s  %s", m.Id, m.Op, m.To, tx.Status)
	}
	return events
}

func (r *Runtime) deliver(m *Message, tx *Transaction) ([]Event, []*Message) {
	trx, err := storage.NewDBTransaction()
	logger.PanicIfError("actor.deliver", err)

	template, deploying, err := r.destination(trx, m)
	if nil != err {
		trx.Abort()
		return nil, r.reject(m, m.Value, 0, err, tx)
	}

	// no code: a plain transfer
	if nil == template {
		if m.Bounce {
			trx.Abort()
			return nil, r.reject(m, m.Value, 0, fault.NotActive, tx)
		}
		r.credit(trx, m.To, m.Value)
		r.commit(trx, 0)
		tx.Status = StatusTransfer
		return nil, nil
	}

	code := r.codeFor(template.Kind)
	if nil == code {
		trx.Abort()
		return nil, r.reject(m, m.Value, 0, fault.InvalidTemplate, tx)
	}

	fee := r.messageFee
	if m.Value < fee {
		trx.Abort()
		r.burn(m.Value)
		tx.Fee = m.Value
		tx.Status = StatusFailed
		tx.Error = fault.InsufficientValueForDelivery.Error()
		return nil, nil
	}
	remaining := m.Value - fee
	tx.Fee = fee

	balance, _ := trx.GetN(storage.Pool.Coins, m.To[:])
	if balance+remaining < balance {
		trx.Abort()
		return nil, r.reject(m, remaining, fee, fault.Overflow, tx)
	}

	if deploying {
		record, err := codec.Marshal(template)
		logger.PanicIfError("actor.deploy", err)
		trx.Put(storage.Pool.ActorCode, m.To[:], record)
	}

	ctx := newContext(trx, *template, m, fee, balance+remaining, remaining)
	err = code.Receive(ctx, m)
	if nil != err {
		trx.Abort()
		return nil, r.reject(m, remaining, fee, err, tx)
	}

	trx.PutN(storage.Pool.Coins, m.To[:], ctx.balance)
	r.commit(trx, fee)

	if deploying {
		r.log.Infof("deploy: %s  kind: %q", m.To, template.Kind)
	}

	tx.Status = StatusOk
	tx.Sent = len(ctx.outbox)
	for _, e := range ctx.events {
		tx.Events = append(tx.Events, e.Name)
	}
	return ctx.events, ctx.outbox
}

// the template of the destination, deploying it from m.Init if needed
//
// returns nil template for an address without code
func (r *Runtime) destination(trx storage.Transaction, m *Message) (*address.Template, bool, error) {
	record := trx.Get(storage.Pool.ActorCode, m.To[:])
	if nil != record {
		var template address.Template
		err := codec.Unmarshal(record, &template)
		logger.PanicIfError("actor.destination", err)
		return &template, false, nil
	}

	if nil == m.Init {
		return nil, false, nil
	}
	if address.Derive(*m.Init) != m.To {
		return nil, false, fault.DeployAddressMismatch
	}
	return m.Init, true, nil
}

// failure: burn the fee and return or keep the rest
//
// returns the bounce to queue, if any
func (r *Runtime) reject(m *Message, value uint64, fee uint64, reason error, tx *Transaction) []*Message {
	tx.Status = StatusFailed
	tx.Error = reason.Error()

	trx, err := storage.NewDBTransaction()
	logger.PanicIfError("actor.reject", err)

	var bounce []*Message
	if m.Bounce && !m.Bounced {
		bounce = append(bounce, m.bounced(value, reason))
	} else {
		r.credit(trx, m.To, value)
	}
	r.commit(trx, fee)
	return bounce
}

// burn a whole value that cannot pay for delivery
func (r *Runtime) burn(value uint64) {
	trx, err := storage.NewDBTransaction()
	logger.PanicIfError("actor.burn", err)
	r.commit(trx, value)
}

func (r *Runtime) credit(trx storage.Transaction, to address.Address, value uint64) {
	if 0 == value {
		return
	}
	coins, _ := trx.GetN(storage.Pool.Coins, to[:])
	trx.PutN(storage.Pool.Coins, to[:], coins+value)
}

// commit a delivery and account for the burned fee
func (r *Runtime) commit(trx storage.Transaction, burned uint64) {
	r.statistics.Lock()
	defer r.statistics.Unlock()

	if burned > 0 {
		total, _ := trx.GetN(storage.Pool.Statistics, burnedKey)
		trx.PutN(storage.Pool.Statistics, burnedKey, total+burned)
		coinsBurned.Add(float64(burned))
	}
	messages, _ := trx.GetN(storage.Pool.Statistics, messagesKey)
	trx.PutN(storage.Pool.Statistics, messagesKey, messages+1)

	err := trx.Commit()
	logger.PanicIfError("actor.commit", err)
}
