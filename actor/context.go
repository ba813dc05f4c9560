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
)

// Code - the behaviour of one kind of actor
//
// Receive runs with exclusive access to the actor; returning an error
// discards every write, send and event made through ctx
type Code interface {
	Receive(ctx Context, m *Message) error
}

// Reader - read only view of an actor, as given to getters
type Reader interface {
	Self() address.Address
	Template() address.Template
	Balance() uint64
	Get(key string, v interface{}) (bool, error)
}

// Context - everything a handler may do while processing one message
type Context interface {
	Reader
	MessageFee() uint64
	MessageId() uint64
	Value() uint64
	Put(key string, v interface{}) error
	Delete(key string)
	Send(out Outgoing) error
	Emit(name string, body interface{}) error
}

// state key: address ++ name
func stateKey(self address.Address, key string) []byte {
	k := make([]byte, 0, address.Length+len(key))
	k = append(k, self[:]...)
	return append(k, key...)
}

// reads through an open transaction
type getter interface {
	Get(*storage.PoolHandle, []byte) []byte
}

// committed data only
type poolGetter struct{}

func (poolGetter) Get(pool *storage.PoolHandle, key []byte) []byte {
	return pool.Get(key)
}

type reader struct {
	self     address.Address
	template address.Template
	balance  uint64
	source   getter
}

func (r *reader) Self() address.Address {
	return r.self
}

func (r *reader) Template() address.Template {
	return r.template
}

func (r *reader) Balance() uint64 {
	return r.balance
}

// Get - false if nothing stored under key
func (r *reader) Get(key string, v interface{}) (bool, error) {
	data := r.source.Get(storage.Pool.ActorState, stateKey(r.self, key))
	if nil == data {
		return false, nil
	}
	err := codec.Unmarshal(data, v)
	if nil != err {
		return false, err
	}
	return true, nil
}

type handlerContext struct {
	reader
	trx     storage.Transaction
	message *Message
	fee     uint64
	value   uint64
	outbox  []*Message
	events  []Event
}

func newContext(trx storage.Transaction, template address.Template, m *Message, fee uint64, balance uint64, value uint64) *handlerContext {
	return &handlerContext{
		reader: reader{
			self:     m.To,
			template: template,
			balance:  balance,
			source:   trx,
		},
		trx:     trx,
		message: m,
		fee:     fee,
		value:   value,
	}
}

// MessageFee - the runtime's cost of delivering to code
func (c *handlerContext) MessageFee() uint64 {
	return c.fee
}

// MessageId - id of the message being processed
func (c *handlerContext) MessageId() uint64 {
	return c.message.Id
}

// Value - attached value left after the message fee
func (c *handlerContext) Value() uint64 {
	return c.value
}

func (c *handlerContext) Put(key string, v interface{}) error {
	data, err := codec.Marshal(v)
	if nil != err {
		return err
	}
	c.trx.Put(storage.Pool.ActorState, stateKey(c.self, key), data)
	return nil
}

func (c *handlerContext) Delete(key string) {
	c.trx.Delete(storage.Pool.ActorState, stateKey(c.self, key))
}

// Send - queue a message, its value is taken from the actor's balance
func (c *handlerContext) Send(out Outgoing) error {
	if out.Value > c.balance {
		return fault.InsufficientValue
	}
	body, err := Encode(out.Body)
	if nil != err {
		return err
	}
	c.balance -= out.Value
	c.outbox = append(c.outbox, &Message{
		From:   c.self,
		To:     out.To,
		Value:  out.Value,
		Op:     out.Op,
		Body:   body,
		Bounce: out.Bounce,
		Init:   out.Init,
	})
	return nil
}

// Emit - record an event, published only if the message succeeds
func (c *handlerContext) Emit(name string, body interface{}) error {
	b, err := Encode(body)
	if nil != err {
		return err
	}
	c.events = append(c.events, Event{
		Source:    c.self,
		Name:      name,
		Body:      b,
		MessageId: c.message.Id,
	})
	return nil
}
