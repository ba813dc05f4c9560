// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package actor

import (
	"github.com/bitmark-inc/keyshares/address"
	"github.com/bitmark-inc/keyshares/codec"
	"github.com/bitmark-inc/keyshares/fault"
)

// Message - a unit of delivery between two addresses
type Message struct {
	Id      uint64            `json:"id"`
	From    address.Address   `json:"from"`
	To      address.Address   `json:"to"`
	Value   uint64            `json:"value"`
	Op      string            `json:"op"`
	Body    []byte            `json:"body,omitempty"`
	Bounce  bool              `json:"bounce"`
	Bounced bool              `json:"bounced"`
	Error   string            `json:"error,omitempty"`
	Init    *address.Template `json:"init,omitempty"`
}

// Outgoing - a message queued by a handler
//
// Body is encoded with the codec when the send is accepted
type Outgoing struct {
	To     address.Address
	Value  uint64
	Op     string
	Body   interface{}
	Bounce bool
	Init   *address.Template
}

// Event - an external-out record emitted by a handler
type Event struct {
	Source    address.Address `json:"source"`
	Name      string          `json:"name"`
	Body      []byte          `json:"body"`
	MessageId uint64          `json:"messageId"`
}

// NewMessage - build a message with an encoded body
func NewMessage(from address.Address, to address.Address, value uint64, op string, body interface{}) (*Message, error) {
	b, err := Encode(body)
	if nil != err {
		return nil, err
	}
	return &Message{
		From:  from,
		To:    to,
		Value: value,
		Op:    op,
		Body:  b,
	}, nil
}

// Decode - unpack the message body
func (m *Message) Decode(v interface{}) error {
	if 0 == len(m.Body) {
		return fault.MissingParameters
	}
	return codec.Unmarshal(m.Body, v)
}

// Reason - the error carried by a bounced message
func (m *Message) Reason() error {
	return fault.FromText(m.Error)
}

// Decode - unpack the event body
func (e *Event) Decode(v interface{}) error {
	return codec.Unmarshal(e.Body, v)
}

// Encode - pack a body, nil stays empty
func Encode(body interface{}) ([]byte, error) {
	if nil == body {
		return nil, nil
	}
	return codec.Marshal(body)
}

// bounced copy of a message carrying the remaining value back
func (m *Message) bounced(value uint64, reason error) *Message {
	return &Message{
		From:    m.To,
		To:      m.From,
		Value:   value,
		Op:      m.Op,
		Body:    m.Body,
		Bounce:  false,
		Bounced: true,
		Error:   reason.Error(),
	}
}
