// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/keyshares/address"
	"github.com/bitmark-inc/keyshares/rpc/exchange"
)

// NewKeyData - the parameters for a newkey request
type NewKeyData struct {
	Subject       address.Address
	InitialSupply uint64
	Value         uint64 // zero: let the node price it
}

// NewKey - subject creates its keys
func (client *Client) NewKey(data *NewKeyData) (*exchange.SendReply, error) {
	arguments := exchange.NewKeyArguments{
		Sender:        data.Subject,
		InitialSupply: data.InitialSupply,
		Value:         data.Value,
	}

	reply := &exchange.SendReply{}
	err := client.call("NewKey", "Registry.NewKey", arguments, reply)
	if nil != err {
		return nil, err
	}
	return reply, nil
}

// TradeData - the parameters for a buy or sell request
//
// nil claims are read from the node's current state
type TradeData struct {
	Holder         address.Address
	Subject        address.Address
	Amount         uint64
	Buy            bool
	ClaimedSupply  *uint64
	ClaimedBalance *uint64
	Value          uint64
}

// TradeKey - buy or sell keys of a subject
func (client *Client) TradeKey(data *TradeData) (*exchange.SendReply, error) {
	arguments := exchange.TradeKeyArguments{
		Sender:         data.Holder,
		Subject:        data.Subject,
		Amount:         data.Amount,
		Increment:      data.Buy,
		ClaimedSupply:  data.ClaimedSupply,
		ClaimedBalance: data.ClaimedBalance,
		Value:          data.Value,
	}

	reply := &exchange.SendReply{}
	err := client.call("TradeKey", "Registry.TradeKey", arguments, reply)
	if nil != err {
		return nil, err
	}
	return reply, nil
}

// GetRegistryInfo - registry configuration and counters
func (client *Client) GetRegistryInfo() (*exchange.InfoReply, error) {
	reply := &exchange.InfoReply{}
	err := client.call("Registry Info", "Registry.Info", exchange.InfoArguments{}, reply)
	if nil != err {
		return nil, err
	}
	return reply, nil
}

// PriceData - the parameters for a price request
type PriceData struct {
	Subject address.Address // zero: use Supply
	Supply  uint64
	Amount  uint64
	Buy     bool
}

// GetPrice - quote a trade
func (client *Client) GetPrice(data *PriceData) (*exchange.PriceReply, error) {
	arguments := exchange.PriceArguments{
		Subject:   data.Subject,
		Supply:    data.Supply,
		Amount:    data.Amount,
		Increment: data.Buy,
	}

	reply := &exchange.PriceReply{}
	err := client.call("Price", "Registry.Price", arguments, reply)
	if nil != err {
		return nil, err
	}
	return reply, nil
}

// GetAddresses - registry, key and wallet addresses
func (client *Client) GetAddresses(subject address.Address, holder address.Address) (*exchange.AddressesReply, error) {
	arguments := exchange.AddressesArguments{
		Subject: subject,
		Holder:  holder,
	}

	reply := &exchange.AddressesReply{}
	err := client.call("Addresses", "Registry.Addresses", arguments, reply)
	if nil != err {
		return nil, err
	}
	return reply, nil
}

// QueryData - select a query by its id or by the message that created it
type QueryData struct {
	QueryId   uint64
	MessageId uint64
}

// GetQuery - state of a query
func (client *Client) GetQuery(data *QueryData) (*exchange.QueryReply, error) {
	arguments := exchange.QueryArguments{
		QueryId:   data.QueryId,
		MessageId: data.MessageId,
	}

	reply := &exchange.QueryReply{}
	err := client.call("Query", "Registry.Query", arguments, reply)
	if nil != err {
		return nil, err
	}
	return reply, nil
}
