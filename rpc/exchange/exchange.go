// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package exchange - RPC front end of the registry actor
package exchange

import (
	"github.com/bitmark-inc/keyshares/actor"
	"github.com/bitmark-inc/keyshares/address"
	"github.com/bitmark-inc/keyshares/fault"
	"github.com/bitmark-inc/keyshares/keysupply"
	"github.com/bitmark-inc/keyshares/pricing"
	"github.com/bitmark-inc/keyshares/registry"
	"github.com/bitmark-inc/keyshares/rpc/ratelimit"
	"github.com/bitmark-inc/keyshares/settlement"
	"github.com/bitmark-inc/keyshares/wallet"
	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"
)

const (
	rateLimitRegistry = 200
	rateBurstRegistry = 100
)

// Registry - type for the RPC
type Registry struct {
	Log        *logger.L
	Limiter    *rate.Limiter
	Runtime    actor.Handle
	Tracker    settlement.Handle
	Address    address.Address
	Parameters registry.Parameters
}

// New - the service for the registry deployed with parameters
func New(log *logger.L, runtime actor.Handle, tracker settlement.Handle, parameters registry.Parameters) *Registry {
	return &Registry{
		Log:        log,
		Limiter:    rate.NewLimiter(rateLimitRegistry, rateBurstRegistry),
		Runtime:    runtime,
		Tracker:    tracker,
		Address:    registry.Address(parameters),
		Parameters: parameters,
	}
}

// SendReply - the message queued for a request
type SendReply struct {
	MessageId uint64          `json:"messageId"`
	Registry  address.Address `json:"registry"`
	Value     uint64          `json:"value"`
}

// ---

// NewKeyArguments - create the keys of the sender
//
// a zero Value is replaced by the price of the initial supply plus gas
type NewKeyArguments struct {
	Sender        address.Address `json:"sender"`
	InitialSupply uint64          `json:"initialSupply"`
	Value         uint64          `json:"value"`
}

// NewKey - queue a NewKey request from the sender
func (r *Registry) NewKey(arguments *NewKeyArguments, reply *SendReply) error {
	if err := ratelimit.Limit(r.Limiter); nil != err {
		return err
	}
	if nil == arguments || arguments.Sender.IsZero() {
		return fault.InvalidAddress
	}
	if !r.Runtime.IsActive(r.Address) {
		return fault.NotDeployed
	}

	value := arguments.Value
	if 0 == value {
		quote, err := registry.BuyPrice(r.Parameters, 0, arguments.InitialSupply)
		if nil != err {
			return err
		}
		value = quote.Total() + r.Parameters.GasConsumption
	}

	request := registry.NewKey{
		Subject:       arguments.Sender,
		InitialSupply: arguments.InitialSupply,
	}
	return r.send(arguments.Sender, value, registry.OpNewKey, request, reply)
}

// ---

// TradeKeyArguments - buy (Increment) or sell keys of a subject
//
// omitted claims are read from the current supply and balance and a
// zero Value is replaced by the quoted total plus gas for a buy or by
// the gas alone for a sell
type TradeKeyArguments struct {
	Sender         address.Address `json:"sender"`
	Subject        address.Address `json:"subject"`
	Amount         uint64          `json:"amount"`
	Increment      bool            `json:"increment"`
	ClaimedSupply  *uint64         `json:"claimedSupply,omitempty"`
	ClaimedBalance *uint64         `json:"claimedBalance,omitempty"`
	Value          uint64          `json:"value"`
}

// TradeKey - queue a TradeKey request from the sender, who is also the holder
func (r *Registry) TradeKey(arguments *TradeKeyArguments, reply *SendReply) error {
	if err := ratelimit.Limit(r.Limiter); nil != err {
		return err
	}
	if nil == arguments || arguments.Sender.IsZero() || arguments.Subject.IsZero() {
		return fault.InvalidAddress
	}
	if 0 == arguments.Amount {
		return fault.InvalidAmount
	}
	if !r.Runtime.IsActive(r.Address) {
		return fault.NotDeployed
	}

	supply, err := r.claimedSupply(arguments)
	if nil != err {
		return err
	}
	balance, err := r.claimedBalance(arguments)
	if nil != err {
		return err
	}

	value := arguments.Value
	if 0 == value {
		value = r.Parameters.GasConsumption
		if arguments.Increment {
			quote, err := registry.BuyPrice(r.Parameters, supply, arguments.Amount)
			if nil != err {
				return err
			}
			value += quote.Total()
		}
	}

	request := registry.TradeKey{
		Subject:        arguments.Subject,
		ClaimedSupply:  supply,
		Holder:         arguments.Sender,
		ClaimedBalance: balance,
		Amount:         arguments.Amount,
		Increment:      arguments.Increment,
	}
	return r.send(arguments.Sender, value, registry.OpTradeKey, request, reply)
}

func (r *Registry) claimedSupply(arguments *TradeKeyArguments) (uint64, error) {
	if nil != arguments.ClaimedSupply {
		return *arguments.ClaimedSupply, nil
	}
	return r.supply(arguments.Subject)
}

// a holder without a wallet holds nothing
func (r *Registry) claimedBalance(arguments *TradeKeyArguments) (uint64, error) {
	if nil != arguments.ClaimedBalance {
		return *arguments.ClaimedBalance, nil
	}
	balance := uint64(0)
	err := r.Runtime.Get(registry.WalletAddress(r.Address, arguments.Sender, arguments.Subject), func(reader actor.Reader) error {
		var err error
		balance, err = wallet.Balance(reader)
		return err
	})
	if fault.NotActive == err {
		return 0, nil
	}
	return balance, err
}

func (r *Registry) supply(subject address.Address) (uint64, error) {
	supply := uint64(0)
	err := r.Runtime.Get(registry.KeyAddress(r.Address, subject), func(reader actor.Reader) error {
		var err error
		supply, err = keysupply.Supply(reader)
		return err
	})
	if fault.NotActive == err {
		return 0, fault.NotInitialised
	}
	return supply, err
}

func (r *Registry) send(sender address.Address, value uint64, op string, body interface{}, reply *SendReply) error {
	m, err := actor.NewMessage(sender, r.Address, value, op, body)
	if nil != err {
		return err
	}
	m.Bounce = true

	id, err := r.Runtime.Send(m)
	if nil != err {
		r.Log.Warnf("%s from: %s  value: %d  error: %s", op, sender, value, err)
		return err
	}
	r.Log.Debugf("%s from: %s  value: %d  message: %d", op, sender, value, id)

	reply.MessageId = id
	reply.Registry = r.Address
	reply.Value = value
	return nil
}

// ---

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - the registry configuration and counters
type InfoReply struct {
	Address     address.Address     `json:"address"`
	Deployed    bool                `json:"deployed"`
	Parameters  registry.Parameters `json:"parameters"`
	LastQueryId uint64              `json:"lastQueryId"`
	Reserved    uint64              `json:"reserved"`
	Coins       uint64              `json:"coins"`
}

// Info - the registry as deployed
//
// before deployment the configured parameters are returned
func (r *Registry) Info(_ *InfoArguments, reply *InfoReply) error {
	if err := ratelimit.Limit(r.Limiter); nil != err {
		return err
	}

	reply.Address = r.Address
	reply.Parameters = r.Parameters
	reply.Coins = r.Runtime.Coins(r.Address)

	err := r.Runtime.Get(r.Address, func(reader actor.Reader) error {
		p, err := registry.Configuration(reader)
		if nil != err {
			return err
		}
		reply.Parameters = p
		if reply.LastQueryId, err = registry.LastQueryId(reader); nil != err {
			return err
		}
		reply.Reserved, err = registry.Reserved(reader)
		return err
	})
	switch err {
	case nil:
		reply.Deployed = true
	case fault.NotActive, fault.NotDeployed:
	default:
		return err
	}
	return nil
}

// ---

// PriceArguments - price Amount keys above or below a supply
//
// when Subject is given its current supply is used
type PriceArguments struct {
	Subject   address.Address `json:"subject"`
	Supply    uint64          `json:"supply"`
	Amount    uint64          `json:"amount"`
	Increment bool            `json:"increment"`
}

// PriceReply - the quote for a trade
type PriceReply struct {
	Supply uint64        `json:"supply"`
	Amount uint64        `json:"amount"`
	Quote  pricing.Quote `json:"quote"`
	Total  uint64        `json:"total"`
	Gas    uint64        `json:"gas"`
}

// Price - quote a buy (Increment) or a sell
func (r *Registry) Price(arguments *PriceArguments, reply *PriceReply) error {
	if err := ratelimit.Limit(r.Limiter); nil != err {
		return err
	}
	if nil == arguments {
		return fault.MissingParameters
	}

	supply := arguments.Supply
	if !arguments.Subject.IsZero() {
		var err error
		supply, err = r.supply(arguments.Subject)
		if nil != err {
			return err
		}
	}

	var quote pricing.Quote
	var err error
	if arguments.Increment {
		quote, err = registry.BuyPrice(r.Parameters, supply, arguments.Amount)
		reply.Total = quote.Total()
	} else {
		quote, err = registry.SellPrice(r.Parameters, supply, arguments.Amount)
		reply.Total = quote.Net()
	}
	if nil != err {
		return err
	}

	reply.Supply = supply
	reply.Amount = arguments.Amount
	reply.Quote = quote
	reply.Gas = r.Parameters.GasConsumption
	return nil
}

// ---

// AddressesArguments - the participants to resolve
type AddressesArguments struct {
	Subject address.Address `json:"subject"`
	Holder  address.Address `json:"holder"`
}

// AddressesReply - derived actor addresses
type AddressesReply struct {
	Registry address.Address `json:"registry"`
	Key      address.Address `json:"key,omitempty"`
	Wallet   address.Address `json:"wallet,omitempty"`
}

// Addresses - the key and wallet addresses for a subject and holder
func (r *Registry) Addresses(arguments *AddressesArguments, reply *AddressesReply) error {
	if err := ratelimit.Limit(r.Limiter); nil != err {
		return err
	}

	reply.Registry = r.Address
	if nil == arguments || arguments.Subject.IsZero() {
		return nil
	}
	reply.Key = registry.KeyAddress(r.Address, arguments.Subject)
	if !arguments.Holder.IsZero() {
		reply.Wallet = registry.WalletAddress(r.Address, arguments.Holder, arguments.Subject)
	}
	return nil
}

// ---

// QueryArguments - find a query by its id or by the message that opened it
type QueryArguments struct {
	QueryId   uint64 `json:"queryId"`
	MessageId uint64 `json:"messageId"`
}

// QueryReply - whether the query is open and its last known outcome
type QueryReply struct {
	InFlight bool                `json:"inFlight"`
	Query    *registry.Query     `json:"query,omitempty"`
	Outcome  *settlement.Outcome `json:"outcome,omitempty"`
}

// Query - state of a query
func (r *Registry) Query(arguments *QueryArguments, reply *QueryReply) error {
	if err := ratelimit.Limit(r.Limiter); nil != err {
		return err
	}
	if nil == arguments || (0 == arguments.QueryId && 0 == arguments.MessageId) {
		return fault.MissingParameters
	}

	id := arguments.QueryId
	if 0 != arguments.MessageId {
		outcome, ok := r.Tracker.ByOrigin(arguments.MessageId)
		if !ok {
			return fault.QueryNotFound
		}
		id = outcome.QueryId
		reply.Outcome = &outcome
	} else if outcome, ok := r.Tracker.Query(r.Address, id); ok {
		reply.Outcome = &outcome
	}

	err := r.Runtime.Get(r.Address, func(reader actor.Reader) error {
		q, err := registry.GetQuery(reader, id)
		if nil != err {
			return err
		}
		reply.Query = q
		return nil
	})
	switch err {
	case nil:
		reply.InFlight = true
	case fault.QueryNotFound, fault.NotActive, fault.NotDeployed:
		if nil == reply.Outcome {
			return fault.QueryNotFound
		}
	default:
		return err
	}
	return nil
}
