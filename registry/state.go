// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"fmt"

	"github.com/bitmark-inc/keyshares/actor"
	"github.com/bitmark-inc/keyshares/address"
	"github.com/bitmark-inc/keyshares/fault"
)

// query kinds
const (
	QueryMint = "mint"
	QueryBuy  = "buy"
	QuerySell = "sell"
)

// query stages
const (
	StageSupply  = "awaiting_supply"
	StageBalance = "awaiting_balance"
)

// state keys
const (
	configurationKey = "config"
	lastQueryIdKey   = "last"
	reservedKey      = "reserved"
	queryPrefix      = "query:"
)

// Query - an operation in flight
type Query struct {
	Id             uint64          `cbor:"1,keyasint" json:"id"`
	Kind           string          `cbor:"2,keyasint" json:"kind"`
	Origin         uint64          `cbor:"3,keyasint" json:"origin"`
	Sender         address.Address `cbor:"4,keyasint" json:"sender"`
	Subject        address.Address `cbor:"5,keyasint" json:"subject"`
	Holder         address.Address `cbor:"6,keyasint" json:"holder"`
	Amount         uint64          `cbor:"7,keyasint" json:"amount"`
	Increment      bool            `cbor:"8,keyasint" json:"increment"`
	ClaimedSupply  uint64          `cbor:"9,keyasint" json:"claimedSupply"`
	ClaimedBalance uint64          `cbor:"10,keyasint" json:"claimedBalance"`
	Cost           uint64          `cbor:"11,keyasint" json:"cost"`
	ProtocolFee    uint64          `cbor:"12,keyasint" json:"protocolFee"`
	SubjectFee     uint64          `cbor:"13,keyasint" json:"subjectFee"`
	Value          uint64          `cbor:"14,keyasint" json:"value"`
	Stage          string          `cbor:"15,keyasint" json:"stage"`
	Held           uint64          `cbor:"16,keyasint" json:"held"`
}

// fixed width hex so ids sort in order
func queryKey(id uint64) string {
	return fmt.Sprintf("%s%016x", queryPrefix, id)
}

func loadConfiguration(r actor.Reader) (Parameters, error) {
	var p Parameters
	found, err := r.Get(configurationKey, &p)
	if nil != err {
		return p, err
	}
	if !found {
		return p, fault.NotDeployed
	}
	return p, nil
}

func loadQuery(r actor.Reader, id uint64) (*Query, error) {
	var q Query
	found, err := r.Get(queryKey(id), &q)
	if nil != err {
		return nil, err
	}
	if !found {
		return nil, fault.QueryNotFound
	}
	return &q, nil
}

func loadN(r actor.Reader, key string) (uint64, error) {
	var n uint64
	_, err := r.Get(key, &n)
	return n, err
}

// the next query id, not yet stored
func nextQueryId(ctx actor.Context) (uint64, error) {
	last, err := loadN(ctx, lastQueryIdKey)
	if nil != err {
		return 0, err
	}
	if last+1 < last {
		return 0, fault.Overflow
	}
	return last + 1, nil
}

// coins held for all queries in flight
func reserved(r actor.Reader) (uint64, error) {
	return loadN(r, reservedKey)
}

// coins arriving for q, or set aside from free coins for a sell
//
// the caller stores q
func hold(ctx actor.Context, q *Query, amount uint64) error {
	total, err := reserved(ctx)
	if nil != err {
		return err
	}
	if total+amount < total {
		return fault.Overflow
	}
	q.Held += amount
	return ctx.Put(reservedKey, total+amount)
}

// coins held for q that leave the registry or become free
//
// more than is held means the accounting is broken: the shortfall is
// logged and the counts are clamped so the query can still settle
func (c *Code) release(ctx actor.Context, q *Query, amount uint64) error {
	total, err := reserved(ctx)
	if nil != err {
		return err
	}
	n := min(amount, q.Held, total)
	if n != amount {
		c.log.Criticalf("query: %d  release: %d  exceeds held: %d  reserved: %d", q.Id, amount, q.Held, total)
	}
	q.Held -= n
	return ctx.Put(reservedKey, total-n)
}
