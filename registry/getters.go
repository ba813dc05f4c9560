// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"github.com/bitmark-inc/keyshares/actor"
	"github.com/bitmark-inc/keyshares/fault"
	"github.com/bitmark-inc/keyshares/pricing"
)

// Configuration - the fixed parameters of a deployed registry
func Configuration(r actor.Reader) (Parameters, error) {
	if Kind != r.Template().Kind {
		return Parameters{}, fault.InvalidTemplate
	}
	return loadConfiguration(r)
}

// LastQueryId - the most recently allocated query id
func LastQueryId(r actor.Reader) (uint64, error) {
	if _, err := Configuration(r); nil != err {
		return 0, err
	}
	return loadN(r, lastQueryIdKey)
}

// QueryExists - true while a query is in flight
func QueryExists(r actor.Reader, id uint64) (bool, error) {
	_, err := GetQuery(r, id)
	if fault.QueryNotFound == err {
		return false, nil
	}
	return nil == err, err
}

// GetQuery - the record of a query in flight
func GetQuery(r actor.Reader, id uint64) (*Query, error) {
	if _, err := Configuration(r); nil != err {
		return nil, err
	}
	return loadQuery(r, id)
}

// Reserved - coins held for queries in flight
func Reserved(r actor.Reader) (uint64, error) {
	if _, err := Configuration(r); nil != err {
		return 0, err
	}
	return reserved(r)
}

// Price - curve price of amount keys above supply, without fees
func Price(supply uint64, amount uint64) (uint64, error) {
	if !pricing.Valid(supply, amount) {
		return 0, fault.SupplyLimitExceeded
	}
	return pricing.Price(supply, amount), nil
}

// BuyPrice - what a buyer pays before gas
func BuyPrice(p Parameters, supply uint64, amount uint64) (pricing.Quote, error) {
	if !pricing.Valid(supply, amount) {
		return pricing.Quote{}, fault.SupplyLimitExceeded
	}
	return pricing.BuyQuote(supply, amount, p.ProtocolFee, p.SubjectFee), nil
}

// SellPrice - cost and fees of selling the top amount keys
func SellPrice(p Parameters, supply uint64, amount uint64) (pricing.Quote, error) {
	if amount > supply {
		return pricing.Quote{}, fault.Underflow
	}
	if !pricing.Valid(supply-amount, amount) {
		return pricing.Quote{}, fault.SupplyLimitExceeded
	}
	return pricing.SellQuote(supply, amount, p.ProtocolFee, p.SubjectFee), nil
}
