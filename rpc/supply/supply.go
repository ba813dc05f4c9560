// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package supply

import (
	"github.com/bitmark-inc/keyshares/actor"
	"github.com/bitmark-inc/keyshares/address"
	"github.com/bitmark-inc/keyshares/fault"
	"github.com/bitmark-inc/keyshares/keysupply"
	"github.com/bitmark-inc/keyshares/rpc/ratelimit"
	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"
)

const (
	rateLimitKey = 200
	rateBurstKey = 100
)

// Key - type for the RPC
type Key struct {
	Log      *logger.L
	Limiter  *rate.Limiter
	Runtime  actor.Handle
	Registry address.Address
}

// New - key supply lookups below one registry
func New(log *logger.L, runtime actor.Handle, registry address.Address) *Key {
	return &Key{
		Log:      log,
		Limiter:  rate.NewLimiter(rateLimitKey, rateBurstKey),
		Runtime:  runtime,
		Registry: registry,
	}
}

// SupplyArguments - the subject whose keys are counted
type SupplyArguments struct {
	Subject address.Address `json:"subject"`
}

// SupplyReply - current supply of a subject's keys
type SupplyReply struct {
	Address address.Address `json:"address"`
	Subject address.Address `json:"subject"`
	Supply  uint64          `json:"supply"`
	Pending uint64          `json:"pending,omitempty"`
}

// Supply - read the key actor of a subject
func (key *Key) Supply(arguments *SupplyArguments, reply *SupplyReply) error {
	if err := ratelimit.Limit(key.Limiter); nil != err {
		return err
	}
	if nil == arguments || arguments.Subject.IsZero() {
		return fault.InvalidAddress
	}

	a := keysupply.Address(key.Registry, arguments.Subject)
	err := key.Runtime.Get(a, func(r actor.Reader) error {
		var err error
		reply.Supply, err = keysupply.Supply(r)
		if nil != err {
			return err
		}
		reply.Pending, err = keysupply.Pending(r)
		return err
	})
	if fault.NotActive == err {
		return fault.NotInitialised
	}
	if nil != err {
		return err
	}

	reply.Address = a
	reply.Subject = arguments.Subject
	return nil
}
