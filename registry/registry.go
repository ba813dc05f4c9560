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
	"github.com/bitmark-inc/logger"
)

// Kind - template kind
const Kind = address.Registry

// defaults
const (
	DefaultProtocolFee    uint64 = 5
	DefaultSubjectFee     uint64 = 5
	DefaultGasConsumption uint64 = 50000000 // 0.05 coin
	DefaultForwardValue   uint64 = 10000000 // 0.01 coin
)

// inbound operations
const (
	OpDeploy   = "Deploy"
	OpNewKey   = "NewKey"
	OpTradeKey = "TradeKey"
)

// outbound operations
const (
	OpDeployOk    = "DeployOk"
	OpProtocolFee = "ProtocolFee"
	OpSubjectFee  = "SubjectFee"
	OpRefund      = "Refund"
	OpPayout      = "Payout"
)

// events
const (
	EventQueryAccepted = "query_accepted"
	EventQuerySettled  = "query_settled"
)

// Deploy - initialise the registry from its template
type Deploy struct {
	QueryId uint64 `cbor:"1,keyasint"`
}

// DeployOk - reply to Deploy
type DeployOk struct {
	QueryId uint64 `cbor:"1,keyasint"`
}

// NewKey - create the keys of a subject, sent by the subject
type NewKey struct {
	Subject       address.Address `cbor:"1,keyasint"`
	InitialSupply uint64          `cbor:"2,keyasint"`
}

// TradeKey - buy or sell keys priced from the claimed supply
type TradeKey struct {
	Subject        address.Address `cbor:"1,keyasint"`
	ClaimedSupply  uint64          `cbor:"2,keyasint"`
	Holder         address.Address `cbor:"3,keyasint"`
	ClaimedBalance uint64          `cbor:"4,keyasint"`
	Amount         uint64          `cbor:"5,keyasint"`
	Increment      bool            `cbor:"6,keyasint"`
}

// QueryAccepted - event for a request that reserved a query id
type QueryAccepted struct {
	QueryId uint64 `cbor:"1,keyasint" json:"queryId"`
	Origin  uint64 `cbor:"2,keyasint" json:"origin"`
	Kind    string `cbor:"3,keyasint" json:"kind"`
}

// QuerySettled - event for the end of a query
type QuerySettled struct {
	QueryId uint64 `cbor:"1,keyasint" json:"queryId"`
	Origin  uint64 `cbor:"2,keyasint" json:"origin"`
	Kind    string `cbor:"3,keyasint" json:"kind"`
	Success bool   `cbor:"4,keyasint" json:"success"`
	Reason  string `cbor:"5,keyasint" json:"reason,omitempty"`
}

// Parameters - the registry configuration, fixed by its template
type Parameters struct {
	FeeDestination address.Address `cbor:"1,keyasint" json:"feeDestination"`
	ProtocolFee    uint64          `cbor:"2,keyasint" json:"protocolFee"`
	SubjectFee     uint64          `cbor:"3,keyasint" json:"subjectFee"`
	GasConsumption uint64          `cbor:"4,keyasint" json:"gasConsumption"`
	ForwardValue   uint64          `cbor:"5,keyasint" json:"forwardValue"`
}

// DefaultParameters - fees of 5% each, fees paid to the deployer
func DefaultParameters() Parameters {
	return Parameters{
		FeeDestination: address.Zero,
		ProtocolFee:    DefaultProtocolFee,
		SubjectFee:     DefaultSubjectFee,
		GasConsumption: DefaultGasConsumption,
		ForwardValue:   DefaultForwardValue,
	}
}

// Template - the registry template for a set of parameters
//
// a zero fee destination means "whoever deploys"
func Template(p Parameters) address.Template {
	return address.Template{
		Kind:   Kind,
		Fields: []address.Address{p.FeeDestination},
		Parameters: []uint64{
			p.ProtocolFee,
			p.SubjectFee,
			p.GasConsumption,
			p.ForwardValue,
		},
	}
}

// Address - derive the registry address
func Address(p Parameters) address.Address {
	return address.Derive(Template(p))
}

// KeyAddress - address of the key actor of a subject
func KeyAddress(registry address.Address, subject address.Address) address.Address {
	return keysupply.Address(registry, subject)
}

// WalletAddress - address of a holder's wallet of a subject's keys
func WalletAddress(registry address.Address, holder address.Address, subject address.Address) address.Address {
	return wallet.Address(registry, holder, subject)
}

func parametersOf(t address.Template) (Parameters, error) {
	if Kind != t.Kind || 1 != len(t.Fields) || 4 != len(t.Parameters) {
		return Parameters{}, fault.InvalidTemplate
	}
	return Parameters{
		FeeDestination: t.Fields[0],
		ProtocolFee:    t.Parameters[0],
		SubjectFee:     t.Parameters[1],
		GasConsumption: t.Parameters[2],
		ForwardValue:   t.Parameters[3],
	}, nil
}

// Check - parameters must leave every hop able to pay its message fee
func (p Parameters) Check(messageFee uint64) error {
	if p.ProtocolFee > 100 || p.SubjectFee > 100 || p.ProtocolFee+p.SubjectFee > 100 {
		return fault.InvalidFee
	}

	// a reply costs two fees: one at the actor, one back at the registry
	if p.ForwardValue < 2*messageFee {
		return fault.InvalidGasConsumption
	}

	// request fee plus three forwards (supply, balance, then finalise or revert)
	if p.GasConsumption < messageFee+3*p.ForwardValue {
		return fault.InvalidGasConsumption
	}
	return nil
}

// Code - registry behaviour
type Code struct {
	log *logger.L
}

// New - create the registry code
func New() *Code {
	return &Code{
		log: logger.New("registry"),
	}
}

// Receive - process one message
func (c *Code) Receive(ctx actor.Context, m *actor.Message) error {
	if Kind != ctx.Template().Kind {
		return fault.InvalidTemplate
	}

	if OpDeploy == m.Op && !m.Bounced {
		return c.deploy(ctx, m)
	}

	p, err := loadConfiguration(ctx)
	if nil != err {
		return err
	}

	if m.Bounced {
		return c.bounced(ctx, p, m)
	}

	switch m.Op {
	case OpNewKey:
		return c.newKey(ctx, p, m)
	case OpTradeKey:
		return c.tradeKey(ctx, p, m)
	case keysupply.OpKeyInitialised, keysupply.OpSupplyAdjusted:
		return c.supplyConfirmed(ctx, p, m)
	case keysupply.OpSupplyFinalised, keysupply.OpSupplyReverted:
		return c.supplyClosed(ctx, p, m)
	case wallet.OpBalanceAdjusted:
		return c.balanceConfirmed(ctx, p, m)
	default:
		return fault.UnknownOperation
	}
}
