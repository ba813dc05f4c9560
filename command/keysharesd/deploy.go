// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/keyshares/actor"
	"github.com/bitmark-inc/keyshares/address"
	"github.com/bitmark-inc/keyshares/fault"
	"github.com/bitmark-inc/keyshares/registry"
)

const deployTimeout = 30 * time.Second

// the runtime operations needed to deploy
type deployRuntime interface {
	actor.Handle
	Wait(ctx context.Context) error
}

// deployment settings
type deployment struct {
	parameters registry.Parameters
	deployer   address.Address
	value      uint64
	faucet     bool
	timeout    time.Duration
}

// ensure the registry for the configured parameters has code
//
// an existing registry is left alone; otherwise the deployer sends the
// initialising Deploy, funded from the faucet when it is enabled
func deployRegistry(log *logger.L, runtime deployRuntime, d deployment) (address.Address, error) {
	template := registry.Template(d.parameters)
	registryAddress := address.Derive(template)

	if runtime.IsActive(registryAddress) {
		log.Infof("registry: %s  already deployed", registryAddress)
		return registryAddress, nil
	}

	value := d.value
	if value < runtime.MessageFee() {
		value = d.parameters.ForwardValue
	}

	coins := runtime.Coins(d.deployer)
	if coins < value {
		if !d.faucet {
			log.Errorf("deployer: %s  has: %d  needs: %d", d.deployer, coins, value)
			return address.Zero, fault.InsufficientFunds
		}
		err := runtime.Fund(d.deployer, value-coins)
		if nil != err {
			return address.Zero, err
		}
	}

	m, err := actor.NewMessage(d.deployer, registryAddress, value, registry.OpDeploy, registry.Deploy{QueryId: 0})
	if nil != err {
		return address.Zero, err
	}
	m.Init = &template
	m.Bounce = true

	id, err := runtime.Send(m)
	if nil != err {
		return address.Zero, err
	}
	log.Infof("deploy message: %d  registry: %s  deployer: %s", id, registryAddress, d.deployer)

	timeout := d.timeout
	if 0 == timeout {
		timeout = deployTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	err = runtime.Wait(ctx)
	if nil != err {
		return address.Zero, err
	}

	if !runtime.IsActive(registryAddress) {
		return address.Zero, fault.NotDeployed
	}

	log.Infof("registry: %s  deployed", registryAddress)
	return registryAddress, nil
}
