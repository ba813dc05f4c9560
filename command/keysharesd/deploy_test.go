// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/keyshares/actor"
	"github.com/bitmark-inc/keyshares/address"
	"github.com/bitmark-inc/keyshares/fault"
	"github.com/bitmark-inc/keyshares/keysupply"
	"github.com/bitmark-inc/keyshares/registry"
	"github.com/bitmark-inc/keyshares/storage"
	"github.com/bitmark-inc/keyshares/wallet"
	"github.com/bitmark-inc/logger"
)

const (
	testingDirName = "testing"
	testMessageFee = uint64(1000000)
)

func setupRuntime(t *testing.T) *actor.Runtime {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0700)
	setupLogger(t)

	err := storage.Initialise(filepath.Join(testingDirName, "deploy"), storage.ReadWrite)
	require.Nil(t, err, "storage initialise")

	r := actor.New(actor.Configuration{
		MessageFee: testMessageFee,
	})
	r.Register(registry.Kind, registry.New())
	r.Register(keysupply.Kind, keysupply.New())
	r.Register(wallet.Kind, wallet.New())
	return r
}

func setupLogger(t *testing.T) {
	_ = os.MkdirAll(testingDirName, 0700)
	err := logger.Initialise(logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	})
	if nil != err && fault.AlreadyInitialised.Error() != err.Error() {
		t.Logf("logger initialise: %s", err)
	}
}

func teardownRuntime(r *actor.Runtime) {
	r.Stop()
	storage.Finalise()
	teardown()
}

func teardown() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	os.RemoveAll(testingDirName)
}

func testDeployment() deployment {
	return deployment{
		parameters: registry.DefaultParameters(),
		deployer:   address.Treasury("deployer"),
		value:      registry.DefaultParameters().ForwardValue,
		faucet:     true,
		timeout:    5 * time.Second,
	}
}

func TestDeployRegistry(t *testing.T) {
	r := setupRuntime(t)
	defer teardownRuntime(r)

	d := testDeployment()
	a, err := deployRegistry(logger.New("test"), r, d)
	assert.Nil(t, err, "deploy")
	assert.Equal(t, registry.Address(d.parameters), a, "wrong registry address")
	assert.True(t, r.IsActive(a), "registry not active")

	err = r.Get(a, func(reader actor.Reader) error {
		p, err := registry.Configuration(reader)
		if nil != err {
			return err
		}
		assert.Equal(t, d.deployer, p.FeeDestination, "blank fee destination must become the deployer")
		return nil
	})
	assert.Nil(t, err, "registry configuration")

	// the deploy value less one fee comes back
	assert.Equal(t, d.value-testMessageFee, r.Coins(d.deployer), "wrong deployer coins")
	assert.Equal(t, d.value, r.Statistics().Funded, "wrong funded")
}

func TestDeployRegistryTwice(t *testing.T) {
	r := setupRuntime(t)
	defer teardownRuntime(r)

	d := testDeployment()
	first, err := deployRegistry(logger.New("test"), r, d)
	require.Nil(t, err, "first deploy")

	messages := r.Statistics().Messages

	second, err := deployRegistry(logger.New("test"), r, d)
	assert.Nil(t, err, "second deploy")
	assert.Equal(t, first, second, "address changed")
	assert.Equal(t, messages, r.Statistics().Messages, "an active registry must not be sent a message")
}

func TestDeployRegistryWithoutFaucet(t *testing.T) {
	r := setupRuntime(t)
	defer teardownRuntime(r)

	d := testDeployment()
	d.faucet = false

	_, err := deployRegistry(logger.New("test"), r, d)
	assert.Equal(t, fault.InsufficientFunds, err, "wrong error")
	assert.False(t, r.IsActive(registry.Address(d.parameters)), "registry active")

	// an already funded deployer needs no faucet
	require.Nil(t, r.Fund(d.deployer, d.value), "fund")
	_, err = deployRegistry(logger.New("test"), r, d)
	assert.Nil(t, err, "deploy")
}

func TestDeployRegistryRejected(t *testing.T) {
	r := setupRuntime(t)
	defer teardownRuntime(r)

	// each reply could not pay its fees
	d := testDeployment()
	d.parameters.ForwardValue = testMessageFee

	a, err := deployRegistry(logger.New("test"), r, d)
	assert.Equal(t, fault.NotDeployed, err, "wrong error")
	assert.Equal(t, address.Zero, a, "address returned")
	assert.False(t, r.IsActive(registry.Address(d.parameters)), "registry active")

	// the bounce returns the value less the fee
	assert.Equal(t, d.value-testMessageFee, r.Coins(d.deployer), "wrong deployer coins")
}
