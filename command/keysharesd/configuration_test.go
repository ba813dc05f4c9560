// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/keyshares/actor"
	"github.com/bitmark-inc/keyshares/address"
	"github.com/bitmark-inc/keyshares/fault"
	"github.com/bitmark-inc/keyshares/registry"
)

const minimalConfiguration = `
local M = {}
M.data_directory = "."
return M
`

func writeConfiguration(t *testing.T, source string) (string, string) {
	dir, err := ioutil.TempDir("", "keysharesd")
	require.Nil(t, err, "temp dir")

	fileName := filepath.Join(dir, "keysharesd.conf")
	err = ioutil.WriteFile(fileName, []byte(source), 0600)
	require.Nil(t, err, "write configuration")
	return dir, fileName
}

func TestGetConfigurationDefaults(t *testing.T) {
	dir, fileName := writeConfiguration(t, minimalConfiguration)
	defer os.RemoveAll(dir)

	c, err := getConfiguration(fileName)
	require.Nil(t, err, "configuration")

	assert.Equal(t, filepath.Clean(dir), filepath.Clean(c.DataDirectory), "wrong data directory")
	assert.Equal(t, filepath.Join(dir, "data", "keyshares"), c.Database.Name, "wrong database")
	assert.Equal(t, filepath.Join(dir, "log"), c.Logging.Directory, "wrong log directory")
	assert.DirExists(t, c.Database.Directory, "database directory not created")
	assert.DirExists(t, c.Logging.Directory, "log directory not created")
	assert.Equal(t, "", c.PidFile, "pid file must be optional")

	assert.Equal(t, actor.DefaultMessageFee, c.Runtime.MessageFee, "wrong message fee")
	assert.False(t, c.Runtime.Faucet, "faucet enabled by default")
	assert.Equal(t, uint64(86400), c.Runtime.SettlementExpiry, "wrong expiry")

	p, deployer, err := c.parameters()
	assert.Nil(t, err, "parameters")
	assert.Equal(t, registry.DefaultParameters(), p, "wrong parameters")
	assert.Equal(t, address.Treasury("deployer"), deployer, "wrong deployer")
}

func TestGetConfigurationValues(t *testing.T) {
	feeDestination := address.Treasury("fees")
	source := `
local M = {}
M.data_directory = "."
M.pidfile = "keysharesd.pid"
M.database = { directory = "db", name = "node" }
M.registry = {
    fee_destination = "` + feeDestination.String() + `",
    protocol_fee = 2,
    subject_fee = 3,
}
M.runtime = {
    message_fee = 1000,
    faucet = true,
    settlement_expiry = 60,
}
M.client_rpc = {
    maximum_connections = 7,
    listen = { "127.0.0.1:2130" },
}
M.logging = {
    levels = { DEFAULT = "info", registry = "debug" },
}
return M
`
	dir, fileName := writeConfiguration(t, source)
	defer os.RemoveAll(dir)

	c, err := getConfiguration(fileName)
	require.Nil(t, err, "configuration")

	assert.Equal(t, filepath.Join(dir, "keysharesd.pid"), c.PidFile, "wrong pid file")
	assert.Equal(t, filepath.Join(dir, "db", "node"), c.Database.Name, "wrong database")
	assert.Equal(t, uint64(1000), c.Runtime.MessageFee, "wrong message fee")
	assert.True(t, c.Runtime.Faucet, "wrong faucet")
	assert.Equal(t, uint64(7), c.ClientRPC.MaximumConnections, "wrong maximum connections")
	assert.Equal(t, []string{"127.0.0.1:2130"}, c.ClientRPC.Listen, "wrong listen")
	assert.Equal(t, "debug", c.Logging.Levels["registry"], "wrong level")

	p, _, err := c.parameters()
	assert.Nil(t, err, "parameters")
	assert.Equal(t, feeDestination, p.FeeDestination, "wrong fee destination")
	assert.Equal(t, uint64(2), p.ProtocolFee, "wrong protocol fee")
	assert.Equal(t, uint64(3), p.SubjectFee, "wrong subject fee")
}

func TestGetConfigurationErrors(t *testing.T) {
	items := []struct {
		name   string
		source string
	}{
		{"blank data directory", `return { data_directory = "" }`},
		{"missing data directory", `return { data_directory = "/no/such/keysharesd/directory" }`},
		{"not a table", `return 5`},
		{"database path", `return { data_directory = ".", database = { name = "x/y" } }`},
		{"deployer", `return { data_directory = ".", registry = { deployer = "not-base58-0OIl" } }`},
		{"fee destination", `return { data_directory = ".", registry = { fee_destination = "0OIl" } }`},
		{"fees", `return { data_directory = ".", registry = { protocol_fee = 60, subject_fee = 50 } }`},
		{"gas", `return { data_directory = ".", registry = { gas_consumption = 1 } }`},
	}

	for _, item := range items {
		dir, fileName := writeConfiguration(t, item.source)
		_, err := getConfiguration(fileName)
		assert.NotNil(t, err, item.name)
		os.RemoveAll(dir)
	}
}

func TestConfigurationParametersCheck(t *testing.T) {
	c := Configuration{
		Registry: RegistryType{
			Deployer:       address.Treasury("deployer").String(),
			ProtocolFee:    90,
			SubjectFee:     20,
			GasConsumption: registry.DefaultGasConsumption,
			ForwardValue:   registry.DefaultForwardValue,
		},
		Runtime: RuntimeType{
			MessageFee: actor.DefaultMessageFee,
		},
	}
	_, _, err := c.parameters()
	assert.Equal(t, fault.InvalidFee, err, "wrong error")
}
