// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bitmark-inc/keyshares/actor"
	"github.com/bitmark-inc/keyshares/address"
	"github.com/bitmark-inc/keyshares/configuration"
	"github.com/bitmark-inc/keyshares/registry"
	"github.com/bitmark-inc/keyshares/rpc/listeners"
	"github.com/bitmark-inc/keyshares/settlement"
	"github.com/bitmark-inc/keyshares/util"
	"github.com/bitmark-inc/logger"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultLevelDBDirectory = "data"
	defaultDatabase         = "keyshares" // storage adds ".leveldb"

	defaultLogDirectory = "log"
	defaultLogFile      = "keysharesd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultRPCClients = 10
	defaultTraceSize  = 1000
	defaultDeployer   = "deployer"
)

// DatabaseType - leveldb location
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// RegistryType - parameters of the registry template and its deployment
//
// addresses are base58, a blank fee destination means the deployer
type RegistryType struct {
	FeeDestination string `gluamapper:"fee_destination" json:"fee_destination"`
	ProtocolFee    uint64 `gluamapper:"protocol_fee" json:"protocol_fee"`
	SubjectFee     uint64 `gluamapper:"subject_fee" json:"subject_fee"`
	GasConsumption uint64 `gluamapper:"gas_consumption" json:"gas_consumption"`
	ForwardValue   uint64 `gluamapper:"forward_value" json:"forward_value"`
	Deployer       string `gluamapper:"deployer" json:"deployer"`
	DeployValue    uint64 `gluamapper:"deploy_value" json:"deploy_value"`
}

// RuntimeType - actor runtime settings
type RuntimeType struct {
	MessageFee       uint64 `gluamapper:"message_fee" json:"message_fee"`
	TraceSize        int    `gluamapper:"trace_size" json:"trace_size"`
	Faucet           bool   `gluamapper:"faucet" json:"faucet"`
	SettlementExpiry uint64 `gluamapper:"settlement_expiry" json:"settlement_expiry"` // seconds
}

// Configuration - the whole configuration file
type Configuration struct {
	DataDirectory string       `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string       `gluamapper:"pidfile" json:"pidfile"`
	Database      DatabaseType `gluamapper:"database" json:"database"`
	Registry      RegistryType `gluamapper:"registry" json:"registry"`
	Runtime       RuntimeType  `gluamapper:"runtime" json:"runtime"`

	ClientRPC listeners.RPCConfiguration   `gluamapper:"client_rpc" json:"client_rpc"`
	HttpsRPC  listeners.HTTPSConfiguration `gluamapper:"https_rpc" json:"https_rpc"`
	Logging   logger.Configuration         `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	defaults := registry.DefaultParameters()

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultDatabase,
		},

		Registry: RegistryType{
			ProtocolFee:    defaults.ProtocolFee,
			SubjectFee:     defaults.SubjectFee,
			GasConsumption: defaults.GasConsumption,
			ForwardValue:   defaults.ForwardValue,
			Deployer:       address.Treasury(defaultDeployer).String(),
			DeployValue:    defaults.ForwardValue,
		},

		Runtime: RuntimeType{
			MessageFee:       actor.DefaultMessageFee,
			TraceSize:        defaultTraceSize,
			SettlementExpiry: uint64(settlement.DefaultExpiry / time.Second),
		},

		ClientRPC: listeners.RPCConfiguration{
			MaximumConnections: defaultRPCClients,
		},

		HttpsRPC: listeners.HTTPSConfiguration{
			MaximumConnections: defaultRPCClients,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels: map[string]string{
				logger.DefaultTag: "critical",
			},
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options); nil != err {
		return nil, err
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	// optional absolute paths i.e. blank or an absolute path
	if "" != options.PidFile {
		options.PidFile = util.EnsureAbsolute(options.DataDirectory, options.PidFile)
	}

	// fail if any of these are not simple file names
	for _, f := range []string{options.Database.Name, options.Logging.File} {
		switch filepath.Dir(f) {
		case "", ".":
		default:
			return nil, fmt.Errorf("Files: %q is not plain name", f)
		}
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	} {
		*d, err = util.EnsureDirectory(options.DataDirectory, *d)
		if nil != err {
			return nil, err
		}
	}
	options.Database.Name = util.EnsureAbsolute(options.Database.Directory, options.Database.Name)

	// the registry must be deployable with these values
	if _, _, err := options.parameters(); nil != err {
		return nil, err
	}

	// done
	return options, nil
}

// registry parameters and deployer from the configuration
func (c *Configuration) parameters() (registry.Parameters, address.Address, error) {
	deployer, err := address.FromBase58(c.Registry.Deployer)
	if nil != err {
		return registry.Parameters{}, address.Zero, fmt.Errorf("registry deployer: %q  error: %s", c.Registry.Deployer, err)
	}

	feeDestination := address.Zero
	if "" != c.Registry.FeeDestination {
		feeDestination, err = address.FromBase58(c.Registry.FeeDestination)
		if nil != err {
			return registry.Parameters{}, address.Zero, fmt.Errorf("registry fee destination: %q  error: %s", c.Registry.FeeDestination, err)
		}
	}

	p := registry.Parameters{
		FeeDestination: feeDestination,
		ProtocolFee:    c.Registry.ProtocolFee,
		SubjectFee:     c.Registry.SubjectFee,
		GasConsumption: c.Registry.GasConsumption,
		ForwardValue:   c.Registry.ForwardValue,
	}
	if err := p.Check(c.Runtime.MessageFee); nil != err {
		return registry.Parameters{}, address.Zero, err
	}
	return p, deployer, nil
}
