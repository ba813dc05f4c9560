// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/keyshares/actor"
	"github.com/bitmark-inc/keyshares/background"
	"github.com/bitmark-inc/keyshares/keysupply"
	"github.com/bitmark-inc/keyshares/registry"
	"github.com/bitmark-inc/keyshares/rpc"
	"github.com/bitmark-inc/keyshares/rpc/server"
	"github.com/bitmark-inc/keyshares/settlement"
	"github.com/bitmark-inc/keyshares/storage"
	"github.com/bitmark-inc/keyshares/wallet"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration and
	// process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if len(options["verbose"]) > 0 {
		theConfiguration.Logging.Console = true
	}
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// general info
	log.Infof("database: %q", theConfiguration.Database.Name)
	log.Debugf("%s = %#v", "ClientRPC", theConfiguration.ClientRPC)
	log.Debugf("%s = %#v", "HttpsRPC", theConfiguration.HttpsRPC)

	// start the data storage
	log.Info("initialise storage")
	err = storage.Initialise(theConfiguration.Database.Name, storage.ReadWrite)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer storage.Finalise()

	// the actor runtime with every kind of code
	log.Info("initialise runtime")
	actor.RegisterMetrics()
	runtime := actor.New(actor.Configuration{
		MessageFee: theConfiguration.Runtime.MessageFee,
		TraceSize:  theConfiguration.Runtime.TraceSize,
	})
	runtime.Register(registry.Kind, registry.New())
	runtime.Register(keysupply.Kind, keysupply.New())
	runtime.Register(wallet.Kind, wallet.New())
	defer runtime.Stop()

	// these commands are allowed to access the internal database
	if len(arguments) > 0 && processDataCommand(log, arguments, runtime) {
		return
	}

	// settlement tracking must observe before the first message
	tracker := settlement.New(time.Duration(theConfiguration.Runtime.SettlementExpiry) * time.Second)
	runtime.Observe(settlement.Publish)

	processes := background.Start(background.Processes{
		tracker,
		newEventLog(),
	}, nil)
	defer processes.Stop()

	parameters, deployer, err := theConfiguration.parameters()
	if nil != err {
		log.Criticalf("registry parameters error: %s", err)
		exitwithstatus.Message("registry parameters error: %s", err)
	}

	log.Info("deploy registry")
	registryAddress, err := deployRegistry(log, runtime, deployment{
		parameters: parameters,
		deployer:   deployer,
		value:      theConfiguration.Registry.DeployValue,
		faucet:     theConfiguration.Runtime.Faucet,
	})
	if nil != err {
		log.Criticalf("deploy registry error: %s", err)
		exitwithstatus.Message("deploy registry error: %s", err)
	}
	log.Infof("registry: %s", registryAddress)

	// start up the rpc background processes
	err = rpc.Initialise(&theConfiguration.ClientRPC, &theConfiguration.HttpsRPC, version, server.Services{
		Runtime:    runtime,
		Tracker:    tracker,
		Parameters: parameters,
		Faucet:     theConfiguration.Runtime.Faucet,
		ReadOnly:   storage.IsReadOnly(),
	})
	if nil != err {
		log.Criticalf("rpc initialise error: %s", err)
		exitwithstatus.Message("rpc initialise error: %s", err)
	}
	defer rpc.Finalise()

	// reload log levels when the configuration file changes
	change := make(chan struct{}, 1)
	remove := make(chan struct{}, 1)
	watcher, err := newFileWatcher(logger.New(fileWatcherLoggerTag), configurationFile, change, remove)
	if nil != err {
		log.Errorf("configuration watcher error: %s", err)
	} else if err := watcher.Start(); nil != err {
		log.Errorf("configuration watcher start error: %s", err)
	} else {
		defer watcher.Stop()
	}

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

wait:
	for {
		select {
		case sig := <-ch:
			log.Infof("received signal: %v", sig)
			if 0 == len(options["quiet"]) {
				fmt.Printf("\nreceived signal: %v\n", sig)
				fmt.Printf("\nshutting down…\n")
			}
			break wait

		case <-change:
			reloadLogLevels(log, configurationFile)

		case <-remove:
			log.Warnf("configuration file: %q removed, levels are no longer reloaded", configurationFile)
		}
	}

	log.Info("shutting down…")
}
