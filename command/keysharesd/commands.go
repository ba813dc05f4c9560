// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/keyshares/actor"
	"github.com/bitmark-inc/keyshares/address"
	"github.com/bitmark-inc/keyshares/registry"
	"github.com/bitmark-inc/keyshares/util"
)

const (
	rpcCertificateKeyFilename = "rpc.crt"
	rpcPrivateKeyFilename     = "rpc.key"
)

// setup command handler
//
// commands that run to create key and certificate files these
// commands cannot access any internal database or states or the
// configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-rpc-cert", "rpc":
		certificateFilename := getFilenameWithDirectory(arguments, rpcCertificateKeyFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, rpcPrivateKeyFilename)

		addresses := extraHosts(arguments)

		err := makeSelfSignedCertificate("rpc", certificateFilename, privateKeyFilename, 0 != len(addresses), addresses)
		if nil != err {
			fmt.Printf("generate RPC key: %q and certificate: %q error: %s\n", privateKeyFilename, certificateFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated RPC key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)

	case "start", "run":
		return false // continue processing

	case "statistics", "stats", "coins", "actors", "registry":
		return false // defer processing until database is loaded

	case "config-test", "cfg":
		return false

	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		usage(program)
		exitwithstatus.Exit(1)
	}

	// indicate processing complete and preform normal exit from main
	return true
}

// non-blank host arguments after the directory
func extraHosts(arguments []string) []string {
	hosts := []string{}
	if len(arguments) < 2 {
		return hosts
	}
	for _, a := range arguments[1:] {
		if "" != a {
			hosts = append(hosts, a)
		}
	}
	return hosts
}

type commandHelp struct {
	name    string
	alias   string
	summary []string
}

func usage(program string) {
	key := "DIR/" + rpcPrivateKeyFilename
	crt := "DIR/" + rpcCertificateKeyFilename
	commands := []commandHelp{
		{"help", "h", []string{"display this message"}},
		{"version", "v", []string{"display version string"}},
		{"gen-rpc-cert [DIR] [HOSTS...]", "rpc", []string{
			fmt.Sprintf("create private key in:  %q", key),
			fmt.Sprintf("and the certificate in: %q", crt),
			"HOSTS are added to the certificate",
		}},
		{"start", "run", []string{"run the daemon, same as no arguments"}},
		{"config-test", "cfg", []string{"check and print the configuration file"}},
		{"registry", "", []string{"display the registry address and parameters"}},
		{"statistics", "stats", []string{"display the runtime counters as JSON"}},
		{"coins ADDRESS...", "", []string{"display the committed coins of each address"}},
		{"actors [KIND]", "", []string{"list deployed actors: registry, key or wallet"}},
	}

	fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", program)
	fmt.Printf("supported commands:\n\n")
	for _, c := range commands {
		alias := ""
		if "" != c.alias {
			alias = "(" + c.alias + ")"
		}
		for i, line := range c.summary {
			if 0 == i {
				fmt.Printf("  %-30s %-8s - %s\n", c.name, alias, line)
			} else {
				fmt.Printf("  %-30s %-8s   %s\n", "", "", line)
			}
		}
		fmt.Printf("\n")
	}
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		printJSON(options)

	case "registry":
		parameters, deployer, err := options.parameters()
		if nil != err {
			exitwithstatus.Message("error: %s", err)
		}
		printJSON(struct {
			Address    address.Address     `json:"address"`
			Deployer   address.Address     `json:"deployer"`
			Parameters registry.Parameters `json:"parameters"`
		}{
			Address:    registry.Address(parameters),
			Deployer:   deployer,
			Parameters: parameters,
		})

	default: // unknown commands fall through to data command
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// data command handler
// the storage and runtime are available so these commands can
// inspect the committed state
func processDataCommand(log *logger.L, arguments []string, runtime *actor.Runtime) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {

	case "start", "run":
		return false // continue processing

	case "statistics", "stats":
		printJSON(runtime.Statistics())

	case "coins":
		if len(arguments) < 1 {
			exitwithstatus.Message("missing address argument")
		}
		for _, s := range arguments {
			a, err := address.FromBase58(s)
			if nil != err {
				exitwithstatus.Message("error: address: %q  error: %s", s, err)
			}
			log.Debugf("coins of: %s", a)
			fmt.Printf("%s  %s  active: %v\n", a, util.FormatCoins(runtime.Coins(a)), runtime.IsActive(a))
		}

	case "actors":
		kind := ""
		if len(arguments) > 0 {
			kind = arguments[0]
		}
		actors, err := runtime.Actors(kind)
		if nil != err {
			exitwithstatus.Message("error: %s", err)
		}
		for _, a := range actors {
			fmt.Printf("%s  %s\n", a, util.FormatCoins(runtime.Coins(a)))
		}

	default:
		exitwithstatus.Message("error: no such command: %s", command)

	}

	// indicate processing complete and perform normal exit from main
	return true
}

func printJSON(v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		exitwithstatus.Message("error: %s", err)
	}
	var out bytes.Buffer
	json.Indent(&out, b, "", "  ")
	out.WriteTo(os.Stdout)
	os.Stdout.WriteString("\n")
}

// get the working directory; if not set in the arguments
// it's set to the current directory
func getFilenameWithDirectory(arguments []string, name string) string {
	dir := "."
	if len(arguments) >= 1 {
		dir = arguments[0]
	}

	return filepath.Join(dir, name)
}
