// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"sync"
	"time"

	"github.com/bitmark-inc/keyshares/actor"
	"github.com/bitmark-inc/keyshares/address"
	"github.com/bitmark-inc/keyshares/counter"
	"github.com/bitmark-inc/keyshares/fault"
	"github.com/bitmark-inc/keyshares/registry"
	"github.com/bitmark-inc/keyshares/rpc/certificate"
	"github.com/bitmark-inc/keyshares/rpc/handler"
	"github.com/bitmark-inc/keyshares/rpc/listeners"
	"github.com/bitmark-inc/keyshares/rpc/server"
	"github.com/bitmark-inc/logger"
)

const (
	rpcName   = "client_rpc"
	httpsName = "http_rpc"
)

// globals
type rpcData struct {
	sync.RWMutex // to allow locking

	log *logger.L // logger

	// set once during initialise
	initialised bool
}

// global data
var globalData rpcData

// number of JSON-RPC connections currently open
var connectionCountRPC counter.Counter

// details of the node for the HTTP GET
type details struct {
	Version    string           `json:"version"`
	Uptime     string           `json:"uptime"`
	Registry   address.Address  `json:"registry"`
	Deployed   bool             `json:"deployed"`
	RPCs       uint64           `json:"rpcs"`
	Statistics actor.Statistics `json:"statistics"`
	Outcomes   int              `json:"outcomes"`
}

// Initialise - start the JSON-RPC and HTTP listeners
func Initialise(rpcConfiguration *listeners.RPCConfiguration, httpsConfiguration *listeners.HTTPSConfiguration, version string, services server.Services) error {

	globalData.Lock()
	defer globalData.Unlock()

	// no need to Start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	log := logger.New("rpc")
	globalData.log = log
	log.Info("starting…")

	tlsConfig, _, err := certificate.Get(log, rpcName, rpcConfiguration.Certificate, rpcConfiguration.PrivateKey)
	if nil != err {
		return err
	}

	s := server.Create(log, version, &connectionCountRPC, services)

	rpcListener, err := listeners.NewRPC(
		rpcConfiguration,
		log,
		&connectionCountRPC,
		s,
		tlsConfig,
	)
	if nil != err {
		return err
	}
	err = rpcListener.Serve()
	if nil != err {
		return err
	}

	httpsTLS, _, err := certificate.Get(log, httpsName, httpsConfiguration.Certificate, httpsConfiguration.PrivateKey)
	if nil != err {
		return err
	}

	start := time.Now().UTC()
	hdlr := handler.New(log, s, start, version, httpsConfiguration.MaximumConnections, detailsOf(start, version, services))
	httpsListener, err := listeners.NewHTTPS(httpsConfiguration, log, httpsTLS, hdlr)
	if nil != err {
		return err
	}
	if nil != httpsListener {
		err = httpsListener.Serve()
		if nil != err {
			return err
		}
	}

	// all data initialised
	globalData.initialised = true

	return nil
}

func detailsOf(start time.Time, version string, services server.Services) handler.DetailsFunc {
	registryAddress := registry.Address(services.Parameters)
	return func() interface{} {
		d := details{
			Version:  version,
			Uptime:   time.Since(start).String(),
			Registry: registryAddress,
			RPCs:     connectionCountRPC.Uint64(),
		}
		if nil != services.Runtime {
			d.Deployed = services.Runtime.IsActive(registryAddress)
			d.Statistics = services.Runtime.Statistics()
		}
		if nil != services.Tracker {
			d.Outcomes = services.Tracker.Count()
		}
		return d
	}
}

// Finalise - stop all background tasks
func Finalise() error {

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}
