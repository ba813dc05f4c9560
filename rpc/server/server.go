// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/keyshares/actor"
	"github.com/bitmark-inc/keyshares/counter"
	"github.com/bitmark-inc/keyshares/registry"
	"github.com/bitmark-inc/keyshares/rpc/account"
	"github.com/bitmark-inc/keyshares/rpc/exchange"
	"github.com/bitmark-inc/keyshares/rpc/holdings"
	"github.com/bitmark-inc/keyshares/rpc/node"
	"github.com/bitmark-inc/keyshares/rpc/supply"
	"github.com/bitmark-inc/keyshares/settlement"
	"github.com/bitmark-inc/logger"
)

// Services - state shared by the RPC types
type Services struct {
	Runtime    actor.Handle
	Tracker    settlement.Handle
	Parameters registry.Parameters
	Faucet     bool
	ReadOnly   bool
}

// Create - an rpc server with every service registered
func Create(log *logger.L, version string, rpcCount *counter.Counter, services Services) *rpc.Server {

	start := time.Now().UTC()
	registryAddress := registry.Address(services.Parameters)

	server := rpc.NewServer()

	_ = server.Register(exchange.New(log, services.Runtime, services.Tracker, services.Parameters))
	_ = server.Register(supply.New(log, services.Runtime, registryAddress))
	_ = server.Register(holdings.New(log, services.Runtime, registryAddress))
	_ = server.Register(account.New(log, services.Runtime, services.Faucet, services.ReadOnly))
	_ = server.Register(node.New(log, start, version, rpcCount, services.Runtime, services.Tracker, registryAddress))

	return server
}
