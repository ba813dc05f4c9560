// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/keyshares/actor"
	"github.com/bitmark-inc/keyshares/address"
	"github.com/bitmark-inc/keyshares/counter"
	"github.com/bitmark-inc/keyshares/fault"
	"github.com/bitmark-inc/keyshares/rpc/ratelimit"
	"github.com/bitmark-inc/keyshares/settlement"
	"github.com/bitmark-inc/logger"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// Node - type for RPC calls
type Node struct {
	Log      *logger.L
	Limiter  *rate.Limiter
	Start    time.Time
	Version  string
	Runtime  actor.Handle
	Tracker  settlement.Handle
	Registry address.Address
	counter  *counter.Counter
}

// New - node information service
func New(log *logger.L, start time.Time, version string, counter *counter.Counter, runtime actor.Handle, tracker settlement.Handle, registry address.Address) *Node {
	return &Node{
		Log:      log,
		Limiter:  rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:    start,
		Version:  version,
		Runtime:  runtime,
		Tracker:  tracker,
		Registry: registry,
		counter:  counter,
	}
}

// ---

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Version    string           `json:"version"`
	Uptime     string           `json:"uptime"`
	RPCs       uint64           `json:"rpcs"`
	MessageFee uint64           `json:"messageFee"`
	Registry   address.Address  `json:"registry"`
	Deployed   bool             `json:"deployed"`
	Runtime    actor.Statistics `json:"runtime"`
	Outcomes   int              `json:"outcomes"`
}

// Info - return some information about this node
// only enough for clients to determine node state
// for more detail information use HTTP GET requests
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {
	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	if nil == node.Runtime {
		return fault.DatabaseIsNotSet
	}

	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	reply.RPCs = node.counter.Uint64()
	reply.MessageFee = node.Runtime.MessageFee()
	reply.Registry = node.Registry
	reply.Deployed = node.Runtime.IsActive(node.Registry)
	reply.Runtime = node.Runtime.Statistics()
	if nil != node.Tracker {
		reply.Outcomes = node.Tracker.Count()
	}
	return nil
}
