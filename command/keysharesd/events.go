// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/keyshares/address"
	"github.com/bitmark-inc/keyshares/codec"
	"github.com/bitmark-inc/keyshares/messagebus"
	"github.com/bitmark-inc/keyshares/registry"
)

const eventQueueSize = 100

// writes each settled query to the log
type eventLog struct {
	log      *logger.L
	listener <-chan messagebus.Message
}

// the listener is attached at once so no event is missed before Run
func newEventLog() *eventLog {
	return &eventLog{
		log:      logger.New("events"),
		listener: messagebus.Bus.Broadcast.Chan(eventQueueSize),
	}
}

func (e *eventLog) Run(args interface{}, shutdown <-chan struct{}) {
	defer messagebus.Bus.Broadcast.Release(e.listener)

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case item, ok := <-e.listener:
			if !ok {
				return
			}
			e.write(item)
		}
	}
}

func (e *eventLog) write(item messagebus.Message) {
	if registry.EventQuerySettled != item.Command || 2 != len(item.Parameters) {
		return
	}
	source, err := address.FromBytes(item.Parameters[0])
	if nil != err {
		e.log.Errorf("event source error: %s", err)
		return
	}

	var settled registry.QuerySettled
	if err := codec.Unmarshal(item.Parameters[1], &settled); nil != err {
		e.log.Errorf("event body error: %s", err)
		return
	}

	if settled.Success {
		e.log.Infof("registry: %s  query: %d  %s  origin: %d  succeeded", source, settled.QueryId, settled.Kind, settled.Origin)
	} else {
		e.log.Warnf("registry: %s  query: %d  %s  origin: %d  failed: %s", source, settled.QueryId, settled.Kind, settled.Origin, settled.Reason)
	}
}
