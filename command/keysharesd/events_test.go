// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/keyshares/address"
	"github.com/bitmark-inc/keyshares/background"
	"github.com/bitmark-inc/keyshares/codec"
	"github.com/bitmark-inc/keyshares/messagebus"
	"github.com/bitmark-inc/keyshares/registry"
)

func TestEventLogRun(t *testing.T) {
	setupLogger(t)
	defer teardown()

	listeners := messagebus.Bus.Broadcast.Listeners()

	e := newEventLog()
	assert.Equal(t, listeners+1, messagebus.Bus.Broadcast.Listeners(), "listener not attached")

	p := background.Start(background.Processes{e}, nil)

	source := address.Treasury("registry")
	for _, settled := range []registry.QuerySettled{
		{QueryId: 1, Origin: 10, Kind: registry.QueryBuy, Success: true},
		{QueryId: 2, Origin: 11, Kind: registry.QuerySell, Reason: "stale balance"},
	} {
		body, err := codec.Marshal(settled)
		require.Nil(t, err, "marshal")
		messagebus.Bus.Broadcast.Send(registry.EventQuerySettled, source[:], body)
	}

	// ignored
	messagebus.Bus.Broadcast.Send(registry.EventQueryAccepted, source[:], []byte{0})
	messagebus.Bus.Broadcast.Send(registry.EventQuerySettled, []byte{1})
	messagebus.Bus.Broadcast.Send(registry.EventQuerySettled, source[:], []byte{0xff})

	time.Sleep(100 * time.Millisecond)
	p.Stop()

	assert.Equal(t, listeners, messagebus.Bus.Broadcast.Listeners(), "listener not released")
}
