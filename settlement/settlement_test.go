// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package settlement_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/keyshares/actor"
	"github.com/bitmark-inc/keyshares/address"
	"github.com/bitmark-inc/keyshares/background"
	"github.com/bitmark-inc/keyshares/fault"
	"github.com/bitmark-inc/keyshares/messagebus"
	"github.com/bitmark-inc/keyshares/registry"
	"github.com/bitmark-inc/keyshares/settlement"
	"github.com/bitmark-inc/logger"
)

const testingDirName = "testing"

var source = registry.Address(registry.DefaultParameters())

func setupTestLogger() {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0700)

	_ = logger.Initialise(logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	})
}

func teardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	os.RemoveAll(testingDirName)
}

func event(t *testing.T, name string, body interface{}) actor.Event {
	b, err := actor.Encode(body)
	require.Nil(t, err, "encode")
	return actor.Event{
		Source: source,
		Name:   name,
		Body:   b,
	}
}

func TestTracker(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()

	tracker := settlement.New(time.Minute)
	listener := messagebus.Bus.Broadcast.Chan(10)
	defer messagebus.Bus.Broadcast.Release(listener)

	p := background.Start(background.Processes{tracker}, nil)
	defer p.Stop()

	settlement.Publish(event(t, registry.EventQueryAccepted, registry.QueryAccepted{QueryId: 1, Origin: 17, Kind: registry.QueryMint}))
	settlement.Publish(event(t, registry.EventQueryAccepted, registry.QueryAccepted{QueryId: 2, Origin: 23, Kind: registry.QueryBuy}))
	settlement.Publish(event(t, registry.EventQuerySettled, registry.QuerySettled{QueryId: 1, Origin: 17, Kind: registry.QueryMint, Success: true}))
	settlement.Publish(event(t, registry.EventQuerySettled, registry.QuerySettled{QueryId: 2, Origin: 23, Kind: registry.QueryBuy, Reason: fault.StaleSupply.Error()}))

	// events other than the registry's are not queued
	settlement.Publish(actor.Event{Source: address.Treasury("x"), Name: "something"})

	for i := 0; i < 4; i += 1 {
		select {
		case m := <-listener:
			assert.Equal(t, 2, len(m.Parameters), "wrong parameter count")
		case <-time.After(5 * time.Second):
			t.Fatalf("only %d events forwarded", i)
		}
	}

	o, found := tracker.Query(source, 1)
	require.True(t, found, "query 1 not tracked")
	assert.Equal(t, settlement.StateSucceeded, o.State, "wrong state")
	assert.Equal(t, uint64(17), o.Origin, "wrong origin")
	assert.False(t, o.Accepted.IsZero(), "accepted time lost")
	assert.False(t, o.Settled.IsZero(), "settled time missing")

	o, found = tracker.ByOrigin(23)
	require.True(t, found, "origin 23 not tracked")
	assert.Equal(t, uint64(2), o.QueryId, "wrong query")
	assert.Equal(t, settlement.StateFailed, o.State, "wrong state")
	assert.Equal(t, fault.StaleSupply.Error(), o.Reason, "wrong reason")

	_, found = tracker.Query(source, 3)
	assert.False(t, found, "unknown query tracked")
	_, found = tracker.Query(address.Treasury("other"), 1)
	assert.False(t, found, "query of another registry tracked")

	assert.Equal(t, 2, tracker.Count(), "wrong count")
}

func TestTrackerPending(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()

	tracker := settlement.New(0)
	listener := messagebus.Bus.Broadcast.Chan(1)
	defer messagebus.Bus.Broadcast.Release(listener)

	p := background.Start(background.Processes{tracker}, nil)
	defer p.Stop()

	settlement.Publish(event(t, registry.EventQueryAccepted, registry.QueryAccepted{QueryId: 9, Origin: 99, Kind: registry.QuerySell}))

	select {
	case <-listener:
	case <-time.After(5 * time.Second):
		t.Fatal("event not forwarded")
	}

	o, found := tracker.Query(source, 9)
	require.True(t, found, "query not tracked")
	assert.Equal(t, settlement.StatePending, o.State, "wrong state")
	assert.True(t, o.Settled.IsZero(), "settled too early")
}
