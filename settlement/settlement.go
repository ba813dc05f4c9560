// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package settlement

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/keyshares/actor"
	"github.com/bitmark-inc/keyshares/address"
	"github.com/bitmark-inc/keyshares/fault"
	"github.com/bitmark-inc/keyshares/messagebus"
	"github.com/bitmark-inc/keyshares/registry"
	"github.com/bitmark-inc/logger"
)

// query states
const (
	StatePending   = "pending"
	StateSucceeded = "succeeded"
	StateFailed    = "failed"
)

const (
	DefaultExpiry = 24 * time.Hour
	cleanupFactor = 2
)

// Outcome - the last known state of a query
type Outcome struct {
	Registry address.Address `json:"registry"`
	QueryId  uint64          `json:"queryId"`
	Origin   uint64          `json:"origin"`
	Kind     string          `json:"kind"`
	State    string          `json:"state"`
	Reason   string          `json:"reason,omitempty"`
	Accepted time.Time       `json:"accepted"`
	Settled  time.Time       `json:"settled,omitempty"`
}

//go:generate mockgen -destination=../rpc/mocks/tracker.go -package=mocks -mock_names=Handle=MockTracker github.com/bitmark-inc/keyshares/settlement Handle

// Handle - lookups offered to clients
type Handle interface {
	Query(registry address.Address, id uint64) (Outcome, bool)
	ByOrigin(origin uint64) (Outcome, bool)
	Count() int
}

// Tracker - cache of outcomes fed from the settlement queue
type Tracker struct {
	log      *logger.L
	outcomes *cache.Cache
}

// Publish - observer queueing registry events for the tracker
func Publish(e actor.Event) {
	switch e.Name {
	case registry.EventQueryAccepted, registry.EventQuerySettled:
	default:
		return
	}

	source := e.Source
	if !messagebus.Bus.Settlement.Send(e.Name, source[:], e.Body) {
		eventsDropped.Inc()
	}
}

// New - create a tracker keeping outcomes for expiry
func New(expiry time.Duration) *Tracker {
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	RegisterMetrics()
	return &Tracker{
		log:      logger.New("settlement"),
		outcomes: cache.New(expiry, cleanupFactor*expiry),
	}
}

// Run - background process draining the settlement queue
func (t *Tracker) Run(args interface{}, shutdown <-chan struct{}) {
	t.log.Info("starting…")

	queue := messagebus.Bus.Settlement.Chan()

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case item := <-queue:
			err := t.record(item)
			if nil != err {
				t.log.Errorf("event: %q  error: %s", item.Command, err)
				continue loop
			}
			messagebus.Bus.Broadcast.Send(item.Command, item.Parameters...)
		}
	}

	t.log.Info("stopped")
}

func (t *Tracker) record(item messagebus.Message) error {
	if 2 != len(item.Parameters) {
		return fault.MissingParameters
	}
	source, err := address.FromBytes(item.Parameters[0])
	if nil != err {
		return err
	}
	e := actor.Event{
		Source: source,
		Name:   item.Command,
		Body:   item.Parameters[1],
	}

	switch item.Command {

	case registry.EventQueryAccepted:
		var accepted registry.QueryAccepted
		if err := e.Decode(&accepted); nil != err {
			return err
		}
		o := Outcome{
			Registry: source,
			QueryId:  accepted.QueryId,
			Origin:   accepted.Origin,
			Kind:     accepted.Kind,
			State:    StatePending,
			Accepted: time.Now(),
		}
		t.store(o)
		t.log.Debugf("query: %d  %s  pending", o.QueryId, o.Kind)

	case registry.EventQuerySettled:
		var settled registry.QuerySettled
		if err := e.Decode(&settled); nil != err {
			return err
		}
		o, found := t.Query(source, settled.QueryId)
		if !found {
			o = Outcome{
				Registry: source,
				QueryId:  settled.QueryId,
				Origin:   settled.Origin,
				Kind:     settled.Kind,
			}
		}
		o.State = StateSucceeded
		if !settled.Success {
			o.State = StateFailed
			o.Reason = settled.Reason
		}
		o.Settled = time.Now()
		t.store(o)

		outcomes.WithLabelValues(o.Kind, o.State).Inc()
		t.log.Debugf("query: %d  %s  %s", o.QueryId, o.Kind, o.State)

	default:
		return fault.UnknownOperation
	}
	return nil
}

// both keys point at the same value
func (t *Tracker) store(o Outcome) {
	t.outcomes.SetDefault(queryKey(o.Registry, o.QueryId), o)
	t.outcomes.SetDefault(originKey(o.Origin), o)
}

// Query - outcome of a query id of a registry
func (t *Tracker) Query(registry address.Address, id uint64) (Outcome, bool) {
	return t.get(queryKey(registry, id))
}

// ByOrigin - outcome of the query created by message id origin
func (t *Tracker) ByOrigin(origin uint64) (Outcome, bool) {
	return t.get(originKey(origin))
}

// Count - number of queries remembered
func (t *Tracker) Count() int {
	return t.outcomes.ItemCount() / 2
}

func (t *Tracker) get(key string) (Outcome, bool) {
	v, found := t.outcomes.Get(key)
	if !found {
		return Outcome{}, false
	}
	return v.(Outcome), true
}

func queryKey(registry address.Address, id uint64) string {
	return fmt.Sprintf("q:%x:%d", registry[:], id)
}

func originKey(origin uint64) string {
	return fmt.Sprintf("o:%d", origin)
}
