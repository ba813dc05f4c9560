// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package actor

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	messagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "keyshares",
			Subsystem: "actor",
			Name:      "messages_total",
			Help:      "Messages processed by outcome.",
		},
		[]string{"status"},
	)
	messagesInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "keyshares",
			Subsystem: "actor",
			Name:      "messages_in_flight",
			Help:      "Messages queued or being processed.",
		},
	)
	coinsBurned = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "keyshares",
			Subsystem: "actor",
			Name:      "coins_burned_total",
			Help:      "Nano units burned as message fees.",
		},
	)
	coinsFunded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "keyshares",
			Subsystem: "actor",
			Name:      "coins_funded_total",
			Help:      "Nano units created by the faucet.",
		},
	)
)

// RegisterMetrics - add the runtime collectors to the default registry
func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(messagesProcessed, messagesInFlight, coinsBurned, coinsFunded)
	})
}
