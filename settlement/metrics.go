// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package settlement

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	outcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "keyshares",
			Subsystem: "registry",
			Name:      "queries_settled_total",
			Help:      "Settled queries by kind and result.",
		},
		[]string{"kind", "state"},
	)
	eventsDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "keyshares",
			Subsystem: "settlement",
			Name:      "events_dropped_total",
			Help:      "Registry events lost because the settlement queue was full.",
		},
	)
)

// RegisterMetrics - add the settlement collectors to the default registry
func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(outcomes, eventsDropped)
	})
}
