// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ratelimit - delay rpc calls to the rate of a limiter
package ratelimit

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/keyshares/fault"
)

// Limit - wait for one token
func Limit(limiter *rate.Limiter) error {
	return wait(limiter.Reserve())
}

func wait(r *rate.Reservation) error {
	if !r.OK() {
		return fault.RateLimiting
	}
	if d := r.Delay(); d > 0 {
		time.Sleep(d)
	}
	return nil
}
