// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ratelimit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/keyshares/fault"
	"github.com/bitmark-inc/keyshares/rpc/ratelimit"
)

func TestLimit(t *testing.T) {
	limiter := rate.NewLimiter(1000, 10)
	for i := 0; i < 10; i += 1 {
		assert.Nil(t, ratelimit.Limit(limiter), "wrong limit")
	}
}

func TestLimitBeyondBurst(t *testing.T) {
	limiter := rate.NewLimiter(rate.Inf, 0)
	assert.Nil(t, ratelimit.Limit(limiter), "infinite rate")

	limiter = rate.NewLimiter(1, 0)
	assert.Equal(t, fault.RateLimiting, ratelimit.Limit(limiter), "zero burst")
}
