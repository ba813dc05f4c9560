// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package counter - atomic counts of connections and messages in flight
package counter

import (
	"sync/atomic"
)

// Counter - a count safe for concurrent access
type Counter uint64

func (c *Counter) p() *uint64 {
	return (*uint64)(c)
}

// Increment - one more, returns the new count
func (c *Counter) Increment() uint64 {
	return atomic.AddUint64(c.p(), 1)
}

// IncrementBelow - one more only while the count is below limit
//
// false means the count was left unchanged
func (c *Counter) IncrementBelow(limit uint64) bool {
	for {
		n := atomic.LoadUint64(c.p())
		if n >= limit {
			return false
		}
		if atomic.CompareAndSwapUint64(c.p(), n, n+1) {
			return true
		}
	}
}

// Decrement - one less, returns the new count
func (c *Counter) Decrement() uint64 {
	return atomic.AddUint64(c.p(), ^uint64(0))
}

// Uint64 - current count
func (c *Counter) Uint64() uint64 {
	return atomic.LoadUint64(c.p())
}

// IsZero - nothing counted
func (c *Counter) IsZero() bool {
	return 0 == c.Uint64()
}
