// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/keyshares/background"
)

// counts ticks until shutdown, then records that it finished
type ticker struct {
	ticks    int64
	finished int32
}

func (tk *ticker) Run(args interface{}, shutdown <-chan struct{}) {
	interval := args.(time.Duration)
	for {
		select {
		case <-shutdown:
			atomic.StoreInt32(&tk.finished, 1)
			return
		case <-time.After(interval):
			atomic.AddInt64(&tk.ticks, 1)
		}
	}
}

func TestBackground(t *testing.T) {
	one := &ticker{}
	two := &ticker{}

	p := background.Start(background.Processes{one, two}, time.Millisecond)
	assert.Eventually(t, func() bool {
		return atomic.LoadInt64(&one.ticks) > 2 && atomic.LoadInt64(&two.ticks) > 2
	}, time.Second, time.Millisecond, "processes did not run")

	p.Stop()

	assert.Equal(t, int32(1), atomic.LoadInt32(&one.finished), "first not finished after stop")
	assert.Equal(t, int32(1), atomic.LoadInt32(&two.finished), "second not finished after stop")

	stopped := atomic.LoadInt64(&one.ticks)
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, stopped, atomic.LoadInt64(&one.ticks), "ticking after stop")
}

func TestFuncProcessAndRepeatedStop(t *testing.T) {
	started := make(chan struct{})
	stopped := false

	p := background.Start(background.Processes{
		background.Func(func(args interface{}, shutdown <-chan struct{}) {
			close(started)
			<-shutdown
			stopped = true
		}),
	}, nil)

	<-started
	p.Stop()
	p.Stop()

	assert.True(t, stopped, "process did not see shutdown")
}

func TestStopNil(t *testing.T) {
	var p *background.T
	assert.NotPanics(t, p.Stop, "nil stop")
}
