// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"fmt"

	"github.com/bitmark-inc/keyshares/background"
)

// drains settled query ids until shutdown
type settledLog struct {
	settled chan uint64
	done    chan struct{}
}

func (s *settledLog) Run(args interface{}, shutdown <-chan struct{}) {
	prefix := args.(string)
	for {
		select {
		case <-shutdown:
			return
		case id := <-s.settled:
			fmt.Printf("%s: %d\n", prefix, id)
			if 3 == id {
				close(s.done)
			}
		}
	}
}

func Example() {
	log := &settledLog{
		settled: make(chan uint64),
		done:    make(chan struct{}),
	}

	p := background.Start(background.Processes{log}, "settled")
	for id := uint64(1); id <= 3; id += 1 {
		log.settled <- id
	}
	<-log.done
	p.Stop()

	// Output:
	// settled: 1
	// settled: 2
	// settled: 3
}
