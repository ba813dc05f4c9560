// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package actor

import (
	"sync"

	"github.com/bitmark-inc/keyshares/address"
)

// delivery status
const (
	StatusOk       = "ok"
	StatusTransfer = "transfer"
	StatusFailed   = "failed"
)

const (
	defaultTraceSize = 1000
)

// Transaction - the record of one delivery
type Transaction struct {
	Id      uint64          `json:"id"`
	From    address.Address `json:"from"`
	To      address.Address `json:"to"`
	Op      string          `json:"op"`
	Value   uint64          `json:"value"`
	Fee     uint64          `json:"fee"`
	Bounced bool            `json:"bounced"`
	Status  string          `json:"status"`
	Error   string          `json:"error,omitempty"`
	Sent    int             `json:"sent"`
	Events  []string        `json:"events,omitempty"`
}

// ring of the most recent deliveries
type trace struct {
	sync.Mutex
	items []Transaction
	next  int
	full  bool
}

func newTrace(size int) *trace {
	if size <= 0 {
		size = defaultTraceSize
	}
	return &trace{
		items: make([]Transaction, size),
	}
}

func (t *trace) add(tx Transaction) {
	t.Lock()
	t.items[t.next] = tx
	t.next += 1
	if t.next >= len(t.items) {
		t.next = 0
		t.full = true
	}
	t.Unlock()
}

// oldest first
func (t *trace) list() []Transaction {
	t.Lock()
	defer t.Unlock()

	if !t.full {
		result := make([]Transaction, t.next)
		copy(result, t.items[:t.next])
		return result
	}
	result := make([]Transaction, 0, len(t.items))
	result = append(result, t.items[t.next:]...)
	return append(result, t.items[:t.next]...)
}
