// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package actor

import (
	"context"
	"sync"

	"github.com/bitmark-inc/keyshares/address"
	"github.com/bitmark-inc/keyshares/codec"
	"github.com/bitmark-inc/keyshares/counter"
	"github.com/bitmark-inc/keyshares/fault"
	"github.com/bitmark-inc/keyshares/storage"
	"github.com/bitmark-inc/logger"
)

// defaults
const (
	DefaultMessageFee uint64 = 1000000
)

// statistics keys
var (
	burnedKey    = []byte("burned")
	fundedKey    = []byte("funded")
	messagesKey  = []byte("messages")
	messageIdKey = []byte("message-id")
)

// message ids are reserved in blocks, the stored value is the highest
// id that may have been issued
const messageIdBlock = 1000

// Configuration - runtime parameters
type Configuration struct {
	MessageFee uint64
	TraceSize  int
}

// Observer - receives the events of every successful message
type Observer func(Event)

// Statistics - running totals
type Statistics struct {
	Funded   uint64 `json:"funded"`
	Burned   uint64 `json:"burned"`
	Messages uint64 `json:"messages"`
	InFlight uint64 `json:"inFlight"`
}

// one per address
type mailbox struct {
	sync.RWMutex // write held while a message is processed
	queue        []*Message
	running      bool
}

// Runtime - the set of all mailboxes
type Runtime struct {
	sync.Mutex
	log        *logger.L
	messageFee uint64
	code       map[string]Code
	mailboxes  map[address.Address]*mailbox
	waiters    []chan struct{}
	observers  []Observer
	stopped    bool
	running    sync.WaitGroup
	inFlight   counter.Counter
	lastId     uint64
	idLimit    uint64
	trace      *trace

	// serialises commits that update the statistics pool
	statistics sync.Mutex
}

// New - create a runtime over the already initialised storage
func New(configuration Configuration) *Runtime {
	RegisterMetrics()

	log := logger.New("actor")
	log.Infof("message fee: %d", configuration.MessageFee)

	// ids continue above anything issued before a restart
	lastId, _ := storage.Pool.Statistics.GetN(messageIdKey)
	log.Debugf("message ids start after: %d", lastId)

	return &Runtime{
		log:        log,
		messageFee: configuration.MessageFee,
		code:       make(map[string]Code),
		mailboxes:  make(map[address.Address]*mailbox),
		lastId:     lastId,
		idLimit:    lastId,
		trace:      newTrace(configuration.TraceSize),
	}
}

// Register - attach the code for a template kind
func (r *Runtime) Register(kind string, code Code) {
	r.Lock()
	r.code[kind] = code
	r.Unlock()
}

// Observe - add an event observer
//
// observers are called from the processing goroutine and must not block
func (r *Runtime) Observe(observer Observer) {
	r.Lock()
	r.observers = append(r.observers, observer)
	r.Unlock()
}

// MessageFee - cost of running code for one message
func (r *Runtime) MessageFee() uint64 {
	return r.messageFee
}

// Send - send a message from outside the runtime
//
// the sender's coins are debited at once, the returned id identifies
// the message in the trace and in any events it causes; an address
// with code only sends from its own handler
func (r *Runtime) Send(m *Message) (uint64, error) {
	if nil == m {
		return 0, fault.MissingParameters
	}

	// held while code may be deployed at the sender
	mb := r.mailboxFor(m.From)
	mb.Lock()
	defer mb.Unlock()

	if r.IsActive(m.From) {
		r.log.Warnf("refused external send from actor: %s", m.From)
		return 0, fault.Unauthorized
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return 0, err
	}

	coins, _ := trx.GetN(storage.Pool.Coins, m.From[:])
	if coins < m.Value {
		trx.Abort()
		return 0, fault.InsufficientValue
	}
	trx.PutN(storage.Pool.Coins, m.From[:], coins-m.Value)

	err = trx.Commit()
	if nil != err {
		return 0, err
	}

	return r.enqueue(m)
}

// Fund - create coins at an address
func (r *Runtime) Fund(to address.Address, amount uint64) error {
	mb := r.mailboxFor(to)
	mb.Lock()
	defer mb.Unlock()

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	coins, _ := trx.GetN(storage.Pool.Coins, to[:])
	if coins+amount < coins {
		trx.Abort()
		return fault.Overflow
	}
	trx.PutN(storage.Pool.Coins, to[:], coins+amount)

	r.statistics.Lock()
	defer r.statistics.Unlock()

	funded, _ := trx.GetN(storage.Pool.Statistics, fundedKey)
	trx.PutN(storage.Pool.Statistics, fundedKey, funded+amount)

	err = trx.Commit()
	if nil != err {
		return err
	}
	coinsFunded.Add(float64(amount))
	r.log.Infof("fund: %s  amount: %d", to, amount)
	return nil
}

// Coins - committed balance of an address
func (r *Runtime) Coins(a address.Address) uint64 {
	n, _ := storage.Pool.Coins.GetN(a[:])
	return n
}

// IsActive - true if code is deployed at the address
func (r *Runtime) IsActive(a address.Address) bool {
	return storage.Pool.ActorCode.Has(a[:])
}

// Actors - addresses with deployed code, restricted to kind unless it is blank
func (r *Runtime) Actors(kind string) ([]address.Address, error) {
	actors := []address.Address{}
	err := storage.Pool.ActorCode.NewFetchCursor().Map(func(key []byte, value []byte) error {
		var template address.Template
		if err := codec.Unmarshal(value, &template); nil != err {
			return err
		}
		if "" != kind && kind != template.Kind {
			return nil
		}
		a, err := address.FromBytes(key)
		if nil != err {
			return err
		}
		actors = append(actors, a)
		return nil
	})
	return actors, err
}

// Get - run a read only function against the committed state of an actor
//
// fails with NotActive if no code is deployed at the address
func (r *Runtime) Get(a address.Address, f func(Reader) error) error {
	mb := r.mailboxFor(a)
	mb.RLock()
	defer mb.RUnlock()

	record := storage.Pool.ActorCode.Get(a[:])
	if nil == record {
		return fault.NotActive
	}

	var template address.Template
	err := codec.Unmarshal(record, &template)
	if nil != err {
		return err
	}

	return f(&reader{
		self:     a,
		template: template,
		balance:  r.Coins(a),
		source:   poolGetter{},
	})
}

// Statistics - running totals
func (r *Runtime) Statistics() Statistics {
	r.statistics.Lock()
	defer r.statistics.Unlock()

	funded, _ := storage.Pool.Statistics.GetN(fundedKey)
	burned, _ := storage.Pool.Statistics.GetN(burnedKey)
	messages, _ := storage.Pool.Statistics.GetN(messagesKey)
	return Statistics{
		Funded:   funded,
		Burned:   burned,
		Messages: messages,
		InFlight: r.inFlight.Uint64(),
	}
}

// Transactions - most recent deliveries, oldest first
func (r *Runtime) Transactions() []Transaction {
	return r.trace.list()
}

// InFlight - number of messages queued or being processed
func (r *Runtime) InFlight() uint64 {
	return r.inFlight.Uint64()
}

// Wait - block until no message is in flight
func (r *Runtime) Wait(ctx context.Context) error {
	r.Lock()
	if r.inFlight.IsZero() {
		r.Unlock()
		return nil
	}
	c := make(chan struct{})
	r.waiters = append(r.waiters, c)
	r.Unlock()

	select {
	case <-c:
		return nil
	case <-ctx.Done():
		return fault.WaitCancelled
	}
}

// Stop - finish the messages being processed and accept no more
//
// messages still queued are dropped
func (r *Runtime) Stop() {
	r.Lock()
	r.stopped = true
	r.Unlock()

	r.running.Wait()
	r.log.Info("stopped")
	r.log.Flush()
}

// mailbox for an address, created on first use
func (r *Runtime) mailboxFor(a address.Address) *mailbox {
	r.Lock()
	defer r.Unlock()

	mb, ok := r.mailboxes[a]
	if !ok {
		mb = &mailbox{}
		r.mailboxes[a] = mb
	}
	return mb
}

// queue a message and start its mailbox if idle
func (r *Runtime) enqueue(m *Message) (uint64, error) {
	r.Lock()
	defer r.Unlock()

	if r.stopped {
		return 0, fault.NotAvailableDuringShutdown
	}

	m.Id = r.messageId()

	mb, ok := r.mailboxes[m.To]
	if !ok {
		mb = &mailbox{}
		r.mailboxes[m.To] = mb
	}
	mb.queue = append(mb.queue, m)

	r.inFlight.Increment()
	messagesInFlight.Inc()

	if !mb.running {
		mb.running = true
		r.running.Add(1)
		go r.drain(mb)
	}
	return m.Id, nil
}

// next message id, r must be locked
func (r *Runtime) messageId() uint64 {
	r.lastId += 1
	if r.lastId > r.idLimit {
		r.idLimit = r.lastId + messageIdBlock - 1
		storage.Pool.Statistics.PutN(messageIdKey, r.idLimit)
	}
	return r.lastId
}

// process messages until the mailbox is empty
func (r *Runtime) drain(mb *mailbox) {
	defer r.running.Done()

	for {
		r.Lock()
		if r.stopped || 0 == len(mb.queue) {
			mb.running = false
			r.Unlock()
			return
		}
		m := mb.queue[0]
		mb.queue[0] = nil
		mb.queue = mb.queue[1:]
		r.Unlock()

		events := r.process(mb, m)
		r.notify(events)
		r.done()
	}
}

// one message has left the system
func (r *Runtime) done() {
	r.Lock()
	defer r.Unlock()

	messagesInFlight.Dec()
	if 0 == r.inFlight.Decrement() {
		for _, c := range r.waiters {
			close(c)
		}
		r.waiters = nil
	}
}

func (r *Runtime) codeFor(kind string) Code {
	r.Lock()
	defer r.Unlock()
	return r.code[kind]
}

func (r *Runtime) notify(events []Event) {
	if 0 == len(events) {
		return
	}

	r.Lock()
	observers := r.observers
	r.Unlock()

	for _, e := range events {
		for _, o := range observers {
			o(e)
		}
	}
}
