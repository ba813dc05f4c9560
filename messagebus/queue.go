// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"sync"
)

// internal constants
const (
	queueSize         = 1000
	defaultListenSize = 50
	maximumListenSize = 10000
)

// Message - an event with its raw parameters
type Message struct {
	Command    string
	Parameters [][]byte
}

// Queue - a single consumer queue
type Queue struct {
	c chan Message
}

// BroadcastQueue - a queue copied to every listener
type BroadcastQueue struct {
	sync.Mutex
	listeners []chan Message
}

type busses struct {
	Settlement *Queue
	TestQueue  *Queue
	Broadcast  *BroadcastQueue
}

// Bus - all available queues
var Bus = busses{
	Settlement: newQueue(queueSize),
	TestQueue:  newQueue(defaultListenSize),
	Broadcast:  &BroadcastQueue{},
}

func newQueue(size int) *Queue {
	return &Queue{
		c: make(chan Message, size),
	}
}

// Send - queue a message, false if the queue was full and the message dropped
func (queue *Queue) Send(command string, parameters ...[]byte) bool {
	select {
	case queue.c <- Message{Command: command, Parameters: parameters}:
		return true
	default:
		return false
	}
}

// Chan - channel to read from
func (queue *Queue) Chan() <-chan Message {
	return queue.c
}

// Send - copy a message to all current listeners
//
// returns the number of listeners that could not accept it
func (queue *BroadcastQueue) Send(command string, parameters ...[]byte) int {
	m := Message{
		Command:    command,
		Parameters: parameters,
	}

	queue.Lock()
	defer queue.Unlock()

	dropped := 0
	for _, c := range queue.listeners {
		select {
		case c <- m:
		default:
			dropped += 1
		}
	}
	return dropped
}

// Chan - register a new listener with a buffer of size (0 => default)
func (queue *BroadcastQueue) Chan(size int) <-chan Message {
	if size <= 0 {
		size = defaultListenSize
	} else if size > maximumListenSize {
		size = maximumListenSize
	}
	c := make(chan Message, size)

	queue.Lock()
	queue.listeners = append(queue.listeners, c)
	queue.Unlock()

	return c
}

// Release - stop sending to a listener, its channel is closed
func (queue *BroadcastQueue) Release(listener <-chan Message) {
	queue.Lock()
	defer queue.Unlock()

	for i, c := range queue.listeners {
		if (<-chan Message)(c) == listener {
			queue.listeners = append(queue.listeners[:i], queue.listeners[i+1:]...)
			close(c)
			return
		}
	}
}

// Listeners - current number of listeners
func (queue *BroadcastQueue) Listeners() int {
	queue.Lock()
	defer queue.Unlock()
	return len(queue.listeners)
}
