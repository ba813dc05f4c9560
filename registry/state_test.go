// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/keyshares/actor"
	"github.com/bitmark-inc/keyshares/codec"
	"github.com/bitmark-inc/keyshares/fault"
	"github.com/bitmark-inc/logger"
)

const testingDirName = "testing"

// state only, anything else panics
type memoryContext struct {
	actor.Context
	state map[string][]byte
}

func (m *memoryContext) Get(key string, v interface{}) (bool, error) {
	data, ok := m.state[key]
	if !ok {
		return false, nil
	}
	return true, codec.Unmarshal(data, v)
}

func (m *memoryContext) Put(key string, v interface{}) error {
	data, err := codec.Marshal(v)
	if nil != err {
		return err
	}
	m.state[key] = data
	return nil
}

func setupLogger(t *testing.T) {
	_ = os.RemoveAll(testingDirName)
	_ = os.Mkdir(testingDirName, 0700)

	err := logger.Initialise(logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	})
	require.Nil(t, err, "logger")
}

func teardownLogger() {
	logger.Finalise()
	_ = os.RemoveAll(testingDirName)
}

func TestHoldAndRelease(t *testing.T) {
	setupLogger(t)
	defer teardownLogger()

	c := New()
	ctx := &memoryContext{state: make(map[string][]byte)}
	a := &Query{Id: 1}
	b := &Query{Id: 2}

	require.Nil(t, hold(ctx, a, 500), "hold")
	require.Nil(t, hold(ctx, b, 300), "hold")
	total, err := reserved(ctx)
	assert.Nil(t, err, "reserved")
	assert.Equal(t, uint64(800), total, "wrong total")

	assert.Nil(t, c.release(ctx, a, 200), "release")
	assert.Equal(t, uint64(300), a.Held, "wrong held")
	total, _ = reserved(ctx)
	assert.Equal(t, uint64(600), total, "wrong total after release")

	// a query can never release more than it holds, nor take
	// coins held for another query
	assert.Nil(t, c.release(ctx, a, 1000), "release beyond held")
	assert.Equal(t, uint64(0), a.Held, "held not cleared")
	total, _ = reserved(ctx)
	assert.Equal(t, uint64(300), total, "coins of another query released")
	assert.Equal(t, uint64(300), b.Held, "other query changed")
}

func TestReleaseClampsToTotal(t *testing.T) {
	setupLogger(t)
	defer teardownLogger()

	c := New()
	ctx := &memoryContext{state: make(map[string][]byte)}

	// held recorded above the stored total
	q := &Query{Id: 3, Held: 900}
	require.Nil(t, ctx.Put(reservedKey, uint64(100)), "put")

	assert.Nil(t, c.release(ctx, q, 900), "release")
	total, _ := reserved(ctx)
	assert.Equal(t, uint64(0), total, "total wrapped")
	assert.Equal(t, uint64(800), q.Held, "held must drop by what was released")
}

func TestHoldOverflow(t *testing.T) {
	ctx := &memoryContext{state: make(map[string][]byte)}
	q := &Query{Id: 4}

	require.Nil(t, hold(ctx, q, ^uint64(0)), "hold")
	assert.Equal(t, fault.Overflow, hold(ctx, q, 1), "overflow not detected")
	assert.Equal(t, ^uint64(0), q.Held, "held changed on overflow")
}
