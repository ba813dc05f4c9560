// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/keyshares/fault"
	"github.com/bitmark-inc/logger"
)

// Transaction - a batch of writes that either all land or none do
type Transaction interface {
	Abort()
	Commit() error
	Delete(*PoolHandle, []byte)
	Get(*PoolHandle, []byte) []byte
	GetN(*PoolHandle, []byte) (uint64, bool)
	Has(*PoolHandle, []byte) bool
	InUse() bool
	Put(*PoolHandle, []byte, []byte)
	PutN(*PoolHandle, []byte, uint64)
	Size() int
}

type transactionData struct {
	sync.Mutex
	inUse  bool
	access Access
	batch  *leveldb.Batch
	cache  Cache
}

func newTransaction(access Access) Transaction {
	return &transactionData{
		inUse:  true,
		access: access,
		batch:  new(leveldb.Batch),
		cache:  newCache(),
	}
}

func (t *transactionData) Put(handle *PoolHandle, key []byte, value []byte) {
	t.Lock()
	defer t.Unlock()

	if !t.inUse {
		logger.Panic("transaction.Put: transaction not in use")
	}
	k := handle.prefixKey(key)
	t.cache.Set(dbPut, string(k), value)
	t.batch.Put(k, value)
}

func (t *transactionData) PutN(handle *PoolHandle, key []byte, value uint64) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	t.Put(handle, key, buffer)
}

func (t *transactionData) Delete(handle *PoolHandle, key []byte) {
	t.Lock()
	defer t.Unlock()

	if !t.inUse {
		logger.Panic("transaction.Delete: transaction not in use")
	}
	k := handle.prefixKey(key)
	t.cache.Set(dbDelete, string(k), nil)
	t.batch.Delete(k)
}

// Get - uncommitted writes of this transaction hide the database
func (t *transactionData) Get(handle *PoolHandle, key []byte) []byte {
	t.Lock()
	defer t.Unlock()

	k := handle.prefixKey(key)
	if value, op, found := t.cache.Get(string(k)); found {
		if dbDelete == op {
			return nil
		}
		return value
	}

	value, err := t.access.Get(k)
	logger.PanicIfError("transaction.Get", err)
	return value
}

func (t *transactionData) GetN(handle *PoolHandle, key []byte) (uint64, bool) {
	return decodeN(key, t.Get(handle, key))
}

func (t *transactionData) Has(handle *PoolHandle, key []byte) bool {
	t.Lock()
	defer t.Unlock()

	k := handle.prefixKey(key)
	if _, op, found := t.cache.Get(string(k)); found {
		return dbPut == op
	}

	has, err := t.access.Has(k)
	logger.PanicIfError("transaction.Has", err)
	return has
}

// Commit - write the whole batch atomically and end the transaction
func (t *transactionData) Commit() error {
	t.Lock()
	defer t.Unlock()

	if !t.inUse {
		return fault.TransactionNotInUse
	}
	t.inUse = false

	err := t.access.Write(t.batch)
	t.batch.Reset()
	t.cache.Clear()
	return err
}

// Abort - discard all writes and end the transaction
func (t *transactionData) Abort() {
	t.Lock()
	defer t.Unlock()

	t.batch.Reset()
	t.cache.Clear()
	t.inUse = false
}

func (t *transactionData) InUse() bool {
	t.Lock()
	defer t.Unlock()
	return t.inUse
}

// Size - number of pending writes
func (t *transactionData) Size() int {
	t.Lock()
	defer t.Unlock()
	return t.batch.Len()
}
