// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/keyshares/fault"
	"github.com/bitmark-inc/keyshares/storage/mocks"
)

var testPool = &PoolHandle{
	prefix: 'Z',
	limit:  []byte{'Z' + 1},
}

func setupTestTransaction(t *testing.T) (Transaction, *mocks.MockAccess, *gomock.Controller) {
	ctl := gomock.NewController(t)
	mock := mocks.NewMockAccess(ctl)
	return newTransaction(mock), mock, ctl
}

func TestTransactionReadsThrough(t *testing.T) {
	trx, mock, ctl := setupTestTransaction(t)
	defer ctl.Finish()

	mock.EXPECT().Get([]byte("Zkey")).Return([]byte("stored"), nil).Times(1)
	mock.EXPECT().Has([]byte("Zother")).Return(false, nil).Times(1)

	assert.Equal(t, []byte("stored"), trx.Get(testPool, []byte("key")), "wrong value")
	assert.False(t, trx.Has(testPool, []byte("other")), "unexpected key")
}

func TestTransactionOverlay(t *testing.T) {
	trx, mock, ctl := setupTestTransaction(t)
	defer ctl.Finish()

	mock.EXPECT().Get(gomock.Any()).Times(0)
	mock.EXPECT().Has(gomock.Any()).Times(0)

	trx.Put(testPool, []byte("key"), []byte("new"))
	trx.PutN(testPool, []byte("count"), 42)

	assert.Equal(t, []byte("new"), trx.Get(testPool, []byte("key")), "uncommitted put not visible")
	assert.True(t, trx.Has(testPool, []byte("key")), "uncommitted put not visible")

	n, found := trx.GetN(testPool, []byte("count"))
	assert.True(t, found, "uncommitted count not visible")
	assert.Equal(t, uint64(42), n, "wrong count")
	assert.Equal(t, 2, trx.Size(), "wrong pending writes")
}

func TestTransactionDeleteHidesDatabase(t *testing.T) {
	trx, mock, ctl := setupTestTransaction(t)
	defer ctl.Finish()

	mock.EXPECT().Get(gomock.Any()).Times(0)
	mock.EXPECT().Has(gomock.Any()).Times(0)

	trx.Put(testPool, []byte("key"), []byte("value"))
	trx.Delete(testPool, []byte("key"))

	assert.Nil(t, trx.Get(testPool, []byte("key")), "deleted key still visible")
	assert.False(t, trx.Has(testPool, []byte("key")), "deleted key still visible")

	_, found := trx.GetN(testPool, []byte("key"))
	assert.False(t, found, "deleted key still visible")
}

func TestTransactionCommit(t *testing.T) {
	trx, mock, ctl := setupTestTransaction(t)
	defer ctl.Finish()

	mock.EXPECT().Write(gomock.Any()).DoAndReturn(func(batch *leveldb.Batch) error {
		assert.Equal(t, 3, batch.Len(), "wrong batch length")
		return nil
	}).Times(1)

	trx.Put(testPool, []byte("a"), []byte("1"))
	trx.Put(testPool, []byte("b"), []byte("2"))
	trx.Delete(testPool, []byte("c"))

	err := trx.Commit()
	assert.Nil(t, err, "commit failed")
	assert.False(t, trx.InUse(), "transaction still in use")

	err = trx.Commit()
	assert.Equal(t, fault.TransactionNotInUse, err, "second commit allowed")
}

func TestTransactionCommitError(t *testing.T) {
	trx, mock, ctl := setupTestTransaction(t)
	defer ctl.Finish()

	mock.EXPECT().Write(gomock.Any()).Return(leveldb.ErrClosed).Times(1)

	trx.Put(testPool, []byte("a"), []byte("1"))
	assert.Equal(t, leveldb.ErrClosed, trx.Commit(), "wrong error")
}

func TestTransactionAbort(t *testing.T) {
	trx, mock, ctl := setupTestTransaction(t)
	defer ctl.Finish()

	mock.EXPECT().Write(gomock.Any()).Times(0)

	trx.Put(testPool, []byte("a"), []byte("1"))
	trx.Abort()

	assert.False(t, trx.InUse(), "transaction still in use")
	assert.Equal(t, 0, trx.Size(), "batch not reset")
	assert.Equal(t, fault.TransactionNotInUse, trx.Commit(), "commit after abort allowed")
}

func TestTransactionPutAfterCommitPanics(t *testing.T) {
	trx, mock, ctl := setupTestTransaction(t)
	defer ctl.Finish()

	mock.EXPECT().Write(gomock.Any()).Return(nil).Times(1)

	_ = trx.Commit()
	assert.Panics(t, func() { trx.Put(testPool, []byte("a"), []byte("1")) }, "put after commit did not panic")
}
