// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

//go:generate mockgen -source=access.go -destination=mocks/access.go -package=mocks

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"
)

// Access - committed database operations
type Access interface {
	Delete([]byte) error
	Get([]byte) ([]byte, error)
	Has([]byte) (bool, error)
	Iterator(*ldb_util.Range) iterator.Iterator
	Put([]byte, []byte) error
	Write(*leveldb.Batch) error
}

type accessData struct {
	db *leveldb.DB
}

func newAccess(db *leveldb.DB) Access {
	return &accessData{
		db: db,
	}
}

func (d *accessData) Delete(key []byte) error {
	return d.db.Delete(key, nil)
}

// missing keys return nil, nil
func (d *accessData) Get(key []byte) ([]byte, error) {
	value, err := d.db.Get(key, nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	}
	return value, err
}

func (d *accessData) Has(key []byte) (bool, error) {
	return d.db.Has(key, nil)
}

func (d *accessData) Iterator(searchRange *ldb_util.Range) iterator.Iterator {
	return d.db.NewIterator(searchRange, nil)
}

func (d *accessData) Put(key []byte, value []byte) error {
	return d.db.Put(key, value, nil)
}

func (d *accessData) Write(batch *leveldb.Batch) error {
	return d.db.Write(batch, nil)
}
