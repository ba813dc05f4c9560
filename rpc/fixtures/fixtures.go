// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared setup for rpc tests
package fixtures

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/keyshares/codec"
	"github.com/bitmark-inc/logger"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

// SetupTestLogger - log to a file under the test directory
func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "trace",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop logging and remove the test directory
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	_ = os.RemoveAll(dir)
}

// Certificate - PEM text of the test certificate
func Certificate(path string) string {
	return read(filepath.Join(path, "rpc.crt"))
}

// Key - PEM text of the test private key
func Key(path string) string {
	return read(filepath.Join(path, "rpc.key"))
}

func read(name string) string {
	data, err := ioutil.ReadFile(name)
	if nil != err {
		return ""
	}
	return string(data)
}

// State - a reader Get that serves values from a map through the codec
//
// for use with MockReader.EXPECT().Get(...).DoAndReturn
func State(values map[string]interface{}) func(string, interface{}) (bool, error) {
	return func(key string, v interface{}) (bool, error) {
		value, ok := values[key]
		if !ok {
			return false, nil
		}
		data, err := codec.Marshal(value)
		if nil != err {
			return false, err
		}
		return true, codec.Unmarshal(data, v)
	}
}
