// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/keyshares/util"
)

func TestEnsureAbsolute(t *testing.T) {
	assert.Equal(t, "/data/keys.leveldb", util.EnsureAbsolute("/data", "keys.leveldb"), "relative")
	assert.Equal(t, "/other/file", util.EnsureAbsolute("/data", "/other/./file"), "absolute")
	assert.Equal(t, "/data/log", util.EnsureAbsolute("/data/x", "../log"), "parent")
}

func TestEnsureDirectory(t *testing.T) {
	base, err := ioutil.TempDir("", "paths")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	defer os.RemoveAll(base)

	d, err := util.EnsureDirectory(base, "a/b")
	assert.Nil(t, err, "create")
	assert.Equal(t, filepath.Join(base, "a", "b"), d, "wrong directory")
	assert.True(t, util.EnsureFileExists(d), "directory missing")
	assert.False(t, util.EnsureFileExists(filepath.Join(base, "none")), "phantom file")
}
