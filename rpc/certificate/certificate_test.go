// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificate_test

import (
	"crypto/tls"
	"os"
	"path"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/keyshares/fault"
	"github.com/bitmark-inc/keyshares/rpc/certificate"
	"github.com/bitmark-inc/keyshares/rpc/fixtures"
	"github.com/bitmark-inc/logger"
)

func TestGet(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	wd, _ := os.Getwd()
	fixtureDir := path.Join(filepath.Dir(wd), "fixtures")
	cer := fixtures.Certificate(fixtureDir)
	key := fixtures.Key(fixtureDir)

	tlsConfig, fingerprint, err := certificate.Get(
		logger.New(fixtures.LogCategory),
		"test",
		cer,
		key,
	)
	assert.Nil(t, err, "wrong Get")

	pair, _ := tls.X509KeyPair([]byte(cer), []byte(key))

	assert.Equal(t, sha3.Sum256(pair.Certificate[0]), fingerprint, "wrong fingerprint")
	assert.Equal(t, pair, tlsConfig.Certificates[0], "wrong config")
	assert.Equal(t, uint16(tls.VersionTLS12), tlsConfig.MinVersion, "wrong minimum version")
}

func TestGetWithoutCertificate(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	tlsConfig, fingerprint, err := certificate.Get(logger.New(fixtures.LogCategory), "test", "", "")
	assert.Nil(t, err, "wrong Get")
	assert.Nil(t, tlsConfig, "TLS configured")
	assert.Equal(t, [32]byte{}, fingerprint, "wrong fingerprint")

	_, _, err = certificate.Get(logger.New(fixtures.LogCategory), "test", "", "key")
	assert.Equal(t, fault.MissingParameters, err, "half configured TLS accepted")
}
