// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bitmark-inc/keyshares/address"
	"github.com/bitmark-inc/keyshares/util"
)

// a required base58 address
func checkAddress(name string, s string) (address.Address, error) {
	s = strings.TrimSpace(s)
	if "" == s {
		return address.Zero, fmt.Errorf("%s: %s", name, ErrMissingAddress)
	}
	a, err := address.FromBase58(s)
	if nil != err {
		return address.Zero, fmt.Errorf("%s: %q  error: %s", name, s, err)
	}
	return a, nil
}

// an optional base58 address, blank is the zero address
func checkOptionalAddress(name string, s string) (address.Address, error) {
	if "" == strings.TrimSpace(s) {
		return address.Zero, nil
	}
	return checkAddress(name, s)
}

// optional coins, blank is zero
func checkCoins(name string, s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if "" == s {
		return 0, nil
	}
	n, err := util.ParseCoins(s)
	if nil != err {
		return 0, fmt.Errorf("%s: %q  error: %s", name, s, err)
	}
	return n, nil
}

// an optional count, blank is nil
func checkClaim(name string, s string) (*uint64, error) {
	s = strings.TrimSpace(s)
	if "" == s {
		return nil, nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if nil != err {
		return nil, fmt.Errorf("%s: %q  error: %s", name, s, err)
	}
	return &n, nil
}
