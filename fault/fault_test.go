// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"testing"

	"github.com/bitmark-inc/keyshares/fault"
)

var (
	ErrExistsOne     = fault.ExistsError("exists one ")
	ErrExistsTwo     = fault.ExistsError("exists two")
	ErrInvalidOne    = fault.InvalidError("invalid one")
	ErrInvalidTwo    = fault.InvalidError("invalid two")
	ErrLengthOne     = fault.LengthError("length one")
	ErrNotFoundOne   = fault.NotFoundError("not found one")
	ErrNotFoundTwo   = fault.NotFoundError("not found two")
	ErrPermissionOne = fault.PermissionError("permission one")
	ErrProcessOne    = fault.ProcessError("process one")
	ErrRecordOne     = fault.RecordError("record one")
	ErrStaleOne      = fault.StaleError("stale one")
	ErrValueOne      = fault.ValueError("value one")
)

// test that various errors can be subclassed
func TestClasses(t *testing.T) {
	errorList := []struct {
		err        error
		exists     bool
		invalid    bool
		length     bool
		notFound   bool
		permission bool
		process    bool
		record     bool
		stale      bool
		value      bool
	}{
		{ErrExistsOne, true, false, false, false, false, false, false, false, false},
		{ErrExistsTwo, true, false, false, false, false, false, false, false, false},
		{ErrInvalidOne, false, true, false, false, false, false, false, false, false},
		{ErrInvalidTwo, false, true, false, false, false, false, false, false, false},
		{ErrLengthOne, false, false, true, false, false, false, false, false, false},
		{ErrNotFoundOne, false, false, false, true, false, false, false, false, false},
		{ErrNotFoundTwo, false, false, false, true, false, false, false, false, false},
		{ErrPermissionOne, false, false, false, false, true, false, false, false, false},
		{ErrProcessOne, false, false, false, false, false, true, false, false, false},
		{ErrRecordOne, false, false, false, false, false, false, true, false, false},
		{ErrStaleOne, false, false, false, false, false, false, false, true, false},
		{ErrValueOne, false, false, false, false, false, false, false, false, true},
		{fault.StaleSupply, false, false, false, false, false, false, false, true, false},
		{fault.Unauthorized, false, false, false, false, true, false, false, false, false},
		{fault.NotActive, false, false, false, true, false, false, false, false, false},
	}

	for i, e := range errorList {
		err := e.err
		if fault.IsErrExists(err) != e.exists {
			t.Errorf("%d: expected 'exists' == %v for err = %v", i, e.exists, err)
		}
		if fault.IsErrInvalid(err) != e.invalid {
			t.Errorf("%d: expected 'invalid' == %v for err = %v", i, e.invalid, err)
		}
		if fault.IsErrLength(err) != e.length {
			t.Errorf("%d: expected 'length' == %v for err = %v", i, e.length, err)
		}
		if fault.IsErrNotFound(err) != e.notFound {
			t.Errorf("%d: expected 'not found' == %v for err = %v", i, e.notFound, err)
		}
		if fault.IsErrPermission(err) != e.permission {
			t.Errorf("%d: expected 'permission' == %v for err = %v", i, e.permission, err)
		}
		if fault.IsErrProcess(err) != e.process {
			t.Errorf("%d: expected 'process' == %v for err = %v", i, e.process, err)
		}
		if fault.IsErrRecord(err) != e.record {
			t.Errorf("%d: expected 'record' == %v for err = %v", i, e.record, err)
		}
		if fault.IsErrStale(err) != e.stale {
			t.Errorf("%d: expected 'stale' == %v for err = %v", i, e.stale, err)
		}
		if fault.IsErrValue(err) != e.value {
			t.Errorf("%d: expected 'value' == %v for err = %v", i, e.value, err)
		}
	}
}

// errors carried as text must come back as the same instance
func TestFromText(t *testing.T) {
	for _, err := range []error{fault.StaleSupply, fault.StaleBalance, fault.Underflow, fault.NotActive} {
		actual := fault.FromText(err.Error())
		if actual != err {
			t.Errorf("actual: %v  expected: %v", actual, err)
		}
	}

	if nil != fault.FromText("") {
		t.Errorf("empty text must not produce an error")
	}

	unknown := fault.FromText("something odd")
	if unknown.Error() != "something odd" {
		t.Errorf("unknown text lost: %q", unknown)
	}
}
