// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - named error values shared by every package
//
// Each error is a single typed instance so callers compare with ==
// or test its class with the IsErr functions. Errors that bounce
// between actors travel as text and are recovered by FromText.
package fault
