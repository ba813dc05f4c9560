// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account_test

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/keyshares/actor"
	"github.com/bitmark-inc/keyshares/address"
	"github.com/bitmark-inc/keyshares/fault"
	"github.com/bitmark-inc/keyshares/rpc/account"
	"github.com/bitmark-inc/keyshares/rpc/fixtures"
	"github.com/bitmark-inc/keyshares/rpc/mocks"
	"github.com/bitmark-inc/logger"
)

var (
	alice = address.Treasury("alice")
	bob   = address.Treasury("bob")
)

func TestAccountBalance(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	r := mocks.NewMockRuntime(ctl)
	r.EXPECT().Coins(alice).Return(uint64(500)).Times(1)
	r.EXPECT().IsActive(alice).Return(false).Times(1)

	a := account.New(logger.New(fixtures.LogCategory), r, false, false)

	var reply account.BalanceReply
	err := a.Balance(&account.BalanceArguments{Address: alice}, &reply)
	assert.Nil(t, err, "wrong Balance")
	assert.Equal(t, uint64(500), reply.Coins, "wrong coins")
	assert.False(t, reply.Active, "wrong active")

	err = a.Balance(&account.BalanceArguments{}, &reply)
	assert.Equal(t, fault.InvalidAddress, err, "wrong missing address")
}

func TestAccountFund(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	r := mocks.NewMockRuntime(ctl)
	r.EXPECT().Fund(alice, uint64(1000)).Return(nil).Times(1)
	r.EXPECT().Coins(alice).Return(uint64(1000)).Times(1)
	r.EXPECT().IsActive(alice).Return(false).Times(1)

	a := account.New(logger.New(fixtures.LogCategory), r, true, false)

	var reply account.BalanceReply
	err := a.Fund(&account.FundArguments{Address: alice, Amount: 1000}, &reply)
	assert.Nil(t, err, "wrong Fund")
	assert.Equal(t, uint64(1000), reply.Coins, "wrong coins")

	err = a.Fund(&account.FundArguments{Address: alice}, &reply)
	assert.Equal(t, fault.InvalidAmount, err, "wrong zero amount")
}

func TestAccountFundDisabled(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	r := mocks.NewMockRuntime(ctl)

	var reply account.BalanceReply

	a := account.New(logger.New(fixtures.LogCategory), r, false, false)
	err := a.Fund(&account.FundArguments{Address: alice, Amount: 1}, &reply)
	assert.Equal(t, fault.FaucetDisabled, err, "wrong disabled faucet")

	a = account.New(logger.New(fixtures.LogCategory), r, true, true)
	err = a.Fund(&account.FundArguments{Address: alice, Amount: 1}, &reply)
	assert.Equal(t, fault.NotAvailableInReadOnlyMode, err, "wrong read-only faucet")
}

func TestAccountTransfer(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	r := mocks.NewMockRuntime(ctl)
	r.EXPECT().Send(gomock.Any()).DoAndReturn(func(m *actor.Message) (uint64, error) {
		assert.Equal(t, alice, m.From, "wrong from")
		assert.Equal(t, bob, m.To, "wrong to")
		assert.Equal(t, uint64(25), m.Value, "wrong value")
		assert.True(t, m.Bounce, "wrong bounce")
		return 3, nil
	}).Times(1)

	a := account.New(logger.New(fixtures.LogCategory), r, false, false)

	var reply account.TransferReply
	err := a.Transfer(&account.TransferArguments{From: alice, To: bob, Value: 25, Bounce: true}, &reply)
	assert.Nil(t, err, "wrong Transfer")
	assert.Equal(t, uint64(3), reply.MessageId, "wrong message id")

	err = a.Transfer(&account.TransferArguments{From: alice, Value: 25}, &reply)
	assert.Equal(t, fault.InvalidAddress, err, "wrong missing destination")

	err = a.Transfer(&account.TransferArguments{From: alice, To: bob}, &reply)
	assert.Equal(t, fault.InvalidAmount, err, "wrong zero value")
}

func TestAccountTransferFromActor(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	r := mocks.NewMockRuntime(ctl)
	r.EXPECT().Send(gomock.Any()).Return(uint64(0), fault.Unauthorized).Times(1)

	a := account.New(logger.New(fixtures.LogCategory), r, false, false)

	var reply account.TransferReply
	err := a.Transfer(&account.TransferArguments{From: alice, To: bob, Value: 25}, &reply)
	assert.Equal(t, fault.Unauthorized, err, "actor coins moved by transfer")
	assert.Equal(t, uint64(0), reply.MessageId, "message id for refused transfer")
}
