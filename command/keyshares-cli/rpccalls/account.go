// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/keyshares/address"
	"github.com/bitmark-inc/keyshares/rpc/account"
	"github.com/bitmark-inc/keyshares/rpc/holdings"
	"github.com/bitmark-inc/keyshares/rpc/node"
	"github.com/bitmark-inc/keyshares/rpc/supply"
)

// GetCoins - coins held by an address
func (client *Client) GetCoins(a address.Address) (*account.BalanceReply, error) {
	arguments := account.BalanceArguments{
		Address: a,
	}

	reply := &account.BalanceReply{}
	err := client.call("Coins", "Account.Balance", arguments, reply)
	if nil != err {
		return nil, err
	}
	return reply, nil
}

// Fund - create coins from the node's faucet
func (client *Client) Fund(a address.Address, amount uint64) (*account.BalanceReply, error) {
	arguments := account.FundArguments{
		Address: a,
		Amount:  amount,
	}

	reply := &account.BalanceReply{}
	err := client.call("Fund", "Account.Fund", arguments, reply)
	if nil != err {
		return nil, err
	}
	return reply, nil
}

// TransferData - the parameters for a coin transfer
type TransferData struct {
	From   address.Address
	To     address.Address
	Value  uint64
	Bounce bool
}

// Transfer - send coins between addresses
func (client *Client) Transfer(data *TransferData) (*account.TransferReply, error) {
	arguments := account.TransferArguments{
		From:   data.From,
		To:     data.To,
		Value:  data.Value,
		Bounce: data.Bounce,
	}

	reply := &account.TransferReply{}
	err := client.call("Transfer", "Account.Transfer", arguments, reply)
	if nil != err {
		return nil, err
	}
	return reply, nil
}

// GetSupply - confirmed supply of a subject's keys
func (client *Client) GetSupply(subject address.Address) (*supply.SupplyReply, error) {
	arguments := supply.SupplyArguments{
		Subject: subject,
	}

	reply := &supply.SupplyReply{}
	err := client.call("Supply", "Key.Supply", arguments, reply)
	if nil != err {
		return nil, err
	}
	return reply, nil
}

// GetBalance - keys of a subject held by a holder
func (client *Client) GetBalance(holder address.Address, subject address.Address) (*holdings.BalanceReply, error) {
	arguments := holdings.BalanceArguments{
		Holder:  holder,
		Subject: subject,
	}

	reply := &holdings.BalanceReply{}
	err := client.call("Balance", "Wallet.Balance", arguments, reply)
	if nil != err {
		return nil, err
	}
	return reply, nil
}

// GetNodeInfo - node version, uptime and runtime counters
func (client *Client) GetNodeInfo() (*node.InfoReply, error) {
	reply := &node.InfoReply{}
	err := client.call("Node Info", "Node.Info", node.InfoArguments{}, reply)
	if nil != err {
		return nil, err
	}
	return reply, nil
}
