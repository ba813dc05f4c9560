// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/keyshares/command/keyshares-cli/rpccalls"
	"github.com/bitmark-inc/keyshares/util"
)

// open a client for the duration of one command
func withClient(c *cli.Context, f func(m *metadata, client *rpccalls.Client) (interface{}, error)) error {
	m := c.App.Metadata["config"].(*metadata)

	client, err := rpccalls.NewClient(m.connect, m.tls, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := f(m, client)
	if nil != err {
		return err
	}

	encoder := json.NewEncoder(m.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(response)
}

func runInfo(c *cli.Context) error {
	return withClient(c, func(_ *metadata, client *rpccalls.Client) (interface{}, error) {
		return client.GetNodeInfo()
	})
}

func runRegistry(c *cli.Context) error {
	return withClient(c, func(_ *metadata, client *rpccalls.Client) (interface{}, error) {
		return client.GetRegistryInfo()
	})
}

func runPrice(c *cli.Context) error {
	subject, err := checkOptionalAddress("subject", c.String("subject"))
	if nil != err {
		return err
	}
	amount := c.Uint64("amount")
	if 0 == amount {
		return ErrMissingAmount
	}

	data := &rpccalls.PriceData{
		Subject: subject,
		Supply:  c.Uint64("supply"),
		Amount:  amount,
		Buy:     !c.Bool("sell"),
	}

	return withClient(c, func(m *metadata, client *rpccalls.Client) (interface{}, error) {
		reply, err := client.GetPrice(data)
		if nil != err {
			return nil, err
		}
		if m.verbose {
			fmt.Fprintf(m.e, "total: %s coins  gas: %s coins\n", util.FormatCoins(reply.Total), util.FormatCoins(reply.Gas))
		}
		return reply, nil
	})
}

func runAddresses(c *cli.Context) error {
	subject, err := checkAddress("subject", c.String("subject"))
	if nil != err {
		return err
	}
	holder, err := checkOptionalAddress("holder", c.String("holder"))
	if nil != err {
		return err
	}

	return withClient(c, func(_ *metadata, client *rpccalls.Client) (interface{}, error) {
		return client.GetAddresses(subject, holder)
	})
}

func runNewKey(c *cli.Context) error {
	subject, err := checkAddress("subject", c.String("subject"))
	if nil != err {
		return err
	}
	value, err := checkCoins("value", c.String("value"))
	if nil != err {
		return err
	}

	data := &rpccalls.NewKeyData{
		Subject:       subject,
		InitialSupply: c.Uint64("initial"),
		Value:         value,
	}

	return withClient(c, func(m *metadata, client *rpccalls.Client) (interface{}, error) {
		if m.verbose {
			fmt.Fprintf(m.e, "subject: %s\n", subject)
			fmt.Fprintf(m.e, "initial supply: %d\n", data.InitialSupply)
		}
		return client.NewKey(data)
	})
}

func runBuy(c *cli.Context) error {
	return runTrade(c, true)
}

func runSell(c *cli.Context) error {
	return runTrade(c, false)
}

func runTrade(c *cli.Context, buy bool) error {
	data, err := tradeData(c, buy)
	if nil != err {
		return err
	}

	return withClient(c, func(m *metadata, client *rpccalls.Client) (interface{}, error) {
		if m.verbose {
			fmt.Fprintf(m.e, "holder: %s\n", data.Holder)
			fmt.Fprintf(m.e, "subject: %s\n", data.Subject)
			fmt.Fprintf(m.e, "amount: %d  buy: %v\n", data.Amount, data.Buy)
		}
		return client.TradeKey(data)
	})
}

func tradeData(c *cli.Context, buy bool) (*rpccalls.TradeData, error) {
	holder, err := checkAddress("holder", c.String("holder"))
	if nil != err {
		return nil, err
	}
	subject, err := checkAddress("subject", c.String("subject"))
	if nil != err {
		return nil, err
	}
	amount := c.Uint64("amount")
	if 0 == amount {
		return nil, ErrMissingAmount
	}
	claimedSupply, err := checkClaim("supply", c.String("supply"))
	if nil != err {
		return nil, err
	}
	claimedBalance, err := checkClaim("balance", c.String("balance"))
	if nil != err {
		return nil, err
	}
	value, err := checkCoins("value", c.String("value"))
	if nil != err {
		return nil, err
	}

	return &rpccalls.TradeData{
		Holder:         holder,
		Subject:        subject,
		Amount:         amount,
		Buy:            buy,
		ClaimedSupply:  claimedSupply,
		ClaimedBalance: claimedBalance,
		Value:          value,
	}, nil
}

func runSupply(c *cli.Context) error {
	subject, err := checkAddress("subject", c.String("subject"))
	if nil != err {
		return err
	}

	return withClient(c, func(_ *metadata, client *rpccalls.Client) (interface{}, error) {
		return client.GetSupply(subject)
	})
}

func runBalance(c *cli.Context) error {
	holder, err := checkAddress("holder", c.String("holder"))
	if nil != err {
		return err
	}
	subject, err := checkAddress("subject", c.String("subject"))
	if nil != err {
		return err
	}

	return withClient(c, func(_ *metadata, client *rpccalls.Client) (interface{}, error) {
		return client.GetBalance(holder, subject)
	})
}

func runCoins(c *cli.Context) error {
	a, err := checkAddress("address", c.Args().First())
	if nil != err {
		return err
	}

	return withClient(c, func(m *metadata, client *rpccalls.Client) (interface{}, error) {
		reply, err := client.GetCoins(a)
		if nil != err {
			return nil, err
		}
		if m.verbose {
			fmt.Fprintf(m.e, "coins: %s\n", util.FormatCoins(reply.Coins))
		}
		return reply, nil
	})
}

func runFund(c *cli.Context) error {
	a, err := checkAddress("address", c.String("address"))
	if nil != err {
		return err
	}
	amount, err := checkCoins("amount", c.String("amount"))
	if nil != err {
		return err
	}
	if 0 == amount {
		return ErrMissingAmount
	}

	return withClient(c, func(_ *metadata, client *rpccalls.Client) (interface{}, error) {
		return client.Fund(a, amount)
	})
}

func runTransfer(c *cli.Context) error {
	from, err := checkAddress("from", c.String("from"))
	if nil != err {
		return err
	}
	to, err := checkAddress("to", c.String("to"))
	if nil != err {
		return err
	}
	value, err := checkCoins("value", c.String("value"))
	if nil != err {
		return err
	}
	if 0 == value {
		return ErrMissingAmount
	}

	data := &rpccalls.TransferData{
		From:   from,
		To:     to,
		Value:  value,
		Bounce: c.Bool("bounce"),
	}

	return withClient(c, func(_ *metadata, client *rpccalls.Client) (interface{}, error) {
		return client.Transfer(data)
	})
}

func runQuery(c *cli.Context) error {
	data := &rpccalls.QueryData{
		QueryId:   c.Uint64("id"),
		MessageId: c.Uint64("message"),
	}
	if 0 == data.QueryId && 0 == data.MessageId {
		return ErrMissingQuery
	}

	return withClient(c, func(_ *metadata, client *rpccalls.Client) (interface{}, error) {
		return client.GetQuery(data)
	})
}
