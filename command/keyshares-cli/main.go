// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
)

type metadata struct {
	connect string
	tls     bool
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

const defaultConnect = "127.0.0.1:2130"

func main() {
	app := newApp()
	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {

	app := cli.NewApp()
	app.Name = "keyshares-cli"
	app.Usage = "trade subject keys on a keysharesd node"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:   "connect, c",
			Value:  defaultConnect,
			Usage:  " keysharesd client RPC `HOST:PORT`",
			EnvVar: "KEYSHARES_CONNECT",
		},
		cli.BoolFlag{
			Name:  "tls, t",
			Usage: " connect using TLS",
		},
	}

	subjectFlag := cli.StringFlag{
		Name:  "subject, s",
		Value: "",
		Usage: "*subject `ADDRESS`",
	}
	holderFlag := cli.StringFlag{
		Name:  "holder, o",
		Value: "",
		Usage: "*holder `ADDRESS`",
	}
	amountFlag := cli.Uint64Flag{
		Name:  "amount, a",
		Value: 0,
		Usage: "*number of keys `COUNT`",
	}
	valueFlag := cli.StringFlag{
		Name:  "value, x",
		Value: "",
		Usage: " coins attached to the request `COINS` [default: priced by the node]",
	}
	tradeFlags := []cli.Flag{
		holderFlag,
		subjectFlag,
		amountFlag,
		cli.StringFlag{
			Name:  "supply, u",
			Value: "",
			Usage: " claimed supply `COUNT` [default: current supply]",
		},
		cli.StringFlag{
			Name:  "balance, b",
			Value: "",
			Usage: " claimed balance `COUNT` [default: current balance]",
		},
		valueFlag,
	}

	app.Commands = []cli.Command{
		{
			Name:   "info",
			Usage:  "display node information",
			Action: runInfo,
		},
		{
			Name:   "registry",
			Usage:  "display the registry configuration and counters",
			Action: runRegistry,
		},
		{
			Name:      "price",
			Usage:     "quote a buy or a sell",
			ArgsUsage: "\n   (* = required, + = select one)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "subject, s",
					Value: "",
					Usage: "+subject `ADDRESS` to price from its current supply",
				},
				cli.Uint64Flag{
					Name:  "supply, u",
					Value: 0,
					Usage: "+supply `COUNT` to price from",
				},
				amountFlag,
				cli.BoolFlag{
					Name:  "sell",
					Usage: " quote a sell instead of a buy",
				},
			},
			Action: runPrice,
		},
		{
			Name:      "addresses",
			Usage:     "display the registry, key and wallet addresses",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				subjectFlag,
				cli.StringFlag{
					Name:  "holder, o",
					Value: "",
					Usage: " holder `ADDRESS`",
				},
			},
			Action: runAddresses,
		},
		{
			Name:      "newkey",
			Usage:     "create the keys of a subject",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				subjectFlag,
				cli.Uint64Flag{
					Name:  "initial, i",
					Value: 1,
					Usage: " initial supply kept by the subject `COUNT`",
				},
				valueFlag,
			},
			Action: runNewKey,
		},
		{
			Name:      "buy",
			Usage:     "buy keys of a subject",
			ArgsUsage: "\n   (* = required)",
			Flags:     tradeFlags,
			Action:    runBuy,
		},
		{
			Name:      "sell",
			Usage:     "sell keys of a subject",
			ArgsUsage: "\n   (* = required)",
			Flags:     tradeFlags,
			Action:    runSell,
		},
		{
			Name:      "supply",
			Usage:     "display the confirmed supply of a subject",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{subjectFlag},
			Action:    runSupply,
		},
		{
			Name:      "balance",
			Usage:     "display the keys of a subject held by a holder",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{holderFlag, subjectFlag},
			Action:    runBalance,
		},
		{
			Name:      "coins",
			Usage:     "display the coins of an address",
			ArgsUsage: "ADDRESS",
			Action:    runCoins,
		},
		{
			Name:      "fund",
			Usage:     "create coins from a node faucet",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "address, d",
					Value: "",
					Usage: "*receiving `ADDRESS`",
				},
				cli.StringFlag{
					Name:  "amount, a",
					Value: "",
					Usage: "*`COINS` to create",
				},
			},
			Action: runFund,
		},
		{
			Name:      "transfer",
			Usage:     "transfer coins between addresses",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "from, f",
					Value: "",
					Usage: "*sending `ADDRESS`",
				},
				cli.StringFlag{
					Name:  "to, r",
					Value: "",
					Usage: "*receiving `ADDRESS`",
				},
				cli.StringFlag{
					Name:  "value, x",
					Value: "",
					Usage: "*`COINS` to transfer",
				},
				cli.BoolFlag{
					Name:  "bounce",
					Usage: " return the coins if the receiver has no code",
				},
			},
			Action: runTransfer,
		},
		{
			Name:      "query",
			Usage:     "display the state of a query",
			ArgsUsage: "\n   (+ = select one)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "id, q",
					Value: 0,
					Usage: "+query `ID`",
				},
				cli.Uint64Flag{
					Name:  "message, m",
					Value: 0,
					Usage: "+message `ID` returned by newkey, buy or sell",
				},
			},
			Action: runQuery,
		},
		{
			Name: "version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {
		connect := c.GlobalString("connect")
		if "" == connect {
			return ErrMissingConnect
		}

		m := &metadata{
			connect: connect,
			tls:     c.GlobalBool("tls"),
			verbose: c.GlobalBool("verbose"),
			e:       c.App.ErrWriter,
			w:       c.App.Writer,
		}
		if m.verbose {
			fmt.Fprintf(m.e, "connect: %s  tls: %v\n", m.connect, m.tls)
		}
		c.App.Metadata["config"] = m
		return nil
	}

	return app
}
