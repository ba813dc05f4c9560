// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

const dialTimeout = 10 * time.Second

// Client - to hold RPC connections streams
type Client struct {
	conn    net.Conn
	client  *rpc.Client
	verbose bool
	handle  io.Writer // if verbose is set output items here
}

// NewClient - create a RPC connection to a keysharesd
//
// the node certificate is normally self signed so it is not verified
func NewClient(connect string, useTLS bool, verbose bool, handle io.Writer) (*Client, error) {

	dialer := &net.Dialer{
		Timeout: dialTimeout,
	}

	var conn net.Conn
	var err error
	if useTLS {
		tlsConfig := &tls.Config{
			InsecureSkipVerify: true,
		}
		conn, err = tls.DialWithDialer(dialer, "tcp", connect, tlsConfig)
	} else {
		conn, err = dialer.Dial("tcp", connect)
	}
	if err != nil {
		return nil, err
	}

	r := &Client{
		conn:    conn,
		client:  jsonrpc.NewClient(conn),
		verbose: verbose,
		handle:  handle,
	}
	return r, nil
}

// Close - shutdown the keysharesd connection
func (c *Client) Close() {
	c.client.Close()
	c.conn.Close()
}

// verbose output of the request and reply around one call
func (c *Client) call(name string, method string, arguments interface{}, reply interface{}) error {
	c.trace(name, "Request", arguments)

	err := c.client.Call(method, arguments, reply)
	if nil != err {
		return err
	}

	c.trace(name, "Reply", reply)
	return nil
}

func (c *Client) trace(name string, direction string, item interface{}) {
	if !c.verbose {
		return
	}
	b, err := json.MarshalIndent(item, "", "  ")
	if nil != err {
		fmt.Fprintf(c.handle, "%s %s: %s\n", name, direction, err)
		return
	}
	fmt.Fprintf(c.handle, "%s %s:\n%s\n", name, direction, b)
}
