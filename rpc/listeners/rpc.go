// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

import (
	"crypto/tls"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"

	"github.com/bitmark-inc/keyshares/counter"
	"github.com/bitmark-inc/keyshares/fault"
	"github.com/bitmark-inc/logger"
)

const logName = "client_rpc"

// RPCConfiguration - configuration file data for RPC setup
type RPCConfiguration struct {
	MaximumConnections uint64   `gluamapper:"maximum_connections" json:"maximum_connections"`
	Listen             []string `gluamapper:"listen" json:"listen"`
	Certificate        string   `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string   `gluamapper:"private_key" json:"private_key"`
	Allow              []string `gluamapper:"allow" json:"allow"`
}

type rpcListener struct {
	log            *logger.L
	count          *counter.Counter
	server         *rpc.Server
	maxConnections uint64
	tlsConfig      *tls.Config
	networks       []string
	listen         []string
	allow          []*net.IPNet
}

// NewRPC - JSON-RPC over TCP, TLS when tlsConfig is not nil
func NewRPC(
	configuration *RPCConfiguration,
	log *logger.L,
	count *counter.Counter,
	server *rpc.Server,
	tlsConfig *tls.Config,
) (Listener, error) {
	if configuration.MaximumConnections < minConnectionCount {
		log.Errorf("invalid %s maximum connection limit: %d", logName, configuration.MaximumConnections)
		return nil, fault.MissingParameters
	}
	if 0 == len(configuration.Listen) {
		log.Errorf("missing %s listen", logName)
		return nil, fault.MissingParameters
	}

	networks, listen, err := parseListenAddress(configuration.Listen, log)
	if nil != err {
		return nil, err
	}

	cidrs := configuration.Allow
	if 0 == len(cidrs) {
		cidrs = loopback
	}
	allow, err := parseCIDRs(cidrs, log)
	if nil != err {
		return nil, err
	}

	return &rpcListener{
		log:            log,
		count:          count,
		server:         server,
		maxConnections: configuration.MaximumConnections,
		tlsConfig:      tlsConfig,
		networks:       networks,
		listen:         listen,
		allow:          allow,
	}, nil
}

// Serve - open every listen address and accept in the background
func (r *rpcListener) Serve() error {
	for i, listen := range r.listen {
		r.log.Infof("starting RPC server: %s", listen)

		var l net.Listener
		var err error
		if nil == r.tlsConfig {
			l, err = net.Listen(r.networks[i], listen)
		} else {
			l, err = tls.Listen(r.networks[i], listen, r.tlsConfig)
		}
		if nil != err {
			r.log.Errorf("rpc server listen error: %s", err)
			return err
		}

		go r.doServeRPC(l)
	}
	return nil
}

func (r *rpcListener) doServeRPC(listen net.Listener) {
	for {
		conn, err := listen.Accept()
		if nil != err {
			r.log.Errorf("rpc.server terminated: accept error: %s", err)
			break
		}
		if !allowed(conn.RemoteAddr(), r.allow) {
			r.log.Warnf("deny rpc connection: %s", conn.RemoteAddr())
			_ = conn.Close()
			continue
		}
		if !r.count.IncrementBelow(r.maxConnections) {
			r.log.Debugf("rpc connection refused: %s", conn.RemoteAddr())
			_ = conn.Close()
			continue
		}
		go func() {
			defer r.count.Decrement()
			r.server.ServeCodec(jsonrpc.NewServerCodec(conn))
			_ = conn.Close()
		}()
	}
	_ = listen.Close()
	r.log.Error("RPC accept terminated")
}
