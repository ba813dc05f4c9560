// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"github.com/bitmark-inc/keyshares/fault"
	"github.com/bitmark-inc/keyshares/rpc/handler"
	"github.com/bitmark-inc/logger"
)

const (
	httpsLogName     = "http_rpc"
	readWriteTimeout = 10 * time.Second
	keepAlivePeriod  = 3 * time.Minute
)

// HTTPSConfiguration - configuration file data for HTTPS setup
type HTTPSConfiguration struct {
	MaximumConnections uint64              `gluamapper:"maximum_connections" json:"maximum_connections"`
	Listen             []string            `gluamapper:"listen" json:"listen"`
	Certificate        string              `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string              `gluamapper:"private_key" json:"private_key"`
	Allow              map[string][]string `gluamapper:"allow" json:"allow"`
}

type httpsListener struct {
	log       *logger.L
	listen    []string
	tlsConfig *tls.Config
	mux       *http.ServeMux
}

// NewHTTPS - the HTTP(S) endpoints, nil if no listen address is set
func NewHTTPS(
	configuration *HTTPSConfiguration,
	log *logger.L,
	tlsConfig *tls.Config,
	hdlr handler.Handler,
) (Listener, error) {
	if 0 == len(configuration.Listen) {
		log.Infof("disable: %s", httpsLogName)
		return nil, nil
	}

	if configuration.MaximumConnections < minConnectionCount {
		log.Errorf("invalid %s maximum connection limit: %d", httpsLogName, configuration.MaximumConnections)
		return nil, fault.MissingParameters
	}

	_, listen, err := parseListenAddress(configuration.Listen, log)
	if nil != err {
		return nil, err
	}

	// access control per path, rpc defaults to loopback
	local := make(map[string][]*net.IPNet)
	for path, addresses := range configuration.Allow {
		set, err := parseCIDRs(addresses, log)
		if nil != err {
			return nil, err
		}
		local[path] = set
	}
	if _, ok := local["rpc"]; !ok {
		local["rpc"], _ = parseCIDRs(loopback, log)
	}
	hdlr.SetAllow(local)

	mux := http.NewServeMux()
	mux.HandleFunc("/keysharesd/rpc", hdlr.RPC)
	mux.HandleFunc("/keysharesd/details", hdlr.Details)
	mux.HandleFunc("/metrics", hdlr.Metrics)
	mux.HandleFunc("/", hdlr.Root)

	return &httpsListener{
		log:       log,
		listen:    listen,
		tlsConfig: tlsConfig,
		mux:       mux,
	}, nil
}

// Serve - bind every address then serve in the background
func (h *httpsListener) Serve() error {
	for _, listen := range h.listen {
		h.log.Infof("starting server: %s on: %q", httpsLogName, listen)

		ln, err := net.Listen("tcp", listen)
		if nil != err {
			h.log.Errorf("%s listen error: %s", httpsLogName, err)
			return err
		}
		go h.serve(ln)
	}
	return nil
}

func (h *httpsListener) serve(ln net.Listener) {
	s := &http.Server{
		Handler:        h.mux,
		ReadTimeout:    readWriteTimeout,
		WriteTimeout:   readWriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	l := net.Listener(tcpKeepAliveListener{ln.(*net.TCPListener)})
	if nil != h.tlsConfig {
		cfg := h.tlsConfig.Clone()
		cfg.NextProtos = []string{"http/1.1"}
		l = tls.NewListener(l, cfg)
	}

	err := s.Serve(l)
	h.log.Errorf("%s terminated: %s", httpsLogName, err)
}

type tcpKeepAliveListener struct {
	*net.TCPListener
}

func (ln tcpKeepAliveListener) Accept() (net.Conn, error) {
	tc, err := ln.AcceptTCP()
	if nil != err {
		return nil, err
	}
	_ = tc.SetKeepAlive(true)
	_ = tc.SetKeepAlivePeriod(keepAlivePeriod)
	return tc, nil
}
