// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package listeners - network front ends for the rpc server
package listeners

import (
	"net"
	"strings"

	"github.com/bitmark-inc/keyshares/fault"
	"github.com/bitmark-inc/logger"
)

const minConnectionCount = 1

// networks allowed to call the RPCs when none are configured
var loopback = []string{"127.0.0.0/8", "::1/128"}

// Listener - starts serving in the background
type Listener interface {
	Serve() error
}

// change "*:PORT" to "[::]:PORT" and work out the network of each address
func parseListenAddress(addrs []string, log *logger.L) ([]string, []string, error) {
	networks := make([]string, len(addrs))
	cleaned := make([]string, len(addrs))
	for i, listen := range addrs {
		host, port, err := net.SplitHostPort(listen)
		if nil != err {
			log.Errorf("listen: %q  error: %s", listen, err)
			return nil, nil, fault.InvalidIpAddress
		}

		switch {
		case "*" == host:
			// on the assumption that this will listen on tcp4 and tcp6
			cleaned[i] = net.JoinHostPort("::", port)
			networks[i] = "tcp"
			continue
		case strings.Contains(host, ":"):
			networks[i] = "tcp6"
		default:
			networks[i] = "tcp4"
		}

		if ip := net.ParseIP(host); nil == ip {
			log.Errorf("listen: %q  error: %s", listen, fault.InvalidIpAddress)
			return nil, nil, fault.InvalidIpAddress
		}
		cleaned[i] = listen
	}

	return networks, cleaned, nil
}

// CIDR strings to networks
func parseCIDRs(cidrs []string, log *logger.L) ([]*net.IPNet, error) {
	networks := make([]*net.IPNet, len(cidrs))
	for i, s := range cidrs {
		_, cidr, err := net.ParseCIDR(strings.Trim(s, " "))
		if nil != err {
			log.Errorf("allow: %q  error: %s", s, err)
			return nil, fault.InvalidIpAddress
		}
		networks[i] = cidr
	}
	return networks, nil
}

// true if the host of a remote address is inside one of the networks
func allowed(remote net.Addr, networks []*net.IPNet) bool {
	var ip net.IP
	switch a := remote.(type) {
	case *net.TCPAddr:
		ip = a.IP
	default:
		host, _, err := net.SplitHostPort(remote.String())
		if nil != err {
			return false
		}
		ip = net.ParseIP(host)
	}
	if nil == ip {
		return false
	}
	for _, n := range networks {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}
