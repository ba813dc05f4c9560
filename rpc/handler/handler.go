// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package handler

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/rpc"
	"net/rpc/jsonrpc"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bitmark-inc/keyshares/counter"
	"github.com/bitmark-inc/logger"
)

// Handler - the HTTP endpoints of the daemon
type Handler interface {
	Root(http.ResponseWriter, *http.Request)
	RPC(http.ResponseWriter, *http.Request)
	Details(http.ResponseWriter, *http.Request)
	Metrics(http.ResponseWriter, *http.Request)
	SetAllow(map[string][]*net.IPNet)
}

// DetailsFunc - produces the body of a details request
type DetailsFunc func() interface{}

type handler struct {
	log                *logger.L
	server             *rpc.Server
	start              time.Time
	version            string
	details            DetailsFunc
	allow              map[string][]*net.IPNet
	count              counter.Counter
	maximumConnections uint64
	metrics            http.Handler
}

// New - create the handlers for one HTTP listener
func New(
	log *logger.L,
	server *rpc.Server,
	start time.Time,
	version string,
	maximumConnections uint64,
	details DetailsFunc,
) Handler {
	return &handler{
		log:                log,
		server:             server,
		start:              start,
		version:            version,
		details:            details,
		allow:              make(map[string][]*net.IPNet),
		maximumConnections: maximumConnections,
		metrics:            promhttp.Handler(),
	}
}

// SetAllow - per path list of networks allowed the RPC and the restricted GETs
func (h *handler) SetAllow(allow map[string][]*net.IPNet) {
	h.allow = allow
}

// type to allow rpc system to interface to http request
type internalConnection struct {
	in  io.Reader
	out io.Writer
}

func (c *internalConnection) Read(p []byte) (n int, err error) {
	return c.in.Read(p)
}
func (c *internalConnection) Write(d []byte) (n int, err error) {
	return c.out.Write(d)
}
func (c *internalConnection) Close() error {
	return nil
}

// Root - this matches anything not matched and returns error
func (h *handler) Root(w http.ResponseWriter, r *http.Request) {
	sendNotFound(w)
}

// RPC - performs a call to any normal RPC
func (h *handler) RPC(w http.ResponseWriter, r *http.Request) {
	if http.MethodPost != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	if !h.allowed(r.RemoteAddr, "rpc") {
		h.log.Warnf("deny access: %q  path: rpc", r.RemoteAddr)
		sendForbidden(w)
		return
	}

	if !h.enter() {
		sendTooManyRequests(w)
		return
	}
	defer h.count.Decrement()

	serverCodec := jsonrpc.NewServerCodec(&internalConnection{in: r.Body, out: w})
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	err := h.server.ServeRequest(serverCodec)
	if nil != err {
		h.log.Debugf("rpc request error: %s", err)
		sendInternalServerError(w)
		return
	}
}

// Details - to allow a GET for the node information
func (h *handler) Details(w http.ResponseWriter, r *http.Request) {
	if !h.restricted(w, r, "details") {
		return
	}
	defer h.count.Decrement()

	type reply struct {
		Version string      `json:"version"`
		Uptime  string      `json:"uptime"`
		RPCs    uint64      `json:"rpcs"`
		Node    interface{} `json:"node,omitempty"`
	}

	info := reply{
		Version: h.version,
		Uptime:  time.Since(h.start).String(),
		RPCs:    h.count.Uint64(),
	}
	if nil != h.details {
		info.Node = h.details()
	}

	sendReply(w, info)
}

// Metrics - prometheus exposition
func (h *handler) Metrics(w http.ResponseWriter, r *http.Request) {
	if !h.restricted(w, r, "metrics") {
		return
	}
	defer h.count.Decrement()

	h.metrics.ServeHTTP(w, r)
}

// check method, allow list and connection count
//
// on true the caller must decrement the count
func (h *handler) restricted(w http.ResponseWriter, r *http.Request, path string) bool {
	if http.MethodGet != r.Method {
		sendMethodNotAllowed(w)
		return false
	}

	if !h.allowed(r.RemoteAddr, path) {
		h.log.Warnf("deny access: %q  path: %s", r.RemoteAddr, path)
		sendForbidden(w)
		return false
	}

	if !h.enter() {
		sendTooManyRequests(w)
		return false
	}
	return true
}

func (h *handler) allowed(remote string, path string) bool {
	last := strings.LastIndex(remote, ":")
	if last < 0 {
		return false
	}
	ip := net.ParseIP(strings.Trim(remote[:last], "[]"))
	if nil == ip {
		return false
	}
	for _, n := range h.allow[path] {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

func (h *handler) enter() bool {
	return h.count.IncrementBelow(h.maximumConnections)
}

func sendReply(w http.ResponseWriter, data interface{}) {
	text, err := json.Marshal(data)
	if nil != err {
		sendInternalServerError(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(text)
}

func sendNotFound(w http.ResponseWriter) {
	sendError(w, "not found", http.StatusNotFound)
}
func sendMethodNotAllowed(w http.ResponseWriter) {
	sendError(w, "method not allowed", http.StatusMethodNotAllowed)
}
func sendForbidden(w http.ResponseWriter) {
	sendError(w, "forbidden", http.StatusForbidden)
}
func sendTooManyRequests(w http.ResponseWriter) {
	sendError(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
}
func sendInternalServerError(w http.ResponseWriter) {
	sendError(w, "internal server error", http.StatusInternalServerError)
}

// to compose JSON error messages
type eType struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

// output an error with a JSON body
func sendError(w http.ResponseWriter, message string, code int) {
	text, err := json.Marshal(eType{
		Code:  code,
		Error: message,
	})
	if nil != err {
		// manually composed error just incase JSON fails
		http.Error(w, `{"code":500,"error":"Internal Server Error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	_, _ = w.Write(text)
}
