// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package handler_test

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net"
	"net/http"
	"net/http/httptest"
	"net/rpc"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/keyshares/rpc/fixtures"
	"github.com/bitmark-inc/keyshares/rpc/handler"
	"github.com/bitmark-inc/logger"
)

const (
	notAllowed      = "method not allowed"
	tooManyRequests = "Too Many Requests"
)

type eResp struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

type jResp struct {
	ID     int         `json:"id"`
	Result int         `json:"result"`
	Error  interface{} `json:"error"`
}

type jReq struct {
	ID     int      `json:"id"`
	Method string   `json:"method"`
	Params []AddArg `json:"params"`
}

type Add struct{}
type AddArg struct {
	A int `json:"A"`
	B int `json:"B"`
}

func (a Add) Add(arg *AddArg, reply *int) error {
	*reply = arg.A + arg.B
	return nil
}

func newHandler(s *rpc.Server, maximum uint64) handler.Handler {
	return handler.New(
		logger.New(fixtures.LogCategory),
		s,
		time.Now(),
		"1.0",
		maximum,
		func() interface{} {
			return map[string]string{"registry": "deployed"}
		},
	)
}

func allow(h handler.Handler, path string) {
	allow := make(map[string][]*net.IPNet)
	_, ipNet, _ := net.ParseCIDR("192.0.2.0/24")
	allow[path] = []*net.IPNet{ipNet}
	h.SetAllow(allow)
}

func TestRoot(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h := newHandler(rpc.NewServer(), 5)

	req := httptest.NewRequest("GET", "http://not.found", nil)
	w := httptest.NewRecorder()
	h.Root(w, req)

	resp := w.Result()
	var j eResp
	_ = json.NewDecoder(resp.Body).Decode(&j)

	assert.Equal(t, "not found", j.Error, "wrong response")
	assert.Equal(t, http.StatusNotFound, j.Code, "wrong http code")
}

func TestRPC(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s := rpc.NewServer()
	_ = s.Register(Add{})
	h := newHandler(s, 5)

	add := AddArg{
		A: 1,
		B: 2,
	}
	arg := jReq{
		ID:     5,
		Method: "Add.Add",
		Params: []AddArg{add},
	}
	data, _ := json.Marshal(arg)

	allow(h, "rpc")

	req := httptest.NewRequest("POST", "http://not.exist", bytes.NewReader(data))
	w := httptest.NewRecorder()
	h.RPC(w, req)

	resp := w.Result()
	var j jResp
	_ = json.NewDecoder(resp.Body).Decode(&j)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "wrong status code")
	assert.Equal(t, 5, j.ID, "wrong id")
	assert.Equal(t, add.A+add.B, j.Result, "wrong result")
	assert.Nil(t, j.Error, "wrong error")
}

func TestRPCWhenNotAllow(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s := rpc.NewServer()
	_ = s.Register(Add{})
	h := newHandler(s, 5)
	allow(h, "details")

	data, _ := json.Marshal(jReq{ID: 1, Method: "Add.Add", Params: []AddArg{{A: 1, B: 2}}})
	req := httptest.NewRequest("POST", "http://not.exist", bytes.NewReader(data))
	w := httptest.NewRecorder()
	h.RPC(w, req)

	resp := w.Result()
	var j eResp
	_ = json.NewDecoder(resp.Body).Decode(&j)
	assert.Equal(t, "forbidden", j.Error, "wrong not allow")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "wrong status code")
}

func TestRPCWhenWrongHTTPMethod(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h := newHandler(rpc.NewServer(), 5)

	req := httptest.NewRequest("GET", "http://not.exist", nil)
	w := httptest.NewRecorder()
	h.RPC(w, req)

	resp := w.Result()
	var j eResp
	_ = json.NewDecoder(resp.Body).Decode(&j)
	assert.Equal(t, notAllowed, j.Error, "wrong method")
}

func TestRPCWhenTooManyConnections(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h := newHandler(rpc.NewServer(), 0)

	allow(h, "rpc")

	req := httptest.NewRequest("POST", "http://not.exist", nil)
	w := httptest.NewRecorder()
	h.RPC(w, req)

	resp := w.Result()
	var j eResp
	_ = json.NewDecoder(resp.Body).Decode(&j)
	assert.Equal(t, tooManyRequests, j.Error, "wrong error")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode, "wrong status code")
}

func TestRPCWhenServeError(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h := newHandler(rpc.NewServer(), 5)

	data, _ := json.Marshal(jReq{})

	allow(h, "rpc")

	req := httptest.NewRequest("POST", "http://not.exist", bytes.NewReader(data))
	w := httptest.NewRecorder()
	h.RPC(w, req)

	resp := w.Result()
	b, _ := ioutil.ReadAll(resp.Body)
	assert.Contains(t, string(b), "internal server error", "wrong response")
}

func TestDetails(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h := newHandler(rpc.NewServer(), 10)
	allow(h, "details")

	req := httptest.NewRequest("GET", "http://test.com", nil)
	w := httptest.NewRecorder()
	h.Details(w, req)

	resp := w.Result()
	b, _ := ioutil.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "wrong status code")
	assert.Contains(t, string(b), `"version":"1.0"`, "wrong version")
	assert.Contains(t, string(b), "deployed", "details missing")
}

func TestDetailsWhenWrongHTTPMethod(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h := newHandler(rpc.NewServer(), 5)
	allow(h, "details")

	req := httptest.NewRequest("POST", "http://not.exist", nil)
	w := httptest.NewRecorder()
	h.Details(w, req)

	var j eResp
	_ = json.NewDecoder(w.Result().Body).Decode(&j)
	assert.Equal(t, notAllowed, j.Error, "wrong method")
}

func TestDetailsWhenNotAllow(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h := newHandler(rpc.NewServer(), 5)
	allow(h, "metrics")

	req := httptest.NewRequest("GET", "http://test.com", nil)
	w := httptest.NewRecorder()
	h.Details(w, req)

	var j eResp
	_ = json.NewDecoder(w.Result().Body).Decode(&j)
	assert.Equal(t, "forbidden", j.Error, "wrong not allow")
}

func TestDetailsWhenTooManyConnections(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h := newHandler(rpc.NewServer(), 0)
	allow(h, "details")

	req := httptest.NewRequest("GET", "http://not.exist", nil)
	w := httptest.NewRecorder()
	h.Details(w, req)

	var j eResp
	_ = json.NewDecoder(w.Result().Body).Decode(&j)
	assert.Equal(t, tooManyRequests, j.Error, "wrong error")
}

func TestMetrics(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h := newHandler(rpc.NewServer(), 5)
	allow(h, "metrics")

	req := httptest.NewRequest("GET", "http://test.com/metrics", nil)
	w := httptest.NewRecorder()
	h.Metrics(w, req)

	resp := w.Result()
	b, _ := ioutil.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "wrong status code")
	assert.Contains(t, string(b), "go_goroutines", "wrong metrics")
}
