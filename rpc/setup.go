// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/introd/counter"
	"github.com/bitmark-inc/introd/fault"
	"github.com/bitmark-inc/introd/host"
	"github.com/bitmark-inc/introd/rpc/certificate"
	"github.com/bitmark-inc/introd/rpc/handler"
	"github.com/bitmark-inc/introd/rpc/listeners"
	"github.com/bitmark-inc/introd/rpc/server"
)

const (
	tlsName   = "client_rpc"
	httpsName = "http_rpc"
)

// globals
type rpcData struct {
	sync.RWMutex // to allow locking

	log *logger.L // logger

	listeners []listeners.Listener

	// connections across both listeners
	count counter.Counter

	// set once during initialise
	initialised bool
}

// global data
var globalData rpcData

// Initialise - start the JSON-RPC and HTTPS listeners
func Initialise(rpcConfiguration *listeners.RPCConfiguration, httpsConfiguration *listeners.HTTPSConfiguration, version string, h *host.Host) error {

	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	log := logger.New("rpc")
	globalData.log = log
	log.Info("starting…")

	tlsConfig, fingerprint, err := certificate.Load(log, tlsName, rpcConfiguration.Certificate, rpcConfiguration.PrivateKey)
	if nil != err {
		return err
	}

	s := server.Create(log, version, h, &globalData.count)

	rpcListener, err := listeners.NewRPC(
		rpcConfiguration,
		log,
		&globalData.count,
		s,
		tlsConfig,
		fingerprint,
	)
	if nil != err {
		return err
	}

	httpsTLSConfig := tlsConfig
	if "" != httpsConfiguration.Certificate {
		httpsTLSConfig, _, err = certificate.Load(log, httpsName, httpsConfiguration.Certificate, httpsConfiguration.PrivateKey)
		if nil != err {
			return err
		}
	}

	hdlr := handler.New(
		log,
		s,
		time.Now().UTC(),
		version,
		h.ProgramID(),
		&globalData.count,
		httpsConfiguration.MaximumConnections,
	)
	httpsListener, err := listeners.NewHTTPS(httpsConfiguration, log, httpsTLSConfig, hdlr)
	if nil != err {
		return err
	}

	started := []listeners.Listener{rpcListener}
	if nil != httpsListener {
		started = append(started, httpsListener)
	}

	for i, l := range started {
		if err := l.Serve(); nil != err {
			for _, running := range started[:i] {
				running.Stop()
			}
			return err
		}
	}
	globalData.listeners = started

	// all data initialised
	globalData.initialised = true

	return nil
}

// Finalise - stop all listeners
func Finalise() error {

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	for _, l := range globalData.listeners {
		l.Stop()
	}
	globalData.listeners = nil

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}
