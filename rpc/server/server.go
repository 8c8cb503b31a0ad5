// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/introd/counter"
	"github.com/bitmark-inc/introd/host"
	"github.com/bitmark-inc/introd/rpc/intro"
	"github.com/bitmark-inc/introd/rpc/node"
)

// Create - an RPC server with every service registered
func Create(log *logger.L, version string, h *host.Host, rpcCount *counter.Counter) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(intro.New(log, h))
	_ = server.Register(node.New(log, start, version, h.ProgramID(), h.Policy().String(), rpcCount))

	return server
}
