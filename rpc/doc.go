// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - setup of the incoming JSON RPC services for clients
// of introd
//
// the services are served over TLS as a raw JSON-RPC stream and,
// optionally, as one JSON-RPC call per HTTPS POST; standard golang
// RPC clients can be used on the client side
package rpc
