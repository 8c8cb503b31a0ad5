// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"bytes"
	"crypto/tls"
	"encoding/hex"
	"io"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"

	"github.com/bitmark-inc/introd/fault"
	"github.com/bitmark-inc/introd/rpc/certificate"
)

const (
	dialTimeout = 10 * time.Second
)

// Client - to hold RPC connections streams
type Client struct {
	conn    net.Conn
	client  *rpc.Client
	testnet bool
	verbose bool
	handle  io.Writer // if verbose is set output items here
}

// NewClient - create a RPC connection to an introd
//
// the server certificate is self-signed so it is not verified against
// a CA; when fingerprint is not blank it must match the certificate
func NewClient(testnet bool, connect string, fingerprint string, verbose bool, handle io.Writer) (*Client, error) {

	if "" == connect {
		return nil, fault.NoConnection
	}

	tlsConfig := &tls.Config{
		InsecureSkipVerify: true,
	}

	dialer := &net.Dialer{
		Timeout: dialTimeout,
	}
	conn, err := tls.DialWithDialer(dialer, "tcp", connect, tlsConfig)
	if nil != err {
		return nil, err
	}

	if "" != fingerprint {
		err := checkFingerprint(conn, fingerprint)
		if nil != err {
			conn.Close()
			return nil, err
		}
	}

	return &Client{
		conn:    conn,
		client:  jsonrpc.NewClient(conn),
		testnet: testnet,
		verbose: verbose,
		handle:  handle,
	}, nil
}

// Close - shutdown the introd connection
func (client *Client) Close() {
	client.client.Close()
}

func checkFingerprint(conn *tls.Conn, fingerprint string) error {
	expected, err := hex.DecodeString(fingerprint)
	if nil != err {
		return err
	}

	certificates := conn.ConnectionState().PeerCertificates
	if 0 == len(certificates) {
		return fault.FingerprintMismatch
	}

	actual := certificate.Fingerprint(certificates[0].Raw)
	if !bytes.Equal(expected, actual[:]) {
		return fault.FingerprintMismatch
	}
	return nil
}
