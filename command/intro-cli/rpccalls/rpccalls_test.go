// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls_test

import (
	"bytes"
	"crypto/tls"
	"encoding/hex"
	"io/ioutil"
	"net/rpc/jsonrpc"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/introd/command/intro-cli/rpccalls"
	"github.com/bitmark-inc/introd/counter"
	"github.com/bitmark-inc/introd/fault"
	"github.com/bitmark-inc/introd/fixtures"
	"github.com/bitmark-inc/introd/host"
	"github.com/bitmark-inc/introd/processor"
	"github.com/bitmark-inc/introd/rent"
	"github.com/bitmark-inc/introd/rpc/certificate"
	"github.com/bitmark-inc/introd/rpc/server"
	"github.com/bitmark-inc/introd/storage"
)

const databaseFileName = "test.leveldb"

// start a TLS JSON-RPC server and return its address and certificate fingerprint
func setup(t *testing.T) (string, string, func()) {
	fixtures.SetupTestLogger()
	_ = os.RemoveAll(databaseFileName)

	dir, err := ioutil.TempDir("", "intro-cli-rpccalls")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}

	certificateFile := filepath.Join(dir, "rpc.crt")
	keyFile := filepath.Join(dir, "rpc.key")
	err = certificate.Generate("rpc", certificateFile, keyFile, nil)
	if nil != err {
		t.Fatalf("generate certificate error: %s", err)
	}

	log := logger.New(fixtures.LogCategory)
	tlsConfig, fingerprint, err := certificate.Load(log, "rpc", certificateFile, keyFile)
	if nil != err {
		t.Fatalf("load certificate error: %s", err)
	}

	err = storage.Initialise(databaseFileName, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}

	h := host.New(fixtures.NewKey(t).Account(), rent.Default(), processor.Options{})

	var count counter.Counter
	s := server.Create(log, "1.0", h, &count)

	l, err := tls.Listen("tcp4", "127.0.0.1:0", tlsConfig)
	if nil != err {
		t.Fatalf("listen error: %s", err)
	}
	go func() {
		for {
			conn, err := l.Accept()
			if nil != err {
				return
			}
			go s.ServeCodec(jsonrpc.NewServerCodec(conn))
		}
	}()

	return l.Addr().String(), hex.EncodeToString(fingerprint[:]), func() {
		_ = l.Close()
		storage.Finalise()
		_ = os.RemoveAll(databaseFileName)
		_ = os.RemoveAll(dir)
		fixtures.TeardownTestLogger()
	}
}

func TestWriteAndRead(t *testing.T) {
	connect, fingerprint, teardown := setup(t)
	defer teardown()

	client, err := rpccalls.NewClient(true, connect, fingerprint, false, ioutil.Discard)
	if nil != err {
		t.Fatalf("new client error: %s", err)
	}
	defer client.Close()

	owner := fixtures.NewKey(t)

	created, err := client.Create(&rpccalls.WriteData{Owner: owner, Name: "alice", Message: "hello"})
	assert.Nil(t, err, "create")
	assert.Equal(t, uint32(0), created.Code, "create code: %s", created.Error)

	derived, err := client.Address(owner.Account(), "alice")
	assert.Nil(t, err, "address")
	assert.Equal(t, derived.Storage, created.Storage, "storage address")
	assert.Equal(t, derived.Bump, created.Bump, "bump")

	updated, err := client.Update(&rpccalls.WriteData{Owner: owner, Name: "alice", Message: "world"})
	assert.Nil(t, err, "update")
	assert.Equal(t, uint32(0), updated.Code, "update code: %s", updated.Error)

	renamed, err := client.Update(&rpccalls.WriteData{Owner: owner, Name: "bob", Message: "world"})
	assert.Nil(t, err, "update other name")
	assert.NotEqual(t, uint32(0), renamed.Code, "update of a record that was never created")

	get, err := client.Get(created.Storage)
	assert.Nil(t, err, "get")
	assert.Equal(t, "alice", get.Record.Name, "name")
	assert.Equal(t, "world", get.Record.Message, "message")
	assert.True(t, get.Record.Initialised, "initialised")

	list, err := client.List(nil, 10)
	assert.Nil(t, err, "list")
	assert.Equal(t, 1, len(list.Entries), "entries")
	assert.Nil(t, list.Next, "next")

	_, err = client.List(nil, 0)
	assert.NotNil(t, err, "zero count")
}

func TestInfo(t *testing.T) {
	connect, _, teardown := setup(t)
	defer teardown()

	buffer := &bytes.Buffer{}
	client, err := rpccalls.NewClient(true, connect, "", true, buffer)
	if nil != err {
		t.Fatalf("new client error: %s", err)
	}
	defer client.Close()

	info, err := client.GetInfo()
	assert.Nil(t, err, "info")
	assert.Equal(t, "1.0", info.Version, "version")
	assert.Equal(t, processor.Reject.String(), info.Policy, "policy")
	assert.NotNil(t, info.Program, "program")

	_, err = client.Address(fixtures.NewKey(t).Account(), "alice")
	assert.Nil(t, err, "address")
	assert.Contains(t, buffer.String(), "Address Reply", "verbose output")
}

func TestNewClientErrors(t *testing.T) {
	connect, fingerprint, teardown := setup(t)
	defer teardown()

	_, err := rpccalls.NewClient(true, "", "", false, ioutil.Discard)
	assert.Equal(t, fault.NoConnection, err, "blank connect")

	wrong := make([]byte, len(fingerprint)/2)
	_, err = rpccalls.NewClient(true, connect, hex.EncodeToString(wrong), false, ioutil.Discard)
	assert.Equal(t, fault.FingerprintMismatch, err, "wrong fingerprint")

	_, err = rpccalls.NewClient(true, connect, "not-hex", false, ioutil.Discard)
	assert.NotNil(t, err, "bad fingerprint")
}
