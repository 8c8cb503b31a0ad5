// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/introd/processor"
	"github.com/bitmark-inc/introd/rent"
)

func writeConfiguration(t *testing.T, text string) (string, func()) {
	dir, err := ioutil.TempDir("", "introd-configuration")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	fileName := filepath.Join(dir, "introd.conf")
	err = ioutil.WriteFile(fileName, []byte(text), 0600)
	if nil != err {
		t.Fatalf("write configuration error: %s", err)
	}
	return fileName, func() { _ = os.RemoveAll(dir) }
}

func TestGetConfigurationDefaults(t *testing.T) {
	fileName, cleanup := writeConfiguration(t, `return { data_directory = "." }`)
	defer cleanup()

	dir := filepath.Dir(fileName)

	c, err := getConfiguration(fileName)
	if !assert.Nil(t, err, "get configuration") {
		return
	}

	assert.Equal(t, filepath.Clean(dir+"/"), filepath.Clean(c.DataDirectory), "data directory")
	assert.Equal(t, filepath.Join(dir, "program.private"), c.ProgramIdentity, "program identity")
	assert.Equal(t, filepath.Join(dir, "data", "introd.leveldb"), c.Database.Name, "database")
	assert.Equal(t, filepath.Join(dir, "rpc.crt"), c.ClientRPC.Certificate, "certificate")
	assert.Equal(t, filepath.Join(dir, "rpc.key"), c.ClientRPC.PrivateKey, "private key")
	assert.Equal(t, "", c.HttpsRPC.Certificate, "https certificate shared")
	assert.Equal(t, filepath.Join(dir, "log"), c.Logging.Directory, "log directory")
	assert.Equal(t, uint64(defaultRPCClients), c.ClientRPC.MaximumConnections, "connections")

	policy, err := c.Policy()
	assert.Nil(t, err, "policy")
	assert.Equal(t, processor.Reject, policy, "default policy")

	r, err := c.RentParameters()
	assert.Nil(t, err, "rent")
	assert.Equal(t, rent.Default().MinimumBalance(1000), r.MinimumBalance(1000), "default rent")

	for _, d := range []string{c.Database.Directory, c.Logging.Directory} {
		info, err := os.Stat(d)
		assert.Nil(t, err, "stat: %s", d)
		assert.True(t, nil != info && info.IsDir(), "not a directory: %s", d)
	}
}

func TestGetConfigurationValues(t *testing.T) {
	fileName, cleanup := writeConfiguration(t, `
local M = {}
M.data_directory = "."
M.reinitialise = "allow"
M.program_identity = "/etc/introd/program.private"
M.rent = {
    lamports_per_byte_year = 10,
    exemption_threshold = 1.5,
}
M.client_rpc = {
    maximum_connections = 7,
    listen = { "127.0.0.1:2130" },
    certificate = "a.crt",
    private_key = "a.key",
}
M.https_rpc = {
    maximum_connections = 3,
    listen = { "127.0.0.1:2131" },
    allow = { details = { "127.0.0.0/8" } },
}
M.logging = {
    size = 2048,
    count = 3,
    levels = { DEFAULT = "info" },
}
return M
`)
	defer cleanup()

	dir := filepath.Dir(fileName)

	c, err := getConfiguration(fileName)
	if !assert.Nil(t, err, "get configuration") {
		return
	}

	policy, _ := c.Policy()
	assert.Equal(t, processor.Allow, policy, "policy")

	r, _ := c.RentParameters()
	assert.Equal(t, uint64(17280), r.MinimumBalance(1024), "rent")

	assert.Equal(t, "/etc/introd/program.private", c.ProgramIdentity, "absolute identity kept")
	assert.Equal(t, uint64(7), c.ClientRPC.MaximumConnections, "rpc connections")
	assert.Equal(t, []string{"127.0.0.1:2130"}, c.ClientRPC.Listen, "rpc listen")
	assert.Equal(t, filepath.Join(dir, "a.crt"), c.ClientRPC.Certificate, "certificate")
	assert.Equal(t, uint64(3), c.HttpsRPC.MaximumConnections, "https connections")
	assert.Equal(t, []string{"127.0.0.0/8"}, c.HttpsRPC.Allow["details"], "https allow")
	assert.Equal(t, 2048, c.Logging.Size, "log size")
	assert.Equal(t, 3, c.Logging.Count, "log count")
	assert.Equal(t, "info", c.Logging.Levels["DEFAULT"], "log level")
}

func TestGetConfigurationErrors(t *testing.T) {
	configurations := []string{
		`return { }`, // no data directory
		`return { data_directory = "no-such-directory" }`,
		`return { data_directory = ".", reinitialise = "sometimes" }`,
		`return { data_directory = ".", rent = { lamports_per_byte_year = 0 } }`,
		`return { data_directory = ".", database = { name = "sub/introd.leveldb" } }`,
		`return "not a table"`,
		`this is not lua`,
	}

	for i, text := range configurations {
		fileName, cleanup := writeConfiguration(t, text)
		_, err := getConfiguration(fileName)
		assert.NotNil(t, err, "%d: accepted: %s", i, text)
		cleanup()
	}
}
