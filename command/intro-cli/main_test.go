// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/introd/account"
	"github.com/bitmark-inc/introd/command/intro-cli/configuration"
	"github.com/bitmark-inc/introd/fault"
)

const testPassword = "password-for-testing"

func run(t *testing.T, arguments ...string) (string, error) {
	app := newApp()
	buffer := &bytes.Buffer{}
	app.Writer = buffer
	app.ErrWriter = ioutil.Discard
	err := app.Run(append([]string{"intro-cli"}, arguments...))
	return buffer.String(), err
}

func TestSetupAddInfo(t *testing.T) {
	dir, err := ioutil.TempDir("", "intro-cli")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	defer os.RemoveAll(dir)

	fileName := filepath.Join(dir, "sub", "intro-cli.json")

	_, err = run(t, "-c", fileName, "-p", testPassword, "-i", "alice",
		"setup", "-C", "127.0.0.1:2230", "-d", "first")
	assert.Nil(t, err, "setup")

	_, err = run(t, "-c", fileName, "-p", testPassword, "-i", "alice",
		"setup", "-C", "127.0.0.1:2230", "-d", "first")
	assert.NotNil(t, err, "setup overwrote configuration")

	_, err = run(t, "-c", fileName, "-p", testPassword, "-i", "bob",
		"add", "-d", "second")
	assert.Nil(t, err, "add")

	_, err = run(t, "-c", fileName, "-p", testPassword, "-i", "bob",
		"add", "-d", "again")
	assert.Equal(t, fault.IdentityNameAlreadyExists, err, "duplicate add")

	out, err := run(t, "-c", fileName, "info")
	assert.Nil(t, err, "info")

	var info configInfo
	err = json.Unmarshal([]byte(out), &info)
	assert.Nil(t, err, "info output: %s", out)
	assert.Equal(t, "alice", info.DefaultIdentity, "default identity")
	assert.True(t, info.TestNet, "testnet")
	assert.Equal(t, "127.0.0.1:2230", info.Connect, "connect")
	assert.Equal(t, 2, len(info.Identities), "identities")
	assert.Equal(t, "alice", info.Identities[0].Name, "sorted")
	assert.Equal(t, "bob", info.Identities[1].Name, "sorted")
	assert.False(t, strings.Contains(out, "salt"), "private data in info")

	config, err := configuration.Load(fileName)
	assert.Nil(t, err, "load")
	private, err := config.Private(testPassword, "bob")
	assert.Nil(t, err, "decrypt")
	assert.True(t, private.PrivateKey.IsTesting(), "testnet key")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	assert.Nil(t, err, "version")
	assert.Equal(t, version+"\n", out, "version output")
}

func TestCheckRecord(t *testing.T) {
	_, _, err := checkRecord("", "message")
	assert.Equal(t, ErrRequiredName, err, "blank name")

	_, _, err = checkRecord("alice", strings.Repeat("x", 1000))
	assert.Equal(t, ErrRecordTooLarge, err, "oversize")

	name, message, err := checkRecord("alice", "hello")
	assert.Nil(t, err, "valid record")
	assert.Equal(t, "alice", name, "name")
	assert.Equal(t, "hello", message, "message")
}

func TestCheckConnect(t *testing.T) {
	items := []struct {
		connect string
		err     error
	}{
		{"", ErrRequiredConnect},
		{"localhost", fault.InvalidIpAddress},
		{"localhost:0", fault.InvalidPortNumber},
		{"localhost:http", fault.InvalidPortNumber},
		{"localhost:2230", nil},
		{"[::1]:2230", nil},
	}

	for i, item := range items {
		_, err := checkConnect(item.connect)
		assert.Equal(t, item.err, err, "%d: connect: %q", i, item.connect)
	}
}

func TestCheckSeed(t *testing.T) {
	seed, err := checkSeed("", true)
	assert.Nil(t, err, "new seed")

	same, err := checkSeed(seed, true)
	assert.Nil(t, err, "existing seed")
	assert.Equal(t, seed, same, "seed changed")

	_, err = checkSeed(seed, false)
	assert.Equal(t, ErrSeedNetwork, err, "network mismatch")

	_, err = checkSeed("not-a-seed", true)
	assert.NotNil(t, err, "invalid seed")
}

func TestCheckOwner(t *testing.T) {
	config := configuration.New(true, "127.0.0.1:2230")
	seed, _ := account.NewBase58EncodedSeed(true)
	err := config.AddIdentity("alice", "identity", seed, testPassword)
	if nil != err {
		t.Fatalf("add identity error: %s", err)
	}

	alice, err := checkOwner("", config)
	assert.Nil(t, err, "default owner")
	assert.Equal(t, config.Identities["alice"].Account, alice.String(), "default account")

	other, _ := account.NewBase58EncodedSeed(true)
	privateKey, _ := account.PrivateKeyFromBase58Seed(other)
	acc, err := checkOwner(privateKey.Account().String(), config)
	assert.Nil(t, err, "base58 owner")
	assert.True(t, privateKey.Account().Equal(acc), "base58 account")

	_, err = checkOwner("nobody", config)
	assert.NotNil(t, err, "unknown owner")
}
