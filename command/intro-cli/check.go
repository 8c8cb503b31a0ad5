// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"net"
	"os"
	"strconv"

	"github.com/bitmark-inc/introd/account"
	"github.com/bitmark-inc/introd/address"
	"github.com/bitmark-inc/introd/command/intro-cli/configuration"
	"github.com/bitmark-inc/introd/fault"
	"github.com/bitmark-inc/introd/record"
)

var (
	ErrRequiredConnect     = fault.InvalidError("connect is required")
	ErrRequiredDescription = fault.InvalidError("description is required")
	ErrRequiredIdentity    = fault.InvalidError("identity is required")
	ErrRequiredName        = fault.InvalidError("record name is required")
	ErrRecordTooLarge      = fault.LengthError("name and message exceed the record size")
	ErrSeedNetwork         = fault.InvalidError("seed is for a different network")
)

// returns:
//   isDir  - true if a directory
//   err    - file does not exist
func checkFileExists(name string) (bool, error) {
	info, err := os.Stat(name)
	if nil != err {
		return false, err
	}
	return info.IsDir(), nil
}

// identity name is required, falls back to the configured default
func checkName(name string, config *configuration.Configuration) (string, error) {
	if "" == name && nil != config {
		name = config.DefaultIdentity
	}
	if "" == name {
		return "", ErrRequiredIdentity
	}
	return name, nil
}

// connect is required as HOST:PORT
func checkConnect(connect string) (string, error) {
	if "" == connect {
		return "", ErrRequiredConnect
	}
	_, port, err := net.SplitHostPort(connect)
	if nil != err {
		return "", fault.InvalidIpAddress
	}
	n, err := strconv.Atoi(port)
	if nil != err || n < 1 || n > 65535 {
		return "", fault.InvalidPortNumber
	}
	return connect, nil
}

// description is required
func checkDescription(description string) (string, error) {
	if "" == description {
		return "", ErrRequiredDescription
	}
	return description, nil
}

// optional fingerprint must be hex
func checkFingerprint(fingerprint string) (string, error) {
	if "" == fingerprint {
		return "", nil
	}
	_, err := hex.DecodeString(fingerprint)
	if nil != err {
		return "", err
	}
	return fingerprint, nil
}

// blank makes a new seed, otherwise it must decode for the network
func checkSeed(seed string, testnet bool) (string, error) {
	if "" == seed {
		return account.NewBase58EncodedSeed(testnet)
	}

	privateKey, err := account.PrivateKeyFromBase58Seed(seed)
	if nil != err {
		return "", err
	}
	if testnet != privateKey.IsTesting() {
		return "", ErrSeedNetwork
	}
	return seed, nil
}

// record name is required and must fit with its message
func checkRecord(name string, message string) (string, string, error) {
	if "" == name {
		return "", "", ErrRequiredName
	}
	if !record.Fits(name, message) {
		return "", "", ErrRecordTooLarge
	}
	return name, message, nil
}

// owner is an identity name or a base58 account
func checkOwner(owner string, config *configuration.Configuration) (*account.Account, error) {
	name, err := checkName(owner, config)
	if nil != err {
		return nil, err
	}

	if acc, err := config.Account(name); nil == err {
		return acc, nil
	}
	return account.AccountFromBase58(name)
}

// optional base58 storage address
func checkAddress(s string) (*address.Address, error) {
	if "" == s {
		return nil, nil
	}
	a, err := address.FromBase58(s)
	if nil != err {
		return nil, err
	}
	return &a, nil
}
