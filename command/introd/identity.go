// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/bitmark-inc/introd/account"
	"github.com/bitmark-inc/introd/fault"
	"github.com/bitmark-inc/introd/util"
)

// identity file line prefix
const seedPrefix = "SEED:"

// create a program identity file holding a new random seed
func makeProgramIdentity(testnet bool, fileName string) (*account.Account, error) {
	if util.EnsureFileExists(fileName) {
		return nil, fault.IdentityFileExists
	}

	seed, err := account.NewBase58EncodedSeed(testnet)
	if nil != err {
		return nil, err
	}

	privateKey, err := account.PrivateKeyFromBase58Seed(seed)
	if nil != err {
		return nil, err
	}

	data := seedPrefix + seed + "\n"
	if err = ioutil.WriteFile(fileName, []byte(data), 0600); nil != err {
		return nil, fmt.Errorf("error writing program identity file error: %s", err)
	}

	return privateKey.Account(), nil
}

// read the program account from an identity file
//
// blank lines and lines starting with '#' are ignored
func readProgramIdentity(fileName string) (*account.Account, error) {
	data, err := ioutil.ReadFile(fileName)
	if nil != err {
		return nil, err
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if "" == line || strings.HasPrefix(line, "#") {
			continue
		}
		if !strings.HasPrefix(line, seedPrefix) {
			return nil, fault.CannotDecodeSeed
		}
		privateKey, err := account.PrivateKeyFromBase58Seed(strings.TrimSpace(line[len(seedPrefix):]))
		if nil != err {
			return nil, err
		}
		return privateKey.Account(), nil
	}
	return nil, fault.CannotDecodeSeed
}
