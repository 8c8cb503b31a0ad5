// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/introd/account"
	"github.com/bitmark-inc/introd/fault"
)

// Configuration - configuration file data format
type Configuration struct {
	DefaultIdentity string              `json:"default_identity"`
	TestNet         bool                `json:"testnet"`
	Connect         string              `json:"connect"`
	Fingerprint     string              `json:"fingerprint,omitempty"` // hex SHA3-256 of the server certificate
	Identities      map[string]Identity `json:"identities"`
}

// Identity - mix of plain and encrypted data
type Identity struct {
	Description string `json:"description"`
	Account     string `json:"account"`
	Data        string `json:"data"`
	Salt        string `json:"salt"`
}

// New - empty configuration
func New(testnet bool, connect string) *Configuration {
	return &Configuration{
		TestNet:    testnet,
		Connect:    connect,
		Identities: make(map[string]Identity),
	}
}

// Load - read the configuration
func Load(fileName string) (*Configuration, error) {

	fileName, err := filepath.Abs(filepath.Clean(fileName))
	if nil != err {
		return nil, err
	}

	f, err := os.Open(fileName)
	if nil != err {
		return nil, err
	}
	defer f.Close()

	config := &Configuration{}
	err = json.NewDecoder(f).Decode(config)
	if nil != err {
		return nil, err
	}
	if nil == config.Identities {
		config.Identities = make(map[string]Identity)
	}
	return config, nil
}

// Save - write the configuration, readable only by its owner
func Save(fileName string, config *Configuration) error {

	b, err := json.MarshalIndent(config, "", "  ")
	if nil != err {
		return err
	}
	b = append(b, '\n')

	// write to a temporary then rename so a failed write keeps the old file
	tempName := fileName + ".new"
	err = ioutil.WriteFile(tempName, b, 0600)
	if nil != err {
		return err
	}
	return os.Rename(tempName, fileName)
}

// Identity - find identity for a given name
func (config *Configuration) Identity(name string) (*Identity, error) {
	id, ok := config.Identities[name]
	if !ok {
		return nil, fault.IdentityNameNotFound
	}
	return &id, nil
}

// Account - find identity for a given name and convert to an account
func (config *Configuration) Account(name string) (*account.Account, error) {
	id, err := config.Identity(name)
	if nil != err {
		return nil, err
	}
	return account.AccountFromBase58(id.Account)
}

// Private - decrypt the private data of a named identity
func (config *Configuration) Private(password string, name string) (*Private, error) {
	id, err := config.Identity(name)
	if nil != err {
		return nil, err
	}
	return decryptIdentity(password, id)
}

// AddIdentity - store encrypted identity
func (config *Configuration) AddIdentity(name string, description string, seed string, password string) error {

	if _, ok := config.Identities[name]; ok {
		return fault.IdentityNameAlreadyExists
	}

	privateKey, err := account.PrivateKeyFromBase58Seed(seed)
	if nil != err {
		return err
	}

	salt, secretKey, err := hashPassword(password)
	if nil != err {
		return err
	}

	encrypted, err := encryptData(seed, secretKey)
	if nil != err {
		return err
	}

	config.Identities[name] = Identity{
		Description: description,
		Account:     privateKey.Account().String(),
		Data:        encrypted,
		Salt:        salt.String(),
	}
	if "" == config.DefaultIdentity {
		config.DefaultIdentity = name
	}

	return nil
}

// ChangePassword - re-encrypt a named identity under a new password
func (config *Configuration) ChangePassword(name string, oldPassword string, newPassword string) error {
	private, err := config.Private(oldPassword, name)
	if nil != err {
		return err
	}

	salt, secretKey, err := hashPassword(newPassword)
	if nil != err {
		return err
	}

	encrypted, err := encryptData(private.Seed, secretKey)
	if nil != err {
		return err
	}

	id := config.Identities[name]
	id.Data = encrypted
	id.Salt = salt.String()
	config.Identities[name] = id

	return nil
}
