// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"
	"crypto/rand"

	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/introd/fault"
	"github.com/bitmark-inc/introd/util"
)

// seed layout: header(3) ++ network(1) ++ secret(32) ++ checksum(4)
var (
	seedHeader = []byte{0x5a, 0xfe, 0x01}

	// the secret is expanded by sealing a fixed index under it
	seedNonce     = [24]byte{}
	authSeedIndex = [16]byte{
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x03, 0xe7,
	}
)

const (
	seedHeaderLength   = 3
	seedNetworkLength  = 1
	seedSecretLength   = 32
	seedChecksumLength = 4
	seedLength         = seedHeaderLength + seedNetworkLength + seedSecretLength + seedChecksumLength
)

// NewBase58EncodedSeed - generate a random Base58 seed
func NewBase58EncodedSeed(testnet bool) (string, error) {
	secret := make([]byte, seedSecretLength)
	if _, err := rand.Read(secret); nil != err {
		return "", err
	}

	network := byte(0x00)
	if testnet {
		network = 0x01
	}

	seed := make([]byte, 0, seedLength)
	seed = append(seed, seedHeader...)
	seed = append(seed, network)
	seed = append(seed, secret...)
	checksum := sha3.Sum256(seed)
	seed = append(seed, checksum[:seedChecksumLength]...)

	return util.ToBase58(seed), nil
}

// PrivateKeyFromBase58Seed - this converts a Base58 encoded seed string and returns a private key
func PrivateKeyFromBase58Seed(seedBase58Encoded string) (*PrivateKey, error) {

	seed := util.FromBase58(seedBase58Encoded)
	if 0 == len(seed) {
		return nil, fault.CannotDecodeSeed
	}
	if seedLength != len(seed) {
		return nil, fault.InvalidSeedLength
	}

	checksumStart := seedLength - seedChecksumLength
	checksum := sha3.Sum256(seed[:checksumStart])
	if !bytes.Equal(checksum[:seedChecksumLength], seed[checksumStart:]) {
		return nil, fault.ChecksumMismatch
	}

	if !bytes.Equal(seedHeader, seed[:seedHeaderLength]) {
		return nil, fault.InvalidSeedHeader
	}

	testnet := 0x01 == seed[seedHeaderLength]

	var secret [seedSecretLength]byte
	copy(secret[:], seed[seedHeaderLength+seedNetworkLength:checksumStart])

	expanded := secretbox.Seal([]byte{}, authSeedIndex[:], &seedNonce, &secret)

	privateKey := &PrivateKey{
		PrivateKeyInterface: &ED25519PrivateKey{
			Test:       testnet,
			PrivateKey: ed25519.NewKeyFromSeed(expanded[:ed25519.SeedSize]),
		},
	}
	return privateKey, nil
}
