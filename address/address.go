// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package address

import (
	"filippo.io/edwards25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/introd/account"
	"github.com/bitmark-inc/introd/fault"
	"github.com/bitmark-inc/introd/util"
)

// Length - number of bytes in a storage address
const Length = 32

// MaximumSeeds - seed count limit including the bump seed
const MaximumSeeds = 16

// appended after the holder key so a derived address can never be
// confused with some other SHA3-256 digest
const derivationMarker = "ProgramDerivedAddress"

// Address - a storage address
type Address [Length]byte

// Seeds - ordered derivation inputs
type Seeds [][]byte

// RecordSeeds - the seeds locating a record: owner public key then name
func RecordSeeds(owner *account.Account, name string) Seeds {
	return Seeds{owner.PublicKeyBytes(), []byte(name)}
}

// WithBump - a copy of the seeds with the one byte bump appended
func (seeds Seeds) WithBump(bump byte) Seeds {
	s := make(Seeds, len(seeds), len(seeds)+1)
	copy(s, seeds)
	return append(s, []byte{bump})
}

// Create - derive the address for a complete seed list
//
// fails if the digest is a valid ed25519 point, since such an address
// could have a private key and so be signed for directly
func Create(seeds Seeds, holder *account.Account) (Address, error) {
	if len(seeds) > MaximumSeeds {
		return Address{}, fault.TooManySeeds
	}

	h := sha3.New256()
	for _, seed := range seeds {
		h.Write(seed)
	}
	h.Write(holder.PublicKeyBytes())
	h.Write([]byte(derivationMarker))

	var a Address
	copy(a[:], h.Sum(nil))

	if IsOnCurve(a) {
		return Address{}, fault.InvalidSeeds
	}
	return a, nil
}

// Find - search for the highest bump that yields an off-curve address
//
// the result is deterministic: the same seeds and holder always give
// the same address and bump
func Find(seeds Seeds, holder *account.Account) (Address, byte, error) {
	if len(seeds) >= MaximumSeeds {
		return Address{}, 0, fault.TooManySeeds
	}

	for bump := 255; bump >= 0; bump -= 1 {
		a, err := Create(seeds.WithBump(byte(bump)), holder)
		if nil == err {
			return a, byte(bump), nil
		}
	}
	return Address{}, 0, fault.InvalidSeeds
}

// IsOnCurve - true if the bytes decode as an ed25519 point
func IsOnCurve(a Address) bool {
	_, err := new(edwards25519.Point).SetBytes(a[:])
	return nil == err
}

// FromBytes - convert a byte slice to an address
func FromBytes(buffer []byte) (Address, error) {
	var a Address
	if Length != len(buffer) {
		return a, fault.InvalidAddressLength
	}
	copy(a[:], buffer)
	return a, nil
}

// FromBase58 - convert a Base58 string to an address
func FromBase58(s string) (Address, error) {
	return FromBytes(util.FromBase58(s))
}

// Bytes - the address as a byte slice
func (a Address) Bytes() []byte {
	return a[:]
}

// String - Base58 form for the fmt package (for %s)
func (a Address) String() string {
	return util.ToBase58(a[:])
}

// GoString - for the fmt package (for %#v)
func (a Address) GoString() string {
	return "<address:" + util.ToBase58(a[:]) + ">"
}

// MarshalText - Base58 JSON form
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText - convert Base58 text to an address
func (a *Address) UnmarshalText(s []byte) error {
	decoded, err := FromBase58(string(s))
	if nil != err {
		return err
	}
	*a = decoded
	return nil
}
