// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package address_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/introd/account"
	"github.com/bitmark-inc/introd/address"
	"github.com/bitmark-inc/introd/fault"
)

func makeAccount(t *testing.T) *account.Account {
	privateKey, err := account.NewPrivateKey(true)
	if nil != err {
		t.Fatalf("generate key error: %s", err)
	}
	return privateKey.Account()
}

func TestFindIsDeterministic(t *testing.T) {
	owner := makeAccount(t)
	program := makeAccount(t)

	seeds := address.RecordSeeds(owner, "alice")
	a1, bump1, err := address.Find(seeds, program)
	assert.Nil(t, err, "first find")
	a2, bump2, err := address.Find(seeds, program)
	assert.Nil(t, err, "second find")

	assert.Equal(t, a1, a2, "address differs")
	assert.Equal(t, bump1, bump2, "bump differs")
	assert.False(t, address.IsOnCurve(a1), "derived address is on curve")

	created, err := address.Create(seeds.WithBump(bump1), program)
	assert.Nil(t, err, "create with found bump")
	assert.Equal(t, a1, created, "create does not reproduce find")
}

func TestFindSeparatesInputs(t *testing.T) {
	owner := makeAccount(t)
	other := makeAccount(t)
	program := makeAccount(t)
	otherProgram := makeAccount(t)

	base, _, err := address.Find(address.RecordSeeds(owner, "alice"), program)
	assert.Nil(t, err, "find")

	differentOwner, _, err := address.Find(address.RecordSeeds(other, "alice"), program)
	assert.Nil(t, err, "find")
	assert.NotEqual(t, base, differentOwner, "owner not part of derivation")

	differentName, _, err := address.Find(address.RecordSeeds(owner, "bob"), program)
	assert.Nil(t, err, "find")
	assert.NotEqual(t, base, differentName, "name not part of derivation")

	differentProgram, _, err := address.Find(address.RecordSeeds(owner, "alice"), otherProgram)
	assert.Nil(t, err, "find")
	assert.NotEqual(t, base, differentProgram, "holder not part of derivation")
}

// a bump below 255 means every higher bump gave an on-curve address
func TestCreateRejectsOnCurve(t *testing.T) {
	owner := makeAccount(t)
	program := makeAccount(t)

	for i := 0; i < 200; i += 1 {
		seeds := address.RecordSeeds(owner, fmt.Sprintf("name-%d", i))
		_, bump, err := address.Find(seeds, program)
		assert.Nil(t, err, "find")
		if 255 == bump {
			continue
		}
		_, err = address.Create(seeds.WithBump(255), program)
		assert.Equal(t, fault.InvalidSeeds, err, "on-curve address accepted")
		return
	}
	t.Fatal("no name needed a bump below 255")
}

func TestSeedLimits(t *testing.T) {
	program := makeAccount(t)

	seeds := make(address.Seeds, address.MaximumSeeds)
	for i := range seeds {
		seeds[i] = []byte{byte(i)}
	}

	_, _, err := address.Find(seeds, program)
	assert.Equal(t, fault.TooManySeeds, err, "find left no room for bump")

	_, err = address.Create(append(seeds, []byte{0}), program)
	assert.Equal(t, fault.TooManySeeds, err, "create accepted too many seeds")

	// a long name is a valid seed
	long := make([]byte, 1000)
	_, _, err = address.Find(address.Seeds{long}, program)
	assert.Nil(t, err, "long seed rejected")
}

func TestWithBumpDoesNotAlias(t *testing.T) {
	seeds := make(address.Seeds, 1, 4)
	seeds[0] = []byte("a")

	first := seeds.WithBump(1)
	second := seeds.WithBump(2)
	assert.Equal(t, []byte{1}, first[1], "first bump overwritten")
	assert.Equal(t, []byte{2}, second[1], "wrong second bump")
	assert.Equal(t, 1, len(seeds), "original seeds modified")
}

func TestText(t *testing.T) {
	program := makeAccount(t)
	a, _, err := address.Find(address.Seeds{[]byte("x")}, program)
	assert.Nil(t, err, "find")

	buffer, err := json.Marshal(a)
	assert.Nil(t, err, "marshal")
	assert.Equal(t, `"`+a.String()+`"`, string(buffer), "wrong JSON")

	var restored address.Address
	assert.Nil(t, json.Unmarshal(buffer, &restored), "unmarshal")
	assert.Equal(t, a, restored, "wrong round trip")

	_, err = address.FromBase58("abc")
	assert.Equal(t, fault.InvalidAddressLength, err, "short address accepted")
	_, err = address.FromBytes(make([]byte, 31))
	assert.Equal(t, fault.InvalidAddressLength, err, "short bytes accepted")
}
