// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package slot_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/introd/account"
	"github.com/bitmark-inc/introd/address"
	"github.com/bitmark-inc/introd/fault"
	"github.com/bitmark-inc/introd/slot"
)

func testHolder(t *testing.T) *account.Account {
	privateKey, err := account.NewPrivateKey(true)
	if nil != err {
		t.Fatalf("new private key error: %s", err)
	}
	return privateKey.Account()
}

func TestUnallocated(t *testing.T) {
	a := address.Address{1, 2, 3}
	s := slot.New(a)

	assert.False(t, s.IsAllocated(), "allocated")
	assert.False(t, s.IsOwnedBy(testHolder(t)), "owned")
	assert.Equal(t, []byte{0x00, 0x00, 0x00}, s.Pack(), "packed")

	unpacked, err := slot.Unpack(a, s.Pack())
	assert.Nil(t, err, "unpack")
	assert.Equal(t, s, unpacked, "round trip")
}

func TestAllocatedRoundTrip(t *testing.T) {
	holder := testHolder(t)
	a := address.Address{9, 8, 7}

	s := &slot.Slot{
		Address: a,
		Owner:   holder,
		Balance: 3981120,
		Data:    make([]byte, 1000),
	}
	s.Data[0] = 1
	s.Data[999] = 0xff

	unpacked, err := slot.Unpack(a, s.Pack())
	if !assert.Nil(t, err, "unpack") {
		return
	}
	assert.True(t, unpacked.IsAllocated(), "allocated")
	assert.True(t, unpacked.IsOwnedBy(holder), "owned by holder")
	assert.False(t, unpacked.IsOwnedBy(testHolder(t)), "owned by other")
	assert.Equal(t, s.Balance, unpacked.Balance, "balance")
	assert.Equal(t, s.Data, unpacked.Data, "data")
	assert.Equal(t, a, unpacked.Address, "address")
}

func TestTruncated(t *testing.T) {
	holder := testHolder(t)
	s := &slot.Slot{
		Owner:   holder,
		Balance: 300,
		Data:    []byte("some data"),
	}
	packed := s.Pack()

	for i := 0; i < len(packed); i += 1 {
		_, err := slot.Unpack(address.Address{}, packed[:i])
		assert.NotNil(t, err, "length %d", i)
	}

	_, err := slot.Unpack(address.Address{}, append(packed, 0x00))
	assert.Equal(t, fault.TruncatedSlot, err, "trailing byte")
}

func TestBadOwner(t *testing.T) {
	buffer := []byte{0x03, 0x01, 0x02, 0x03, 0x00, 0x00}
	_, err := slot.Unpack(address.Address{}, buffer)
	assert.Equal(t, fault.UnexpectedSlotOwnerAccount, err, "owner")
}
