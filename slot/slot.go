// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package slot

import (
	"github.com/bitmark-inc/introd/account"
	"github.com/bitmark-inc/introd/address"
	"github.com/bitmark-inc/introd/fault"
	"github.com/bitmark-inc/introd/util"
)

// MaximumDataSize - largest data area a slot can carry
const MaximumDataSize = 65536

// Slot - a storage location
//
// a slot with no owner has never been allocated
type Slot struct {
	Address address.Address  `json:"address"`
	Owner   *account.Account `json:"owner"`
	Balance uint64           `json:"balance"`
	Data    []byte           `json:"-"`
}

// New - an empty unallocated slot
func New(a address.Address) *Slot {
	return &Slot{
		Address: a,
	}
}

// IsAllocated - true once an owner has been assigned
func (slot *Slot) IsAllocated() bool {
	return nil != slot.Owner && nil != slot.Owner.AccountInterface
}

// IsOwnedBy - true if the holder owns this slot
func (slot *Slot) IsOwnedBy(holder *account.Account) bool {
	return slot.IsAllocated() && slot.Owner.Equal(holder)
}

// Pack - the slot value; the address is the storage key and is not included
//
//   varint(len owner) ++ owner ++ varint(balance) ++ varint(len data) ++ data
func (slot *Slot) Pack() []byte {
	var owner []byte
	if slot.IsAllocated() {
		owner = slot.Owner.Bytes()
	}

	buffer := util.ToVarint64(uint64(len(owner)))
	buffer = append(buffer, owner...)
	buffer = append(buffer, util.ToVarint64(slot.Balance)...)
	buffer = append(buffer, util.ToVarint64(uint64(len(slot.Data)))...)
	return append(buffer, slot.Data...)
}

// Unpack - restore a slot from its packed value
func Unpack(a address.Address, buffer []byte) (*Slot, error) {
	slot := New(a)

	ownerLength, n := util.ClippedVarint64(buffer, 0, 8192)
	if 0 == n {
		return nil, fault.TruncatedSlot
	}
	if ownerLength > 0 {
		if n+ownerLength > len(buffer) {
			return nil, fault.TruncatedSlot
		}
		owner, err := account.AccountFromBytes(buffer[n : n+ownerLength])
		if nil != err {
			return nil, fault.UnexpectedSlotOwnerAccount
		}
		slot.Owner = owner
		n += ownerLength
	}

	balance, balanceLength := util.FromVarint64(buffer[n:])
	if 0 == balanceLength {
		return nil, fault.TruncatedSlot
	}
	slot.Balance = balance
	n += balanceLength

	dataLength, dataLengthLength := util.ClippedVarint64(buffer[n:], 0, MaximumDataSize)
	if 0 == dataLengthLength {
		return nil, fault.TruncatedSlot
	}
	n += dataLengthLength
	if n+dataLength != len(buffer) {
		return nil, fault.TruncatedSlot
	}
	if dataLength > 0 {
		slot.Data = make([]byte, dataLength)
		copy(slot.Data, buffer[n:])
	}

	return slot, nil
}
