// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package host

import (
	"github.com/bitmark-inc/introd/address"
	"github.com/bitmark-inc/introd/fault"
	"github.com/bitmark-inc/introd/record"
	"github.com/bitmark-inc/introd/slot"
	"github.com/bitmark-inc/introd/storage"
)

// maximum entries returned by a single List
const MaximumListCount = 100

// Entry - a committed record with its slot details
type Entry struct {
	Address address.Address `json:"address"`
	Balance uint64          `json:"balance"`
	Record  *record.Record  `json:"record"`
}

// Slot - read a committed slot
func (h *Host) Slot(a address.Address) (*slot.Slot, error) {
	packed := storage.Pool.Slots.Get(a[:])
	if nil == packed {
		return nil, fault.NotFoundStorage
	}
	return slot.Unpack(a, packed)
}

// Record - read a committed record owned by this program
func (h *Host) Record(a address.Address) (*Entry, error) {
	s, err := h.Slot(a)
	if fault.NotFoundStorage == err {
		return nil, fault.RecordNotFound
	}
	if nil != err {
		return nil, err
	}
	return h.entry(s)
}

// List - committed records in address order
//
// returns the entries and the address to start the next call from,
// nil when there are no more
func (h *Host) List(start *address.Address, count int) ([]*Entry, *address.Address, error) {
	if count <= 0 || count > MaximumListCount {
		return nil, nil, fault.InvalidCount
	}

	cursor := storage.Pool.Slots.NewFetchCursor()
	if nil != start {
		cursor.Seek(start[:])
	}

	// one extra to find the next start
	elements, err := cursor.Fetch(count + 1)
	if nil != err {
		return nil, nil, err
	}

	var next *address.Address
	if len(elements) > count {
		a, err := address.FromBytes(elements[count].Key)
		if nil != err {
			return nil, nil, err
		}
		next = &a
		elements = elements[:count]
	}

	entries := make([]*Entry, 0, len(elements))
	for _, e := range elements {
		a, err := address.FromBytes(e.Key)
		if nil != err {
			return nil, nil, err
		}
		s, err := slot.Unpack(a, e.Value)
		if nil != err {
			return nil, nil, err
		}
		entry, err := h.entry(s)
		if fault.RecordNotFound == err {
			continue
		}
		if nil != err {
			return nil, nil, err
		}
		entries = append(entries, entry)
	}
	return entries, next, nil
}

func (h *Host) entry(s *slot.Slot) (*Entry, error) {
	if !s.IsOwnedBy(h.program) {
		return nil, fault.RecordNotFound
	}
	r, err := record.Packed(s.Data).Unpack()
	if nil != err {
		h.log.Criticalf("storage: %s  unpack error: %s", s.Address, err)
		return nil, err
	}
	if !r.IsInitialised() {
		return nil, fault.RecordNotFound
	}
	return &Entry{
		Address: s.Address,
		Balance: s.Balance,
		Record:  r,
	}, nil
}
