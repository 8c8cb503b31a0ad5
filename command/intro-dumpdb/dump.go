// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/bitmark-inc/introd/account"
	"github.com/bitmark-inc/introd/address"
	"github.com/bitmark-inc/introd/record"
	"github.com/bitmark-inc/introd/slot"
	"github.com/bitmark-inc/introd/storage"
)

type dumper struct {
	w       io.Writer
	raw     bool
	verbose bool
}

// one slot as printed
type item struct {
	Address address.Address  `json:"address"`
	Owner   *account.Account `json:"owner"`
	Balance uint64           `json:"balance"`
	Size    int              `json:"size"`
	Record  *record.Record   `json:"record,omitempty"`
	Data    string           `json:"data,omitempty"` // hex, only for raw output
	Error   string           `json:"error,omitempty"`
}

// print count slots from start, zero count prints every slot
func (d *dumper) dump(start *address.Address, count int) error {
	if nil == d.w {
		d.w = os.Stdout
	}

	cursor := storage.Pool.Slots.NewFetchCursor()
	if nil != start {
		cursor.Seek(start[:])
	}

	if 0 == count {
		return cursor.Map(d.print)
	}

	elements, err := cursor.Fetch(count)
	if nil != err {
		return err
	}
	for _, e := range elements {
		err := d.print(e.Key, e.Value)
		if nil != err {
			return err
		}
	}
	return nil
}

// a corrupt slot is reported in place and does not stop the dump
func (d *dumper) print(key []byte, value []byte) error {
	a, err := address.FromBytes(key)
	if nil != err {
		return err
	}

	i := item{
		Address: a,
	}

	s, err := slot.Unpack(a, value)
	if nil != err {
		i.Error = err.Error()
		return d.write(&i)
	}

	i.Owner = s.Owner
	i.Balance = s.Balance
	i.Size = len(s.Data)

	if d.raw {
		i.Data = fmt.Sprintf("%x", s.Data)
	} else if len(s.Data) > 0 {
		r, err := record.Packed(s.Data).Unpack()
		if nil != err {
			i.Error = err.Error()
		} else {
			i.Record = r
		}
	}
	return d.write(&i)
}

func (d *dumper) write(i *item) error {
	var b []byte
	var err error
	if d.verbose {
		b, err = json.MarshalIndent(i, "", "  ")
	} else {
		b, err = json.Marshal(i)
	}
	if nil != err {
		return err
	}
	_, err = fmt.Fprintf(d.w, "%s\n", b)
	return err
}
