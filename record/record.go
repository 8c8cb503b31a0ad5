// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package record - the persisted student introduction
//
// Layout, all lengths little endian uint32:
//
//   initialised(1) ++ len(name)(4) ++ name ++ len(message)(4) ++ message
//
// the encoding is written at the start of a MaxRecordSize storage
// buffer, the remainder of the buffer is zero padding
package record

import (
	"encoding/binary"
	"unicode/utf8"

	"github.com/bitmark-inc/introd/fault"
)

// MaxRecordSize - capacity of every record storage allocation
const MaxRecordSize = 1000

// byte sizes of the fixed fields
const (
	flagSize   = 1
	lengthSize = 4
)

// Record - the unpacked record
type Record struct {
	Initialised bool   `json:"initialised"`
	Name        string `json:"name"`
	Message     string `json:"message"`
}

// Packed - packed records are just a byte slice
type Packed []byte

// Size - number of bytes the packed form of a name and message occupies
func Size(name string, message string) int {
	return flagSize + lengthSize + len(name) + lengthSize + len(message)
}

// Fits - true if a record with this name and message fits in storage
func Fits(name string, message string) bool {
	return Size(name, message) <= MaxRecordSize
}

// IsInitialised - true once the record has been written by create
func (record *Record) IsInitialised() bool {
	return record.Initialised
}

// Size - number of bytes the packed record occupies
func (record *Record) Size() int {
	return Size(record.Name, record.Message)
}

// Pack - flag followed by the length prefixed name and message
func (record *Record) Pack() Packed {
	buffer := make([]byte, 0, record.Size())
	if record.Initialised {
		buffer = append(buffer, 1)
	} else {
		buffer = append(buffer, 0)
	}
	buffer = appendString(buffer, record.Name)
	buffer = appendString(buffer, record.Message)
	return buffer
}

// PackInto - write the packed record at the start of a storage buffer
//
// bytes after the record are left unchanged
func (record *Record) PackInto(storage []byte) error {
	if record.Size() > len(storage) {
		return fault.InvalidDataLength
	}
	copy(storage, record.Pack())
	return nil
}

// Unpack - decode a record from the start of a buffer
//
// anything after the message is padding and is ignored
func (packed Packed) Unpack() (*Record, error) {
	if len(packed) < flagSize {
		return nil, fault.CorruptRecord
	}

	record := &Record{}
	switch packed[0] {
	case 0:
		record.Initialised = false
	case 1:
		record.Initialised = true
	default:
		return nil, fault.CorruptRecord
	}
	n := flagSize

	name, length, err := readString(packed[n:])
	if nil != err {
		return nil, err
	}
	n += length
	record.Name = name

	message, _, err := readString(packed[n:])
	if nil != err {
		return nil, err
	}
	record.Message = message

	return record, nil
}

func appendString(buffer []byte, s string) []byte {
	var length [lengthSize]byte
	binary.LittleEndian.PutUint32(length[:], uint32(len(s)))
	buffer = append(buffer, length[:]...)
	return append(buffer, s...)
}

// read a length prefixed UTF-8 string, returning the bytes consumed
func readString(buffer []byte) (string, int, error) {
	if len(buffer) < lengthSize {
		return "", 0, fault.CorruptRecord
	}
	length := binary.LittleEndian.Uint32(buffer[:lengthSize])
	if uint64(length) > uint64(len(buffer)-lengthSize) {
		return "", 0, fault.CorruptRecord
	}
	end := lengthSize + int(length)
	b := buffer[lengthSize:end]
	if !utf8.Valid(b) {
		return "", 0, fault.CorruptRecord
	}
	return string(b), end, nil
}
