// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package instruction - request tag and payload codec
//
// byte 0 is the operation tag, followed by the name and the message,
// each as a little endian uint32 length and UTF-8 bytes
package instruction

import (
	"encoding/binary"
	"unicode/utf8"

	"github.com/bitmark-inc/introd/fault"
)

// Tag - operation selector
type Tag uint8

// operation tags
const (
	Create Tag = 0
	Update Tag = 1
)

const lengthSize = 4

// Instruction - a decoded request
type Instruction struct {
	Tag     Tag    `json:"tag"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

// String - tag name for the fmt package
func (tag Tag) String() string {
	switch tag {
	case Create:
		return "create"
	case Update:
		return "update"
	default:
		return "unknown"
	}
}

// NewCreate - build a create instruction
func NewCreate(name string, message string) *Instruction {
	return &Instruction{Tag: Create, Name: name, Message: message}
}

// NewUpdate - build an update instruction
func NewUpdate(name string, message string) *Instruction {
	return &Instruction{Tag: Update, Name: name, Message: message}
}

// Pack - encode an instruction as request bytes
func (instruction *Instruction) Pack() []byte {
	buffer := make([]byte, 0, 1+lengthSize+len(instruction.Name)+lengthSize+len(instruction.Message))
	buffer = append(buffer, byte(instruction.Tag))
	buffer = appendString(buffer, instruction.Name)
	return appendString(buffer, instruction.Message)
}

// Unpack - decode request bytes
//
// the whole buffer must be consumed
func Unpack(buffer []byte) (*Instruction, error) {
	if len(buffer) < 1 {
		return nil, fault.InvalidInstruction
	}

	tag := Tag(buffer[0])
	switch tag {
	case Create, Update:
	default:
		return nil, fault.InvalidInstruction
	}
	n := 1

	name, length, err := readString(buffer[n:])
	if nil != err {
		return nil, err
	}
	n += length

	message, length, err := readString(buffer[n:])
	if nil != err {
		return nil, err
	}
	n += length

	if n != len(buffer) {
		return nil, fault.InvalidInstruction
	}

	return &Instruction{
		Tag:     tag,
		Name:    name,
		Message: message,
	}, nil
}

func appendString(buffer []byte, s string) []byte {
	var length [lengthSize]byte
	binary.LittleEndian.PutUint32(length[:], uint32(len(s)))
	buffer = append(buffer, length[:]...)
	return append(buffer, s...)
}

func readString(buffer []byte) (string, int, error) {
	if len(buffer) < lengthSize {
		return "", 0, fault.InvalidInstruction
	}
	length := binary.LittleEndian.Uint32(buffer[:lengthSize])
	if uint64(length) > uint64(len(buffer)-lengthSize) {
		return "", 0, fault.InvalidInstruction
	}
	end := lengthSize + int(length)
	b := buffer[lengthSize:end]
	if !utf8.Valid(b) {
		return "", 0, fault.InvalidInstruction
	}
	return string(b), end, nil
}
