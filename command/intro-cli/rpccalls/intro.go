// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"encoding/hex"
	"time"

	"github.com/bitmark-inc/introd/account"
	"github.com/bitmark-inc/introd/address"
	"github.com/bitmark-inc/introd/host"
	"github.com/bitmark-inc/introd/instruction"
	"github.com/bitmark-inc/introd/rpc/intro"
)

// WriteData - a create or update for one owner's record
type WriteData struct {
	Owner   *account.PrivateKey
	Name    string
	Message string
}

// WriteReply - result of a create or update
type WriteReply struct {
	Storage address.Address `json:"storage"`
	Bump    uint8           `json:"bump"`
	Code    uint32          `json:"code"`
	Error   string          `json:"error,omitempty"`
}

// Address - derive the storage address of an owner's record
func (client *Client) Address(owner *account.Account, name string) (*intro.AddressReply, error) {
	arguments := intro.AddressArguments{
		Owner: owner,
		Name:  name,
	}

	client.printJson("Address Request", arguments)

	var reply intro.AddressReply
	if err := client.client.Call("Intro.Address", &arguments, &reply); nil != err {
		return nil, err
	}

	client.printJson("Address Reply", reply)

	return &reply, nil
}

// Create - sign and submit a create instruction
func (client *Client) Create(data *WriteData) (*WriteReply, error) {
	return client.write(data, instruction.NewCreate(data.Name, data.Message))
}

// Update - sign and submit an update instruction
func (client *Client) Update(data *WriteData) (*WriteReply, error) {
	return client.write(data, instruction.NewUpdate(data.Name, data.Message))
}

func (client *Client) write(data *WriteData, ins *instruction.Instruction) (*WriteReply, error) {

	owner := data.Owner.Account()

	derived, err := client.Address(owner, data.Name)
	if nil != err {
		return nil, err
	}

	request := &host.Request{
		Requester:   owner,
		Storage:     derived.Storage,
		Nonce:       uint64(time.Now().UTC().UnixNano()),
		Instruction: ins.Pack(),
	}
	request.Sign(data.Owner)

	arguments := intro.SubmitArguments{
		Requester:   request.Requester,
		Storage:     request.Storage,
		Nonce:       request.Nonce,
		Instruction: hex.EncodeToString(request.Instruction),
		Signature:   request.Signature,
	}

	client.printJson("Submit Request", arguments)

	var reply intro.SubmitReply
	if err := client.client.Call("Intro.Submit", &arguments, &reply); nil != err {
		return nil, err
	}

	client.printJson("Submit Reply", reply)

	return &WriteReply{
		Storage: reply.Storage,
		Bump:    derived.Bump,
		Code:    reply.Code,
		Error:   reply.Error,
	}, nil
}

// Get - read the committed record at an address
func (client *Client) Get(storage address.Address) (*intro.GetReply, error) {
	arguments := intro.GetArguments{
		Storage: storage,
	}

	var reply intro.GetReply
	if err := client.client.Call("Intro.Get", &arguments, &reply); nil != err {
		return nil, err
	}

	client.printJson("Get Reply", reply)

	return &reply, nil
}

// List - fetch one page of records
func (client *Client) List(start *address.Address, count int) (*intro.ListReply, error) {
	arguments := intro.ListArguments{
		Start: start,
		Count: count,
	}

	client.printJson("List Request", arguments)

	var reply intro.ListReply
	if err := client.client.Call("Intro.List", &arguments, &reply); nil != err {
		return nil, err
	}

	return &reply, nil
}
