// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package intro

import (
	"encoding/hex"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/introd/account"
	"github.com/bitmark-inc/introd/address"
	"github.com/bitmark-inc/introd/fault"
	"github.com/bitmark-inc/introd/host"
	"github.com/bitmark-inc/introd/record"
	"github.com/bitmark-inc/introd/rpc/ratelimit"
)

const (
	rateLimitIntro = 200
	rateBurstIntro = 100
)

//go:generate mockgen -source=intro.go -destination=../mocks/host.go -package=mocks

// Host - the request runtime behind the RPC
type Host interface {
	Execute(*host.Request) error
	Record(address.Address) (*host.Entry, error)
	List(*address.Address, int) ([]*host.Entry, *address.Address, error)
	ProgramID() *account.Account
}

// Intro - type for RPC calls
type Intro struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Host    Host
}

// New - create the RPC service
func New(log *logger.L, h Host) *Intro {
	return &Intro{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitIntro, rateBurstIntro),
		Host:    h,
	}
}

// Intro submit
// ------------

// SubmitArguments - a signed request
type SubmitArguments struct {
	Requester   *account.Account  `json:"requester"`   // base58
	Storage     address.Address   `json:"storage"`     // base58
	Nonce       uint64            `json:"nonce"`
	Instruction string            `json:"instruction"` // hex
	Signature   account.Signature `json:"signature"`   // hex
}

// SubmitReply - result of a request
//
// processor failures are reported here with their code, any other
// failure is returned as the RPC error
type SubmitReply struct {
	Storage address.Address `json:"storage"`
	Code    uint32          `json:"code"`
	Error   string          `json:"error,omitempty"`
}

// Submit - execute a signed create or update
func (intro *Intro) Submit(arguments *SubmitArguments, reply *SubmitReply) error {
	if err := ratelimit.Limit(intro.Limiter); nil != err {
		return err
	}

	if nil == arguments || nil == arguments.Requester || nil == arguments.Requester.AccountInterface {
		return fault.MissingParameters
	}

	instruction, err := hex.DecodeString(arguments.Instruction)
	if nil != err {
		return fault.InvalidInstruction
	}

	intro.Log.Infof("submit: requester: %s  storage: %s", arguments.Requester, arguments.Storage)

	request := &host.Request{
		Requester:   arguments.Requester,
		Storage:     arguments.Storage,
		Nonce:       arguments.Nonce,
		Instruction: instruction,
		Signature:   arguments.Signature,
	}
	err = intro.Host.Execute(request)

	reply.Storage = arguments.Storage
	if fault.IsErrInstruction(err) {
		reply.Code = fault.Code(err)
		reply.Error = err.Error()
		return nil
	}
	return err
}

// Intro address
// -------------

// AddressArguments - the inputs of a record address
type AddressArguments struct {
	Owner *account.Account `json:"owner"`
	Name  string           `json:"name"`
}

// AddressReply - a derived record address
type AddressReply struct {
	Storage address.Address  `json:"storage"`
	Bump    uint8            `json:"bump"`
	Program *account.Account `json:"program"`
}

// Address - derive the storage address of an owner's record
func (intro *Intro) Address(arguments *AddressArguments, reply *AddressReply) error {
	if err := ratelimit.Limit(intro.Limiter); nil != err {
		return err
	}

	if nil == arguments || nil == arguments.Owner || nil == arguments.Owner.AccountInterface {
		return fault.MissingParameters
	}

	program := intro.Host.ProgramID()
	a, bump, err := address.Find(address.RecordSeeds(arguments.Owner, arguments.Name), program)
	if nil != err {
		return err
	}

	reply.Storage = a
	reply.Bump = bump
	reply.Program = program
	return nil
}

// Intro get
// ---------

// GetArguments - the address to read
type GetArguments struct {
	Storage address.Address `json:"storage"`
}

// GetReply - a committed record
type GetReply struct {
	Storage address.Address `json:"storage"`
	Balance uint64          `json:"balance"`
	Record  *record.Record  `json:"record"`
}

// Get - read a committed record
func (intro *Intro) Get(arguments *GetArguments, reply *GetReply) error {
	if err := ratelimit.Limit(intro.Limiter); nil != err {
		return err
	}

	if nil == arguments {
		return fault.MissingParameters
	}

	entry, err := intro.Host.Record(arguments.Storage)
	if nil != err {
		return err
	}

	reply.Storage = entry.Address
	reply.Balance = entry.Balance
	reply.Record = entry.Record
	return nil
}

// Intro list
// ----------

// ListArguments - a page of records
type ListArguments struct {
	Start *address.Address `json:"start"` // omit for the first page
	Count int              `json:"count"`
}

// ListReply - records in address order
type ListReply struct {
	Entries []*host.Entry    `json:"entries"`
	Next    *address.Address `json:"next"` // nil when there are no more
}

// List - page through committed records
func (intro *Intro) List(arguments *ListArguments, reply *ListReply) error {
	if nil == arguments {
		return fault.MissingParameters
	}

	if err := ratelimit.LimitN(intro.Limiter, arguments.Count, host.MaximumListCount); nil != err {
		return err
	}

	entries, next, err := intro.Host.List(arguments.Start, arguments.Count)
	if nil != err {
		return err
	}

	reply.Entries = entries
	reply.Next = next
	return nil
}
