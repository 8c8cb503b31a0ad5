// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package processor

import (
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/introd/account"
	"github.com/bitmark-inc/introd/address"
	"github.com/bitmark-inc/introd/fault"
	"github.com/bitmark-inc/introd/instruction"
	"github.com/bitmark-inc/introd/record"
	"github.com/bitmark-inc/introd/slot"
)

// ReinitialisePolicy - what create does with a slot that already holds a record
type ReinitialisePolicy int

// reinitialise policies
const (
	Reject ReinitialisePolicy = iota
	Allow
)

// Options - processor behaviour
type Options struct {
	Reinitialise ReinitialisePolicy
}

// Requester - the identity submitting the request
type Requester struct {
	Account  *account.Account
	IsSigner bool
}

// Allocation - a request to the host to create storage
type Allocation struct {
	Payer   Requester
	Size    int
	Balance uint64
	Owner   *account.Account
	Seeds   address.Seeds
}

//go:generate mockgen -source=processor.go -destination=mocks/host.go -package=mocks

// Host - services the processor needs from the runtime
type Host interface {
	MinimumBalance(size int) uint64
	Allocate(target *slot.Slot, allocation *Allocation) error
}

// Context - everything a single request may touch
type Context struct {
	ProgramID *account.Account
	Requester Requester
	Storage   *slot.Slot
	Host      Host
}

// Processor - executes decoded instructions
type Processor struct {
	log     *logger.L
	options Options
}

// New - create a processor
func New(log *logger.L, options Options) *Processor {
	return &Processor{
		log:     log,
		options: options,
	}
}

// PolicyFromString - parse a configuration value
func PolicyFromString(s string) (ReinitialisePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "reject":
		return Reject, nil
	case "allow":
		return Allow, nil
	default:
		return Reject, fault.InvalidPolicy
	}
}

// String - policy name for the fmt package
func (policy ReinitialisePolicy) String() string {
	switch policy {
	case Reject:
		return "reject"
	case Allow:
		return "allow"
	default:
		return "unknown"
	}
}

// Process - decode and run one instruction
func (p *Processor) Process(ctx *Context, data []byte) error {
	instr, err := instruction.Unpack(data)
	if nil != err {
		p.log.Debugf("unpack error: %s", err)
		return err
	}

	p.log.Debugf("%s: name: %q  storage: %s", instr.Tag, instr.Name, ctx.Storage.Address)

	switch instr.Tag {
	case instruction.Create:
		err = p.create(ctx, instr.Name, instr.Message)
	case instruction.Update:
		err = p.update(ctx, instr.Name, instr.Message)
	default:
		err = fault.InvalidInstruction
	}

	if nil != err {
		p.log.Infof("%s: name: %q  error: %s", instr.Tag, instr.Name, err)
	}
	return err
}

func (p *Processor) create(ctx *Context, name string, message string) error {
	if !isSigner(ctx) {
		return fault.MissingSignature
	}

	seeds := address.RecordSeeds(ctx.Requester.Account, name)
	expected, bump, err := address.Find(seeds, ctx.ProgramID)
	if nil != err {
		return err
	}

	if expected != ctx.Storage.Address {
		return fault.InvalidAddress
	}

	if !record.Fits(name, message) {
		return fault.InvalidDataLength
	}

	allocate := true
	if ctx.Storage.IsOwnedBy(ctx.ProgramID) {
		switch p.options.Reinitialise {
		case Allow:
			allocate = false
		default:
			existing, err := record.Packed(ctx.Storage.Data).Unpack()
			if nil == err && existing.IsInitialised() {
				return fault.AlreadyInitialised
			}
		}
	} else if ctx.Storage.IsAllocated() && Allow == p.options.Reinitialise {
		return fault.IllegalOwner
	}

	if allocate {
		allocation := &Allocation{
			Payer:   ctx.Requester,
			Size:    record.MaxRecordSize,
			Balance: ctx.Host.MinimumBalance(record.MaxRecordSize),
			Owner:   ctx.ProgramID,
			Seeds:   seeds.WithBump(bump),
		}
		err = ctx.Host.Allocate(ctx.Storage, allocation)
		if nil != err {
			return err
		}
		p.log.Debugf("allocated: %s  balance: %d  bump: %d", ctx.Storage.Address, allocation.Balance, bump)
	}

	r := &record.Record{
		Initialised: true,
		Name:        name,
		Message:     message,
	}
	return store(ctx.Storage.Data, r)
}

func (p *Processor) update(ctx *Context, name string, message string) error {
	if !isSigner(ctx) {
		return fault.MissingSignature
	}

	if !ctx.Storage.IsOwnedBy(ctx.ProgramID) {
		return fault.IllegalOwner
	}

	r, err := record.Packed(ctx.Storage.Data).Unpack()
	if nil != err {
		p.log.Criticalf("storage: %s  unpack error: %s", ctx.Storage.Address, err)
		return err
	}

	expected, _, err := address.Find(address.RecordSeeds(ctx.Requester.Account, r.Name), ctx.ProgramID)
	if nil != err {
		return err
	}
	if expected != ctx.Storage.Address {
		return fault.InvalidAddress
	}

	if !r.IsInitialised() {
		return fault.UninitializedAccount
	}

	if name != r.Name {
		return fault.InvalidStudentName
	}

	if !record.Fits(r.Name, message) {
		return fault.InvalidDataLength
	}

	r.Message = message
	return store(ctx.Storage.Data, r)
}

func isSigner(ctx *Context) bool {
	return ctx.Requester.IsSigner && nil != ctx.Requester.Account && nil != ctx.Requester.Account.AccountInterface
}

// clear the whole buffer then write the record, the padding never
// holds part of an earlier record
func store(storage []byte, r *record.Record) error {
	if r.Size() > len(storage) {
		return fault.InvalidDataLength
	}
	for i := range storage {
		storage[i] = 0
	}
	return r.PackInto(storage)
}
