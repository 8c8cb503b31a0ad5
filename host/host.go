// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package host - the request runtime around the processor
//
// a request runs with its storage address locked inside a single
// storage transaction; the slot is written and committed only when
// the processor succeeds, otherwise no effect of the request persists,
// including any allocation
//
// a verified signature is consumed whether or not the processor
// succeeds and a second request carrying it is refused
package host

import (
	"sync"

	"github.com/bitmark-inc/logger"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/introd/account"
	"github.com/bitmark-inc/introd/address"
	"github.com/bitmark-inc/introd/fault"
	"github.com/bitmark-inc/introd/processor"
	"github.com/bitmark-inc/introd/rent"
	"github.com/bitmark-inc/introd/slot"
	"github.com/bitmark-inc/introd/storage"
)

// number of address lock stripes, one per first address byte
const lockStripes = 256

// Host - executes requests for one program
type Host struct {
	log     *logger.L
	program *account.Account
	rent    *rent.Rent
	locks   [lockStripes]sync.Mutex

	policyLock sync.RWMutex // protects processor and options
	processor  *processor.Processor
	options    processor.Options
}

// New - create a host for a program
//
// storage must already be initialised
func New(program *account.Account, r *rent.Rent, options processor.Options) *Host {
	return &Host{
		log:       logger.New("host"),
		program:   program,
		rent:      r,
		processor: processor.New(logger.New("processor"), options),
		options:   options,
	}
}

// Policy - how create treats an address that already holds a record
func (h *Host) Policy() processor.ReinitialisePolicy {
	h.policyLock.RLock()
	defer h.policyLock.RUnlock()
	return h.options.Reinitialise
}

// SetPolicy - change the policy for subsequent requests
//
// requests already running keep the policy they started with
func (h *Host) SetPolicy(policy processor.ReinitialisePolicy) {
	h.policyLock.Lock()
	defer h.policyLock.Unlock()
	if policy == h.options.Reinitialise {
		return
	}
	h.log.Infof("reinitialise policy: %s → %s", h.options.Reinitialise, policy)
	h.options.Reinitialise = policy
	h.processor = processor.New(logger.New("processor"), h.options)
}

// ProgramID - the capability holder owning every record slot
func (h *Host) ProgramID() *account.Account {
	return h.program
}

// Execute - run one request, all or nothing
func (h *Host) Execute(request *Request) error {
	if nil == request || nil == request.Requester || nil == request.Requester.AccountInterface {
		return fault.MissingParameters
	}

	signed := false
	var digest [32]byte
	if 0 != len(request.Signature) {
		message := request.Message()
		err := request.Requester.CheckSignature(message, request.Signature)
		if nil != err {
			return fault.InvalidSignature
		}
		signed = true
		digest = sha3.Sum256(message)
	}

	lock := &h.locks[request.Storage[0]]
	lock.Lock()
	defer lock.Unlock()

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	// keyed by the signed message, not the signature bytes, so a
	// re-encoded signature over the same message is also refused
	//
	// the storage address is part of the message so the stripe lock
	// serialises every request carrying it
	if signed {
		if trx.Has(storage.Pool.Signatures, digest[:]) {
			trx.Abort()
			h.log.Warnf("storage: %s  requester: %s  replayed signature", request.Storage, request.Requester)
			return fault.SignatureAlreadyUsed
		}
		trx.Put(storage.Pool.Signatures, digest[:], request.Storage[:])
	}

	target, err := loadSlot(trx, request.Storage)
	if nil != err {
		trx.Abort()
		return err
	}

	ctx := &processor.Context{
		ProgramID: h.program,
		Requester: processor.Requester{
			Account:  request.Requester,
			IsSigner: signed,
		},
		Storage: target,
		Host:    h,
	}

	h.policyLock.RLock()
	p := h.processor
	h.policyLock.RUnlock()

	err = p.Process(ctx, request.Instruction)
	if nil != err {
		h.log.Debugf("storage: %s  aborted: %s", request.Storage, err)
		if !signed {
			trx.Abort()
			return err
		}
		if e := trx.Commit(); nil != e {
			h.log.Errorf("storage: %s  commit error: %s", request.Storage, e)
		}
		return err
	}

	trx.Put(storage.Pool.Slots, target.Address[:], target.Pack())
	err = trx.Commit()
	if nil != err {
		h.log.Errorf("storage: %s  commit error: %s", request.Storage, err)
		return err
	}

	h.log.Infof("storage: %s  requester: %s  committed", request.Storage, request.Requester)
	return nil
}

// MinimumBalance - rent exempt balance for size bytes
func (h *Host) MinimumBalance(size int) uint64 {
	return h.rent.MinimumBalance(size)
}

// Allocate - create storage at a derived address
//
// the seeds must re-create the target address under the new owner,
// this is the only authority needed besides the paying signer
func (h *Host) Allocate(target *slot.Slot, allocation *processor.Allocation) error {
	if !allocation.Payer.IsSigner {
		return fault.MissingSignature
	}

	if target.IsAllocated() {
		return fault.AccountInUse
	}

	if allocation.Size < 0 || allocation.Size > slot.MaximumDataSize {
		return fault.InvalidDataLength
	}

	derived, err := address.Create(allocation.Seeds, allocation.Owner)
	if nil != err {
		return fault.InvalidSeeds
	}
	if derived != target.Address {
		return fault.InvalidSeeds
	}

	target.Owner = allocation.Owner
	target.Balance = allocation.Balance
	target.Data = make([]byte, allocation.Size)

	h.log.Debugf("allocate: %s  size: %d  balance: %d", target.Address, allocation.Size, allocation.Balance)
	return nil
}

// read a slot inside a transaction, an absent slot is unallocated
func loadSlot(trx storage.Transaction, a address.Address) (*slot.Slot, error) {
	packed := trx.Get(storage.Pool.Slots, a[:])
	if nil == packed {
		return slot.New(a), nil
	}
	return slot.Unpack(a, packed)
}
