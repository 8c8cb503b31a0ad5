// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/bitmark-inc/logger"
)

// Transaction - pool level access for one all-or-nothing unit of work
type Transaction interface {
	Put(*PoolHandle, []byte, []byte)
	Delete(*PoolHandle, []byte)
	Get(*PoolHandle, []byte) []byte
	Has(*PoolHandle, []byte) bool
	InUse() bool
	Commit() error
	Abort()
}

// TransactionImpl - a transaction over one Access
type TransactionImpl struct {
	access Access
}

func newTransaction(access Access) Transaction {
	return &TransactionImpl{
		access: access,
	}
}

// Put - buffer a value for a key in a pool
func (t *TransactionImpl) Put(handle *PoolHandle, key []byte, value []byte) {
	t.access.Put(handle.prefixKey(key), value)
}

// Delete - buffer the removal of a key from a pool
func (t *TransactionImpl) Delete(handle *PoolHandle, key []byte) {
	t.access.Delete(handle.prefixKey(key))
}

// Get - read a value as this transaction sees it, nil if absent
func (t *TransactionImpl) Get(handle *PoolHandle, key []byte) []byte {
	value, err := t.access.Get(handle.prefixKey(key))
	logger.PanicIfError("transaction.Get", err)
	return value
}

// Has - check a key as this transaction sees it
func (t *TransactionImpl) Has(handle *PoolHandle, key []byte) bool {
	found, err := t.access.Has(handle.prefixKey(key))
	logger.PanicIfError("transaction.Has", err)
	return found
}

// InUse - true until Commit or Abort
func (t *TransactionImpl) InUse() bool {
	return t.access.InUse()
}

// Commit - write every buffered change
func (t *TransactionImpl) Commit() error {
	return t.access.Commit()
}

// Abort - discard every buffered change
func (t *TransactionImpl) Abort() {
	t.access.Abort()
}
