// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package processor - the record instruction processor
//
// every request carries one instruction and names one storage slot.
// Create derives the slot address from the requester and the record
// name, asks the host to allocate and fund the slot and writes the new
// record. Update re-derives the address from the stored name and
// replaces the message.
//
// the processor holds no locks and never rolls back: once the host has
// allocated a slot any later failure is returned as is, and the host
// discards every effect of the failed request
package processor
