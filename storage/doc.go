// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// maintain the on-disk data store
//
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the avaiable tables.
//
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. address      = 32 byte derived storage address
// 4. owner        = account bytes (key variant varint ++ 32 byte public key)
// 5. *others*     = varint64 values and byte values of various length
//
// Slots:
//
//   S ++ address               - storage slot
//                                data: varint(len owner) ++ owner ++ varint(balance) ++ varint(len data) ++ data
//
// Version:
//
//   0x00 ++ "VERSION"          - database version
//                                data: big endian uint32
//
// Writes only happen through a Transaction: each one buffers its
// changes in a leveldb batch with an in-memory overlay so reads inside
// the transaction see its own writes; Commit writes the batch
// atomically and Abort drops it.
package storage
