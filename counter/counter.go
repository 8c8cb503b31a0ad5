// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package counter - concurrent connection accounting for the RPC listeners
package counter

import (
	"sync/atomic"
)

// Counter - a count of open connections shared by every listener
type Counter uint64

// Acquire - take a slot if fewer than maximum are in use
//
// returns false, with the count unchanged, when the limit is reached
func (c *Counter) Acquire(maximum uint64) bool {
	for {
		n := atomic.LoadUint64((*uint64)(c))
		if n >= maximum {
			return false
		}
		if atomic.CompareAndSwapUint64((*uint64)(c), n, n+1) {
			return true
		}
	}
}

// Release - return a slot taken by Acquire
func (c *Counter) Release() {
	atomic.AddUint64((*uint64)(c), ^uint64(0))
}

// Uint64 - current number of connections
func (c *Counter) Uint64() uint64 {
	return atomic.LoadUint64((*uint64)(c))
}

// IsZero - check if no connections are open
func (c *Counter) IsZero() bool {
	return 0 == c.Uint64()
}
