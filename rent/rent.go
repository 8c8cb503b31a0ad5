// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rent

import (
	"math"

	"github.com/bitmark-inc/introd/fault"
)

// default rent parameters
const (
	DefaultLamportsPerByteYear = 3480
	DefaultExemptionThreshold  = 2.0
)

// overhead charged for every storage slot in addition to its data
const StorageOverhead = 128

// Rent - minimum balance oracle
type Rent struct {
	LamportsPerByteYear uint64  `json:"lamportsPerByteYear"`
	ExemptionThreshold  float64 `json:"exemptionThreshold"`
}

// Default - the standard rent parameters
func Default() *Rent {
	return &Rent{
		LamportsPerByteYear: DefaultLamportsPerByteYear,
		ExemptionThreshold:  DefaultExemptionThreshold,
	}
}

// New - rent with specific parameters
func New(lamportsPerByteYear uint64, exemptionThreshold float64) (*Rent, error) {
	if 0 == lamportsPerByteYear || exemptionThreshold <= 0 || math.IsNaN(exemptionThreshold) || math.IsInf(exemptionThreshold, 0) {
		return nil, fault.InvalidRentParameters
	}
	return &Rent{
		LamportsPerByteYear: lamportsPerByteYear,
		ExemptionThreshold:  exemptionThreshold,
	}, nil
}

// MinimumBalance - balance that keeps storage of size bytes alive indefinitely
func (r *Rent) MinimumBalance(size int) uint64 {
	bytes := uint64(StorageOverhead + size)
	return uint64(float64(bytes*r.LamportsPerByteYear) * r.ExemptionThreshold)
}
