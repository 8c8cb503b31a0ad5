// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/introd/util"
)

func TestBase58(t *testing.T) {
	items := []struct {
		raw     []byte
		encoded string
	}{
		{[]byte{0x00}, "1"},
		{[]byte{0x00, 0x00, 0x01}, "112"},
		{[]byte("hello world"), "StV1DL6CwTryKyV"},
	}

	for i, item := range items {
		assert.Equal(t, item.encoded, util.ToBase58(item.raw), "%d: wrong encoding", i)
		assert.Equal(t, item.raw, util.FromBase58(item.encoded), "%d: wrong decoding", i)
	}
}

func TestBase58Invalid(t *testing.T) {
	for _, s := range []string{"0", "O", "I", "l", "abc!"} {
		assert.Equal(t, []byte{}, util.FromBase58(s), "decoded invalid: %q", s)
	}
}
