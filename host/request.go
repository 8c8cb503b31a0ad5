// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package host

import (
	"github.com/bitmark-inc/introd/account"
	"github.com/bitmark-inc/introd/address"
	"github.com/bitmark-inc/introd/util"
)

// Request - one signed instruction against one storage address
//
// a request without a signature is processed with the requester
// marked as not having signed
//
// a signature is accepted once, the nonce lets a requester sign the
// same instruction again
type Request struct {
	Requester   *account.Account  `json:"requester"`
	Storage     address.Address   `json:"storage"`
	Nonce       uint64            `json:"nonce"`
	Instruction []byte            `json:"instruction"`
	Signature   account.Signature `json:"signature"`
}

// Message - the bytes covered by the signature
//
//   requester account bytes ++ storage address ++ varint64(nonce) ++ instruction
func (request *Request) Message() []byte {
	requester := request.Requester.Bytes()
	nonce := util.ToVarint64(request.Nonce)
	message := make([]byte, 0, len(requester)+address.Length+len(nonce)+len(request.Instruction))
	message = append(message, requester...)
	message = append(message, request.Storage[:]...)
	message = append(message, nonce...)
	return append(message, request.Instruction...)
}

// Sign - set the signature from the requester's private key
func (request *Request) Sign(privateKey *account.PrivateKey) {
	request.Signature = privateKey.Sign(request.Message())
}
