// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// InstructionError - an error raised by the instruction processor
type InstructionError struct {
	code    uint32
	message string
}

// common errors - keep in alphabetic order
var (
	AccountInUse               = ExistsError("storage address is already in use")
	AlreadyInitialised         = ExistsError("already initialised")
	CannotDecodeAccount        = InvalidError("cannot decode account")
	CannotDecodePrivateKey     = InvalidError("cannot decode private key")
	CannotDecodeSeed           = InvalidError("cannot decode seed")
	CertificateFileExists      = ExistsError("certificate file already exists")
	ChecksumMismatch           = ProcessError("checksum mismatch")
	CorruptRecord              = RecordError("stored record is corrupt")
	CryptoFailed               = ProcessError("crypto failed")
	DatabaseIsNotSet           = ProcessError("database is not set")
	DatabaseVersionTooNew      = ProcessError("database version is newer than this program")
	FingerprintMismatch        = InvalidError("certificate fingerprint mismatch")
	IdentityFileExists         = ExistsError("identity file already exists")
	IdentityNameAlreadyExists  = ExistsError("identity name already exists")
	IdentityNameNotFound       = NotFoundError("identity name not found")
	InvalidAddressLength       = LengthError("invalid storage address length")
	InvalidConfiguration       = InvalidError("configuration did not return a table")
	InvalidCount               = InvalidError("invalid count")
	InvalidCursor              = InvalidError("invalid cursor")
	InvalidIpAddress           = InvalidError("invalid IP address")
	InvalidKeyLength           = LengthError("invalid key length")
	InvalidKeyType             = InvalidError("invalid key type")
	InvalidPasswordLength      = LengthError("password must be at least 8 characters")
	InvalidPolicy              = InvalidError("invalid reinitialise policy")
	InvalidPortNumber          = InvalidError("invalid port number")
	InvalidPrivateKey          = InvalidError("invalid private key")
	InvalidRentParameters      = InvalidError("invalid rent parameters")
	InvalidSalt                = InvalidError("invalid salt")
	InvalidSeedHeader          = InvalidError("invalid seed header")
	InvalidSeedLength          = LengthError("invalid seed length")
	InvalidSeeds               = InvalidError("seeds do not derive an off-curve address")
	InvalidSignature           = InvalidError("invalid signature")
	InvalidStructPointer       = InvalidError("invalid struct pointer")
	KeyFileExists              = ExistsError("key file already exists")
	MissingParameters          = InvalidError("missing parameters")
	NoConnection               = NotFoundError("no connection configured")
	NotFoundStorage            = NotFoundError("storage not found")
	NotInitialised             = NotFoundError("not initialised")
	NotPrivateKey              = InvalidError("not a private key")
	NotPublicKey               = InvalidError("not a public key")
	PasswordMismatch           = InvalidError("password mismatch")
	RateLimiting               = InvalidError("rate limiting")
	ReadOnlyDatabase           = ProcessError("database is read only")
	RecordNotFound             = NotFoundError("record not found")
	SignatureAlreadyUsed       = ExistsError("signature already used")
	TooManySeeds               = LengthError("too many seeds")
	TransactionAlreadyInUse    = ProcessError("storage transaction already in use")
	TransactionNotStarted      = ProcessError("storage transaction not started")
	TruncatedSlot              = RecordError("stored slot is truncated")
	UnexpectedSlotOwnerAccount = RecordError("stored slot owner is not a valid account")
	WrongPassword              = InvalidError("wrong password")
)

// instruction processor errors - the codes are part of the wire contract
var (
	InvalidInstruction   = &InstructionError{code: 1, message: "invalid instruction"}
	MissingSignature     = &InstructionError{code: 2, message: "missing required signature"}
	InvalidAddress       = &InstructionError{code: 3, message: "storage address does not match derived address"}
	InvalidDataLength    = &InstructionError{code: 4, message: "record exceeds maximum size"}
	IllegalOwner         = &InstructionError{code: 5, message: "storage is not owned by this program"}
	UninitializedAccount = &InstructionError{code: 6, message: "storage holds no initialised record"}
	InvalidStudentName   = &InstructionError{code: 7, message: "name does not match stored name"}
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

func (e *InstructionError) Error() string { return e.message }

// Code - numeric code of an instruction error
func (e *InstructionError) Code() uint32 { return e.code }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool   { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool   { _, ok := e.(RecordError); return ok }

// IsErrInstruction - true for errors raised by the instruction processor
func IsErrInstruction(e error) bool { _, ok := e.(*InstructionError); return ok }

// Code - return the instruction error code, zero for any other error
func Code(e error) uint32 {
	if ie, ok := e.(*InstructionError); ok {
		return ie.code
	}
	return 0
}
