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
type PermissionError GenericError
type ProcessError GenericError
type RecordError GenericError
type StaleError GenericError
type ValueError GenericError

// common errors - keep in alphabetic order
var (
	AlreadyInitialised           = ExistsError("already initialised")
	CertificateFileAlreadyExists = ExistsError("certificate file already exists")
	ConfigurationFileNotFound    = NotFoundError("configuration file not found")
	DatabaseIsNotSet             = ProcessError("database is not set")
	DeployAddressMismatch        = InvalidError("deploy address mismatch")
	FaucetDisabled               = ProcessError("faucet disabled")
	InsufficientFunds            = ValueError("insufficient funds")
	InsufficientReserve          = ValueError("insufficient reserve")
	InsufficientValue            = ValueError("insufficient value")
	InsufficientValueForDelivery = ValueError("insufficient value for delivery")
	InvalidAddress               = InvalidError("invalid address")
	InvalidAmount                = InvalidError("invalid amount")
	InvalidConfiguration         = InvalidError("configuration must return a table")
	InvalidCount                 = InvalidError("invalid count")
	InvalidCursor                = InvalidError("invalid cursor")
	InvalidFee                   = InvalidError("invalid fee percentage")
	InvalidGasConsumption        = InvalidError("invalid gas consumption")
	InvalidIpAddress             = InvalidError("invalid IP address")
	InvalidItem                  = InvalidError("invalid item")
	InvalidLoggerChannel         = InvalidError("invalid logger channel")
	InvalidPrefix                = InvalidError("invalid pool prefix")
	InvalidStructPointer         = InvalidError("invalid struct pointer")
	InvalidTemplate              = InvalidError("invalid actor template")
	KeyFileAlreadyExists         = ExistsError("key file already exists")
	MissingParameters            = InvalidError("missing parameters")
	NotActive                    = NotFoundError("not active")
	NotAvailableDuringShutdown   = ProcessError("not available during shutdown")
	NotAvailableInReadOnlyMode   = ProcessError("not available in read-only mode")
	NotDeployed                  = NotFoundError("registry not deployed")
	NotInitialised               = NotFoundError("not initialised")
	Overflow                     = InvalidError("overflow")
	QueryNotFound                = NotFoundError("query not found")
	RateLimiting                 = ProcessError("rate limiting")
	RecordTruncated              = RecordError("record truncated")
	SenderMismatch               = PermissionError("sender mismatch")
	StaleBalance                 = StaleError("stale balance")
	StaleSupply                  = StaleError("stale supply")
	SupplyLimitExceeded          = InvalidError("supply limit exceeded")
	TransactionAlreadyInUse      = ProcessError("transaction already in use")
	TransactionNotInUse          = ProcessError("transaction not in use")
	Unauthorized                 = PermissionError("unauthorized")
	Underflow                    = InvalidError("underflow")
	UnexpectedStage              = ProcessError("unexpected query stage")
	UnknownOperation             = InvalidError("unknown operation")
	UnsupportedDatabaseVersion   = ProcessError("unsupported database version")
	WaitCancelled                = ProcessError("wait cancelled")
	WrongAddressLength           = LengthError("wrong address length")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string     { return string(e) }
func (e InvalidError) Error() string    { return string(e) }
func (e LengthError) Error() string     { return string(e) }
func (e NotFoundError) Error() string   { return string(e) }
func (e PermissionError) Error() string { return string(e) }
func (e ProcessError) Error() string    { return string(e) }
func (e RecordError) Error() string     { return string(e) }
func (e StaleError) Error() string      { return string(e) }
func (e ValueError) Error() string      { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool     { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool    { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool     { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool   { _, ok := e.(NotFoundError); return ok }
func IsErrPermission(e error) bool { _, ok := e.(PermissionError); return ok }
func IsErrProcess(e error) bool    { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool     { _, ok := e.(RecordError); return ok }
func IsErrStale(e error) bool      { _, ok := e.(StaleError); return ok }
func IsErrValue(e error) bool      { _, ok := e.(ValueError); return ok }

// all instances that can travel inside a bounced message as text
var known = map[string]error{}

func init() {
	for _, e := range []error{
		AlreadyInitialised,
		DeployAddressMismatch,
		InsufficientFunds,
		InsufficientReserve,
		InsufficientValue,
		InsufficientValueForDelivery,
		InvalidAddress,
		InvalidAmount,
		InvalidFee,
		InvalidGasConsumption,
		InvalidItem,
		InvalidTemplate,
		NotActive,
		NotDeployed,
		NotInitialised,
		Overflow,
		SenderMismatch,
		StaleBalance,
		StaleSupply,
		SupplyLimitExceeded,
		Unauthorized,
		Underflow,
		UnknownOperation,
		UnexpectedStage,
	} {
		known[e.Error()] = e
	}
}

// FromText - recover the error instance from its message
//
// unrecognised text is returned as a GenericError so that the
// message is never lost
func FromText(s string) error {
	if "" == s {
		return nil
	}
	if e, ok := known[s]; ok {
		return e
	}
	return GenericError(s)
}
