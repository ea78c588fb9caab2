// Package cryptoerr holds the error kinds shared by every scheme in bigcrypt.
// Callers match on them with errors.Is; the packages wrap them with context.
package cryptoerr

import "errors"

var (
	// ErrDomain is returned when a modular inverse is requested for inputs
	// that are not coprime.
	ErrDomain = errors.New("domain error")

	// ErrProtocolRejected is returned when protocol parameters fail a safety
	// check, e.g. a Diffie-Hellman generator of small order.
	ErrProtocolRejected = errors.New("protocol rejected")

	// ErrInvalidArgument is returned for unknown modes and out of range inputs.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrExhaustedAttempts is returned when a bounded search (prime
	// generation) gives up before finding a result.
	ErrExhaustedAttempts = errors.New("exhausted attempts")
)
