package otp

import "errors"

// Errors returned by Generator construction and password generation.
var (
	// ErrInvalidDigits indicates a code length outside the 6-8 range
	// sanctioned by RFC 4226. It is only ever returned by New; a
	// constructed Generator always carries a valid digit count.
	ErrInvalidDigits = errors.New("otp: digits must be 6, 7, or 8")
	// ErrInvalidPeriod indicates a Timer factor with a non-positive period.
	ErrInvalidPeriod = errors.New("otp: period must be positive")
	// ErrInvalidTime indicates a generation time before the Unix epoch.
	ErrInvalidTime = errors.New("otp: time precedes the Unix epoch")
	// ErrInvalidAlgorithm indicates an unsupported hash algorithm.
	ErrInvalidAlgorithm = errors.New("otp: algorithm must be SHA1, SHA256, or SHA512")
	// ErrInvalidFactor indicates a nil moving factor.
	ErrInvalidFactor = errors.New("otp: moving factor must be a Counter or a Timer")
)
