package domain

import "errors"

// Error kinds surfaced by the geohash pipeline
// Callers classify failures with errors.Is; every returned error wraps exactly one of these
var (
	// ErrInvalidInput means the supplied date is not a well-formed calendar date
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound means no market value exists for the date (weekend, holiday, future date)
	ErrNotFound = errors.New("market value not found")

	// ErrUpstream means the market data source failed or returned unusable data
	// It is retryable; the core never retries on its own
	ErrUpstream = errors.New("market data source unavailable")

	// ErrHashComputation is an internal fault: hashing and decoding are pure over well-formed input
	ErrHashComputation = errors.New("hash computation failed")
)
