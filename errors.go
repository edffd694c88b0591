package hashfinder

import "errors"

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

var (
	// ErrWorkerFailed is returned by Next once any job has panicked; the buffer can no longer be
	// trusted to hold every match of the search.
	ErrWorkerFailed = errors.New("hashfinder: worker failed")

	// ErrExhausted is returned by Next after every submitted job finished and each match has been
	// handed out.
	ErrExhausted = errors.New("hashfinder: search space exhausted")

	// ErrClosed is returned after the sequence has been abandoned with Close.
	ErrClosed = errors.New("hashfinder: collector closed")

	ErrSpan    = errors.New("hashfinder: unit span must be positive")
	ErrCeiling = errors.New("hashfinder: counter ceiling must be below the uint64 maximum")
	ErrZeros   = errors.New("hashfinder: zero count must not be negative")
)
