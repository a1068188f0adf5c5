package core

import (
	"errors"
	"fmt"
)

// Failure taxonomy. Every error produced by this module wraps exactly one of
// these sentinels so callers can classify with errors.Is.
var (
	// ErrInvalidInput marks validation failures. Recoverable: the caller
	// should reject the write or re-prompt.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound marks operations referencing a non-existent record id.
	ErrNotFound = errors.New("subscription not found")

	// ErrStoreFailure marks persistence-layer failures. Surfaced unchanged,
	// never retried here.
	ErrStoreFailure = errors.New("store failure")
)

var (
	ErrInvalidName          = fmt.Errorf("%w: name must be 2-100 characters", ErrInvalidInput)
	ErrInvalidCategory      = fmt.Errorf("%w: category must be 2-50 characters", ErrInvalidInput)
	ErrInvalidPaymentMethod = fmt.Errorf("%w: payment method must be 2-50 characters", ErrInvalidInput)
	ErrInvalidCost          = fmt.Errorf("%w: cost must be a positive amount", ErrInvalidInput)
	ErrInvalidDate          = fmt.Errorf("%w: date must be a real calendar date in YYYY-MM-DD format", ErrInvalidInput)
	ErrInvalidSearchField   = fmt.Errorf("%w: search field must be %q or %q", ErrInvalidInput, SearchByName, SearchByCategory)
)
