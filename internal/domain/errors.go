package domain

import "errors"

var (
	ErrInsufficientInventory = errors.New("insufficient inventory")
	ErrInvalidConfiguration  = errors.New("invalid configuration")
	ErrInvariantViolation    = errors.New("inventory invariant violated")
	ErrRentalIDUnavailable   = errors.New("rental id unavailable")
)
