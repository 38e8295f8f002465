package service

import "errors"

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidRate     = errors.New("invalid interest rate")
	ErrInvalidTenure   = errors.New("invalid tenure")
	ErrInvalidPayout   = errors.New("invalid payout mode")
	ErrInvalidKind     = errors.New("unknown calculator")
	ErrSessionNotFound = errors.New("payment session not found")
	ErrSessionClosed   = errors.New("payment session closed")
)

// IsValidationError reports whether err was caused by rejected input.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidRate) ||
		errors.Is(err, ErrInvalidTenure) ||
		errors.Is(err, ErrInvalidPayout) ||
		errors.Is(err, ErrInvalidKind)
}
