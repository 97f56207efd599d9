package payout

import "errors"

var (
	ErrPayoutNotFound = errors.New("payout not found")
	ErrInvalidAmount  = errors.New("payout amount must be greater than zero")
)
