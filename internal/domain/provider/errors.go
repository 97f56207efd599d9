package provider

import "errors"

var (
	ErrProviderNotFound = errors.New("provider not found")
	ErrInvalidRating    = errors.New("rating must be between 0 and 5")
)
