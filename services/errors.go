package services

import "errors"

var (
	// ErrNotFound is returned when a referenced customer, bill or document
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation wraps input rejected before any write happens.
	ErrValidation = errors.New("validation failed")
)
