package model

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is returned when the requester is not a party to the entity.
	ErrUnauthorized = errors.New("not authorized")
	// ErrConflict is returned when a conditional write loses to an existing row,
	// e.g. a duplicate open match or a second review for the same match.
	ErrConflict = errors.New("conflict")
	// ErrValidation is returned for malformed input.
	ErrValidation = errors.New("validation failed")
)
