package member

import "errors"

var (
	// ErrNotFound is returned when no member matches the lookup key.
	ErrNotFound = errors.New("member not found")

	// ErrEmailTaken is returned when a signup collides with an existing email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrUnknownRole is returned for role strings outside the closed enumeration.
	ErrUnknownRole = errors.New("unknown role")

	// ErrUnknownStatus is returned for status strings outside the closed enumeration.
	ErrUnknownStatus = errors.New("unknown status")

	// ErrInvalidInput is returned for structurally invalid signup input.
	ErrInvalidInput = errors.New("invalid input")
)
