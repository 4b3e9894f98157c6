package password

import "errors"

// Sentinel errors returned by Validate, Hash and Verify.
// Stable for errors.Is at the API boundary.
var (
	ErrPasswordTooShort = errors.New("password too short")
	ErrPasswordTooLong  = errors.New("password too long")
	ErrWeakPassword     = errors.New("weak password")
	ErrInvalidHash      = errors.New("invalid password hash")
)
