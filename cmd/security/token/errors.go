package token

import "errors"

// Sentinel errors surfaced by key loading. Stable for errors.Is.
var (
	ErrHMACKeyMissing  = errors.New("token HMAC key missing")
	ErrHMACKeyTooShort = errors.New("token HMAC key too short")
)
