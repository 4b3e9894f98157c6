package session

import "errors"

var (
	// ErrInvalidCredentials is returned when the email is unknown or the
	// password does not match. The two cases are indistinguishable to the
	// caller to prevent user enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrMemberSuspended is returned when the member exists but is
	// administratively disabled.
	ErrMemberSuspended = errors.New("member suspended")

	// ErrMemberNotFound is returned when the member is no longer resolvable
	// (e.g. withdrawn).
	ErrMemberNotFound = errors.New("member not found")

	// ErrInvalidRefreshToken is returned when no refresh slot exists or the
	// presented value does not match the stored one. A mismatch additionally
	// revokes every device slot for the member before this error is raised.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrInvalidToken is returned when an access token fails signature or
	// structural validation, including unknown role values.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when an access token is structurally valid
	// but past expiry.
	ErrExpiredToken = errors.New("expired token")

	// ErrBlacklistedToken is returned when an access token verifies but its
	// jti has been revoked via logout.
	ErrBlacklistedToken = errors.New("blacklisted token")

	// ErrNoRefreshToken is returned by RefreshStore.Find when the slot is empty.
	ErrNoRefreshToken = errors.New("no refresh token")

	// ErrConfig is returned for invalid configuration.
	ErrConfig = errors.New("invalid config")
)
