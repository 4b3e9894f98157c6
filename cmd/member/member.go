// Package member implements the member account domain: the aggregate,
// role/status enumerations, persistence contracts, and the signup and
// account-lifecycle service.
package member

import (
	"fmt"
	"strings"
	"time"
)

// Role is the authorization role embedded in access tokens.
// It is a closed enumeration; unknown values must be rejected, never defaulted.
type Role string

const (
	// RoleUser is a regular shopper account.
	RoleUser Role = "USER"
	// RoleAdmin can reach admin-gated routes (catalog management, banners).
	RoleAdmin Role = "ADMIN"
)

// ParseRole validates a role string against the closed enumeration.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// Status is the administrative lifecycle state of a member account.
type Status string

const (
	// StatusActive members may log in and hold sessions.
	StatusActive Status = "ACTIVE"
	// StatusSuspended members are administratively disabled.
	StatusSuspended Status = "SUSPENDED"
	// StatusWithdrawn members have deleted their account.
	StatusWithdrawn Status = "WITHDRAWN"
)

// ParseStatus validates a status string against the closed enumeration.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusActive, StatusSuspended, StatusWithdrawn:
		return Status(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
}

// Member is the canonical account record.
// PasswordHash is an argon2id encoded hash; it is never exposed over the API.
type Member struct {
	ID           string
	Email        string
	PasswordHash string
	Nickname     string

	Role   Role
	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Active reports whether the member may authenticate and hold sessions.
func (m Member) Active() bool { return m.Status == StatusActive }

// NormalizeEmail lowercases and trims an email for lookup and uniqueness.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
