package session

import (
	"context"
	"time"
)

// RefreshStore is the single-slot-per-device refresh token store.
//
// Keys are (subjectID, deviceID) pairs; at most one value is live per key.
// Save and Delete on the same key must be linearizable from the store's
// perspective; the store owns that guarantee, the Service assumes it.
type RefreshStore interface {
	// Save unconditionally overwrites the slot and resets its TTL to the
	// configured refresh lifetime.
	Save(ctx context.Context, subjectID, deviceID, value string) error

	// Find returns the stored value, or ErrNoRefreshToken when the slot is
	// empty or expired.
	Find(ctx context.Context, subjectID, deviceID string) (string, error)

	// Delete removes one slot. Deleting an absent slot is not an error.
	Delete(ctx context.Context, subjectID, deviceID string) error

	// DeleteAll removes every device slot for the subject. It operates on a
	// best-effort snapshot of matching keys; a slot written during the sweep
	// may survive (accepted race).
	DeleteAll(ctx context.Context, subjectID string) error
}

// BlacklistStore records revoked access-token identifiers.
//
// Entries carry TTL = the access token's remaining lifetime at logout, so
// they expire with the token and never need explicit deletion.
type BlacklistStore interface {
	// Add inserts jti with the given TTL. A non-positive remaining lifetime
	// is a no-op: the token is already dead on its own.
	Add(ctx context.Context, jti string, remaining time.Duration) error

	// IsBlacklisted reports whether jti has been revoked.
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}
