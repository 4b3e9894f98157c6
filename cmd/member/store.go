package member

import (
	"context"
	"time"
)

// Store abstracts persistence for member accounts.
//
// Implementations must enforce email uniqueness and surface it as
// ErrEmailTaken; missing rows are ErrNotFound.
type Store interface {
	// Create inserts a new member. Email must be normalized by the caller.
	Create(ctx context.Context, m Member) error

	// FindByEmail loads a member by normalized email.
	FindByEmail(ctx context.Context, email string) (Member, error)

	// FindByID loads a member by id.
	FindByID(ctx context.Context, id string) (Member, error)

	// UpdateStatus transitions the account lifecycle state.
	UpdateStatus(ctx context.Context, id string, status Status, now time.Time) error
}
