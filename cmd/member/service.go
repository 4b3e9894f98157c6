package member

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// PasswordHasher hashes plaintext passwords for storage.
// Satisfied by password.Config.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// SessionRevoker destroys every refresh-token slot for a subject.
// Satisfied by session.Service. Account suspension and withdrawal revoke
// refresh tokens only; already-issued access tokens stay honorable until
// their natural expiry.
type SessionRevoker interface {
	RevokeAll(ctx context.Context, subjectID string) error
}

// Service implements member signup and account-lifecycle operations.
type Service struct {
	store     Store
	passwords PasswordHasher
	sessions  SessionRevoker
	log       *slog.Logger
}

// NewService constructs a member Service.
func NewService(store Store, passwords PasswordHasher, sessions SessionRevoker, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{store: store, passwords: passwords, sessions: sessions, log: log}
}

// Signup registers a local email/password member.
// The email is normalized before storage; duplicates fail with ErrEmailTaken.
func (s *Service) Signup(ctx context.Context, now time.Time, email, password, nickname string) (Member, error) {
	email = NormalizeEmail(email)
	nickname = strings.TrimSpace(nickname)
	if email == "" || nickname == "" {
		return Member{}, ErrInvalidInput
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return Member{}, err
	}

	id, err := NewID(now)
	if err != nil {
		return Member{}, fmt.Errorf("member.Signup: %w", err)
	}

	m := Member{
		ID:           id,
		Email:        email,
		PasswordHash: hash,
		Nickname:     nickname,
		Role:         RoleUser,
		Status:       StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.Create(ctx, m); err != nil {
		return Member{}, err
	}

	s.log.Info("member.signup", "member_id", m.ID)
	return m, nil
}

// Suspend administratively disables a member and revokes all refresh slots.
func (s *Service) Suspend(ctx context.Context, now time.Time, id string) error {
	return s.deactivate(ctx, now, id, StatusSuspended)
}

// Withdraw marks a member as withdrawn and revokes all refresh slots.
func (s *Service) Withdraw(ctx context.Context, now time.Time, id string) error {
	return s.deactivate(ctx, now, id, StatusWithdrawn)
}

func (s *Service) deactivate(ctx context.Context, now time.Time, id string, status Status) error {
	if err := s.store.UpdateStatus(ctx, id, status, now); err != nil {
		return err
	}

	if err := s.sessions.RevokeAll(ctx, id); err != nil {
		// The status change already landed; surface the sweep failure so the
		// caller can retry rather than pretending the slots are gone.
		s.log.Error("member.revoke_sessions_failed", "member_id", id, "err", err)
		return fmt.Errorf("revoke sessions for %s: %w", id, err)
	}

	s.log.Info("member.deactivated", "member_id", id, "status", string(status))
	return nil
}
