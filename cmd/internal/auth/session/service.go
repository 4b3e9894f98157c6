package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"chonggak/cmd/member"
)

// MemberDirectory resolves member accounts for login and reissue checks.
// Satisfied by member.Store.
type MemberDirectory interface {
	FindByEmail(ctx context.Context, email string) (member.Member, error)
	FindByID(ctx context.Context, id string) (member.Member, error)
}

// PasswordVerifier checks a plaintext password against an encoded hash.
// Satisfied by password.Config.
type PasswordVerifier interface {
	Verify(encodedHash, password string) (bool, error)
}

// TokenPair is the result of a login or reissue: a short-lived access token
// and the single live refresh token for the (member, device) slot.
type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// Deps are the collaborators a Service orchestrates. All stores must be safe
// for concurrent use; per-key atomicity is the store's responsibility.
type Deps struct {
	Codec     AccessTokenCodec
	Refresh   RefreshStore
	Blacklist BlacklistStore
	Members   MemberDirectory
	Passwords PasswordVerifier
	Logger    *slog.Logger
	Metrics   *Metrics
}

// Service implements login, reissue (refresh rotation with theft detection),
// logout, and subject-wide revocation.
//
// There is no server-side session object beyond the refresh slot: rotation
// is delete+recreate of the slot, and access tokens stay stateless.
type Service struct {
	cfg  Config
	deps Deps

	// dummyHash equalizes login timing when the email is unknown.
	dummyHash string
}

// NewService constructs a Service.
func NewService(cfg Config, deps Deps) (*Service, error) {
	if deps.Codec == nil || deps.Refresh == nil || deps.Blacklist == nil {
		return nil, errors.New("session: missing codec or stores")
	}
	if deps.Members == nil || deps.Passwords == nil {
		return nil, errors.New("session: missing member directory or password verifier")
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	s := &Service{cfg: cfg, deps: deps}

	// Hash an unguessable throwaway value once so unknown-email logins spend
	// the same time as wrong-password logins.
	if _, hash, err := newRefreshToken(32); err == nil {
		s.dummyHash = hash
	}

	return s, nil
}

// Login authenticates an email/password pair and opens a session for the
// device: a fresh access token plus a new refresh slot value.
//
// Unknown email and wrong password both fail with ErrInvalidCredentials so
// callers cannot enumerate accounts.
func (s *Service) Login(ctx context.Context, now time.Time, email, password, deviceID string) (TokenPair, error) {
	m, err := s.deps.Members.FindByEmail(ctx, member.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, member.ErrNotFound) {
			_, _ = s.deps.Passwords.Verify(s.dummyHash, password)
			s.deps.Metrics.login("invalid_credentials")
			return TokenPair{}, ErrInvalidCredentials
		}
		return TokenPair{}, fmt.Errorf("login: member lookup: %w", err)
	}

	ok, err := s.deps.Passwords.Verify(m.PasswordHash, password)
	if err != nil || !ok {
		s.deps.Metrics.login("invalid_credentials")
		return TokenPair{}, ErrInvalidCredentials
	}

	if !m.Active() {
		s.deps.Metrics.login("inactive")
		if m.Status == member.StatusSuspended {
			return TokenPair{}, ErrMemberSuspended
		}
		return TokenPair{}, ErrMemberNotFound
	}

	pair, err := s.issueTokenPair(ctx, now, m, deviceID)
	if err != nil {
		return TokenPair{}, err
	}

	s.deps.Metrics.login("ok")
	s.deps.Logger.Info("auth.login", "member_id", m.ID, "device_id", deviceID)
	return pair, nil
}

// Reissue rotates the refresh slot: the presented value must exactly match
// the stored one, the old slot is destroyed, and a new token pair is minted.
//
// A mismatch is treated as a theft signal: every device slot for the subject
// is revoked before ErrInvalidRefreshToken is returned. Refresh tokens are
// therefore single-use; replaying a rotated value burns the whole account's
// sessions. Concurrent reissues with the same valid value race by design:
// one wins, the other observes a mismatch (sweep) or an empty slot.
func (s *Service) Reissue(ctx context.Context, now time.Time, presented, subjectID, deviceID string) (TokenPair, error) {
	stored, err := s.deps.Refresh.Find(ctx, subjectID, deviceID)
	if err != nil {
		if errors.Is(err, ErrNoRefreshToken) {
			s.deps.Metrics.reissue("no_slot")
			return TokenPair{}, ErrInvalidRefreshToken
		}
		return TokenPair{}, fmt.Errorf("reissue: %w", err)
	}

	if !refreshTokenMatches(stored, presented) {
		// Theft signal. The sweep must run before the error is raised, and
		// its own failure is escalated, not hidden behind the auth error.
		s.deps.Metrics.theftDetected()
		s.deps.Logger.Error("auth.refresh_reuse_detected",
			"member_id", subjectID,
			"device_id", deviceID,
		)
		if derr := s.deps.Refresh.DeleteAll(ctx, subjectID); derr != nil {
			s.deps.Logger.Error("auth.revocation_sweep_failed", "member_id", subjectID, "err", derr)
		}
		s.deps.Metrics.reissue("theft")
		return TokenPair{}, ErrInvalidRefreshToken
	}

	m, err := s.deps.Members.FindByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, member.ErrNotFound) {
			s.deps.Metrics.reissue("member_gone")
			return TokenPair{}, ErrMemberNotFound
		}
		return TokenPair{}, fmt.Errorf("reissue: member lookup: %w", err)
	}
	if !m.Active() {
		s.deps.Metrics.reissue("inactive")
		return TokenPair{}, ErrMemberSuspended
	}

	if err := s.deps.Refresh.Delete(ctx, subjectID, deviceID); err != nil {
		// A possibly-lost delete must fail the rotation; assuming success
		// here would corrupt the single-slot invariant.
		return TokenPair{}, fmt.Errorf("reissue: %w", err)
	}

	pair, err := s.issueTokenPair(ctx, now, m, deviceID)
	if err != nil {
		return TokenPair{}, err
	}

	s.deps.Metrics.reissue("ok")
	return pair, nil
}

// Logout blacklists the access token for its remaining lifetime and deletes
// the device's refresh slot. It accepts already-expired access tokens (the
// refresh token may still be alive) and is idempotent: a second logout with
// the same token changes nothing.
func (s *Service) Logout(ctx context.Context, now time.Time, accessToken, subjectID, deviceID string) error {
	claims, err := s.deps.Codec.VerifyIgnoringExpiry(accessToken, now)
	if err != nil {
		return err
	}

	if err := s.deps.Blacklist.Add(ctx, claims.JTI, claims.RemainingLifetime(now)); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if err := s.deps.Refresh.Delete(ctx, subjectID, deviceID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	s.deps.Metrics.logout()
	s.deps.Logger.Info("auth.logout", "member_id", subjectID, "device_id", deviceID)
	return nil
}

// RevokeAll destroys every refresh slot for the subject. Invoked by account
// suspension/withdrawal flows. Already-issued access tokens remain valid
// until natural expiry unless separately blacklisted.
func (s *Service) RevokeAll(ctx context.Context, subjectID string) error {
	if err := s.deps.Refresh.DeleteAll(ctx, subjectID); err != nil {
		return fmt.Errorf("revoke all: %w", err)
	}
	s.deps.Logger.Info("auth.revoke_all", "member_id", subjectID)
	return nil
}

// Authenticate validates a bearer access token for the inbound gate:
// signature, expiry, then blacklist. Returns the claims to attach as the
// request principal.
func (s *Service) Authenticate(ctx context.Context, token string, now time.Time) (AccessClaims, error) {
	claims, err := s.deps.Codec.Verify(token, now)
	if err != nil {
		return AccessClaims{}, err
	}

	listed, err := s.deps.Blacklist.IsBlacklisted(ctx, claims.JTI)
	if err != nil {
		return AccessClaims{}, fmt.Errorf("authenticate: %w", err)
	}
	if listed {
		s.deps.Metrics.blacklistedRejected()
		return AccessClaims{}, ErrBlacklistedToken
	}

	return claims, nil
}

func (s *Service) issueTokenPair(ctx context.Context, now time.Time, m member.Member, deviceID string) (TokenPair, error) {
	accessToken, claims, err := s.deps.Codec.Issue(m.ID, m.Role, now)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issue access token: %w", err)
	}

	refreshPlain, refreshHash, err := newRefreshToken(s.cfg.RefreshTokenBytes)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issue refresh token: %w", err)
	}

	if err := s.deps.Refresh.Save(ctx, m.ID, deviceID, refreshHash); err != nil {
		return TokenPair{}, fmt.Errorf("save refresh token: %w", err)
	}

	return TokenPair{
		AccessToken:      accessToken,
		AccessExpiresAt:  claims.ExpiresAt,
		RefreshToken:     refreshPlain,
		RefreshExpiresAt: now.Add(s.cfg.RefreshTokenTTL),
	}, nil
}
