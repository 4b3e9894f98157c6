package member

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

// PostgresStore is the production Store backed by pgx.
// Schema: chonggak.members(id, email, password_hash, nickname, role, status, created_at, updated_at).
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore constructs a PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, errors.New("member: nil db pool")
	}
	return &PostgresStore{pool: pool}, nil
}

// Create inserts a new member row. Email uniqueness is enforced by uk_members_email.
func (s *PostgresStore) Create(ctx context.Context, m Member) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO chonggak.members
			(id, email, password_hash, nickname, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, m.ID, m.Email, m.PasswordHash, m.Nickname, string(m.Role), string(m.Status), m.CreatedAt, m.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrEmailTaken
		}
		return fmt.Errorf("member.Create: %w", err)
	}
	return nil
}

// FindByEmail loads a member by normalized email.
func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (Member, error) {
	return s.scanOne(ctx, `
		SELECT id, email, password_hash, nickname, role, status, created_at, updated_at
		FROM chonggak.members
		WHERE email = $1
	`, email)
}

// FindByID loads a member by id.
func (s *PostgresStore) FindByID(ctx context.Context, id string) (Member, error) {
	return s.scanOne(ctx, `
		SELECT id, email, password_hash, nickname, role, status, created_at, updated_at
		FROM chonggak.members
		WHERE id = $1
	`, id)
}

// UpdateStatus transitions the account lifecycle state.
func (s *PostgresStore) UpdateStatus(ctx context.Context, id string, status Status, now time.Time) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE chonggak.members
		SET status = $2, updated_at = $3
		WHERE id = $1
	`, id, string(status), now)
	if err != nil {
		return fmt.Errorf("member.UpdateStatus: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) scanOne(ctx context.Context, sql string, arg any) (Member, error) {
	var (
		m      Member
		role   string
		status string
	)
	err := s.pool.QueryRow(ctx, sql, arg).Scan(
		&m.ID, &m.Email, &m.PasswordHash, &m.Nickname, &role, &status, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Member{}, ErrNotFound
		}
		return Member{}, fmt.Errorf("member.find: %w", err)
	}

	// Defensive decode: reject rows carrying values outside the enumerations.
	m.Role, err = ParseRole(role)
	if err != nil {
		return Member{}, fmt.Errorf("member.find: %w", err)
	}
	m.Status, err = ParseStatus(status)
	if err != nil {
		return Member{}, fmt.Errorf("member.find: %w", err)
	}
	return m, nil
}
