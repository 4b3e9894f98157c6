package member

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store used by tests and store-less dev mode.
type MemoryStore struct {
	mu      sync.Mutex
	byID    map[string]Member
	byEmail map[string]string // normalized email -> id
}

// NewMemoryStore constructs an empty in-memory member store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:    make(map[string]Member),
		byEmail: make(map[string]string),
	}
}

// Create inserts a new member, enforcing email uniqueness.
func (s *MemoryStore) Create(ctx context.Context, m Member) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[m.Email]; exists {
		return ErrEmailTaken
	}
	s.byID[m.ID] = m
	s.byEmail[m.Email] = m.ID
	return nil
}

// FindByEmail loads a member by normalized email.
func (s *MemoryStore) FindByEmail(ctx context.Context, email string) (Member, error) {
	if err := ctx.Err(); err != nil {
		return Member{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byEmail[email]
	if !ok {
		return Member{}, ErrNotFound
	}
	return s.byID[id], nil
}

// FindByID loads a member by id.
func (s *MemoryStore) FindByID(ctx context.Context, id string) (Member, error) {
	if err := ctx.Err(); err != nil {
		return Member{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.byID[id]
	if !ok {
		return Member{}, ErrNotFound
	}
	return m, nil
}

// UpdateStatus transitions the account lifecycle state.
func (s *MemoryStore) UpdateStatus(ctx context.Context, id string, status Status, now time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}
	m.Status = status
	m.UpdatedAt = now
	s.byID[id] = m
	return nil
}
