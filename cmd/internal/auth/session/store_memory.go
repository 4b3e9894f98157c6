package session

import (
	"context"
	"sync"
	"time"
)

// MemoryRefreshStore is an in-process RefreshStore used by tests and
// store-less dev mode. Expiry is checked lazily on read.
type MemoryRefreshStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	slots map[string]map[string]memorySlot // subjectID -> deviceID -> slot
}

type memorySlot struct {
	value     string
	expiresAt time.Time
}

// NewMemoryRefreshStore constructs a MemoryRefreshStore with the given slot TTL.
func NewMemoryRefreshStore(ttl time.Duration) *MemoryRefreshStore {
	return &MemoryRefreshStore{
		ttl:   ttl,
		slots: make(map[string]map[string]memorySlot),
	}
}

// Save unconditionally overwrites the slot and resets its TTL.
func (s *MemoryRefreshStore) Save(ctx context.Context, subjectID, deviceID, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	devices := s.slots[subjectID]
	if devices == nil {
		devices = make(map[string]memorySlot)
		s.slots[subjectID] = devices
	}
	devices[deviceID] = memorySlot{value: value, expiresAt: time.Now().Add(s.ttl)}
	return nil
}

// Find returns the stored value or ErrNoRefreshToken.
func (s *MemoryRefreshStore) Find(ctx context.Context, subjectID, deviceID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	slot, ok := s.slots[subjectID][deviceID]
	if !ok {
		return "", ErrNoRefreshToken
	}
	if !slot.expiresAt.After(time.Now()) {
		delete(s.slots[subjectID], deviceID)
		return "", ErrNoRefreshToken
	}
	return slot.value, nil
}

// Delete removes one slot; absent slots are not an error.
func (s *MemoryRefreshStore) Delete(ctx context.Context, subjectID, deviceID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.slots[subjectID], deviceID)
	return nil
}

// DeleteAll removes every device slot for the subject.
func (s *MemoryRefreshStore) DeleteAll(ctx context.Context, subjectID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.slots, subjectID)
	return nil
}

// MemoryBlacklistStore is an in-process BlacklistStore for tests and dev mode.
type MemoryBlacklistStore struct {
	mu      sync.Mutex
	entries map[string]time.Time // jti -> expiresAt
}

// NewMemoryBlacklistStore constructs an empty MemoryBlacklistStore.
func NewMemoryBlacklistStore() *MemoryBlacklistStore {
	return &MemoryBlacklistStore{entries: make(map[string]time.Time)}
}

// Add inserts jti with the given TTL; non-positive TTLs are a no-op.
func (s *MemoryBlacklistStore) Add(ctx context.Context, jti string, remaining time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if remaining <= 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[jti] = time.Now().Add(remaining)
	return nil
}

// IsBlacklisted reports whether jti is revoked and not yet expired.
func (s *MemoryBlacklistStore) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	exp, ok := s.entries[jti]
	if !ok {
		return false, nil
	}
	if !exp.After(time.Now()) {
		delete(s.entries, jti)
		return false, nil
	}
	return true, nil
}
