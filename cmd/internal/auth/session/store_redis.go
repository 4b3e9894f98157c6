package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	refreshKeyPrefix   = "refresh:"
	blacklistKeyPrefix = "blacklist:"

	// deleteAllScanCount bounds each SCAN page during a revocation sweep.
	deleteAllScanCount = 100
)

// RedisRefreshStore is the production RefreshStore.
//
// Layout: one string key per (subject, device) slot, "refresh:<subject>:<device>",
// holding the refresh-token hash with the configured TTL. Per-key atomicity of
// SET/GET/DEL gives the linearizability the Service relies on.
type RedisRefreshStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRefreshStore constructs a RedisRefreshStore with the given slot TTL.
func NewRedisRefreshStore(client *redis.Client, ttl time.Duration) (*RedisRefreshStore, error) {
	if client == nil {
		return nil, errors.New("session: nil redis client")
	}
	if ttl <= 0 {
		return nil, ErrConfig
	}
	return &RedisRefreshStore{client: client, ttl: ttl}, nil
}

func refreshKey(subjectID, deviceID string) string {
	return refreshKeyPrefix + subjectID + ":" + deviceID
}

// Save unconditionally overwrites the slot and resets its TTL.
func (s *RedisRefreshStore) Save(ctx context.Context, subjectID, deviceID, value string) error {
	if err := s.client.Set(ctx, refreshKey(subjectID, deviceID), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("refresh store save: %w", err)
	}
	return nil
}

// Find returns the stored value or ErrNoRefreshToken; TTL expiry surfaces as absence.
func (s *RedisRefreshStore) Find(ctx context.Context, subjectID, deviceID string) (string, error) {
	v, err := s.client.Get(ctx, refreshKey(subjectID, deviceID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNoRefreshToken
		}
		return "", fmt.Errorf("refresh store find: %w", err)
	}
	return v, nil
}

// Delete removes one slot; deleting an absent slot is not an error.
func (s *RedisRefreshStore) Delete(ctx context.Context, subjectID, deviceID string) error {
	if err := s.client.Del(ctx, refreshKey(subjectID, deviceID)).Err(); err != nil {
		return fmt.Errorf("refresh store delete: %w", err)
	}
	return nil
}

// DeleteAll removes every device slot for the subject.
//
// The sweep SCANs a snapshot of matching keys and deletes them in one batch.
// A slot written between the scan and the delete may survive; that race is
// accepted (a session created mid-sweep is indistinguishable from one
// created just after it).
func (s *RedisRefreshStore) DeleteAll(ctx context.Context, subjectID string) error {
	pattern := refreshKeyPrefix + subjectID + ":*"

	var keys []string
	iter := s.client.Scan(ctx, 0, pattern, deleteAllScanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("refresh store scan: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("refresh store delete all: %w", err)
	}
	return nil
}

// RedisBlacklistStore is the production BlacklistStore.
//
// Layout: "blacklist:<jti>" with TTL = the token's remaining lifetime at
// logout, so entries fall out on their own and never outlive the token.
type RedisBlacklistStore struct {
	client *redis.Client
}

// NewRedisBlacklistStore constructs a RedisBlacklistStore.
func NewRedisBlacklistStore(client *redis.Client) (*RedisBlacklistStore, error) {
	if client == nil {
		return nil, errors.New("session: nil redis client")
	}
	return &RedisBlacklistStore{client: client}, nil
}

// Add inserts jti with the given TTL; non-positive TTLs are a no-op.
func (s *RedisBlacklistStore) Add(ctx context.Context, jti string, remaining time.Duration) error {
	if remaining <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, blacklistKeyPrefix+jti, "revoked", remaining).Err(); err != nil {
		return fmt.Errorf("blacklist add: %w", err)
	}
	return nil
}

// IsBlacklisted reports whether jti is currently revoked.
func (s *RedisBlacklistStore) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, blacklistKeyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("blacklist check: %w", err)
	}
	return n > 0, nil
}
