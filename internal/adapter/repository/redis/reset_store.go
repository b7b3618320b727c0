package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// ResetStore implements usecase.ResetStore using Redis. Pending reset tokens
// are stored without expiry: a requested reset stays confirmable until it is
// confirmed or cancelled.
type ResetStore struct {
	client *redis.Client
	prefix string
}

// NewResetStore creates a new ResetStore.
func NewResetStore(client *redis.Client) *ResetStore {
	return &ResetStore{
		client: client,
		prefix: "reset:",
	}
}

// Create registers a pending reset token.
func (s *ResetStore) Create(ctx context.Context, token string) error {
	return s.client.Set(ctx, s.prefix+token, "pending", 0).Err()
}

// Take consumes the token. It reports whether the token existed, so a
// confirmation races at most one winner.
func (s *ResetStore) Take(ctx context.Context, token string) (bool, error) {
	deleted, err := s.client.Del(ctx, s.prefix+token).Result()
	if err != nil {
		return false, err
	}
	return deleted > 0, nil
}

// Cancel discards the token, reporting whether it existed.
func (s *ResetStore) Cancel(ctx context.Context, token string) (bool, error) {
	deleted, err := s.client.Del(ctx, s.prefix+token).Result()
	if err != nil {
		return false, err
	}
	return deleted > 0, nil
}
