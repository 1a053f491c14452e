package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationStore is the Redis-backed revoked-token set. Each revoked jti is
// kept as its own key with a TTL matching the token's remaining lifetime, so
// the set never outgrows the tokens it guards. Key format: revoked:<jti>
type RevocationStore struct {
	client *redis.Client
}

// NewRevocationStore creates a RevocationStore wrapping the given Redis client.
func NewRevocationStore(client *redis.Client) *RevocationStore {
	return &RevocationStore{client: client}
}

// Add records the jti as revoked until the token would have expired anyway.
// Overwriting an existing entry makes the operation idempotent.
func (s *RevocationStore) Add(ctx context.Context, jti string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// Contains reports whether the jti has been revoked.
func (s *RevocationStore) Contains(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func (s *RevocationStore) key(jti string) string {
	return "revoked:" + jti
}
