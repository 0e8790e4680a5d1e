// Package cache provides the Redis-backed token revocation store. Logout
// pushes the raw token with the remaining JWT TTL; the auth middleware
// rejects any token still present.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "revoked_token:"

// RedisRevocationStore implements token revocation on top of a Redis client.
type RedisRevocationStore struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisRevocationStore creates a store from a Redis URL
// (redis://host:port/db).
func NewRedisRevocationStore(url string, logger *slog.Logger) (*RedisRevocationStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &RedisRevocationStore{client: redis.NewClient(opt), logger: logger}, nil
}

// NewRedisRevocationStoreWithClient wraps an existing client; tests use this
// with a miniature or mocked client.
func NewRedisRevocationStoreWithClient(client *redis.Client, logger *slog.Logger) *RedisRevocationStore {
	return &RedisRevocationStore{client: client, logger: logger}
}

// Revoke marks the token revoked for ttl. Tokens already past expiry are
// ignored; the JWT check rejects them anyway.
func (s *RedisRevocationStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, revokedKeyPrefix+token, "1", ttl).Err(); err != nil {
		s.logger.Error("revocation set failed", "error", err)
		return err
	}
	return nil
}

// IsRevoked reports whether the token has been revoked.
func (s *RedisRevocationStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKeyPrefix+token).Result()
	if err != nil {
		s.logger.Error("revocation lookup failed", "error", err)
		return false, err
	}
	return n > 0, nil
}

// Close releases the underlying client.
func (s *RedisRevocationStore) Close() error {
	return s.client.Close()
}
