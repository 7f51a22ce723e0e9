package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore persists bearer tokens in Redis so sessions survive portal
// restarts. Key format: session_token:<client_id>
type TokenStore struct {
	client *redis.Client
	ttl    time.Duration
}

const defaultTokenTTL = 24 * time.Hour

// NewTokenStore creates a TokenStore wrapping the given Redis client.
// Entries expire after ttl; the backend's own token expiry remains the
// authoritative limit. If ttl <= 0, a 24h default is used.
func NewTokenStore(client *redis.Client, ttl time.Duration) *TokenStore {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenStore{client: client, ttl: ttl}
}

// Save stores the client's token, refreshing the expiry window.
func (s *TokenStore) Save(ctx context.Context, clientID, token string) error {
	if err := s.client.Set(ctx, s.key(clientID), token, s.ttl).Err(); err != nil {
		return fmt.Errorf("token save: %w", err)
	}
	return nil
}

// Load returns the client's persisted token, or "" when none is stored.
func (s *TokenStore) Load(ctx context.Context, clientID string) (string, error) {
	token, err := s.client.Get(ctx, s.key(clientID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("token load: %w", err)
	}
	return token, nil
}

// Delete removes the client's persisted token.
func (s *TokenStore) Delete(ctx context.Context, clientID string) error {
	if err := s.client.Del(ctx, s.key(clientID)).Err(); err != nil {
		return fmt.Errorf("token delete: %w", err)
	}
	return nil
}

func (s *TokenStore) key(clientID string) string {
	return "session_token:" + clientID
}
