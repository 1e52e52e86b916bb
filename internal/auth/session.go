package auth

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Sessions tracks live admin sessions in Redis so a logout revokes the token
// before its JWT expiry. Keys expire with the session TTL on their own.
type Sessions struct {
	client *redis.Client
}

// NewSessions creates a session registry.
func NewSessions(client *redis.Client) *Sessions {
	return &Sessions{client: client}
}

func sessionKey(id string) string { return "faceattend:session:" + id }

// Create registers a session id with the given lifetime.
func (s *Sessions) Create(ctx context.Context, id string, ttl time.Duration) error {
	return s.client.Set(ctx, sessionKey(id), time.Now().Unix(), ttl).Err()
}

// Valid reports whether a session id is still live.
func (s *Sessions) Valid(ctx context.Context, id string) (bool, error) {
	err := s.client.Get(ctx, sessionKey(id)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Revoke deletes a session id. Revoking an unknown id is a no-op.
func (s *Sessions) Revoke(ctx context.Context, id string) error {
	return s.client.Del(ctx, sessionKey(id)).Err()
}
