package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/finintel/finintel/internal/model"
)

// sessionKeyPrefix is the Redis key prefix for session storage.
const sessionKeyPrefix = "session:"

// ErrSessionNotFound indicates the session token is unknown or expired.
var ErrSessionNotFound = errors.New("session not found")

// cachedSession is the JSON shape stored in Redis per session token.
type cachedSession struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// SetSession stores a session with the given TTL.
func (c *Cache) SetSession(ctx context.Context, token string, auth *model.AuthContext, ttl time.Duration) error {
	key := sessionKeyPrefix + token

	data, err := json.Marshal(cachedSession{
		UserID:   auth.UserID,
		Username: auth.Username,
		Email:    auth.Email,
	})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	return nil
}

// GetSession resolves a session token to an auth context.
// Returns ErrSessionNotFound for unknown or expired tokens.
func (c *Cache) GetSession(ctx context.Context, token string) (*model.AuthContext, error) {
	key := sessionKeyPrefix + token

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var cached cachedSession
	if err := json.Unmarshal(data, &cached); err != nil {
		// Corrupted entry - treat as missing
		return nil, ErrSessionNotFound
	}

	return &model.AuthContext{
		SessionID: token,
		UserID:    cached.UserID,
		Username:  cached.Username,
		Email:     cached.Email,
	}, nil
}

// DeleteSession removes a session. Used on logout.
func (c *Cache) DeleteSession(ctx context.Context, token string) error {
	key := sessionKeyPrefix + token
	return c.client.Del(ctx, key).Err()
}

// RefreshSession extends a session's TTL.
func (c *Cache) RefreshSession(ctx context.Context, token string, ttl time.Duration) error {
	key := sessionKeyPrefix + token
	return c.client.Expire(ctx, key, ttl).Err()
}
