package session

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Mirror is the reload-surviving store for serialized session state. A session
// owns every key under its prefix; Wipe must remove them all, not just the
// principal blob.
type Mirror interface {
	Get(ctx context.Context, token, field string) (string, error)
	Set(ctx context.Context, token, field, value string, ttl time.Duration) error
	Delete(ctx context.Context, token, field string) error
	Wipe(ctx context.Context, token string) error
}

// RedisMirror keeps session state in Redis under session:<token>:<field>.
type RedisMirror struct {
	client *redis.Client
}

// NewRedisMirror wraps a redis client.
func NewRedisMirror(client *redis.Client) *RedisMirror {
	return &RedisMirror{client: client}
}

func sessionKey(token, field string) string {
	return "session:" + token + ":" + field
}

// Get returns the stored value, or "" when the key is absent.
func (m *RedisMirror) Get(ctx context.Context, token, field string) (string, error) {
	val, err := m.client.Get(ctx, sessionKey(token, field)).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

// Set stores a value with the session TTL.
func (m *RedisMirror) Set(ctx context.Context, token, field, value string, ttl time.Duration) error {
	return m.client.Set(ctx, sessionKey(token, field), value, ttl).Err()
}

// Delete removes a single field.
func (m *RedisMirror) Delete(ctx context.Context, token, field string) error {
	return m.client.Del(ctx, sessionKey(token, field)).Err()
}

// Wipe removes every key scoped to the session.
func (m *RedisMirror) Wipe(ctx context.Context, token string) error {
	pattern := "session:" + token + ":*"
	iter := m.client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return m.client.Del(ctx, keys...).Err()
}
