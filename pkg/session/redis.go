package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces session keys in a shared Redis instance.
const keyPrefix = "decoy:session:"

// RedisStore implements Store on Redis with TTL expiry. Sessions
// survive gateway restarts and can be shared across replicas.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed session store. A zero TTL
// defaults to one hour.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 1 * time.Hour
	}
	return &RedisStore{client: client, ttl: ttl}
}

// Get retrieves a session by key. Returns nil, nil if not found.
func (s *RedisStore) Get(ctx context.Context, key string) (*State, error) {
	data, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Not found is not an error
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("corrupt session %s: %w", key, err)
	}
	return &state, nil
}

// Save creates or updates a session, resetting its TTL.
func (s *RedisStore) Save(ctx context.Context, state *State) error {
	if state == nil {
		return fmt.Errorf("session state is nil")
	}
	if state.Key == "" {
		return fmt.Errorf("session key is required")
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+state.Key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete removes a session.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
