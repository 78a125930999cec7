// Package idempotency keeps the first successful answer to a request carrying an
// Idempotency-Key so that a repeated request gets the same answer.
package idempotency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Response is a stored HTTP answer.
type Response struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// Store persists responses by scope and key.
type Store interface {
	Get(ctx context.Context, scope, key string) (*Response, bool, error)
	Save(ctx context.Context, scope, key string, resp Response) error
}

// RedisStore keeps responses in redis with a TTL.
type RedisStore struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewRedisStore creates a RedisStore. A non-positive ttl defaults to 24h.
func NewRedisStore(client *goredis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStore{client: client, ttl: ttl}
}

// Get returns the stored response, if any.
func (s *RedisStore) Get(ctx context.Context, scope, key string) (*Response, bool, error) {
	raw, err := s.client.Get(ctx, redisKey(scope, key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("check idempotency key: %w", err)
	}
	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, false, fmt.Errorf("decode idempotent response: %w", err)
	}
	return &resp, true, nil
}

// Save stores resp unless a response is already stored for the key.
func (s *RedisStore) Save(ctx context.Context, scope, key string, resp Response) error {
	raw, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode idempotent response: %w", err)
	}
	if err := s.client.SetNX(ctx, redisKey(scope, key), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("set idempotency key: %w", err)
	}
	return nil
}

func redisKey(scope, key string) string {
	return fmt.Sprintf("idempotency:%s:%s", scope, key)
}

// NopStore never remembers anything.
type NopStore struct{}

// Get always misses.
func (NopStore) Get(context.Context, string, string) (*Response, bool, error) { return nil, false, nil }

// Save does nothing.
func (NopStore) Save(context.Context, string, string, Response) error { return nil }
