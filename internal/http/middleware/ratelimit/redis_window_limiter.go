package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// Limits is the number of requests a window admits, per kind of caller.
type Limits struct {
	Client int
	Peer   int // zero means same as Client
}

// RedisWindowLimiter is a sliding-window limiter shared by every replica through redis.
type RedisWindowLimiter struct {
	client *goredis.Client
	limits Limits
	window time.Duration
	clock  Clock
}

// NewRedisWindowLimiter allows limits.Client (or limits.Peer for peer services)
// requests per key within window.
func NewRedisWindowLimiter(client *goredis.Client, limits Limits, window time.Duration, clock Clock) *RedisWindowLimiter {
	if limits.Client <= 0 {
		limits.Client = 1
	}
	if limits.Peer <= 0 {
		limits.Peer = limits.Client
	}
	if window <= 0 {
		window = time.Second
	}
	if clock == nil {
		clock = RealClock{}
	}
	return &RedisWindowLimiter{client: client, limits: limits, window: window, clock: clock}
}

// Allow records the request and reports whether the window still had room for it.
func (l *RedisWindowLimiter) Allow(ctx context.Context, key Key) (bool, error) {
	k := "ratelimit:" + key.String()
	now := l.clock.Now()
	windowStart := now.Add(-l.window)

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, k, "0", strconv.FormatInt(windowStart.UnixMilli(), 10))
	countCmd := pipe.ZCard(ctx, k)
	pipe.ZAdd(ctx, k, goredis.Z{Score: float64(now.UnixMilli()), Member: uuid.NewString()})
	pipe.Expire(ctx, k, l.window)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limiter pipeline: %w", err)
	}

	limit := l.limits.Client
	if key.Peer() {
		limit = l.limits.Peer
	}
	return countCmd.Val() < int64(limit), nil
}
