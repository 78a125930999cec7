package ratelimit

import (
	"context"
	"time"
)

// Limiter decides whether a request identified by key may proceed.
// An error means the decision could not be made; callers let the request through.
type Limiter interface {
	Allow(ctx context.Context, key Key) (bool, error)
}

// Clock provides current time.
type Clock interface {
	Now() time.Time
}

// RealClock reads the wall clock.
type RealClock struct{}

// Now returns current time.
func (RealClock) Now() time.Time { return time.Now() }
