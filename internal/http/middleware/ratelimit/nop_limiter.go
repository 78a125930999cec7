package ratelimit

import "context"

// NopLimiter lets everything through. Used when rate limiting is switched off.
type NopLimiter struct{}

// Allow always returns true.
func (NopLimiter) Allow(context.Context, Key) (bool, error) { return true, nil }
