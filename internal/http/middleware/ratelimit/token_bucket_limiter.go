package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Budget is the refill rate (tokens per second) and capacity of one bucket.
type Budget struct {
	Rate  float64
	Burst int
}

func (b Budget) normalized() Budget {
	if b.Rate <= 0 {
		b.Rate = 1
	}
	if b.Burst <= 0 {
		b.Burst = 1
	}
	return b
}

// Config stores TokenBucketLimiter settings.
type Config struct {
	Client     Budget        // browsers and unknown callers
	Peer       Budget        // peer services; zero means same as Client
	TTL        time.Duration // idle buckets are dropped after TTL, 0 keeps them
	MaxBuckets int           // 0 is unlimited
}

// TokenBucketLimiter keeps one in-memory token bucket per Key.
// Peer services draw from the Peer budget, everyone else from Client.
type TokenBucketLimiter struct {
	cfg         Config
	clock       Clock
	mu          sync.RWMutex
	buckets     map[string]*bucket
	lastCleanup time.Time
}

type bucket struct {
	mu       sync.Mutex
	budget   Budget
	tokens   float64
	last     time.Time
	lastSeen time.Time
}

// NewTokenBucketLimiter creates a limiter reading time from clock.
func NewTokenBucketLimiter(clock Clock, cfg Config) *TokenBucketLimiter {
	if clock == nil {
		clock = RealClock{}
	}
	cfg.Client = cfg.Client.normalized()
	if cfg.Peer.Rate <= 0 && cfg.Peer.Burst <= 0 {
		cfg.Peer = cfg.Client
	}
	cfg.Peer = cfg.Peer.normalized()
	if cfg.MaxBuckets < 0 {
		cfg.MaxBuckets = 0
	}
	return &TokenBucketLimiter{
		cfg:     cfg,
		clock:   clock,
		buckets: make(map[string]*bucket),
	}
}

// Allow takes a token from the bucket of key. A full bucket table rejects new keys.
func (l *TokenBucketLimiter) Allow(_ context.Context, key Key) (bool, error) {
	now := l.clock.Now()
	l.maybeCleanup(now)

	b := l.bucketFor(key, now)
	if b == nil {
		return false, nil
	}
	return b.take(now), nil
}

func (l *TokenBucketLimiter) budgetFor(key Key) Budget {
	if key.Peer() {
		return l.cfg.Peer
	}
	return l.cfg.Client
}

func (l *TokenBucketLimiter) bucketFor(key Key, now time.Time) *bucket {
	id := key.String()

	l.mu.RLock()
	b := l.buckets[id]
	l.mu.RUnlock()
	if b != nil {
		return b
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if b = l.buckets[id]; b != nil {
		return b
	}
	if l.cfg.MaxBuckets > 0 && len(l.buckets) >= l.cfg.MaxBuckets {
		return nil
	}

	budget := l.budgetFor(key)
	b = &bucket{budget: budget, tokens: float64(budget.Burst), last: now, lastSeen: now}
	l.buckets[id] = b
	return b
}

func (b *bucket) take(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if dt := now.Sub(b.last); dt > 0 {
		b.tokens = min(b.tokens+dt.Seconds()*b.budget.Rate, float64(b.budget.Burst))
		b.last = now
	}
	b.lastSeen = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// maybeCleanup drops idle buckets at most once per max(TTL/2, 1m).
func (l *TokenBucketLimiter) maybeCleanup(now time.Time) {
	if l.cfg.TTL <= 0 {
		return
	}
	interval := max(l.cfg.TTL/2, time.Minute)

	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.lastCleanup.IsZero() && now.Sub(l.lastCleanup) < interval {
		return
	}
	l.lastCleanup = now

	for id, b := range l.buckets {
		b.mu.Lock()
		idle := now.Sub(b.lastSeen) > l.cfg.TTL
		b.mu.Unlock()
		if idle {
			delete(l.buckets, id)
		}
	}
}
