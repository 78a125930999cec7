package app

import (
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/config"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/http/middleware/ratelimit"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/logx"
)

// Service names sent in gateway.CallerHeader.
const (
	deliveryServiceName = "service-delivery"
	orderServiceName    = "service-order"
)

var peerServices = []string{deliveryServiceName, orderServiceName}

func newRateLimiter(cfg *config.Config, clock ratelimit.Clock, rdb *goredis.Client, logger logx.Logger) ratelimit.Limiter {
	rl := cfg.RateLimit
	if !rl.Enabled {
		return ratelimit.NopLimiter{}
	}
	if rl.Backend == config.RateLimitRedis {
		if rdb != nil {
			return ratelimit.NewRedisWindowLimiter(rdb, ratelimit.Limits{Client: rl.Burst, Peer: rl.PeerBurst}, rl.Window, clock)
		}
		// без redis откатываемся на память
		logger.Warn("redis rate limiter requested without REDIS_ADDR, using in-memory limiter")
	}
	return ratelimit.NewTokenBucketLimiter(clock, ratelimit.Config{
		Client:     ratelimit.Budget{Rate: rl.Rate, Burst: rl.Burst},
		Peer:       ratelimit.Budget{Rate: rl.PeerRate, Burst: rl.PeerBurst},
		TTL:        rl.TTL,
		MaxBuckets: rl.MaxBuckets,
	})
}

func newRateLimitClock() ratelimit.Clock {
	return ratelimit.RealClock{}
}

type rateLimitIn struct {
	dig.In
	Logger  logx.Logger
	Counter prometheus.Counter `name:"rate_limit_exceeded_total"`
	Limiter ratelimit.Limiter
}

func newRateLimitMiddleware(in rateLimitIn) *ratelimit.Middleware {
	return ratelimit.New(in.Logger, in.Counter, in.Limiter, peerServices...)
}
