package app

import (
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/config"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/http/handlers"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/http/middleware"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/http/middleware/ratelimit"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/http/pprofserver"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/http/router"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/idempotency"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/logx"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/metrics"
)

func newIdempotencyStore(cfg *config.Config, rdb *goredis.Client) idempotency.Store {
	if rdb == nil {
		return idempotency.NopStore{}
	}
	return idempotency.NewRedisStore(rdb, cfg.Idempotency.TTL)
}

type routerIn struct {
	dig.In

	Config    *config.Config
	Logger    logx.Logger
	Base      *handlers.Handlers
	Metrics   metrics.HTTP
	Gatherer  prometheus.Gatherer
	RateLimit *ratelimit.Middleware
	Store     idempotency.Store
	Replays   prometheus.Counter `name:"idempotent_replays_total"`
}

func newRouterOptions(in routerIn) router.Options {
	o := router.Options{
		Logger:      in.Logger,
		Base:        in.Base,
		Metrics:     in.Metrics,
		Gatherer:    in.Gatherer,
		Idempotency: middleware.Idempotency(in.Logger, in.Store, in.Replays),
		Pprof: pprofserver.Config{
			Enabled: in.Config.Pprof.Enabled,
			User:    in.Config.Pprof.User,
			Pass:    in.Config.Pprof.Pass,

			BlockRate:     in.Config.Pprof.BlockRate,
			MutexFraction: in.Config.Pprof.MutexFraction,
		},
	}
	if in.Config.RateLimit.Enabled {
		o.RateLimit = in.RateLimit.Handler()
	}
	return o
}

// registerHTTP wires the parts of the HTTP stack both services share.
// routerProvider builds the service's http.Handler from router.Options.
func registerHTTP(container *dig.Container, routerProvider any) error {
	return provideAll(container,
		handlers.New,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		newIdempotencyStore,
		newRouterOptions,
		routerProvider,
		newServer,
	)
}
