package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/config"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/gateway"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/logx"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/metrics"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/outbound"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/repository"
)

type dbConnectFunc func(ctx context.Context, logger logx.Logger, dsn string, retries int, delay time.Duration) (*pgxpool.Pool, error)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect  dbConnectFunc
	migrate    func(dsn string, schema repository.Schema) error
	loadConfig func() (*config.Config, error)
	registry   prometheus.Registerer
	gatherer   prometheus.Gatherer
	logFatalf  func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect:  connectDbWithRetry,
		migrate:    repository.Migrate,
		loadConfig: config.Load,
		registry:   prometheus.DefaultRegisterer,
		gatherer:   prometheus.DefaultGatherer,
		logFatalf:  log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(fn dbConnectFunc) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithMigrate sets the schema migration function
func (b *ContainerBuilder) WithMigrate(fn func(string, repository.Schema) error) *ContainerBuilder {
	if fn != nil {
		b.migrate = fn
	}
	return b
}

// WithConfig replaces config loading with a fixed config
func (b *ContainerBuilder) WithConfig(cfg *config.Config) *ContainerBuilder {
	if cfg != nil {
		b.loadConfig = func() (*config.Config, error) { return cfg, nil }
	}
	return b
}

// WithRegistry sets where metrics are registered and gathered from
func (b *ContainerBuilder) WithRegistry(reg *prometheus.Registry) *ContainerBuilder {
	if reg != nil {
		b.registry = reg
		b.gatherer = reg
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuildDelivery builds the service-delivery container
func (b *ContainerBuilder) MustBuildDelivery(ctx context.Context) *dig.Container {
	return b.must(b.buildDelivery(ctx))
}

// MustBuildOrder builds the service-order container
func (b *ContainerBuilder) MustBuildOrder(ctx context.Context) *dig.Container {
	return b.must(b.buildOrder(ctx))
}

func (b *ContainerBuilder) must(container *dig.Container, err error) *dig.Container {
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// MustBuildDeliveryContainer builds the service-delivery container with default wiring
func MustBuildDeliveryContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuildDelivery(ctx)
}

// MustBuildOrderContainer builds the service-order container with default wiring
func MustBuildOrderContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuildOrder(ctx)
}

// buildShared registers what both services need
func (b *ContainerBuilder) buildShared(ctx context.Context, schema repository.Schema) (*dig.Container, error) {
	container := dig.New()

	if err := b.registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect, b.migrate, schema); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerRedis(container); err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}
	if err := registerMetrics(container); err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	if err := registerOutbound(container); err != nil {
		return nil, fmt.Errorf("outbound: %w", err)
	}
	return container, nil
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func (b *ContainerBuilder) registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		b.loadConfig,
		func(cfg *config.Config) logx.Logger { return NewLogger(cfg.LogLevel) },
		func() prometheus.Registerer { return b.registry },
		func() prometheus.Gatherer { return b.gatherer },
	)
}

func registerDb(
	container *dig.Container,
	dbConnect dbConnectFunc,
	migrate func(string, repository.Schema) error,
	schema repository.Schema,
) error {
	providerDB := func(ctx context.Context, cfg *config.Config, logger logx.Logger) (*pgxpool.Pool, error) {
		dsn := cfg.DB.DSN()
		pool, err := dbConnect(ctx, logger, dsn, 10, time.Second)
		if err != nil {
			return nil, err
		}
		if err := migrate(dsn, schema); err != nil {
			pool.Close()
			return nil, err
		}
		logger.Info("schema migrated", logx.String("schema", string(schema)))
		return pool, nil
	}
	return provideAll(container, providerDB)
}

// registerRedis provides a client, or nil when redis is not configured
func registerRedis(container *dig.Container) error {
	return provideAll(container, func(cfg *config.Config) *goredis.Client {
		if !cfg.Redis.Enabled() {
			return nil
		}
		return goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	})
}

type metricsOut struct {
	dig.Out

	HTTP              metrics.HTTP
	Outbound          metrics.Outbound
	RateLimitExceeded prometheus.Counter `name:"rate_limit_exceeded_total"`
	IdempotentReplays prometheus.Counter `name:"idempotent_replays_total"`
}

func provideMetrics(reg prometheus.Registerer) (metricsOut, error) {
	out := metricsOut{
		HTTP:              metrics.NewHTTP(),
		Outbound:          metrics.NewOutbound(),
		RateLimitExceeded: metrics.NewRateLimitExceededTotal(),
		IdempotentReplays: metrics.NewIdempotentReplaysTotal(),
	}
	cs := append(out.HTTP.Collectors(), out.Outbound.Collectors()...)
	cs = append(cs, out.RateLimitExceeded, out.IdempotentReplays)
	if err := metrics.Register(reg, cs...); err != nil {
		return metricsOut{}, fmt.Errorf("register metrics: %w", err)
	}
	return out, nil
}

func registerMetrics(container *dig.Container) error {
	return provideAll(container, provideMetrics)
}

func newDispatcher(cfg *config.Config, logger logx.Logger, m metrics.Outbound) *outbound.Dispatcher {
	o := cfg.Outbound
	return outbound.New(outbound.Config{
		Workers:        o.Workers,
		QueueSize:      o.QueueSize,
		AttemptTimeout: o.AttemptTimeout,
		Retry: outbound.RetryConfig{
			MaxAttempts: o.MaxAttempts,
			BaseDelay:   o.BaseDelay,
			MaxDelay:    o.MaxDelay,
		},
	}, logger, m, gateway.IsRetryable)
}

func registerOutbound(container *dig.Container) error {
	return provideAll(container,
		newDispatcher,
		func(d *outbound.Dispatcher) outbound.Enqueuer { return d },
	)
}

func newServer(cfg *config.Config, mux http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
