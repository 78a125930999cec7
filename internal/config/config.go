package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config holds settings for both services. Each binary reads the groups it needs.
type Config struct {
	Port            int
	LogLevel        string
	DB              DB
	Redis           Redis
	RateLimit       RateLimit
	Pprof           Pprof
	Delivery        Delivery
	OrderService    Upstream
	DeliveryService Upstream
	Outbound        Outbound
	Idempotency     Idempotency
}

// DB is the postgres connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN returns a postgres URL for pgx.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", d.User, d.Pass, d.Host, d.Port, d.Name)
}

// Redis is the redis connection settings. An empty Addr disables redis.
type Redis struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether a redis address is configured.
func (r Redis) Enabled() bool { return r.Addr != "" }

// RateLimit configures the limiter. Buckets are per client address, calling service and route.
type RateLimit struct {
	Enabled    bool
	Backend    string // "memory" or "redis"
	Rate       float64
	Burst      int
	PeerRate   float64 // budget for calls from the other service
	PeerBurst  int
	TTL        time.Duration
	MaxBuckets int
	Window     time.Duration
}

// Pprof configures the profiling endpoints.
type Pprof struct {
	Enabled       bool
	User          string
	Pass          string
	BlockRate     int
	MutexFraction int
}

// Delivery holds delivery service tunables.
type Delivery struct {
	EstimateOffset    time.Duration
	OperationTimeout  time.Duration
	StatsSchedule     string
	StalePendingAfter time.Duration
}

// Upstream is a peer service reachable over HTTP.
type Upstream struct {
	BaseURL string
	Timeout time.Duration
}

// Outbound configures the background dispatcher for cross-service calls.
type Outbound struct {
	Workers        int
	QueueSize      int
	MaxAttempts    int
	BaseDelay      time.Duration
	MaxDelay       time.Duration
	AttemptTimeout time.Duration
}

// Idempotency configures replay of POST responses.
type Idempotency struct {
	TTL time.Duration
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := Default()
	r := envReader{}

	cfg.Port = r.int("PORT", cfg.Port)
	cfg.LogLevel = r.str("LOG_LEVEL", cfg.LogLevel)

	cfg.DB.Host = r.str("POSTGRES_HOST", cfg.DB.Host)
	cfg.DB.Port = r.str("POSTGRES_PORT", cfg.DB.Port)
	cfg.DB.User = r.str("POSTGRES_USER", cfg.DB.User)
	cfg.DB.Pass = r.str("POSTGRES_PASSWORD", cfg.DB.Pass)
	cfg.DB.Name = r.str("POSTGRES_DB", cfg.DB.Name)
	if _, err := strconv.Atoi(cfg.DB.Port); err != nil {
		r.fail("POSTGRES_PORT", cfg.DB.Port, err)
	}

	cfg.Redis.Addr = r.str("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = r.str("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = r.int("REDIS_DB", cfg.Redis.DB)

	cfg.RateLimit.Enabled = r.bool("RATE_LIMIT_ENABLED", cfg.RateLimit.Enabled)
	cfg.RateLimit.Backend = strings.ToLower(r.str("RATE_LIMIT_BACKEND", cfg.RateLimit.Backend))
	cfg.RateLimit.Rate = r.float("RATE_LIMIT_RATE", cfg.RateLimit.Rate)
	cfg.RateLimit.Burst = r.int("RATE_LIMIT_BURST", cfg.RateLimit.Burst)
	cfg.RateLimit.PeerRate = r.float("RATE_LIMIT_PEER_RATE", cfg.RateLimit.PeerRate)
	cfg.RateLimit.PeerBurst = r.int("RATE_LIMIT_PEER_BURST", cfg.RateLimit.PeerBurst)
	cfg.RateLimit.TTL = r.duration("RATE_LIMIT_TTL", cfg.RateLimit.TTL)
	cfg.RateLimit.MaxBuckets = r.int("RATE_LIMIT_MAX_BUCKETS", cfg.RateLimit.MaxBuckets)
	cfg.RateLimit.Window = r.duration("RATE_LIMIT_WINDOW", cfg.RateLimit.Window)

	cfg.Pprof.Enabled = r.bool("PPROF_ENABLED", cfg.Pprof.Enabled)
	cfg.Pprof.User = r.str("PPROF_USER", cfg.Pprof.User)
	cfg.Pprof.Pass = r.str("PPROF_PASSWORD", cfg.Pprof.Pass)
	cfg.Pprof.BlockRate = r.int("PPROF_BLOCK_RATE", cfg.Pprof.BlockRate)
	cfg.Pprof.MutexFraction = r.int("PPROF_MUTEX_FRACTION", cfg.Pprof.MutexFraction)

	cfg.Delivery.EstimateOffset = r.duration("DELIVERY_ESTIMATE_OFFSET", cfg.Delivery.EstimateOffset)
	cfg.Delivery.OperationTimeout = r.duration("DELIVERY_OPERATION_TIMEOUT", cfg.Delivery.OperationTimeout)
	cfg.Delivery.StatsSchedule = r.str("DELIVERY_STATS_SCHEDULE", cfg.Delivery.StatsSchedule)
	cfg.Delivery.StalePendingAfter = r.duration("DELIVERY_STALE_PENDING_AFTER", cfg.Delivery.StalePendingAfter)

	cfg.OrderService.BaseURL = r.str("ORDER_SERVICE_URL", cfg.OrderService.BaseURL)
	cfg.OrderService.Timeout = r.duration("ORDER_SERVICE_TIMEOUT", cfg.OrderService.Timeout)
	cfg.DeliveryService.BaseURL = r.str("DELIVERY_SERVICE_URL", cfg.DeliveryService.BaseURL)
	cfg.DeliveryService.Timeout = r.duration("DELIVERY_SERVICE_TIMEOUT", cfg.DeliveryService.Timeout)

	cfg.Outbound.Workers = r.int("OUTBOUND_WORKERS", cfg.Outbound.Workers)
	cfg.Outbound.QueueSize = r.int("OUTBOUND_QUEUE_SIZE", cfg.Outbound.QueueSize)
	cfg.Outbound.MaxAttempts = r.int("OUTBOUND_MAX_ATTEMPTS", cfg.Outbound.MaxAttempts)
	cfg.Outbound.BaseDelay = r.duration("OUTBOUND_BASE_DELAY", cfg.Outbound.BaseDelay)
	cfg.Outbound.MaxDelay = r.duration("OUTBOUND_MAX_DELAY", cfg.Outbound.MaxDelay)
	cfg.Outbound.AttemptTimeout = r.duration("OUTBOUND_ATTEMPT_TIMEOUT", cfg.Outbound.AttemptTimeout)

	cfg.Idempotency.TTL = r.duration("IDEMPOTENCY_TTL", cfg.Idempotency.TTL)

	if r.err != nil {
		return nil, r.err
	}

	if pflag.CommandLine.Lookup("port") == nil {
		pflag.CommandLine.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	}
	pflag.CommandLine.ParseErrorsWhitelist.UnknownFlags = true
	if err := pflag.CommandLine.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}
	if f := pflag.CommandLine.Lookup("port"); f != nil && f.Changed {
		p, err := strconv.Atoi(f.Value.String())
		if err != nil {
			return nil, fmt.Errorf("parse flags: %w", err)
		}
		cfg.Port = p
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.Outbound.Workers <= 0 {
		return fmt.Errorf("invalid OUTBOUND_WORKERS: %d", c.Outbound.Workers)
	}
	if c.Outbound.MaxAttempts <= 0 {
		return fmt.Errorf("invalid OUTBOUND_MAX_ATTEMPTS: %d", c.Outbound.MaxAttempts)
	}
	switch c.RateLimit.Backend {
	case RateLimitMemory, RateLimitRedis:
	default:
		return fmt.Errorf("invalid RATE_LIMIT_BACKEND: %q", c.RateLimit.Backend)
	}
	return nil
}

// envReader collects the first parse error so Load can report it once.
type envReader struct {
	err error
}

func (r *envReader) fail(key, raw string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("invalid %s=%q: %w", key, raw, err)
	}
}

func (r *envReader) str(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func (r *envReader) int(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return n
}

func (r *envReader) float(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return n
}

func (r *envReader) bool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return b
}

func (r *envReader) duration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return d
}
