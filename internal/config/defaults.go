package config

import "time"

// Rate limiter backends.
const (
	RateLimitMemory = "memory"
	RateLimitRedis  = "redis"
)

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "test_db",
}

var defaultRateLimit = RateLimit{
	Enabled:    false,
	Backend:    RateLimitMemory,
	Rate:       10,
	Burst:      20,
	PeerRate:   50,
	PeerBurst:  100,
	TTL:        10 * time.Minute,
	MaxBuckets: 10_000,
	Window:     time.Second,
}

var defaultDelivery = Delivery{
	EstimateOffset:    30 * time.Minute,
	OperationTimeout:  3 * time.Second,
	StatsSchedule:     "@every 30s",
	StalePendingAfter: 15 * time.Minute,
}

var defaultOutbound = Outbound{
	Workers:        4,
	QueueSize:      256,
	MaxAttempts:    4,
	BaseDelay:      150 * time.Millisecond,
	MaxDelay:       2 * time.Second,
	AttemptTimeout: 2 * time.Second,
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Port:      defaultPort,
		LogLevel:  "info",
		DB:        defaultDB,
		RateLimit: defaultRateLimit,
		Delivery:  defaultDelivery,
		OrderService: Upstream{
			BaseURL: "http://localhost:8081",
			Timeout: 2 * time.Second,
		},
		DeliveryService: Upstream{
			BaseURL: "http://localhost:8083",
			Timeout: 2 * time.Second,
		},
		Outbound:    defaultOutbound,
		Idempotency: Idempotency{TTL: 24 * time.Hour},
	}
}
