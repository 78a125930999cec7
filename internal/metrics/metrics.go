package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewIdempotentReplaysTotal counts POST responses served from the idempotency cache.
func NewIdempotentReplaysTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "idempotent_replays_total",
		Help: "Total number of responses replayed for a repeated Idempotency-Key",
	})
}

// Outbound groups the counters of the cross-service dispatcher, labelled by task kind.
type Outbound struct {
	Sent         *prometheus.CounterVec
	Retries      *prometheus.CounterVec
	DeadLettered *prometheus.CounterVec
}

// NewOutbound builds the dispatcher counters.
func NewOutbound() Outbound {
	return Outbound{
		Sent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "outbound_sent_total",
			Help: "Cross-service calls that eventually succeeded",
		}, []string{"kind"}),
		Retries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "outbound_retries_total",
			Help: "Retry attempts performed by the outbound dispatcher",
		}, []string{"kind"}),
		DeadLettered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "outbound_dead_lettered_total",
			Help: "Cross-service calls given up on",
		}, []string{"kind"}),
	}
}

// Collectors lists the counters for registration.
func (o Outbound) Collectors() []prometheus.Collector {
	return []prometheus.Collector{o.Sent, o.Retries, o.DeadLettered}
}

// DeliveryStats are the gauges refreshed by the stats job.
type DeliveryStats struct {
	ByStatus     *prometheus.GaugeVec
	StalePending prometheus.Gauge
}

// NewDeliveryStats builds the delivery gauges.
func NewDeliveryStats() DeliveryStats {
	return DeliveryStats{
		ByStatus: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "deliveries_by_status",
			Help: "Number of deliveries per status",
		}, []string{"status"}),
		StalePending: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "deliveries_stale_pending",
			Help: "PENDING deliveries older than the configured threshold",
		}),
	}
}

// Collectors lists the gauges for registration.
func (d DeliveryStats) Collectors() []prometheus.Collector {
	return []prometheus.Collector{d.ByStatus, d.StalePending}
}

// HTTP holds the request counters of one service.
type HTTP struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewHTTP builds request metrics labelled by method, route pattern and status.
func NewHTTP() HTTP {
	labels := []string{"method", "path", "status"}
	return HTTP{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, labels),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, labels),
	}
}

// Collectors lists the request metrics for registration.
func (h HTTP) Collectors() []prometheus.Collector {
	return []prometheus.Collector{h.Requests, h.Duration}
}

// Register adds collectors to reg. Collectors that are already there are kept as is.
func Register(reg prometheus.Registerer, cs ...prometheus.Collector) error {
	for _, c := range cs {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}
