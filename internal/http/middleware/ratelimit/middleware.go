package ratelimit

import (
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/logx"
)

// Middleware представляет собой middleware для ограничения количества запросов
type Middleware struct {
	logger  logx.Logger        // логгер
	counter prometheus.Counter // счетчик
	limiter Limiter            // лимитер
	keys    keyer
}

// New создает новый Middleware. peers are the service names whose calls get their
// own buckets (see CallerHeader).
func New(logger logx.Logger, counter prometheus.Counter, limiter Limiter, peers ...string) *Middleware {
	if limiter == nil {
		limiter = NopLimiter{}
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Middleware{
		logger:  logger,
		counter: counter,
		limiter: limiter,
		keys:    newKeyer(peers),
	}
}

// Handler returns chi-style middleware.
func (m *Middleware) Handler() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := m.keys.keyFor(r)

			allowed, err := m.limiter.Allow(r.Context(), key)
			if err != nil {
				// лимитер недоступен, пропускаю запрос
				m.logger.Warn("rate limiter unavailable",
					logx.String("ip", key.Client),
					logx.Err(err),
				)
				allowed = true
			}
			if allowed {
				next.ServeHTTP(w, r)
				return
			}

			if m.counter != nil {
				m.counter.Inc()
			}
			m.logger.Warn("rate limit exceeded",
				logx.String("ip", key.Client),
				logx.String("caller", key.Caller),
				logx.String("route", key.Route),
				logx.String("path", r.URL.Path),
			)
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			if _, err := io.WriteString(w, `{"error":"too many requests"}`); err != nil {
				// клиент мог оборвать соединение
				m.logger.Debug("rate limit response write failed",
					logx.String("ip", key.Client),
					logx.Err(err),
				)
			}
		})
	}
}
