package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/http/handlers"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/http/pprofserver"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/logx"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/metrics"

	obs "github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/http/middleware"
)

const requestTimeout = 5 * time.Second

// Options are the parts shared by both services' routers.
type Options struct {
	Logger      logx.Logger
	Base        *handlers.Handlers
	Metrics     metrics.HTTP
	Gatherer    prometheus.Gatherer
	RateLimit   func(http.Handler) http.Handler // nil disables
	Idempotency func(http.Handler) http.Handler // nil disables
	Pprof       pprofserver.Config
}

// NewDelivery builds the service-delivery router.
func NewDelivery(o Options, h *handlers.DeliveryHandler) http.Handler {
	r := base(o)
	r.Route("/api/deliveries", func(r chi.Router) {
		api(r, o)
		r.Post("/", h.Create)
		r.Get("/", h.All)
		r.Get("/pending", h.Pending)
		r.Get("/order/{orderId}", h.GetByOrderID)
		r.Get("/driver/{driverId}", h.ForDriver)
		r.Get("/driver/{driverId}/active", h.ActiveForDriver)
		r.Get("/{id}", h.GetByID)
		r.Put("/{id}/status", h.AdvanceStatus)
		r.Put("/{id}/assign", h.Assign)
	})
	return r
}

// NewOrder builds the service-order router.
func NewOrder(o Options, h *handlers.OrderHandler) http.Handler {
	r := base(o)
	r.Route("/api/orders", func(r chi.Router) {
		api(r, o)
		r.Post("/", h.Place)
		r.Get("/", h.List)
		r.Get("/stats", h.Stats)
		r.Get("/customer/{customerId}", h.ForCustomer)
		r.Get("/restaurant/{restaurantId}", h.ForRestaurant)
		r.Get("/{id}", h.Get)
		r.Put("/{id}/status", h.UpdateStatus)
	})
	return r
}

func base(o Options) chi.Router {
	if o.Logger == nil {
		o.Logger = logx.Nop()
	}
	if o.Base == nil {
		o.Base = handlers.New(o.Logger)
	}
	if o.Gatherer == nil {
		o.Gatherer = prometheus.DefaultGatherer
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(obs.Observability(o.Logger, o.Metrics))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/ping", o.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(o.Base.HealthcheckHead))
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(o.Gatherer, promhttp.HandlerOpts{}))
	pprofserver.Mount(r, o.Pprof, o.Logger)

	r.NotFound(o.Base.NotFound)
	r.MethodNotAllowed(o.Base.MethodNotAllowed)
	return r
}

// api ставит лимитер и идемпотентность только на бизнес-ручки
func api(r chi.Router, o Options) {
	if o.RateLimit != nil {
		r.Use(o.RateLimit)
	}
	if o.Idempotency != nil {
		r.Use(o.Idempotency)
	}
}
