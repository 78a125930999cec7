package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/config"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/gateway"
	order "github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/gateway/orders"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/http/handlers"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/http/router"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/jobs"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/logx"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/metrics"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/outbound"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/repository"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/service"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/service/delivery"
)

func (b *ContainerBuilder) buildDelivery(ctx context.Context) (*dig.Container, error) {
	container, err := b.buildShared(ctx, repository.DeliverySchema)
	if err != nil {
		return nil, err
	}
	if err := registerDeliveryService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerDeliveryJobs(container); err != nil {
		return nil, fmt.Errorf("jobs: %w", err)
	}
	if err := registerHTTP(container, newDeliveryRouter); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

func newOrderStatusGateway(cfg *config.Config) *order.HTTPGateway {
	up := cfg.OrderService
	return order.NewHTTPGateway(gateway.NewClient(up.BaseURL, up.Timeout).WithCaller(deliveryServiceName))
}

func newDeliveryService(
	cfg *config.Config,
	repo *repository.DeliveryRepo,
	gw *order.HTTPGateway,
	q outbound.Enqueuer,
	logger logx.Logger,
) *delivery.Service {
	return delivery.NewDeliveryService(
		repo,
		delivery.NewEstimateFactory(cfg.Delivery.EstimateOffset),
		gw,
		q,
		cfg.Delivery.OperationTimeout,
		logger,
	)
}

func registerDeliveryService(container *dig.Container) error {
	return provideAll(container,
		repository.NewDeliveryRepo,
		newOrderStatusGateway,
		newDeliveryService,
		func(s *delivery.Service) service.DeliveryUsecase { return s },
		handlers.NewDeliveryHandler,
	)
}

func provideDeliveryStats(reg prometheus.Registerer) (metrics.DeliveryStats, error) {
	stats := metrics.NewDeliveryStats()
	if err := metrics.Register(reg, stats.Collectors()...); err != nil {
		return metrics.DeliveryStats{}, fmt.Errorf("register delivery stats: %w", err)
	}
	return stats, nil
}

func newJobManager(
	cfg *config.Config,
	repo *repository.DeliveryRepo,
	stats metrics.DeliveryStats,
	logger logx.Logger,
) *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewStatsJob(repo, stats, cfg.Delivery.StatsSchedule, cfg.Delivery.StalePendingAfter, logger),
	)
}

func registerDeliveryJobs(container *dig.Container) error {
	return provideAll(container, provideDeliveryStats, newJobManager)
}

func newDeliveryRouter(o router.Options, h *handlers.DeliveryHandler) http.Handler {
	return router.NewDelivery(o, h)
}
