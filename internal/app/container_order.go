package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/dig"

	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/config"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/gateway"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/gateway/deliveries"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/http/handlers"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/http/router"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/logx"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/outbound"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/repository"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/service"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/service/orders"
)

const orderOperationTimeout = 3 * time.Second

func (b *ContainerBuilder) buildOrder(ctx context.Context) (*dig.Container, error) {
	container, err := b.buildShared(ctx, repository.OrderSchema)
	if err != nil {
		return nil, err
	}
	if err := registerOrderService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerHTTP(container, newOrderRouter); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

func newDeliveryGateway(cfg *config.Config) *deliveries.HTTPGateway {
	up := cfg.DeliveryService
	return deliveries.NewHTTPGateway(gateway.NewClient(up.BaseURL, up.Timeout).WithCaller(orderServiceName))
}

func newOrderService(
	repo *repository.OrderRepo,
	gw *deliveries.HTTPGateway,
	q outbound.Enqueuer,
	logger logx.Logger,
) *orders.Service {
	return orders.NewService(repo, gw, q, orderOperationTimeout, logger)
}

func registerOrderService(container *dig.Container) error {
	return provideAll(container,
		repository.NewOrderRepo,
		newDeliveryGateway,
		newOrderService,
		func(s *orders.Service) service.OrderUsecase { return s },
		handlers.NewOrderHandler,
	)
}

func newOrderRouter(o router.Options, h *handlers.OrderHandler) http.Handler {
	return router.NewOrder(o, h)
}
