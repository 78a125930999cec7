//go:generate mockgen -source=contracts.go -destination=orders_mocks_test.go -package=orders_test

package orders

import (
	"context"

	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/domain"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/gateway/deliveries"
)

type orderRepository interface {
	CountByStatus(ctx context.Context) (map[domain.OrderStatus]int64, error)
	Create(ctx context.Context, o *domain.Order) error
	Get(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context, limit, offset *int) ([]domain.Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error)
	ListByRestaurant(ctx context.Context, restaurantID int64) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, u domain.OrderStatusUpdate) (*domain.Order, error)
}

// DeliveryPort abstracts the delivery service as seen from order placement.
type DeliveryPort interface {
	Create(ctx context.Context, req domain.NewDelivery) (deliveries.Created, error)
}
