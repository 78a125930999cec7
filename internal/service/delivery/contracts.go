//go:generate mockgen -source=contracts.go -destination=delivery_mocks_test.go -package=delivery_test

package delivery

import (
	"context"
	"time"

	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/domain"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/ports/deliverytx"
)

// TxRepository is the transactional view of the delivery storage.
type TxRepository = deliverytx.Repository

type deliveryRepository interface {
	WithTx(ctx context.Context, fn func(tx TxRepository) error) error
	GetByID(ctx context.Context, id int64) (*domain.Delivery, error)
	GetByOrderID(ctx context.Context, orderID int64) (*domain.Delivery, error)
	List(ctx context.Context) ([]domain.Delivery, error)
	ListByStatus(ctx context.Context, status domain.DeliveryStatus) ([]domain.Delivery, error)
	ListByDriver(ctx context.Context, driverID int64) ([]domain.Delivery, error)
	ListActiveByDriver(ctx context.Context, driverID int64) ([]domain.Delivery, error)
}

// EstimateFactory computes the estimated delivery time.
type EstimateFactory interface {
	Estimate(now time.Time) time.Time
}

type orderStatusGateway interface {
	UpdateStatus(ctx context.Context, orderID, deliveryID int64, u domain.OrderStatusUpdate) error
}
