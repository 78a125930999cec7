package service

import (
	"context"

	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/domain"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/service/orders"
)

// DeliveryUsecase exposes delivery operations to the HTTP layer.
type DeliveryUsecase interface {
	Create(ctx context.Context, in domain.NewDelivery) (*domain.Delivery, error)
	Assign(ctx context.Context, deliveryID int64, driverID *int64) (*domain.Delivery, error)
	AdvanceStatus(ctx context.Context, deliveryID int64, target string) (*domain.Delivery, error)
	GetByID(ctx context.Context, id int64) (*domain.Delivery, error)
	GetByOrderID(ctx context.Context, orderID int64) (*domain.Delivery, error)
	Pending(ctx context.Context) ([]domain.Delivery, error)
	All(ctx context.Context) ([]domain.Delivery, error)
	ForDriver(ctx context.Context, driverID int64) ([]domain.Delivery, error)
	ActiveForDriver(ctx context.Context, driverID int64) ([]domain.Delivery, error)
}

// OrderUsecase exposes order operations to the HTTP layer.
type OrderUsecase interface {
	Place(ctx context.Context, in domain.NewOrder) (*domain.Order, error)
	Get(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context, limit, offset *int) ([]domain.Order, error)
	ForCustomer(ctx context.Context, customerID int64) ([]domain.Order, error)
	ForRestaurant(ctx context.Context, restaurantID int64) ([]domain.Order, error)
	Stats(ctx context.Context) (domain.OrderStats, error)
	UpdateStatus(ctx context.Context, id int64, ch orders.StatusChange) (*domain.Order, error)
}
