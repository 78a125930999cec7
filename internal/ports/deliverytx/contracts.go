package deliverytx

import (
	"context"

	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/domain"
)

// Repository is the set of delivery operations available inside one transaction.
type Repository interface {
	// LockDriver serialises writers touching the same driver until the transaction ends.
	LockDriver(ctx context.Context, driverID int64) error
	// GetForUpdate loads and row-locks a delivery; nil when it does not exist.
	GetForUpdate(ctx context.Context, id int64) (*domain.Delivery, error)
	ActiveForDriver(ctx context.Context, driverID int64) ([]domain.Delivery, error)
	Insert(ctx context.Context, d *domain.Delivery) error
	Update(ctx context.Context, d *domain.Delivery) error
}

// Runner is a transaction runner
type Runner interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
