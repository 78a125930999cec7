package delivery

import (
	"context"
	"fmt"
	"time"

	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/apperr"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/domain"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/logx"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/outbound"
)

// Service - delivery lifecycle: creation, driver assignment, status progression and queries.
type Service struct {
	repo             deliveryRepository
	factory          EstimateFactory
	mirror           *orderMirror
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// NewDeliveryService - creates a new delivery Service. gw and q may be nil, then no order status
// is mirrored.
func NewDeliveryService(
	r deliveryRepository,
	f EstimateFactory,
	gw orderStatusGateway,
	q outbound.Enqueuer,
	timeout time.Duration,
	logger logx.Logger,
) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if f == nil {
		f = NewEstimateFactory(DefaultEstimateOffset)
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		repo:             r,
		factory:          f,
		mirror:           newOrderMirror(gw, q, logger),
		operationTimeout: timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

// Create opens a delivery for an order. With a driver the delivery starts ACCEPTED,
// otherwise PENDING.
func (s *Service) Create(ctx context.Context, in domain.NewDelivery) (*domain.Delivery, error) {
	if in.OrderID <= 0 {
		return nil, fmt.Errorf("%w: orderId must be positive", apperr.ErrInvalid)
	}
	if in.DriverID != nil && *in.DriverID <= 0 {
		return nil, fmt.Errorf("%w: driverId must be positive", apperr.ErrInvalid)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	estimate := s.factory.Estimate(s.now())
	d := &domain.Delivery{
		OrderID:               in.OrderID,
		Status:                domain.StatusPending,
		CustomerAddress:       in.CustomerAddress,
		RestaurantName:        in.RestaurantName,
		EstimatedDeliveryTime: &estimate,
	}
	if in.DriverID != nil {
		driverID := *in.DriverID
		d.DriverID = &driverID
		d.Status = domain.StatusAccepted
	}

	err := s.repo.WithTx(ctx, func(tx TxRepository) error {
		if d.DriverID != nil {
			if err := s.ensureDriverFree(ctx, tx, *d.DriverID, 0); err != nil {
				return err
			}
		}
		return tx.Insert(ctx, d)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("delivery created",
		logx.String("event", "delivery_created"),
		logx.Int64("delivery_id", d.ID),
		logx.Int64("order_id", d.OrderID),
		logx.OptInt64("driver_id", d.DriverID),
		logx.String("status", string(d.Status)),
	)
	return d, nil
}

// Assign attaches a driver to a delivery. Re-assigning the same driver is a no-op.
func (s *Service) Assign(ctx context.Context, deliveryID int64, driverID *int64) (*domain.Delivery, error) {
	if driverID == nil || *driverID <= 0 {
		return nil, fmt.Errorf("%w: driverId is required", apperr.ErrInvalid)
	}
	id := *driverID

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		result  domain.Delivery
		changed bool
	)
	err := s.repo.WithTx(ctx, func(tx TxRepository) error {
		d, err := tx.GetForUpdate(ctx, deliveryID)
		if err != nil {
			return err
		}
		if d == nil {
			return apperr.ErrNotFound
		}
		if d.Status.IsTerminal() {
			return apperr.ErrAlreadyTerminal
		}

		if err := s.ensureDriverFree(ctx, tx, id, d.ID); err != nil {
			return err
		}
		if d.HasDriver() && !d.HeldBy(id) {
			return apperr.ErrAlreadyAssigned
		}
		if d.HeldBy(id) {
			result = d.Clone()
			return nil
		}

		d.DriverID = &id
		if d.Status == domain.StatusPending {
			d.Status = domain.StatusAccepted
		}
		if d.EstimatedDeliveryTime == nil {
			estimate := s.factory.Estimate(s.now())
			d.EstimatedDeliveryTime = &estimate
		}
		if err := tx.Update(ctx, d); err != nil {
			return err
		}
		result = d.Clone()
		changed = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		s.logger.Info("delivery assigned",
			logx.String("event", "delivery_assigned"),
			logx.Int64("delivery_id", result.ID),
			logx.Int64("order_id", result.OrderID),
			logx.Int64("driver_id", id),
			logx.String("status", string(result.Status)),
		)
	}
	return &result, nil
}

// AdvanceStatus moves a delivery to target. The new status is mirrored to the order
// service after commit when the mirror policy knows it.
//
// Any forward jump is accepted, there is no adjacency check: PENDING may go straight
// to DELIVERED. Moving back (for example DELIVERED to PICKED_UP) fails with
// apperr.ErrBackwardTransition, which the HTTP layer answers with 409. CANCELLED is
// reachable from every non-terminal status. A delivery that is COMPLETED or CANCELLED
// rejects every target with apperr.ErrAlreadyTerminal, and a target equal to the
// current status is a no-op.
func (s *Service) AdvanceStatus(ctx context.Context, deliveryID int64, target string) (*domain.Delivery, error) {
	status, ok := domain.ParseDeliveryStatus(target)
	if !ok {
		return nil, fmt.Errorf("%w: %q", apperr.ErrInvalidStatus, target)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		result  domain.Delivery
		from    domain.DeliveryStatus
		changed bool
	)
	err := s.repo.WithTx(ctx, func(tx TxRepository) error {
		d, err := tx.GetForUpdate(ctx, deliveryID)
		if err != nil {
			return err
		}
		if d == nil {
			return apperr.ErrNotFound
		}
		if d.Status.IsTerminal() {
			return apperr.ErrAlreadyTerminal
		}
		if d.Status == status {
			result = d.Clone()
			return nil
		}
		if status.IsBackwardFrom(d.Status) {
			return fmt.Errorf("%w: %s -> %s", apperr.ErrBackwardTransition, d.Status, status)
		}

		from = d.Status
		d.Status = status
		if status.StampsDeliveryTime() && d.ActualDeliveryTime == nil {
			now := s.now()
			d.ActualDeliveryTime = &now
		}
		if err := tx.Update(ctx, d); err != nil {
			return err
		}
		result = d.Clone()
		changed = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !changed {
		return &result, nil
	}

	s.logger.Info("delivery status changed",
		logx.String("event", "delivery_status_changed"),
		logx.Int64("delivery_id", result.ID),
		logx.Int64("order_id", result.OrderID),
		logx.String("from", string(from)),
		logx.String("to", string(result.Status)),
		logx.Int64("version", result.Version),
	)
	s.mirror.schedule(result)

	return &result, nil
}

// ensureDriverFree takes the per-driver lock and fails with ErrDriverBusy when the driver
// holds an active delivery other than self.
func (s *Service) ensureDriverFree(ctx context.Context, tx TxRepository, driverID, self int64) error {
	if err := tx.LockDriver(ctx, driverID); err != nil {
		return err
	}
	active, err := tx.ActiveForDriver(ctx, driverID)
	if err != nil {
		return err
	}
	for _, a := range active {
		if a.ID != self {
			return apperr.ErrDriverBusy
		}
	}
	return nil
}

// GetByID returns a delivery by id.
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Delivery, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperr.ErrNotFound
	}
	return d, nil
}

// GetByOrderID returns the delivery of an order.
func (s *Service) GetByOrderID(ctx context.Context, orderID int64) (*domain.Delivery, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	d, err := s.repo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperr.ErrNotFound
	}
	return d, nil
}

// Pending returns deliveries waiting for a driver.
func (s *Service) Pending(ctx context.Context) ([]domain.Delivery, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.ListByStatus(ctx, domain.StatusPending)
}

// All returns every delivery.
func (s *Service) All(ctx context.Context) ([]domain.Delivery, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.List(ctx)
}

// ForDriver returns all deliveries of a driver.
func (s *Service) ForDriver(ctx context.Context, driverID int64) ([]domain.Delivery, error) {
	if driverID <= 0 {
		return nil, fmt.Errorf("%w: driverId must be positive", apperr.ErrInvalid)
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.ListByDriver(ctx, driverID)
}

// ActiveForDriver returns the deliveries of a driver that are not COMPLETED or CANCELLED.
func (s *Service) ActiveForDriver(ctx context.Context, driverID int64) ([]domain.Delivery, error) {
	if driverID <= 0 {
		return nil, fmt.Errorf("%w: driverId must be positive", apperr.ErrInvalid)
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.ListActiveByDriver(ctx, driverID)
}
