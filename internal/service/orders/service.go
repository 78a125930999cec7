package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/apperr"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/domain"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/logx"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/outbound"
)

// StatusChange is an order status update as received over HTTP.
type StatusChange struct {
	Status       string
	SourceStatus string
	Version      int64
}

// Service handles order placement and order status updates.
type Service struct {
	repo             orderRepository
	notifier         *deliveryNotifier
	operationTimeout time.Duration
	logger           logx.Logger
}

// NewService creates an order Service. deliveries and q may be nil, then placed orders
// are not forwarded.
func NewService(r orderRepository, deliveries DeliveryPort, q outbound.Enqueuer, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		repo:             r,
		notifier:         &deliveryNotifier{deliveries: deliveries, queue: q, logger: logger},
		operationTimeout: timeout,
		logger:           logger,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// Place stores a new order as PLACED and schedules the delivery request.
// The caller gets the order back whatever happens to the delivery request.
func (s *Service) Place(ctx context.Context, in domain.NewOrder) (*domain.Order, error) {
	if in.CustomerID <= 0 {
		return nil, fmt.Errorf("%w: customerId must be positive", apperr.ErrInvalid)
	}
	if in.RestaurantID <= 0 {
		return nil, fmt.Errorf("%w: restaurantId must be positive", apperr.ErrInvalid)
	}
	if in.DriverID != nil && *in.DriverID <= 0 {
		return nil, fmt.Errorf("%w: driverId must be positive", apperr.ErrInvalid)
	}

	o := &domain.Order{
		CustomerID:      in.CustomerID,
		RestaurantID:    in.RestaurantID,
		DriverID:        in.DriverID,
		DeliveryAddress: strings.TrimSpace(in.DeliveryAddress),
		RestaurantName:  strings.TrimSpace(in.RestaurantName),
		Status:          domain.OrderPlaced,
	}
	if o.DeliveryAddress == "" {
		o.DeliveryAddress = domain.PlaceholderCustomerAddress
	}
	if o.RestaurantName == "" {
		o.RestaurantName = domain.PlaceholderRestaurantName
	}

	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.repo.Create(opCtx, o); err != nil {
		return nil, err
	}

	s.logger.Info("order placed",
		logx.String("event", "order_placed"),
		logx.Int64("order_id", o.ID),
		logx.Int64("customer_id", o.CustomerID),
		logx.OptInt64("driver_id", o.DriverID),
	)

	if !s.notifier.notify(*o) {
		s.logger.Warn("delivery request not scheduled", logx.Int64("order_id", o.ID))
	}
	return o, nil
}

// Get returns an order by id.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Order, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperr.ErrNotFound
	}
	return o, nil
}

// List returns orders page by page.
func (s *Service) List(ctx context.Context, limit, offset *int) ([]domain.Order, error) {
	if (limit != nil && *limit < 0) || (offset != nil && *offset < 0) {
		return nil, fmt.Errorf("%w: limit and offset must be non-negative", apperr.ErrInvalid)
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.List(ctx, limit, offset)
}

// ForCustomer returns a customer's orders, newest first.
func (s *Service) ForCustomer(ctx context.Context, customerID int64) ([]domain.Order, error) {
	if customerID <= 0 {
		return nil, fmt.Errorf("%w: customerId must be positive", apperr.ErrInvalid)
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.ListByCustomer(ctx, customerID)
}

// ForRestaurant returns a restaurant's orders, newest first.
func (s *Service) ForRestaurant(ctx context.Context, restaurantID int64) ([]domain.Order, error) {
	if restaurantID <= 0 {
		return nil, fmt.Errorf("%w: restaurantId must be positive", apperr.ErrInvalid)
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.ListByRestaurant(ctx, restaurantID)
}

// Stats counts orders by where they are in their life. The delivered and pending
// numbers move as delivery statuses are mirrored onto orders.
func (s *Service) Stats(ctx context.Context) (domain.OrderStats, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return domain.OrderStats{}, err
	}
	return domain.OrderStatsFromCounts(counts), nil
}

// UpdateStatus sets an order's status. Versioned changes coming from the delivery
// service are applied in version order; a repeated one is answered with the stored order.
func (s *Service) UpdateStatus(ctx context.Context, id int64, ch StatusChange) (*domain.Order, error) {
	status, ok := domain.ParseOrderStatus(ch.Status)
	if !ok {
		return nil, fmt.Errorf("%w: %q", apperr.ErrInvalidStatus, ch.Status)
	}
	var source domain.DeliveryStatus
	if strings.TrimSpace(ch.SourceStatus) != "" {
		if source, ok = domain.ParseDeliveryStatus(ch.SourceStatus); !ok {
			return nil, fmt.Errorf("%w: source %q", apperr.ErrInvalidStatus, ch.SourceStatus)
		}
	}
	if ch.Version < 0 {
		return nil, fmt.Errorf("%w: version must be non-negative", apperr.ErrInvalid)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	u := domain.OrderStatusUpdate{Status: status, SourceStatus: source, Version: ch.Version}
	o, err := s.repo.UpdateStatus(ctx, id, u)
	if errors.Is(err, apperr.ErrStaleUpdate) {
		if cur, getErr := s.repo.Get(ctx, id); getErr == nil && cur != nil &&
			cur.StatusVersion == u.Version && cur.Status == u.Status {
			return cur, nil
		}
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("order status updated",
		logx.String("event", "order_status_updated"),
		logx.Int64("order_id", o.ID),
		logx.String("status", string(o.Status)),
		logx.String("source_status", string(u.SourceStatus)),
		logx.Int64("version", u.Version),
	)
	return o, nil
}
