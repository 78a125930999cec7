package domain

import (
	"strings"
	"time"
)

// OrderStatus is the status stored on an order record.
type OrderStatus string

// Order statuses.
const (
	OrderPlaced         OrderStatus = "PLACED"
	OrderAccepted       OrderStatus = "ACCEPTED"
	OrderPreparing      OrderStatus = "PREPARING"
	OrderReadyForPickup OrderStatus = "READY_FOR_PICKUP"
	OrderDelivering     OrderStatus = "DELIVERING"
	OrderDelivered      OrderStatus = "DELIVERED"
	OrderCompleted      OrderStatus = "COMPLETED"
	OrderCancelled      OrderStatus = "CANCELLED"
)

var orderStatuses = [...]OrderStatus{
	OrderPlaced, OrderAccepted, OrderPreparing, OrderReadyForPickup,
	OrderDelivering, OrderDelivered, OrderCompleted, OrderCancelled,
}

// ParseOrderStatus parses an order status token case-insensitively.
func ParseOrderStatus(raw string) (OrderStatus, bool) {
	s := OrderStatus(strings.ToUpper(strings.TrimSpace(raw)))
	for _, known := range orderStatuses {
		if s == known {
			return s, true
		}
	}
	return "", false
}

// Placeholders used when an order arrives without display data.
const (
	PlaceholderCustomerAddress = "Customer Address Placeholder"
	PlaceholderRestaurantName  = "Restaurant Name Placeholder"
)

// Order is the order record owned by the order service.
type Order struct {
	ID              int64
	CustomerID      int64
	RestaurantID    int64
	DriverID        *int64
	DeliveryAddress string
	RestaurantName  string
	Status          OrderStatus
	StatusVersion   int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewOrder carries the fields accepted when an order is placed.
type NewOrder struct {
	CustomerID      int64
	RestaurantID    int64
	DriverID        *int64
	DeliveryAddress string
	RestaurantName  string
}

// OrderStatusUpdate is a request to set an order's status.
// Version is zero for manual updates; mirrored updates carry the delivery version
// so that older ones can be rejected.
type OrderStatusUpdate struct {
	Status       OrderStatus
	SourceStatus DeliveryStatus
	Version      int64
}

// Versioned reports whether the update carries an ordering key.
func (u OrderStatusUpdate) Versioned() bool {
	return u.Version > 0
}

// OrderStats summarizes orders for the dashboard.
// Pending counts every order that is neither DELIVERED nor CANCELLED.
type OrderStats struct {
	Total     int64
	Pending   int64
	Delivered int64
}

// OrderStatsFromCounts folds per-status counts into OrderStats.
func OrderStatsFromCounts(counts map[OrderStatus]int64) OrderStats {
	var st OrderStats
	for status, n := range counts {
		st.Total += n
		switch status {
		case OrderDelivered:
			st.Delivered += n
		case OrderCancelled:
		default:
			st.Pending += n
		}
	}
	return st
}
