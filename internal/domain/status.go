package domain

import "strings"

// DeliveryStatus is a state of the delivery state machine.
type DeliveryStatus string

// Delivery states in forward order. CANCELLED sits outside the chain.
const (
	StatusPending   DeliveryStatus = "PENDING"
	StatusAccepted  DeliveryStatus = "ACCEPTED"
	StatusPickedUp  DeliveryStatus = "PICKED_UP"
	StatusInTransit DeliveryStatus = "IN_TRANSIT"
	StatusDelivered DeliveryStatus = "DELIVERED"
	StatusCompleted DeliveryStatus = "COMPLETED"
	StatusCancelled DeliveryStatus = "CANCELLED"
)

var deliveryStatuses = [...]DeliveryStatus{
	StatusPending, StatusAccepted, StatusPickedUp, StatusInTransit,
	StatusDelivered, StatusCompleted, StatusCancelled,
}

// TerminalStatuses are the states after which a delivery can no longer change.
var TerminalStatuses = [...]DeliveryStatus{StatusCompleted, StatusCancelled}

// DeliveryStatuses returns every known status.
func DeliveryStatuses() []DeliveryStatus {
	out := make([]DeliveryStatus, len(deliveryStatuses))
	copy(out, deliveryStatuses[:])
	return out
}

// ParseDeliveryStatus parses a status token case-insensitively.
func ParseDeliveryStatus(raw string) (DeliveryStatus, bool) {
	s := DeliveryStatus(strings.ToUpper(strings.TrimSpace(raw)))
	for _, known := range deliveryStatuses {
		if s == known {
			return s, true
		}
	}
	return "", false
}

// IsTerminal reports whether s is COMPLETED or CANCELLED.
func (s DeliveryStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsActive reports whether a delivery in s still occupies its driver.
func (s DeliveryStatus) IsActive() bool {
	return !s.IsTerminal()
}

// rank is the position in the forward chain; CANCELLED has none.
func (s DeliveryStatus) rank() int {
	switch s {
	case StatusPending:
		return 0
	case StatusAccepted:
		return 1
	case StatusPickedUp:
		return 2
	case StatusInTransit:
		return 3
	case StatusDelivered:
		return 4
	case StatusCompleted:
		return 5
	default:
		return -1
	}
}

// IsBackwardFrom reports whether moving from cur to s would go back along the chain.
// Cancellation is never backward.
func (s DeliveryStatus) IsBackwardFrom(cur DeliveryStatus) bool {
	if s == StatusCancelled || cur == StatusCancelled {
		return false
	}
	return s.rank() < cur.rank()
}

// StampsDeliveryTime reports whether reaching s means the food was handed over.
func (s DeliveryStatus) StampsDeliveryTime() bool {
	return s == StatusDelivered || s == StatusCompleted
}
