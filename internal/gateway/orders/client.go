package order

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/domain"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/gateway"
)

type doer interface {
	Do(ctx context.Context, method, path string, headers http.Header, in, out any) error
}

// HTTPGateway talks to the order service.
type HTTPGateway struct {
	client doer
}

// NewHTTPGateway creates an order service gateway.
func NewHTTPGateway(client *gateway.Client) *HTTPGateway {
	return &HTTPGateway{client: client}
}

type statusUpdateRequest struct {
	Status       string `json:"status"`
	SourceStatus string `json:"sourceStatus,omitempty"`
	Version      int64  `json:"version,omitempty"`
}

// UpdateStatus sets the status of an order. The idempotency key is derived from the
// delivery id and version so that a retried call is recognised by the receiver.
func (g *HTTPGateway) UpdateStatus(ctx context.Context, orderID, deliveryID int64, u domain.OrderStatusUpdate) error {
	headers := http.Header{}
	if u.Versioned() {
		headers.Set("Idempotency-Key", fmt.Sprintf("delivery-%d-v%d", deliveryID, u.Version))
	}
	body := statusUpdateRequest{
		Status:       string(u.Status),
		SourceStatus: string(u.SourceStatus),
		Version:      u.Version,
	}
	if err := g.client.Do(ctx, http.MethodPut, fmt.Sprintf("/api/orders/%d/status", orderID), headers, body, nil); err != nil {
		return fmt.Errorf("order gateway: update status of order %d: %w", orderID, err)
	}
	return nil
}
