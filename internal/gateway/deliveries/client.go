package deliveries

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

// HTTPGateway talks to the delivery service.
type HTTPGateway struct {
	client doer
}

// NewHTTPGateway creates a delivery service gateway.
func NewHTTPGateway(client *gateway.Client) *HTTPGateway {
	return &HTTPGateway{client: client}
}

type createRequest struct {
	OrderID         int64  `json:"orderId"`
	DriverID        *int64 `json:"driverId"`
	CustomerAddress string `json:"customerAddress"`
	RestaurantName  string `json:"restaurantName"`
}

type createResponse struct {
	DeliveryID int64  `json:"deliveryId"`
	Status     string `json:"status"`
}

// Created is the part of the delivery service answer the order side cares about.
type Created struct {
	DeliveryID int64
	Status     domain.DeliveryStatus
}

// Create asks the delivery service to open a delivery for an order.
// The order id is the idempotency key, one delivery per order.
func (g *HTTPGateway) Create(ctx context.Context, req domain.NewDelivery) (Created, error) {
	headers := http.Header{}
	headers.Set("Idempotency-Key", fmt.Sprintf("order-%d", req.OrderID))

	var resp createResponse
	err := g.client.Do(ctx, http.MethodPost, "/api/deliveries", headers, createRequest{
		OrderID:         req.OrderID,
		DriverID:        req.DriverID,
		CustomerAddress: req.CustomerAddress,
		RestaurantName:  req.RestaurantName,
	}, &resp)
	if err != nil {
		return Created{}, fmt.Errorf("delivery gateway: create delivery for order %d: %w", req.OrderID, err)
	}
	return Created{DeliveryID: resp.DeliveryID, Status: domain.DeliveryStatus(resp.Status)}, nil
}
