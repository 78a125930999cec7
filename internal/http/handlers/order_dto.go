package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

type orderDTO struct {
	OrderID         int64     `json:"orderId"`
	CustomerID      int64     `json:"customerId"`
	RestaurantID    int64     `json:"restaurantId"`
	DriverID        *int64    `json:"driverId"`
	DeliveryAddress string    `json:"deliveryAddress"`
	RestaurantName  string    `json:"restaurantName"`
	Status          string    `json:"status"`
	StatusVersion   int64     `json:"statusVersion"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// placeOrderRequest is what the web client posts when the cart is checked out.
// Items and totalAmount belong to the catalog and pricing, they are accepted and dropped.
type placeOrderRequest struct {
	CustomerID      jsonID          `json:"customerId"`
	RestaurantID    jsonID          `json:"restaurantId"`
	DriverID        *int64          `json:"driverId,omitempty"`
	DeliveryAddress string          `json:"deliveryAddress,omitempty"`
	RestaurantName  string          `json:"restaurantName,omitempty"`
	Items           json.RawMessage `json:"items,omitempty"`
	TotalAmount     json.RawMessage `json:"totalAmount,omitempty"`
}

// jsonID is an id that may come as a number or as a numeric string ("7").
type jsonID int64

func (id *jsonID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		b = []byte(s)
	}
	v, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("id %q is not an integer", b)
	}
	*id = jsonID(v)
	return nil
}

type orderStatsDTO struct {
	TotalOrders     int64 `json:"totalOrders"`
	PendingOrders   int64 `json:"pendingOrders"`
	DeliveredOrders int64 `json:"deliveredOrders"`
}

type updateOrderStatusRequest struct {
	Status       string `json:"status"`
	SourceStatus string `json:"sourceStatus,omitempty"`
	Version      int64  `json:"version,omitempty"`
}
