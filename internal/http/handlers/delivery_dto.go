package handlers

import "time"

type deliveryDTO struct {
	DeliveryID            int64      `json:"deliveryId"`
	OrderID               int64      `json:"orderId"`
	DriverID              *int64     `json:"driverId"`
	Status                string     `json:"status"`
	CustomerAddress       string     `json:"customerAddress"`
	RestaurantName        string     `json:"restaurantName"`
	EstimatedDeliveryTime *time.Time `json:"estimatedDeliveryTime"`
	ActualDeliveryTime    *time.Time `json:"actualDeliveryTime"`
	Version               int64      `json:"version"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}

type createDeliveryRequest struct {
	OrderID         int64  `json:"orderId"`
	DriverID        *int64 `json:"driverId"`
	CustomerAddress string `json:"customerAddress"`
	RestaurantName  string `json:"restaurantName"`
}

type updateDeliveryStatusRequest struct {
	Status string `json:"status"`
}

type assignDriverRequest struct {
	DriverID *int64 `json:"driverId"`
}
