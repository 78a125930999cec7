package handlers

import "github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/domain"

func (r createDeliveryRequest) toModel() domain.NewDelivery {
	return domain.NewDelivery{
		OrderID:         r.OrderID,
		DriverID:        r.DriverID,
		CustomerAddress: r.CustomerAddress,
		RestaurantName:  r.RestaurantName,
	}
}

func deliveryToResponse(d domain.Delivery) deliveryDTO {
	return deliveryDTO{
		DeliveryID:            d.ID,
		OrderID:               d.OrderID,
		DriverID:              d.DriverID,
		Status:                string(d.Status),
		CustomerAddress:       d.CustomerAddress,
		RestaurantName:        d.RestaurantName,
		EstimatedDeliveryTime: d.EstimatedDeliveryTime,
		ActualDeliveryTime:    d.ActualDeliveryTime,
		Version:               d.Version,
		CreatedAt:             d.CreatedAt,
		UpdatedAt:             d.UpdatedAt,
	}
}

func deliveriesToResponse(list []domain.Delivery) []deliveryDTO {
	out := make([]deliveryDTO, 0, len(list))
	for _, d := range list {
		out = append(out, deliveryToResponse(d))
	}
	return out
}
