package handlers

import (
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/domain"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/service/orders"
)

func (r placeOrderRequest) toModel() domain.NewOrder {
	return domain.NewOrder{
		CustomerID:      int64(r.CustomerID),
		RestaurantID:    int64(r.RestaurantID),
		DriverID:        r.DriverID,
		DeliveryAddress: r.DeliveryAddress,
		RestaurantName:  r.RestaurantName,
	}
}

func (r updateOrderStatusRequest) toModel() orders.StatusChange {
	return orders.StatusChange{
		Status:       r.Status,
		SourceStatus: r.SourceStatus,
		Version:      r.Version,
	}
}

func orderToResponse(o domain.Order) orderDTO {
	return orderDTO{
		OrderID:         o.ID,
		CustomerID:      o.CustomerID,
		RestaurantID:    o.RestaurantID,
		DriverID:        o.DriverID,
		DeliveryAddress: o.DeliveryAddress,
		RestaurantName:  o.RestaurantName,
		Status:          string(o.Status),
		StatusVersion:   o.StatusVersion,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func ordersToResponse(list []domain.Order) []orderDTO {
	out := make([]orderDTO, 0, len(list))
	for _, o := range list {
		out = append(out, orderToResponse(o))
	}
	return out
}

func statsToResponse(st domain.OrderStats) orderStatsDTO {
	return orderStatsDTO{
		TotalOrders:     st.Total,
		PendingOrders:   st.Pending,
		DeliveredOrders: st.Delivered,
	}
}
