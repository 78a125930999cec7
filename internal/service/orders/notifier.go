package orders

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/apperr"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/domain"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/gateway"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/logx"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/outbound"
)

// deliveryNotifier asks the delivery service to open a delivery once an order is stored.
type deliveryNotifier struct {
	deliveries DeliveryPort
	queue      outbound.Enqueuer
	logger     logx.Logger
}

func (n *deliveryNotifier) notify(o domain.Order) bool {
	if n.deliveries == nil || n.queue == nil {
		return false
	}
	req := domain.NewDelivery{
		OrderID:         o.ID,
		DriverID:        o.DriverID,
		CustomerAddress: o.DeliveryAddress,
		RestaurantName:  o.RestaurantName,
	}
	return n.queue.Enqueue(outbound.Task{
		Kind: outbound.KindCreateDelivery,
		Key:  fmt.Sprintf("order:%d", o.ID),
		Run: func(ctx context.Context) error {
			created, err := n.deliveries.Create(ctx, req)
			if alreadyCreated(err) {
				n.logger.Info("delivery already requested",
					logx.String("event", "delivery_requested"),
					logx.Int64("order_id", req.OrderID),
				)
				return nil
			}
			if err != nil {
				return err
			}
			n.logger.Info("delivery requested",
				logx.String("event", "delivery_requested"),
				logx.Int64("order_id", req.OrderID),
				logx.Int64("delivery_id", created.DeliveryID),
				logx.String("delivery_status", string(created.Status)),
			)
			return nil
		},
	})
}

// alreadyCreated recognises the conflict answered when an earlier attempt went through
// but its response was lost.
func alreadyCreated(err error) bool {
	var se *gateway.StatusError
	if !errors.As(err, &se) || se.Code != http.StatusConflict {
		return false
	}
	return strings.Contains(se.Body, apperr.ErrDeliveryExists.Error())
}
