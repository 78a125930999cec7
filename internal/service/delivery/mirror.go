package delivery

import (
	"context"
	"fmt"

	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/domain"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/logx"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/outbound"
)

type mirrorPolicy struct {
	byStatus map[domain.DeliveryStatus]domain.OrderStatus
}

func newMirrorPolicy() *mirrorPolicy {
	return &mirrorPolicy{
		byStatus: map[domain.DeliveryStatus]domain.OrderStatus{
			domain.StatusPickedUp:  domain.OrderDelivering,
			domain.StatusDelivered: domain.OrderDelivered,
			// остальные статусы заказ сейчас не видит
		},
	}
}

func (p *mirrorPolicy) get(status domain.DeliveryStatus) (domain.OrderStatus, bool) {
	st, ok := p.byStatus[status]
	return st, ok
}

// orderMirror pushes delivery progress to the order service after commit.
type orderMirror struct {
	gateway orderStatusGateway
	queue   outbound.Enqueuer
	policy  *mirrorPolicy
	logger  logx.Logger
}

func newOrderMirror(gw orderStatusGateway, q outbound.Enqueuer, logger logx.Logger) *orderMirror {
	return &orderMirror{gateway: gw, queue: q, policy: newMirrorPolicy(), logger: logger}
}

// schedule enqueues a mirror task for d if its status is mirrored. It reports whether
// a task was accepted by the queue.
func (m *orderMirror) schedule(d domain.Delivery) bool {
	if m == nil || m.gateway == nil || m.queue == nil {
		return false
	}
	target, ok := m.policy.get(d.Status)
	if !ok {
		return false
	}

	update := domain.OrderStatusUpdate{
		Status:       target,
		SourceStatus: d.Status,
		Version:      d.Version,
	}
	orderID, deliveryID := d.OrderID, d.ID

	task := outbound.Task{
		Kind: outbound.KindMirrorOrderStatus,
		Key:  fmt.Sprintf("order:%d", orderID),
		Run: func(ctx context.Context) error {
			if err := m.gateway.UpdateStatus(ctx, orderID, deliveryID, update); err != nil {
				return err
			}
			m.logger.Info("order status mirrored",
				logx.String("event", "order_status_mirrored"),
				logx.Int64("order_id", orderID),
				logx.Int64("delivery_id", deliveryID),
				logx.String("order_status", string(update.Status)),
				logx.Int64("version", update.Version),
			)
			return nil
		},
	}
	return m.queue.Enqueue(task)
}
