package outbound

import "context"

// Task kinds.
const (
	KindMirrorOrderStatus = "mirror_order_status"
	KindCreateDelivery    = "create_delivery"
)

// Task is one cross-service call scheduled after a local commit.
type Task struct {
	ID   string
	Kind string
	// Key groups tasks that must run in submission order, e.g. "order:42".
	Key string
	Run func(ctx context.Context) error
}

// Enqueuer accepts tasks without blocking the caller.
type Enqueuer interface {
	Enqueue(t Task) bool
}
