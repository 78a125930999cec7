package domain

import "time"

// Delivery is the unit of work tracked for one order.
type Delivery struct {
	ID                    int64
	OrderID               int64
	DriverID              *int64
	Status                DeliveryStatus
	CustomerAddress       string
	RestaurantName        string
	EstimatedDeliveryTime *time.Time
	ActualDeliveryTime    *time.Time
	Version               int64
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// NewDelivery carries the fields accepted when a delivery is created.
// It doubles as the payload the order side sends after an order is placed.
type NewDelivery struct {
	OrderID         int64
	DriverID        *int64
	CustomerAddress string
	RestaurantName  string
}

// HasDriver reports whether a driver is attached.
func (d *Delivery) HasDriver() bool {
	return d.DriverID != nil
}

// HeldBy reports whether the delivery is attached to the given driver.
func (d *Delivery) HeldBy(driverID int64) bool {
	return d.DriverID != nil && *d.DriverID == driverID
}

// Clone returns a deep copy, pointer fields included.
func (d Delivery) Clone() Delivery {
	out := d
	if d.DriverID != nil {
		v := *d.DriverID
		out.DriverID = &v
	}
	if d.EstimatedDeliveryTime != nil {
		v := *d.EstimatedDeliveryTime
		out.EstimatedDeliveryTime = &v
	}
	if d.ActualDeliveryTime != nil {
		v := *d.ActualDeliveryTime
		out.ActualDeliveryTime = &v
	}
	return out
}
