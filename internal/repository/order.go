package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/apperr"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/domain"
)

const orderColumns = `id, customer_id, restaurant_id, driver_id, delivery_address, restaurant_name,
        status, status_version, created_at, updated_at`

// OrderRepo stores orders for the order service.
type OrderRepo struct{ db *pgxpool.Pool }

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo(db *pgxpool.Pool) *OrderRepo { return &OrderRepo{db: db} }

// Create inserts o and fills its id and timestamps.
func (r *OrderRepo) Create(ctx context.Context, o *domain.Order) error {
	err := r.db.QueryRow(ctx, `
        INSERT INTO orders (customer_id, restaurant_id, driver_id, delivery_address, restaurant_name, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, status_version, created_at, updated_at
    `, o.CustomerID, o.RestaurantID, o.DriverID, o.DeliveryAddress, o.RestaurantName, string(o.Status),
	).Scan(&o.ID, &o.StatusVersion, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

// Get returns an order or nil.
func (r *OrderRepo) Get(ctx context.Context, id int64) (*domain.Order, error) {
	o, err := scanOrder(r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}
	return &o, nil
}

// List returns orders ordered by id. If limit/offset are nil, returns the full list.
func (r *OrderRepo) List(ctx context.Context, limit, offset *int) ([]domain.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders ORDER BY id`
	args := make([]any, 0, 2)
	if limit != nil {
		q += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, *limit)
	}
	if offset != nil {
		q += fmt.Sprintf(" OFFSET $%d", len(args)+1)
		args = append(args, *offset)
	}

	return r.query(ctx, "list orders", q, args...)
}

// ListByCustomer returns the orders of a customer, newest first.
func (r *OrderRepo) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error) {
	return r.query(ctx, "list customer orders",
		`SELECT `+orderColumns+` FROM orders WHERE customer_id = $1 ORDER BY created_at DESC, id DESC`, customerID)
}

// ListByRestaurant returns the orders of a restaurant, newest first.
func (r *OrderRepo) ListByRestaurant(ctx context.Context, restaurantID int64) ([]domain.Order, error) {
	return r.query(ctx, "list restaurant orders",
		`SELECT `+orderColumns+` FROM orders WHERE restaurant_id = $1 ORDER BY created_at DESC, id DESC`, restaurantID)
}

// CountByStatus returns the number of orders per status.
func (r *OrderRepo) CountByStatus(ctx context.Context) (map[domain.OrderStatus]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count orders by status: %w", err)
	}
	defer rows.Close()

	out := make(map[domain.OrderStatus]int64)
	for rows.Next() {
		var (
			status string
			n      int64
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("count orders by status: %w", err)
		}
		out[domain.OrderStatus(status)] = n
	}
	return out, rows.Err()
}

func (r *OrderRepo) query(ctx context.Context, what, q string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	defer rows.Close()

	out := make([]domain.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", what, err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// UpdateStatus sets the status of an order.
//
// A versioned update only applies when its version is newer than the stored one;
// otherwise apperr.ErrStaleUpdate is returned. Unversioned updates always apply.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id int64, u domain.OrderStatusUpdate) (*domain.Order, error) {
	var row rowScanner
	if u.Versioned() {
		row = r.db.QueryRow(ctx, `
            UPDATE orders
            SET status = $2, status_version = $3, updated_at = now()
            WHERE id = $1 AND status_version < $3
            RETURNING `+orderColumns, id, string(u.Status), u.Version)
	} else {
		row = r.db.QueryRow(ctx, `
            UPDATE orders
            SET status = $2, updated_at = now()
            WHERE id = $1
            RETURNING `+orderColumns, id, string(u.Status))
	}

	o, err := scanOrder(row)
	if err == nil {
		return &o, nil
	}
	if !IsNotFound(err) {
		return nil, fmt.Errorf("update order %d status: %w", id, err)
	}

	// ни одной строки: либо заказа нет, либо версия устарела
	existing, getErr := r.Get(ctx, id)
	if getErr != nil {
		return nil, getErr
	}
	if existing == nil {
		return nil, fmt.Errorf("order %d: %w", id, apperr.ErrNotFound)
	}
	return nil, fmt.Errorf("order %d at version %d, got %d: %w",
		id, existing.StatusVersion, u.Version, apperr.ErrStaleUpdate)
}

func scanOrder(row rowScanner) (domain.Order, error) {
	var (
		o      domain.Order
		status string
	)
	err := row.Scan(&o.ID, &o.CustomerID, &o.RestaurantID, &o.DriverID, &o.DeliveryAddress, &o.RestaurantName,
		&status, &o.StatusVersion, &o.CreatedAt, &o.UpdatedAt)
	o.Status = domain.OrderStatus(status)
	return o, err
}
