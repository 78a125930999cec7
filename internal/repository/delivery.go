package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/apperr"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/domain"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/ports/deliverytx"
)

const deliveryColumns = `id, order_id, driver_id, status, customer_address, restaurant_name,
        estimated_delivery_time, actual_delivery_time, version, created_at, updated_at`

const activeFilter = `status NOT IN ('COMPLETED', 'CANCELLED')`

// DeliveryRepo represents delivery repository.
type DeliveryRepo struct {
	db *pgxpool.Pool
}

// NewDeliveryRepo creates a new DeliveryRepo.
func NewDeliveryRepo(db *pgxpool.Pool) *DeliveryRepo {
	return &DeliveryRepo{db: db}
}

// WithTx opens a transaction and executes fn within it.
func (r *DeliveryRepo) WithTx(ctx context.Context, fn func(tx deliverytx.Repository) error) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	// отменяем в случае паники
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(&TxRepo{tx: tx}); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback tx: %w (original error: %s)", rbErr, err.Error())
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return mapWriteError("commit tx", err)
	}
	return nil
}

// GetByID returns a delivery or nil when it does not exist.
func (r *DeliveryRepo) GetByID(ctx context.Context, id int64) (*domain.Delivery, error) {
	return getOne(r.db.QueryRow(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE id = $1`, id),
		"get delivery %d", id)
}

// GetByOrderID returns the delivery of an order or nil.
func (r *DeliveryRepo) GetByOrderID(ctx context.Context, orderID int64) (*domain.Delivery, error) {
	return getOne(r.db.QueryRow(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE order_id = $1`, orderID),
		"get delivery by order %d", orderID)
}

// List returns every delivery ordered by id.
func (r *DeliveryRepo) List(ctx context.Context) ([]domain.Delivery, error) {
	return r.query(ctx, "list deliveries", `SELECT `+deliveryColumns+` FROM deliveries ORDER BY id`)
}

// ListByStatus returns deliveries in the given status.
func (r *DeliveryRepo) ListByStatus(ctx context.Context, status domain.DeliveryStatus) ([]domain.Delivery, error) {
	return r.query(ctx, "list deliveries by status",
		`SELECT `+deliveryColumns+` FROM deliveries WHERE status = $1 ORDER BY id`, string(status))
}

// ListByDriver returns all deliveries a driver ever held.
func (r *DeliveryRepo) ListByDriver(ctx context.Context, driverID int64) ([]domain.Delivery, error) {
	return r.query(ctx, "list deliveries by driver",
		`SELECT `+deliveryColumns+` FROM deliveries WHERE driver_id = $1 ORDER BY id`, driverID)
}

// ListActiveByDriver returns the driver's deliveries that are not completed or cancelled.
func (r *DeliveryRepo) ListActiveByDriver(ctx context.Context, driverID int64) ([]domain.Delivery, error) {
	return r.query(ctx, "list active deliveries by driver",
		`SELECT `+deliveryColumns+` FROM deliveries WHERE driver_id = $1 AND `+activeFilter+` ORDER BY id`, driverID)
}

// CountByStatus returns the number of deliveries per status.
func (r *DeliveryRepo) CountByStatus(ctx context.Context) (map[domain.DeliveryStatus]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM deliveries GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count deliveries by status: %w", err)
	}
	defer rows.Close()

	out := make(map[domain.DeliveryStatus]int64)
	for rows.Next() {
		var (
			status string
			n      int64
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("count deliveries by status: %w", err)
		}
		out[domain.DeliveryStatus(status)] = n
	}
	return out, rows.Err()
}

// CountPendingOlderThan counts PENDING deliveries created before cutoff.
func (r *DeliveryRepo) CountPendingOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM deliveries WHERE status = $1 AND created_at < $2`,
		string(domain.StatusPending), cutoff,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count stale pending deliveries: %w", err)
	}
	return n, nil
}

func (r *DeliveryRepo) query(ctx context.Context, op, q string, args ...any) ([]domain.Delivery, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return collect(rows, op)
}

// TxRepo represents transaction repository.
type TxRepo struct {
	tx pgx.Tx
}

// LockDriver takes a transaction-scoped advisory lock keyed by the driver id.
// A lock_timeout while waiting means another assignment for the driver is running
// and is reported as apperr.ErrDriverBusy.
func (r *TxRepo) LockDriver(ctx context.Context, driverID int64) error {
	_, err := r.tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended('driver:' || $1::bigint::text, 0))`, driverID)
	if isLockTimeout(err) {
		return fmt.Errorf("lock driver %d: %w", driverID, apperr.ErrDriverBusy)
	}
	if err != nil {
		return fmt.Errorf("lock driver %d: %w", driverID, err)
	}
	return nil
}

// GetForUpdate - get delivery by id and lock the row.
func (r *TxRepo) GetForUpdate(ctx context.Context, id int64) (*domain.Delivery, error) {
	return getOne(r.tx.QueryRow(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE id = $1 FOR UPDATE`, id),
		"get delivery %d for update", id)
}

// ActiveForDriver - active deliveries of a driver, as seen inside the transaction.
func (r *TxRepo) ActiveForDriver(ctx context.Context, driverID int64) ([]domain.Delivery, error) {
	const op = "active deliveries for driver"
	rows, err := r.tx.Query(ctx,
		`SELECT `+deliveryColumns+` FROM deliveries WHERE driver_id = $1 AND `+activeFilter+` ORDER BY id`, driverID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return collect(rows, op)
}

// Insert - insert a new delivery, filling id, version and timestamps.
func (r *TxRepo) Insert(ctx context.Context, d *domain.Delivery) error {
	err := r.tx.QueryRow(ctx, `
        INSERT INTO deliveries (order_id, driver_id, status, customer_address, restaurant_name,
                                estimated_delivery_time, actual_delivery_time)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, version, created_at, updated_at
    `, d.OrderID, d.DriverID, string(d.Status), d.CustomerAddress, d.RestaurantName,
		d.EstimatedDeliveryTime, d.ActualDeliveryTime,
	).Scan(&d.ID, &d.Version, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return mapWriteError("insert delivery", err)
	}
	return nil
}

// Update - persist the mutable fields and bump the version.
func (r *TxRepo) Update(ctx context.Context, d *domain.Delivery) error {
	err := r.tx.QueryRow(ctx, `
        UPDATE deliveries
        SET driver_id = $2,
            status = $3,
            estimated_delivery_time = $4,
            actual_delivery_time = $5,
            version = version + 1,
            updated_at = now()
        WHERE id = $1
        RETURNING version, updated_at
    `, d.ID, d.DriverID, string(d.Status), d.EstimatedDeliveryTime, d.ActualDeliveryTime,
	).Scan(&d.Version, &d.UpdatedAt)
	if err != nil {
		if IsNotFound(err) {
			return fmt.Errorf("update delivery %d: %w", d.ID, apperr.ErrNotFound)
		}
		return mapWriteError("update delivery", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDelivery(row rowScanner) (domain.Delivery, error) {
	var (
		d      domain.Delivery
		status string
	)
	err := row.Scan(&d.ID, &d.OrderID, &d.DriverID, &status, &d.CustomerAddress, &d.RestaurantName,
		&d.EstimatedDeliveryTime, &d.ActualDeliveryTime, &d.Version, &d.CreatedAt, &d.UpdatedAt)
	d.Status = domain.DeliveryStatus(status)
	return d, err
}

func getOne(row pgx.Row, format string, args ...any) (*domain.Delivery, error) {
	d, err := scanDelivery(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf(format+": %w", append(args, err)...)
	}
	return &d, nil
}

func collect(rows pgx.Rows, op string) ([]domain.Delivery, error) {
	defer rows.Close()
	out := make([]domain.Delivery, 0)
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// mapWriteError turns unique violations into domain errors.
func mapWriteError(op string, err error) error {
	if name, ok := uniqueViolation(err); ok {
		switch name {
		case constraintOrderUnique:
			return fmt.Errorf("%s: %w", op, apperr.ErrDeliveryExists)
		case constraintActiveDriver:
			return fmt.Errorf("%s: %w", op, apperr.ErrDriverBusy)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
