package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	constraintOrderUnique  = "deliveries_order_id_key"
	constraintActiveDriver = "deliveries_active_driver_uidx"
)

// IsDuplicate - signals that the error is a unique violation.
func IsDuplicate(err error) bool {
	_, ok := uniqueViolation(err)
	return ok
}

// IsNotFound - signals that the error is a no-rows error.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// uniqueViolation returns the violated constraint (or index) name.
func uniqueViolation(err error) (string, bool) {
	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) && pgerr.Code == "23505" {
		return pgerr.ConstraintName, true
	}
	return "", false
}

// isLockTimeout reports a lock_not_available error (lock_timeout expired).
func isLockTimeout(err error) bool {
	var pgerr *pgconn.PgError
	return errors.As(err, &pgerr) && pgerr.Code == "55P03"
}
