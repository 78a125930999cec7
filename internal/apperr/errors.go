package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalid is returned when the input fails validation (missing or malformed field).
	ErrInvalid = errors.New("invalid input")
	// ErrNotFound indicates that the requested delivery or order does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidStatus is returned for a status token outside the known set.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrDriverBusy means the driver already holds an active delivery.
	ErrDriverBusy = errors.New("driver already has an active delivery")
	// ErrAlreadyAssigned means the delivery is held by a different driver.
	ErrAlreadyAssigned = errors.New("delivery already assigned to another driver")
	// ErrAlreadyTerminal means the delivery is COMPLETED or CANCELLED.
	ErrAlreadyTerminal = errors.New("delivery already in a terminal state")
	// ErrBackwardTransition means the requested status is behind the current one.
	ErrBackwardTransition = errors.New("status cannot move backwards")
	// ErrDeliveryExists means a delivery for the order is already recorded.
	ErrDeliveryExists = errors.New("delivery already exists for order")
	// ErrStaleUpdate means a mirrored status carries an older version than the stored one.
	ErrStaleUpdate = errors.New("stale status update")
	// ErrSync marks a failed cross-service call.
	ErrSync = errors.New("sync failure")
)

// SyncError describes an outbound call that was given up on.
// It is logged by the caller side and never returned to an API client.
type SyncError struct {
	Kind     string
	Key      string
	Attempts int
	Err      error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("sync %s (%s) failed after %d attempt(s): %v", e.Kind, e.Key, e.Attempts, e.Err)
}

// Unwrap exposes both ErrSync and the cause.
func (e *SyncError) Unwrap() []error {
	return []error{ErrSync, e.Err}
}
