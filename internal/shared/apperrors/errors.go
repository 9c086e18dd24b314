package apperrors

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sentinel errors for the simple failure classes.
var (
	ErrNotFound = errors.New("resource not found")
	ErrFatal    = errors.New("store unreachable")
)

// ValidationError rejects malformed input before any row is touched.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

// NewValidation creates a ValidationError with a formatted reason.
func NewValidation(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// ConflictError reports seats that could not be transitioned. The batch
// is all-or-nothing, so a ConflictError always means no state changed.
type ConflictError struct {
	SeatIDs []uuid.UUID
	Reason  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("seat conflict (%s): %v", e.Reason, e.SeatIDs)
}

// NewConflict creates a ConflictError for the given seats.
func NewConflict(reason string, seatIDs []uuid.UUID) error {
	return &ConflictError{SeatIDs: seatIDs, Reason: reason}
}

// TransientError wraps store-level contention (deadlock, serialization
// failure, lock timeout) after retries are exhausted. Callers may retry
// the whole operation; no partial batch was applied.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return "transient store failure: " + e.Err.Error()
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// NewTransient wraps err as a retryable store failure.
func NewTransient(err error) error {
	return &TransientError{Err: err}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// ConflictSeats returns the offending seat ids when err is a
// ConflictError, or nil otherwise.
func ConflictSeats(err error) []uuid.UUID {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce.SeatIDs
	}
	return nil
}

// IsTransient reports whether err is a retryable store failure.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// IsNotFound reports whether err is the not-found sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
