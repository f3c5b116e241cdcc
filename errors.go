package ledger

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure scenarios.
var (
	// General errors
	ErrNotFound     = errors.New("ledger: not found")
	ErrInvalidInput = errors.New("ledger: invalid input")

	// ErrUnauthorized is returned when a caller other than the owner
	// invokes an owner-gated operation. The message preserves the wording
	// surfaced to clients.
	ErrUnauthorized = errors.New("ledger: only owner can call this")

	// Payment errors

	// ErrInvalidPayment is returned when the attached amount does not
	// exactly equal the tier price. The message preserves the wording
	// surfaced to clients.
	ErrInvalidPayment = errors.New("ledger: incorrect amount")
	// ErrUnknownPlan is returned for a purchase of a tier that is not
	// Basic, Standard, or Premium.
	ErrUnknownPlan = errors.New("ledger: unknown plan")

	// Subscriber errors
	ErrSubscriberNotFound = errors.New("ledger: subscriber not found")

	// Catalogue errors
	ErrMovieNotFound = errors.New("ledger: movie not found")

	// Withdrawal errors

	// ErrTransferFailed is returned when the outbound fund transfer is
	// rejected; the held balance is left unchanged.
	ErrTransferFailed = errors.New("ledger: transfer failed")

	// Store errors
	ErrStoreNotReady   = errors.New("ledger: store not ready")
	ErrStoreClosed     = errors.New("ledger: store is closed")
	ErrMigrationFailed = errors.New("ledger: migration failed")
)

// ValidationError represents a validation failure with details.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("ledger: validation failed for %s: %s", e.Field, e.Message)
}

// IsNotFound returns true if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrSubscriberNotFound) ||
		errors.Is(err, ErrMovieNotFound)
}

// IsRejected returns true if the error aborted an operation with no state
// change: a bad payment, an unauthorized caller, or a refused transfer.
func IsRejected(err error) bool {
	return errors.Is(err, ErrInvalidPayment) ||
		errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrTransferFailed)
}

// IsRetryable returns true if the error is temporary and the operation can
// be retried by the caller.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStoreNotReady) ||
		errors.Is(err, ErrTransferFailed)
}
