package ledger

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrCredentialsMissing   = errors.New("binance keys are not configured for the user")
	ErrInvalidOperationType = errors.New("invalid operation type")
	ErrQuantityExceedsLimit = errors.New("requested quantity is above the user's configured limit")
	ErrQuantityRequired     = errors.New("order quantity is required: no default is configured")
	ErrExchangeRejected     = errors.New("exchange rejected the order")
	ErrOrderNotFound        = errors.New("order not found")

	// ErrPostExecutionPersistence means the exchange executed the order but
	// the ledger could not record it. The two are out of sync until reconciled.
	ErrPostExecutionPersistence = errors.New("order executed on the exchange but could not be recorded")
)

// InvalidOperationError carries the unrecognized operation label.
type InvalidOperationError struct {
	Value string
}

func (e *InvalidOperationError) Error() string {
	return fmt.Sprintf("%s: %q", ErrInvalidOperationType, e.Value)
}

func (e *InvalidOperationError) Unwrap() error { return ErrInvalidOperationType }

// QuantityLimitError carries the requested quantity and the ceiling it broke.
type QuantityLimitError struct {
	Requested float64
	Limit     float64
}

func (e *QuantityLimitError) Error() string {
	return fmt.Sprintf("%s (%g > %g)", ErrQuantityExceedsLimit, e.Requested, e.Limit)
}

func (e *QuantityLimitError) Unwrap() error { return ErrQuantityExceedsLimit }

// PersistenceError wraps a failure that happened after the exchange accepted
// the order: a storage error, or an execution report that could not be read.
// ExchangeOrderID is empty when not even the order id was readable.
type PersistenceError struct {
	ExchangeOrderID string
	Err             error
}

func (e *PersistenceError) Error() string {
	if e.ExchangeOrderID == "" {
		return fmt.Sprintf("%s: %v", ErrPostExecutionPersistence, e.Err)
	}
	return fmt.Sprintf("%s (exchange order %s): %v", ErrPostExecutionPersistence, e.ExchangeOrderID, e.Err)
}

func (e *PersistenceError) Unwrap() []error { return []error{ErrPostExecutionPersistence, e.Err} }
