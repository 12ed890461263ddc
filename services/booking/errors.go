package booking

import "fmt"

// LedgerError is a machine-readable booking-ledger failure.
type LedgerError struct {
	Code    string
	Message string
}

func (e *LedgerError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

var (
	ErrPendingNotFound = &LedgerError{
		Code:    "PENDING_NOT_FOUND",
		Message: "no pending booking exists for this order",
	}
	ErrDuplicateOrder = &LedgerError{
		Code:    "DUPLICATE_ORDER",
		Message: "a pending booking already exists for this order",
	}
	ErrNoSlotsAvailable = &LedgerError{
		Code:    "SLOTS_FULL",
		Message: "no appointment slots available for this date",
	}
	ErrTransactionConflict = &LedgerError{
		Code:    "TRANSACTION_CONFLICT",
		Message: "slot allocation failed due to persistent store contention",
	}
	ErrAlreadyCancelled = &LedgerError{
		Code:    "ALREADY_CANCELLED",
		Message: "the pending booking was already marked failed",
	}
)
