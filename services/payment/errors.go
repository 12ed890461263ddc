// File: medibook/services/payment/errors.go
package payment

import (
	"errors"
	"regexp"
	"time"
)

const (
	// ConsultationFee is the fixed charge per appointment, in rupees.
	ConsultationFee = 500.0

	// CutoffHour closes same-day booking from 19:00 local time onward.
	CutoffHour = 19

	// pendingRetention is how long an unpaid pending booking is kept
	// before the lazy sweep removes it.
	pendingRetention = 24 * time.Hour
)

var phonePattern = regexp.MustCompile(`^[6-9][0-9]{9}$`)

// ErrInvalidSignature is returned when a webhook delivery fails
// signature verification.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// WorkflowError is a client-facing failure with a stable code.
type WorkflowError struct {
	Code    string
	Message string
}

func (e *WorkflowError) Error() string { return e.Message }

var (
	ErrMissingFields = &WorkflowError{Code: "VALIDATION_FAILED", Message: "name, phone and date are required"}
	ErrInvalidDate   = &WorkflowError{Code: "VALIDATION_FAILED", Message: "date must be in YYYY-MM-DD format"}
	ErrInvalidAmount = &WorkflowError{Code: "INVALID_AMOUNT", Message: "amount does not match the consultation fee"}
	ErrInvalidPhone  = &WorkflowError{Code: "INVALID_PHONE", Message: "phone must be a valid 10-digit mobile number"}
	ErrSundayClosed  = &WorkflowError{Code: "SUNDAY_CLOSED", Message: "the clinic is closed on Sundays"}
	ErrPastCutoff    = &WorkflowError{Code: "PAST_CUTOFF", Message: "same-day booking closes at 7 PM"}
	ErrClinicClosed  = &WorkflowError{Code: "CLINIC_CLOSED", Message: "the clinic is not accepting bookings on this date"}
	ErrSlotsFull     = &WorkflowError{Code: "SLOTS_FULL", Message: "all slots for this date are booked"}
)
