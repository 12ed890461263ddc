package booking

import (
	"context"
	"time"

	"medibook/models"
)

// ConfirmationResult describes a successfully confirmed booking.
type ConfirmationResult struct {
	SlotNumber int    `json:"slotNumber"`
	Date       string `json:"date"`
	Name       string `json:"name"`
}

// LedgerService owns the pending-to-confirmed booking lifecycle and the
// slot-allocation transaction.
type LedgerService interface {
	// CreatePending inserts the provisional booking for a freshly created
	// payment order. Fails with ErrDuplicateOrder if one already exists.
	CreatePending(ctx context.Context, orderID string, req models.BookingRequest) error

	// Confirm runs the slot-allocation transaction for the order's date.
	// Confirming an already-completed booking is a safe no-op returning the
	// originally assigned slot.
	Confirm(ctx context.Context, orderID, paymentID, paymentMethod string) (*ConfirmationResult, error)

	// Cancel marks the pending booking failed. Idempotent; calling it on a
	// completed booking is a benign no-op, never a reversal.
	Cancel(ctx context.Context, orderID string) error

	GetPending(ctx context.Context, orderID string) (*models.PendingBooking, error)
	DeletePending(ctx context.Context, orderID string) error

	// SweepStalePending removes pending bookings older than the retention
	// window; abandoned payments only waste storage, never correctness.
	SweepStalePending(ctx context.Context, retention time.Duration) (int64, error)

	CountConfirmed(ctx context.Context, date string) (int, error)
	GetConfirmedByOrder(ctx context.Context, orderID string) (*models.ConfirmedBooking, string, error)
	Search(ctx context.Context, phone, date string) ([]models.ConfirmedBooking, error)
	ListByDate(ctx context.Context, date string) ([]models.ConfirmedBooking, error)
}
