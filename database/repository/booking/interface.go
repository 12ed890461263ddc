package bookingRepo

import (
	"context"
	"errors"
	"time"

	"medibook/models"
)

// Sentinel errors surfaced by the repository; services translate these into
// their own error taxonomy.
var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate document")
)

// BookingRepository is the data-access contract for the booking ledger: the
// pending-booking collection and the per-date schedule documents.
type BookingRepository interface {
	// Pending bookings, keyed by order id.
	InsertPending(ctx context.Context, pb *models.PendingBooking) error
	GetPending(ctx context.Context, orderID string) (*models.PendingBooking, error)
	UpdatePendingStatus(ctx context.Context, orderID, status string, slotNumber int, paymentID string) error
	DeletePending(ctx context.Context, orderID string) error
	DeletePendingBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// Per-date schedule documents. SwapBookings is the compare-and-swap
	// primitive: it rewrites the bookings list only if the stored version
	// still matches, reporting whether the write was applied.
	GetDaySchedule(ctx context.Context, date string) (*models.DaySchedule, error)
	InsertDaySchedule(ctx context.Context, ds *models.DaySchedule) error
	SwapBookings(ctx context.Context, date string, version int64, bookings []models.ConfirmedBooking) (bool, error)

	// Confirmed-booking queries.
	CountConfirmed(ctx context.Context, date string) (int, error)
	FindConfirmedByOrder(ctx context.Context, orderID string) (*models.ConfirmedBooking, string, error)
	SearchConfirmed(ctx context.Context, phone, date string) ([]models.ConfirmedBooking, error)
	ListConfirmed(ctx context.Context, date string) ([]models.ConfirmedBooking, error)
}
