// File: medibook/services/booking/ledger.go
package booking

import (
	"context"
	"fmt"
	"time"

	bookingRepo "medibook/database/repository/booking"
	"medibook/models"
	"medibook/utils"

	"go.uber.org/zap"
)

// allocationRetries bounds the compare-and-swap loop before giving up with
// ErrTransactionConflict.
const allocationRetries = 5

// DefaultLedgerService implements LedgerService.
type DefaultLedgerService struct {
	Repo   bookingRepo.BookingRepository
	Clock  utils.Clock
	Logger *zap.Logger
}

func (s *DefaultLedgerService) CreatePending(ctx context.Context, orderID string, req models.BookingRequest) error {
	pending := &models.PendingBooking{
		OrderID:   orderID,
		Date:      req.Date,
		Name:      req.Name,
		Gender:    req.Gender,
		Age:       req.Age,
		Phone:     req.Phone,
		Amount:    req.Amount,
		Status:    models.PendingStatusPending,
		CreatedAt: s.Clock.Now().UTC(),
	}
	if err := s.Repo.InsertPending(ctx, pending); err != nil {
		if err == bookingRepo.ErrDuplicate {
			return ErrDuplicateOrder
		}
		return fmt.Errorf("failed to create pending booking: %w", err)
	}
	return nil
}

// Confirm is the slot-allocation transaction. The capacity check and the
// slot-number computation both happen against the schedule read inside the
// compare-and-swap loop, so two concurrent confirmations for the last slot
// cannot both succeed.
func (s *DefaultLedgerService) Confirm(ctx context.Context, orderID, paymentID, paymentMethod string) (*ConfirmationResult, error) {
	pending, err := s.Repo.GetPending(ctx, orderID)
	if err != nil {
		if err == bookingRepo.ErrNotFound {
			return nil, ErrPendingNotFound
		}
		return nil, fmt.Errorf("failed to load pending booking: %w", err)
	}

	switch pending.Status {
	case models.PendingStatusCompleted:
		// Already confirmed; repeat invocations must not allocate again.
		return &ConfirmationResult{
			SlotNumber: pending.SlotNumber,
			Date:       pending.Date,
			Name:       pending.Name,
		}, nil
	case models.PendingStatusFailed:
		return nil, ErrAlreadyCancelled
	}

	entry := models.ConfirmedBooking{
		Name:          pending.Name,
		Gender:        pending.Gender,
		Age:           pending.Age,
		Phone:         pending.Phone,
		PaymentID:     paymentID,
		OrderID:       orderID,
		Amount:        pending.Amount,
		PaymentStatus: "paid",
		PaymentMethod: paymentMethod,
		BookedAt:      s.Clock.Now().UTC().Format(time.RFC3339),
	}

	slot, err := s.allocateSlot(ctx, pending.Date, entry)
	if err != nil {
		return nil, err
	}

	// Best effort: the date document is the source of truth once the
	// allocation committed. A stale pending record is cleaned by the sweep.
	if err := s.Repo.UpdatePendingStatus(ctx, orderID, models.PendingStatusCompleted, slot, paymentID); err != nil {
		s.Logger.Warn("confirmed booking but failed to update pending record",
			zap.String("orderId", orderID), zap.Error(err))
	}

	return &ConfirmationResult{SlotNumber: slot, Date: pending.Date, Name: pending.Name}, nil
}

// allocateSlot appends a confirmed booking to the date document inside a
// bounded compare-and-swap loop: read the schedule with its version, verify
// capacity, compute max(slot)+1, and rewrite the full list conditioned on
// the version being unchanged.
func (s *DefaultLedgerService) allocateSlot(ctx context.Context, date string, entry models.ConfirmedBooking) (int, error) {
	for attempt := 0; attempt < allocationRetries; attempt++ {
		sched, err := s.Repo.GetDaySchedule(ctx, date)
		if err == bookingRepo.ErrNotFound {
			entry.SlotNumber = 1
			fresh := &models.DaySchedule{
				Date:     date,
				Bookings: []models.ConfirmedBooking{entry},
				Version:  1,
			}
			err := s.Repo.InsertDaySchedule(ctx, fresh)
			if err == nil {
				return 1, nil
			}
			if err == bookingRepo.ErrDuplicate {
				// Lost the first-writer race; re-read and append.
				continue
			}
			return 0, fmt.Errorf("failed to create schedule for %s: %w", date, err)
		}
		if err != nil {
			return 0, fmt.Errorf("failed to read schedule for %s: %w", date, err)
		}

		if len(sched.Bookings) >= models.DailyCapacity {
			return 0, ErrNoSlotsAvailable
		}

		entry.SlotNumber = sched.NextSlotNumber()
		updated := append(append([]models.ConfirmedBooking{}, sched.Bookings...), entry)

		swapped, err := s.Repo.SwapBookings(ctx, date, sched.Version, updated)
		if err != nil {
			return 0, fmt.Errorf("failed to write schedule for %s: %w", date, err)
		}
		if swapped {
			return entry.SlotNumber, nil
		}
		// Version moved underneath us; retry against the fresh document.
	}
	return 0, ErrTransactionConflict
}

func (s *DefaultLedgerService) Cancel(ctx context.Context, orderID string) error {
	pending, err := s.Repo.GetPending(ctx, orderID)
	if err != nil {
		if err == bookingRepo.ErrNotFound {
			return nil
		}
		return fmt.Errorf("failed to load pending booking: %w", err)
	}

	switch pending.Status {
	case models.PendingStatusFailed:
		return nil
	case models.PendingStatusCompleted:
		// A confirmed booking is never reversed by a late failure signal.
		s.Logger.Info("ignoring cancel for completed booking", zap.String("orderId", orderID))
		return nil
	}

	if err := s.Repo.UpdatePendingStatus(ctx, orderID, models.PendingStatusFailed, 0, ""); err != nil {
		if err == bookingRepo.ErrNotFound {
			return nil
		}
		return fmt.Errorf("failed to cancel pending booking: %w", err)
	}
	return nil
}

func (s *DefaultLedgerService) GetPending(ctx context.Context, orderID string) (*models.PendingBooking, error) {
	pending, err := s.Repo.GetPending(ctx, orderID)
	if err == bookingRepo.ErrNotFound {
		return nil, ErrPendingNotFound
	}
	return pending, err
}

func (s *DefaultLedgerService) DeletePending(ctx context.Context, orderID string) error {
	return s.Repo.DeletePending(ctx, orderID)
}

func (s *DefaultLedgerService) SweepStalePending(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := s.Clock.Now().UTC().Add(-retention)
	deleted, err := s.Repo.DeletePendingBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		s.Logger.Info("swept stale pending bookings", zap.Int64("deleted", deleted))
	}
	return deleted, nil
}

func (s *DefaultLedgerService) CountConfirmed(ctx context.Context, date string) (int, error) {
	return s.Repo.CountConfirmed(ctx, date)
}

func (s *DefaultLedgerService) GetConfirmedByOrder(ctx context.Context, orderID string) (*models.ConfirmedBooking, string, error) {
	return s.Repo.FindConfirmedByOrder(ctx, orderID)
}

func (s *DefaultLedgerService) Search(ctx context.Context, phone, date string) ([]models.ConfirmedBooking, error) {
	return s.Repo.SearchConfirmed(ctx, phone, date)
}

func (s *DefaultLedgerService) ListByDate(ctx context.Context, date string) ([]models.ConfirmedBooking, error) {
	return s.Repo.ListConfirmed(ctx, date)
}
