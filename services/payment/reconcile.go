// File: medibook/services/payment/reconcile.go
package payment

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "medibook/database/repository/booking"
	"medibook/models"
	"medibook/services/booking"
	"medibook/services/refund"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckStatus polls the gateway for the order's state and reconciles the
// booking ledger with it. Safe to call any number of times for one order;
// it converges on the same terminal answer as the webhook path.
func (s *DefaultReconciliationService) CheckStatus(ctx context.Context, orderID string) (*StatusResult, error) {
	status, err := s.Gateway.GetStatus(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment status: %w", err)
	}

	switch status.State {
	case models.PaymentStateSuccess:
		return s.handleSuccess(ctx, orderID, status)
	case models.PaymentStateFailed:
		if err := s.Ledger.Cancel(ctx, orderID); err != nil {
			s.Logger.Warn("failed to mark pending booking failed",
				zap.String("orderId", orderID), zap.Error(err))
		}
		return &StatusResult{Status: StatusFailed, Message: "payment failed"}, nil
	default:
		return &StatusResult{Status: StatusPending}, nil
	}
}

// handleSuccess is the single confirmation path shared by polling and the
// payment.success webhook. The availability and capacity checks run again
// here: payment settlement can lag the order by hours, and the world may
// have changed underneath it.
func (s *DefaultReconciliationService) handleSuccess(ctx context.Context, orderID string, status *models.PaymentStatus) (*StatusResult, error) {
	pending, err := s.Ledger.GetPending(ctx, orderID)
	if errors.Is(err, booking.ErrPendingNotFound) {
		return s.resolveSettled(ctx, orderID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load pending booking: %w", err)
	}

	// A completed pending record means an earlier pass already allocated the
	// slot. A repeated success signal must return that outcome and nothing
	// else; re-running the availability gate here could refund a payment
	// whose booking stays confirmed.
	if pending.Status == models.PendingStatusCompleted {
		return &StatusResult{
			Status:     StatusSuccess,
			SlotNumber: pending.SlotNumber,
			Message:    fmt.Sprintf("appointment confirmed for %s, slot %d", pending.Date, pending.SlotNumber),
		}, nil
	}

	if open, reason := s.Availability.IsOpen(ctx, s.Clock.Now()); !open {
		if reason == "" {
			reason = "clinic closed"
		}
		return s.refundOrEscalate(ctx, pending, status, reason)
	}

	result, err := s.Ledger.Confirm(ctx, orderID, status.TransactionID, status.Method)
	if errors.Is(err, booking.ErrNoSlotsAvailable) {
		return s.refundOrEscalate(ctx, pending, status, "no slots available")
	}
	if errors.Is(err, booking.ErrAlreadyCancelled) {
		// The payment settled after the booking was cancelled; money moved,
		// so the patient gets it back.
		return s.refundOrEscalate(ctx, pending, status, "booking already cancelled")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to confirm booking: %w", err)
	}

	// Cleanup only; the date document is the source of truth and a leftover
	// completed pending record is returned as-is by the guard above.
	if err := s.Ledger.DeletePending(ctx, orderID); err != nil {
		s.Logger.Warn("failed to remove pending booking after confirmation",
			zap.String("orderId", orderID), zap.Error(err))
	}

	s.Logger.Info("booking confirmed",
		zap.String("orderId", orderID),
		zap.String("date", result.Date),
		zap.Int("slotNumber", result.SlotNumber))
	return &StatusResult{
		Status:     StatusSuccess,
		SlotNumber: result.SlotNumber,
		Message:    fmt.Sprintf("appointment confirmed for %s, slot %d", result.Date, result.SlotNumber),
	}, nil
}

// resolveSettled answers a status check for an order whose pending record is
// gone: either it was confirmed earlier, or it already went down the refund
// path.
func (s *DefaultReconciliationService) resolveSettled(ctx context.Context, orderID string) (*StatusResult, error) {
	confirmed, date, err := s.Ledger.GetConfirmedByOrder(ctx, orderID)
	if err == nil {
		return &StatusResult{
			Status:     StatusSuccess,
			SlotNumber: confirmed.SlotNumber,
			Booking:    confirmed,
			Message:    fmt.Sprintf("appointment confirmed for %s, slot %d", date, confirmed.SlotNumber),
		}, nil
	}
	if !errors.Is(err, bookingRepo.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up confirmed booking: %w", err)
	}

	rec, err := s.Tracker.GetByOrder(ctx, orderID)
	if err == nil {
		// An initiated refund already counts as refunded to the patient;
		// the tracker follows it to completion asynchronously.
		return &StatusResult{Status: StatusRefunded, Message: rec.Reason}, nil
	}
	if !errors.Is(err, refund.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up refund record: %w", err)
	}

	return nil, booking.ErrPendingNotFound
}

// refundOrEscalate refunds a settled payment whose booking cannot be
// honored. If the gateway refuses the refund, the failure is durably
// recorded for manual settlement and the pending booking is kept so the
// evidence survives.
func (s *DefaultReconciliationService) refundOrEscalate(ctx context.Context, pending *models.PendingBooking, status *models.PaymentStatus, reason string) (*StatusResult, error) {
	now := s.Clock.Now()

	result, err := s.Gateway.InitiateRefund(ctx, pending.OrderID, pending.Amount, reason)
	if err != nil {
		failed := &models.FailedRefundRecord{
			ID:            uuid.NewString(),
			TransactionID: status.TransactionID,
			OrderID:       pending.OrderID,
			Amount:        pending.Amount,
			Reason:        reason,
			Status:        models.RefundStatusManualRequired,
			Error:         err.Error(),
			Booking:       pending,
			CreatedAt:     now,
		}
		if perr := s.Tracker.CreateManualInterventionRecord(ctx, failed); perr != nil {
			return nil, fmt.Errorf("refund failed and could not be recorded: %w", perr)
		}
		s.Logger.Error("refund initiation failed, escalated for manual settlement",
			zap.String("orderId", pending.OrderID),
			zap.String("reason", reason),
			zap.Error(err))
		return &StatusResult{
			Status:  StatusRefundPending,
			Message: "booking unavailable; refund requires manual processing",
		}, nil
	}

	rec := &models.RefundRecord{
		RefundID:              result.RefundID,
		TransactionID:         status.TransactionID,
		MerchantTransactionID: pending.OrderID,
		OrderID:               pending.OrderID,
		Amount:                pending.Amount,
		Reason:                reason,
		Status:                models.RefundStatusInitiated,
		Booking:               pending,
		CreatedAt:             now,
	}
	if err := s.Tracker.CreateRecord(ctx, rec); err != nil {
		s.Logger.Error("failed to record initiated refund",
			zap.String("refundId", result.RefundID), zap.Error(err))
	}
	if s.Poller != nil {
		if err := s.Poller.EnqueuePoll(result.RefundID); err != nil {
			s.Logger.Warn("failed to schedule refund status poll",
				zap.String("refundId", result.RefundID), zap.Error(err))
		}
	}
	if err := s.Ledger.DeletePending(ctx, pending.OrderID); err != nil {
		s.Logger.Warn("failed to remove pending booking after refund",
			zap.String("orderId", pending.OrderID), zap.Error(err))
	}

	s.Logger.Info("refund initiated",
		zap.String("orderId", pending.OrderID),
		zap.String("refundId", result.RefundID),
		zap.String("reason", reason))
	return &StatusResult{
		Status:  StatusRefunded,
		Message: fmt.Sprintf("booking unavailable (%s); refund initiated", reason),
	}, nil
}
