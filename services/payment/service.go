// File: medibook/services/payment/service.go
package payment

import (
	"context"
	"fmt"
	"strings"

	webhookRepo "medibook/database/repository/webhook"
	"medibook/models"
	"medibook/services/booking"
	"medibook/services/clinic"
	"medibook/services/refund"
	"medibook/utils"

	"go.uber.org/zap"
)

// DefaultReconciliationService wires the gateway, the booking ledger, clinic
// availability and refund tracking into the order workflow.
type DefaultReconciliationService struct {
	Gateway      Gateway
	Ledger       booking.LedgerService
	Availability clinic.AvailabilityService
	Tracker      refund.TrackerService
	WebhookLogs  webhookRepo.WebhookLogRepository
	Poller       RefundPoller
	Clock        utils.Clock
	Logger       *zap.Logger
}

// NewReconciliationService constructs the default workflow implementation.
func NewReconciliationService(
	gateway Gateway,
	ledger booking.LedgerService,
	availability clinic.AvailabilityService,
	tracker refund.TrackerService,
	webhookLogs webhookRepo.WebhookLogRepository,
	poller RefundPoller,
	clock utils.Clock,
) ReconciliationService {
	return &DefaultReconciliationService{
		Gateway:      gateway,
		Ledger:       ledger,
		Availability: availability,
		Tracker:      tracker,
		WebhookLogs:  webhookLogs,
		Poller:       poller,
		Clock:        clock,
		Logger:       utils.GetLogger().Named("payment"),
	}
}

// CreateOrder validates the request, checks every booking precondition in
// order, then registers a gateway order and its pending booking. The capacity
// check here is advisory only; the authoritative gate runs at confirmation.
func (s *DefaultReconciliationService) CreateOrder(ctx context.Context, req models.BookingRequest) (*models.OrderResult, error) {
	s.sweepStale(ctx)

	if err := s.validate(req); err != nil {
		return nil, err
	}

	now := s.Clock.Now()
	if sunday, _ := utils.IsSunday(req.Date); sunday {
		return nil, ErrSundayClosed
	}
	if utils.IsSameDay(req.Date, now) && now.Hour() >= CutoffHour {
		return nil, ErrPastCutoff
	}

	// The closure window is evaluated against the current day: while the
	// clinic is closed it takes no orders at all, whatever the requested date.
	if open, reason := s.Availability.IsOpen(ctx, now); !open {
		s.Logger.Info("rejecting order for closed date",
			zap.String("date", req.Date), zap.String("reason", reason))
		return nil, ErrClinicClosed
	}

	count, err := s.Ledger.CountConfirmed(ctx, req.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to check slot availability: %w", err)
	}
	if count >= models.DailyCapacity {
		return nil, ErrSlotsFull
	}

	order, err := s.Gateway.CreateOrder(ctx, req.Amount, map[string]string{
		"name":  req.Name,
		"phone": req.Phone,
		"date":  req.Date,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create payment order: %w", err)
	}

	if err := s.Ledger.CreatePending(ctx, order.OrderID, req); err != nil {
		return nil, fmt.Errorf("failed to record pending booking: %w", err)
	}

	s.Logger.Info("payment order created",
		zap.String("orderId", order.OrderID),
		zap.String("date", req.Date))
	return order, nil
}

func (s *DefaultReconciliationService) validate(req models.BookingRequest) error {
	if strings.TrimSpace(req.Name) == "" || req.Phone == "" || req.Date == "" {
		return ErrMissingFields
	}
	if _, err := utils.ParseDate(req.Date); err != nil {
		return ErrInvalidDate
	}
	if req.Amount != ConsultationFee {
		return ErrInvalidAmount
	}
	if !phonePattern.MatchString(req.Phone) {
		return ErrInvalidPhone
	}
	return nil
}

// sweepStale lazily removes pending bookings past the retention window.
// The sweep is best effort; a failure never blocks order creation.
func (s *DefaultReconciliationService) sweepStale(ctx context.Context) {
	if _, err := s.Ledger.SweepStalePending(ctx, pendingRetention); err != nil {
		s.Logger.Warn("stale pending sweep failed", zap.Error(err))
	}
}
