package refund

import (
	"context"
	"fmt"

	refundRepo "medibook/database/repository/refund"
	"medibook/models"
	"medibook/utils"

	"go.uber.org/zap"
)

// ErrNotFound is returned when no refund record exists for the identifier.
var ErrNotFound = refundRepo.ErrNotFound

// DefaultTrackerService implements TrackerService.
type DefaultTrackerService struct {
	Repo   refundRepo.RefundRepository
	Clock  utils.Clock
	Logger *zap.Logger
}

func (s *DefaultTrackerService) CreateRecord(ctx context.Context, rec *models.RefundRecord) error {
	if rec.Status == "" {
		rec.Status = models.RefundStatusInitiated
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.Clock.Now().UTC()
	}
	if err := s.Repo.InsertRefund(ctx, rec); err != nil {
		return fmt.Errorf("failed to create refund record: %w", err)
	}
	return nil
}

// UpdateStatus moves a record to completed or failed. Terminal statuses
// never regress: a late or duplicate signal for an already-settled refund
// is a no-op.
func (s *DefaultTrackerService) UpdateStatus(ctx context.Context, refundID, status string) error {
	if status != models.RefundStatusCompleted && status != models.RefundStatusFailed {
		return fmt.Errorf("invalid refund status %q", status)
	}

	rec, err := s.Repo.GetRefund(ctx, refundID)
	if err != nil {
		return err
	}
	if rec.Status != models.RefundStatusInitiated {
		s.Logger.Debug("ignoring status update for terminal refund",
			zap.String("refundId", refundID), zap.String("status", rec.Status))
		return nil
	}

	now := s.Clock.Now().UTC()
	if err := s.Repo.UpdateRefundStatus(ctx, refundID, status, &now); err != nil {
		return fmt.Errorf("failed to update refund %s: %w", refundID, err)
	}
	return nil
}

func (s *DefaultTrackerService) Get(ctx context.Context, refundID string) (*models.RefundRecord, error) {
	return s.Repo.GetRefund(ctx, refundID)
}

func (s *DefaultTrackerService) GetByOrder(ctx context.Context, orderID string) (*models.RefundRecord, error) {
	return s.Repo.GetRefundByOrder(ctx, orderID)
}

func (s *DefaultTrackerService) CreateManualInterventionRecord(ctx context.Context, rec *models.FailedRefundRecord) error {
	rec.Status = models.RefundStatusManualRequired
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.Clock.Now().UTC()
	}
	if err := s.Repo.InsertFailedRefund(ctx, rec); err != nil {
		return fmt.Errorf("failed to create manual-intervention record: %w", err)
	}
	return nil
}

func (s *DefaultTrackerService) ListManualRequired(ctx context.Context) ([]models.FailedRefundRecord, error) {
	return s.Repo.ListFailedRefunds(ctx)
}
