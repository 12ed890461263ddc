package refund

import (
	"context"

	"medibook/models"
)

// TrackerService is pure bookkeeping over refund attempts. The only rule it
// enforces is that a record's status is terminal once completed or failed.
type TrackerService interface {
	CreateRecord(ctx context.Context, rec *models.RefundRecord) error
	UpdateStatus(ctx context.Context, refundID, status string) error
	Get(ctx context.Context, refundID string) (*models.RefundRecord, error)
	GetByOrder(ctx context.Context, orderID string) (*models.RefundRecord, error)

	// CreateManualInterventionRecord durably records a refund that could not
	// be initiated automatically; an administrator has to settle it by hand.
	CreateManualInterventionRecord(ctx context.Context, rec *models.FailedRefundRecord) error
	ListManualRequired(ctx context.Context) ([]models.FailedRefundRecord, error)
}
