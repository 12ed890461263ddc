package refundRepo

import (
	"context"
	"errors"
	"time"

	"medibook/models"
)

var ErrNotFound = errors.New("refund record not found")

// RefundRepository owns RefundRecord and FailedRefundRecord persistence.
type RefundRepository interface {
	InsertRefund(ctx context.Context, rec *models.RefundRecord) error
	GetRefund(ctx context.Context, refundID string) (*models.RefundRecord, error)
	GetRefundByOrder(ctx context.Context, orderID string) (*models.RefundRecord, error)
	UpdateRefundStatus(ctx context.Context, refundID, status string, completedAt *time.Time) error

	InsertFailedRefund(ctx context.Context, rec *models.FailedRefundRecord) error
	ListFailedRefunds(ctx context.Context) ([]models.FailedRefundRecord, error)
}
