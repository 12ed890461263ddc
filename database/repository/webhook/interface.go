package webhookRepo

import (
	"context"
	"errors"

	"medibook/models"
)

var ErrNotFound = errors.New("webhook log not found")

// WebhookLogRepository records processed webhook deliveries, keyed by the
// (transactionId, eventType) pair used for idempotency detection.
type WebhookLogRepository interface {
	FindLog(ctx context.Context, transactionID, eventType string) (*models.WebhookLog, error)
	InsertLog(ctx context.Context, log *models.WebhookLog) error
}
