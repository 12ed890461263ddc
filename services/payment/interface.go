// File: medibook/services/payment/interface.go
package payment

import (
	"context"

	"medibook/models"
)

// Status values reported to clients checking on an order.
const (
	StatusSuccess       = "SUCCESS"
	StatusFailed        = "FAILED"
	StatusPending       = "PENDING"
	StatusRefunded      = "REFUNDED"
	StatusRefundPending = "REFUND_PENDING"
)

// StatusResult is the outcome of reconciling an order with the gateway.
type StatusResult struct {
	Status     string                   `json:"status"`
	SlotNumber int                      `json:"slotNumber,omitempty"`
	Booking    *models.ConfirmedBooking `json:"booking,omitempty"`
	Message    string                   `json:"message,omitempty"`
}

// WebhookResult reports how a webhook delivery was handled.
type WebhookResult struct {
	Acknowledged bool
	Duplicate    bool
	EventType    models.PaymentEventType
}

// ReconciliationService drives the payment side of the booking flow:
// order creation with its preconditions, polling-based status
// reconciliation, and webhook ingestion. Polling and webhooks converge
// on the same confirmation path, so processing both for one payment is
// harmless.
type ReconciliationService interface {
	CreateOrder(ctx context.Context, req models.BookingRequest) (*models.OrderResult, error)
	CheckStatus(ctx context.Context, orderID string) (*StatusResult, error)
	ProcessWebhook(ctx context.Context, payload []byte, signatureHeader string) (*WebhookResult, error)
}
