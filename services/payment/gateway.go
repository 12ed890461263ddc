package payment

import (
	"context"
	"errors"

	"medibook/models"
)

// ErrUnknownEvent is returned by ParseWebhookEvent for event types the
// workflow does not act on; such deliveries are acknowledged and skipped.
var ErrUnknownEvent = errors.New("unrecognized webhook event type")

// Gateway is the abstract payment-provider capability the reconciliation
// workflow consumes. Implementations wrap a concrete provider SDK.
type Gateway interface {
	// CreateOrder registers a payment order for the given amount and returns
	// the provider order id plus a client checkout token.
	CreateOrder(ctx context.Context, amount float64, metadata map[string]string) (*models.OrderResult, error)

	// GetStatus polls the provider for the order's terminal state.
	GetStatus(ctx context.Context, orderID string) (*models.PaymentStatus, error)

	// VerifyWebhookSignature authenticates a raw webhook delivery. Nothing
	// payload-derived may be trusted before this passes.
	VerifyWebhookSignature(payload []byte, signatureHeader string) bool

	// ParseWebhookEvent normalizes a raw payload into the tagged event union.
	ParseWebhookEvent(payload []byte) (*models.PaymentEvent, error)

	// InitiateRefund starts a refund for a settled order.
	InitiateRefund(ctx context.Context, orderID string, amount float64, reason string) (*models.RefundResult, error)

	// GetRefundStatus polls the provider-side state of a refund.
	GetRefundStatus(ctx context.Context, refundID string) (string, error)
}

// RefundPoller schedules a deferred provider-side status check for an
// initiated refund, as a fallback for missed refund webhooks.
type RefundPoller interface {
	EnqueuePoll(refundID string) error
}
