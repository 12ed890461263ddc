// File: medibook/services/payment/webhook.go
package payment

import (
	"context"
	"errors"
	"fmt"

	"medibook/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProcessWebhook ingests one raw gateway delivery. Signature verification is
// the only hard gate; once it passes, every outcome is an acknowledgment so
// the gateway stops redelivering. Replays of an already-processed
// (transactionId, eventType) pair are detected via the webhook log and
// skipped without touching business state. A delivery whose handler fails is
// acknowledged but NOT logged, so the gateway's retry gets to reprocess it.
func (s *DefaultReconciliationService) ProcessWebhook(ctx context.Context, payload []byte, signatureHeader string) (*WebhookResult, error) {
	if !s.Gateway.VerifyWebhookSignature(payload, signatureHeader) {
		return nil, ErrInvalidSignature
	}

	event, err := s.Gateway.ParseWebhookEvent(payload)
	if err != nil {
		if !errors.Is(err, ErrUnknownEvent) {
			s.Logger.Warn("discarding unparseable webhook payload", zap.Error(err))
		}
		return &WebhookResult{Acknowledged: true}, nil
	}

	if _, err := s.WebhookLogs.FindLog(ctx, event.TransactionID, string(event.Type)); err == nil {
		s.Logger.Info("skipping duplicate webhook delivery",
			zap.String("transactionId", event.TransactionID),
			zap.String("eventType", string(event.Type)))
		return &WebhookResult{Acknowledged: true, Duplicate: true, EventType: event.Type}, nil
	}

	if err := s.dispatchEvent(ctx, event); err != nil {
		s.Logger.Error("webhook handling failed",
			zap.String("transactionId", event.TransactionID),
			zap.String("eventType", string(event.Type)),
			zap.Error(err))
		return &WebhookResult{Acknowledged: true, EventType: event.Type}, nil
	}

	now := s.Clock.Now()
	log := &models.WebhookLog{
		ID:            uuid.NewString(),
		TransactionID: event.TransactionID,
		EventType:     string(event.Type),
		Payload:       string(payload),
		Processed:     true,
		ReceivedAt:    now,
		ProcessedAt:   &now,
	}
	if err := s.WebhookLogs.InsertLog(ctx, log); err != nil {
		// Worst case a replay re-runs an idempotent handler.
		s.Logger.Warn("failed to record webhook delivery", zap.Error(err))
	}

	return &WebhookResult{Acknowledged: true, EventType: event.Type}, nil
}

func (s *DefaultReconciliationService) dispatchEvent(ctx context.Context, event *models.PaymentEvent) error {
	switch event.Type {
	case models.EventPaymentSuccess:
		status := &models.PaymentStatus{
			State:         models.PaymentStateSuccess,
			Method:        event.Method,
			Amount:        event.Amount,
			TransactionID: event.TransactionID,
		}
		_, err := s.handleSuccess(ctx, event.OrderID, status)
		return err

	case models.EventPaymentFailed:
		return s.Ledger.Cancel(ctx, event.OrderID)

	case models.EventRefundCompleted:
		return s.Tracker.UpdateStatus(ctx, event.RefundID, models.RefundStatusCompleted)

	case models.EventRefundFailed:
		s.Logger.Error("gateway reported refund failure",
			zap.String("refundId", event.RefundID),
			zap.String("orderId", event.OrderID))
		return s.Tracker.UpdateStatus(ctx, event.RefundID, models.RefundStatusFailed)

	default:
		return fmt.Errorf("no handler for event type %q", event.Type)
	}
}
