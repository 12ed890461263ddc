// File: medibook/services/payment/stripe_gateway.go
package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"medibook/models"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	stripeRefund "github.com/stripe/stripe-go/v76/refund"
	"github.com/stripe/stripe-go/v76/webhook"
)

// gatewayTimeout bounds every provider call; on expiry the caller proceeds
// with its fallback behavior instead of hanging the request.
const gatewayTimeout = 10 * time.Second

// StripeGateway implements Gateway on Stripe PaymentIntents. The global
// stripe.Key is set at startup.
type StripeGateway struct {
	WebhookSecret string
	Currency      string
}

// NewStripeGateway constructs a StripeGateway.
func NewStripeGateway(webhookSecret, currency string) *StripeGateway {
	return &StripeGateway{WebhookSecret: webhookSecret, Currency: currency}
}

func (g *StripeGateway) CreateOrder(ctx context.Context, amount float64, metadata map[string]string) (*models.OrderResult, error) {
	ctx, cancel := context.WithTimeout(ctx, gatewayTimeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(toMinorUnits(amount)),
		Currency: stripe.String(g.Currency),
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("gateway order creation failed: %w", err)
	}
	return &models.OrderResult{
		OrderID:       pi.ID,
		Amount:        amount,
		Currency:      g.Currency,
		CheckoutToken: pi.ClientSecret,
	}, nil
}

func (g *StripeGateway) GetStatus(ctx context.Context, orderID string) (*models.PaymentStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, gatewayTimeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	pi, err := paymentintent.Get(orderID, params)
	if err != nil {
		return nil, fmt.Errorf("gateway status check failed: %w", err)
	}

	return &models.PaymentStatus{
		State:         mapIntentState(pi.Status),
		Method:        intentMethod(pi),
		Amount:        fromMinorUnits(pi.Amount),
		TransactionID: pi.ID,
	}, nil
}

func (g *StripeGateway) VerifyWebhookSignature(payload []byte, signatureHeader string) bool {
	_, err := webhook.ConstructEvent(payload, signatureHeader, g.WebhookSecret)
	return err == nil
}

func (g *StripeGateway) ParseWebhookEvent(payload []byte) (*models.PaymentEvent, error) {
	var event stripe.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("malformed webhook payload: %w", err)
	}

	switch string(event.Type) {
	case "payment_intent.succeeded", "payment_intent.payment_failed":
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return nil, fmt.Errorf("malformed payment intent payload: %w", err)
		}
		eventType := models.EventPaymentSuccess
		if string(event.Type) == "payment_intent.payment_failed" {
			eventType = models.EventPaymentFailed
		}
		return &models.PaymentEvent{
			Type:          eventType,
			TransactionID: pi.ID,
			OrderID:       pi.ID,
			Amount:        fromMinorUnits(pi.Amount),
			Method:        intentMethod(&pi),
		}, nil

	case "charge.refund.updated":
		var re stripe.Refund
		if err := json.Unmarshal(event.Data.Raw, &re); err != nil {
			return nil, fmt.Errorf("malformed refund payload: %w", err)
		}
		eventType := models.EventRefundCompleted
		if re.Status == stripe.RefundStatusFailed || re.Status == stripe.RefundStatusCanceled {
			eventType = models.EventRefundFailed
		} else if re.Status != stripe.RefundStatusSucceeded {
			return nil, ErrUnknownEvent
		}
		pe := &models.PaymentEvent{
			Type:     eventType,
			RefundID: re.ID,
			Amount:   fromMinorUnits(re.Amount),
		}
		if re.PaymentIntent != nil {
			pe.TransactionID = re.PaymentIntent.ID
			pe.OrderID = re.PaymentIntent.ID
		}
		return pe, nil

	default:
		return nil, ErrUnknownEvent
	}
}

func (g *StripeGateway) InitiateRefund(ctx context.Context, orderID string, amount float64, reason string) (*models.RefundResult, error) {
	ctx, cancel := context.WithTimeout(ctx, gatewayTimeout)
	defer cancel()

	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(orderID),
		Amount:        stripe.Int64(toMinorUnits(amount)),
	}
	params.Context = ctx
	params.AddMetadata("reason", reason)

	re, err := stripeRefund.New(params)
	if err != nil {
		return nil, fmt.Errorf("gateway refund initiation failed: %w", err)
	}
	return &models.RefundResult{RefundID: re.ID, State: string(re.Status)}, nil
}

func (g *StripeGateway) GetRefundStatus(ctx context.Context, refundID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, gatewayTimeout)
	defer cancel()

	params := &stripe.RefundParams{}
	params.Context = ctx
	re, err := stripeRefund.Get(refundID, params)
	if err != nil {
		return "", fmt.Errorf("gateway refund status check failed: %w", err)
	}

	switch re.Status {
	case stripe.RefundStatusSucceeded:
		return models.RefundStatusCompleted, nil
	case stripe.RefundStatusFailed, stripe.RefundStatusCanceled:
		return models.RefundStatusFailed, nil
	default:
		return models.RefundStatusInitiated, nil
	}
}

func mapIntentState(status stripe.PaymentIntentStatus) models.PaymentState {
	switch status {
	case stripe.PaymentIntentStatusSucceeded:
		return models.PaymentStateSuccess
	case stripe.PaymentIntentStatusCanceled:
		return models.PaymentStateFailed
	default:
		return models.PaymentStatePending
	}
}

func intentMethod(pi *stripe.PaymentIntent) string {
	if pi.PaymentMethod != nil {
		return string(pi.PaymentMethod.Type)
	}
	return ""
}

func toMinorUnits(amount float64) int64 {
	return int64(amount * 100)
}

func fromMinorUnits(amount int64) float64 {
	return float64(amount) / 100
}
