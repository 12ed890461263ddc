package models

import "time"

// PaymentEventType is the normalized event taxonomy every raw gateway
// payload is mapped into before any business logic runs.
type PaymentEventType string

const (
	EventPaymentSuccess  PaymentEventType = "payment.success"
	EventPaymentFailed   PaymentEventType = "payment.failed"
	EventRefundCompleted PaymentEventType = "refund.completed"
	EventRefundFailed    PaymentEventType = "refund.failed"
)

// PaymentEvent is the tagged union produced by the gateway's webhook
// normalization step.
type PaymentEvent struct {
	Type          PaymentEventType `json:"type"`
	TransactionID string           `json:"transactionId"`
	OrderID       string           `json:"orderId"`
	RefundID      string           `json:"refundId,omitempty"`
	Amount        float64          `json:"amount"`
	Method        string           `json:"method,omitempty"`
}

// WebhookLog records one processed (transactionId, eventType) pair. It is
// used purely for idempotency detection and audit; it never mutates
// business state.
type WebhookLog struct {
	ID            string     `bson:"_id" json:"id"`
	TransactionID string     `bson:"transaction_id" json:"transactionId"`
	EventType     string     `bson:"event_type" json:"eventType"`
	Payload       string     `bson:"payload" json:"payload"`
	Processed     bool       `bson:"processed" json:"processed"`
	ReceivedAt    time.Time  `bson:"received_at" json:"receivedAt"`
	ProcessedAt   *time.Time `bson:"processed_at,omitempty" json:"processedAt,omitempty"`
}
