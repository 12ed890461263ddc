package models

import "time"

// RefundRecord statuses. A record is terminal once completed or failed.
const (
	RefundStatusInitiated = "initiated"
	RefundStatusCompleted = "completed"
	RefundStatusFailed    = "failed"

	// RefundStatusManualRequired marks a FailedRefundRecord awaiting an
	// administrator; it never changes.
	RefundStatusManualRequired = "manual_required"
)

// RefundRecord tracks a refund initiated through the payment gateway.
type RefundRecord struct {
	RefundID              string          `bson:"_id" json:"refundId"`
	TransactionID         string          `bson:"transaction_id" json:"transactionId"`
	MerchantTransactionID string          `bson:"merchant_transaction_id" json:"merchantTransactionId"`
	OrderID               string          `bson:"order_id" json:"orderId"`
	Amount                float64         `bson:"amount" json:"amount"`
	Reason                string          `bson:"reason" json:"reason"`
	Status                string          `bson:"status" json:"status"`
	Booking               *PendingBooking `bson:"booking,omitempty" json:"booking,omitempty"`
	CreatedAt             time.Time       `bson:"created_at" json:"createdAt"`
	CompletedAt           *time.Time      `bson:"completed_at,omitempty" json:"completedAt,omitempty"`
}

// FailedRefundRecord is written when automatic refund initiation itself
// fails. It surfaces the manual-intervention queue to an administrator and
// must be durably persisted before the caller is answered.
type FailedRefundRecord struct {
	ID            string          `bson:"_id" json:"id"`
	TransactionID string          `bson:"transaction_id" json:"transactionId"`
	OrderID       string          `bson:"order_id" json:"orderId"`
	Amount        float64         `bson:"amount" json:"amount"`
	Reason        string          `bson:"reason" json:"reason"`
	Status        string          `bson:"status" json:"status"`
	Error         string          `bson:"error" json:"error"`
	Booking       *PendingBooking `bson:"booking,omitempty" json:"booking,omitempty"`
	CreatedAt     time.Time       `bson:"created_at" json:"createdAt"`
}
