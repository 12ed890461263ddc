package models

// PaymentState is the gateway-reported state of an order.
type PaymentState string

const (
	PaymentStatePending PaymentState = "PENDING"
	PaymentStateSuccess PaymentState = "SUCCESS"
	PaymentStateFailed  PaymentState = "FAILED"
)

// OrderResult is returned by the gateway when a payment order is created.
type OrderResult struct {
	OrderID       string  `json:"orderId"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	CheckoutToken string  `json:"checkoutToken"`
}

// PaymentStatus is the gateway's view of an order, fetched by polling.
type PaymentStatus struct {
	State         PaymentState `json:"state"`
	Method        string       `json:"method,omitempty"`
	Amount        float64      `json:"amount"`
	TransactionID string       `json:"transactionId"`
}

// RefundResult is returned by the gateway when a refund is initiated.
type RefundResult struct {
	RefundID string `json:"refundId"`
	State    string `json:"state"`
}
