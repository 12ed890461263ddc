package models

import "time"

// DailyCapacity is the fixed number of appointment slots per calendar day.
const DailyCapacity = 10

// PendingBooking lifecycle statuses.
const (
	PendingStatusPending   = "pending"
	PendingStatusCompleted = "completed"
	PendingStatusFailed    = "failed"
)

// BookingRequest is the patient-supplied payload when creating a payment order.
type BookingRequest struct {
	Date   string  `json:"date"` // "YYYY-MM-DD"
	Name   string  `json:"name"`
	Gender string  `json:"gender"`
	Age    int     `json:"age"`
	Phone  string  `json:"phone"`
	Amount float64 `json:"amount"`
}

// PendingBooking is the provisional reservation created when a payment order
// is issued. Exactly one exists per order id; it transitions to completed or
// failed, never both.
type PendingBooking struct {
	OrderID    string    `bson:"_id" json:"orderId"`
	Date       string    `bson:"date" json:"date"`
	Name       string    `bson:"name" json:"name"`
	Gender     string    `bson:"gender" json:"gender"`
	Age        int       `bson:"age" json:"age"`
	Phone      string    `bson:"phone" json:"phone"`
	Amount     float64   `bson:"amount" json:"amount"`
	Status     string    `bson:"status" json:"status"`
	SlotNumber int       `bson:"slot_number,omitempty" json:"slotNumber,omitempty"`
	PaymentID  string    `bson:"payment_id,omitempty" json:"paymentId,omitempty"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
}

// ConfirmedBooking is a slot-allocated, payment-settled appointment record,
// embedded in the per-date DaySchedule document.
type ConfirmedBooking struct {
	SlotNumber    int     `bson:"slot_number" json:"slotNumber"`
	Name          string  `bson:"name" json:"name"`
	Gender        string  `bson:"gender" json:"gender"`
	Age           int     `bson:"age" json:"age"`
	Phone         string  `bson:"phone" json:"phone"`
	PaymentID     string  `bson:"payment_id" json:"paymentId"`
	OrderID       string  `bson:"order_id" json:"orderId"`
	Amount        float64 `bson:"amount" json:"amount"`
	PaymentStatus string  `bson:"payment_status" json:"paymentStatus"`
	PaymentMethod string  `bson:"payment_method" json:"paymentMethod"`
	BookedAt      string  `bson:"booked_at" json:"bookedAt"` // RFC3339
}

// DaySchedule is the per-date document holding all confirmed bookings for a
// calendar day. Version is the compare-and-swap token: every rewrite of the
// bookings list must match the version it read and bump it by one.
type DaySchedule struct {
	Date     string             `bson:"_id" json:"date"`
	Bookings []ConfirmedBooking `bson:"bookings" json:"bookings"`
	Version  int64              `bson:"version" json:"-"`
}

// NextSlotNumber returns the slot number the next confirmed booking on this
// date would receive. Numbers are monotonic per date and never recycled.
func (ds *DaySchedule) NextSlotNumber() int {
	max := 0
	for _, b := range ds.Bookings {
		if b.SlotNumber > max {
			max = b.SlotNumber
		}
	}
	return max + 1
}
