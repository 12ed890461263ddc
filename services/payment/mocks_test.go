// File: medibook/services/payment/mocks_test.go
package payment

import (
	"context"
	"fmt"
	"sync"
	"time"

	bookingRepo "medibook/database/repository/booking"
	"medibook/models"
	"medibook/services/booking"
	"medibook/services/refund"
)

type mockGateway struct {
	mu sync.Mutex

	orderCalls int
	orderErr   error

	status    *models.PaymentStatus
	statusErr error

	refundCalls  []string
	refundErr    error
	refundResult *models.RefundResult
	refundStatus string

	sigValid bool
	event    *models.PaymentEvent
	parseErr error
}

func newMockGateway() *mockGateway {
	return &mockGateway{
		sigValid:     true,
		refundResult: &models.RefundResult{RefundID: "re_1", State: "pending"},
		refundStatus: models.RefundStatusInitiated,
	}
}

func (g *mockGateway) CreateOrder(ctx context.Context, amount float64, metadata map[string]string) (*models.OrderResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.orderErr != nil {
		return nil, g.orderErr
	}
	g.orderCalls++
	return &models.OrderResult{
		OrderID:       fmt.Sprintf("order-%d", g.orderCalls),
		Amount:        amount,
		Currency:      "inr",
		CheckoutToken: "tok_test",
	}, nil
}

func (g *mockGateway) GetStatus(ctx context.Context, orderID string) (*models.PaymentStatus, error) {
	if g.statusErr != nil {
		return nil, g.statusErr
	}
	return g.status, nil
}

func (g *mockGateway) VerifyWebhookSignature(payload []byte, signatureHeader string) bool {
	return g.sigValid
}

func (g *mockGateway) ParseWebhookEvent(payload []byte) (*models.PaymentEvent, error) {
	if g.parseErr != nil {
		return nil, g.parseErr
	}
	return g.event, nil
}

func (g *mockGateway) InitiateRefund(ctx context.Context, orderID string, amount float64, reason string) (*models.RefundResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.refundErr != nil {
		return nil, g.refundErr
	}
	g.refundCalls = append(g.refundCalls, orderID)
	return g.refundResult, nil
}

func (g *mockGateway) GetRefundStatus(ctx context.Context, refundID string) (string, error) {
	return g.refundStatus, nil
}

type mockLedger struct {
	mu sync.Mutex

	pendings  map[string]*models.PendingBooking
	confirmed map[string]*models.ConfirmedBooking

	confirmCalls  int
	confirmErr    error
	confirmResult *booking.ConfirmationResult

	cancelled []string
	deleted   []string
	deleteErr error

	sweepCalls int
	count      int
	countErr   error
}

func newMockLedger() *mockLedger {
	return &mockLedger{
		pendings:  make(map[string]*models.PendingBooking),
		confirmed: make(map[string]*models.ConfirmedBooking),
	}
}

func (l *mockLedger) CreatePending(ctx context.Context, orderID string, req models.BookingRequest) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.pendings[orderID]; ok {
		return booking.ErrDuplicateOrder
	}
	l.pendings[orderID] = &models.PendingBooking{
		OrderID: orderID,
		Date:    req.Date,
		Name:    req.Name,
		Gender:  req.Gender,
		Age:     req.Age,
		Phone:   req.Phone,
		Amount:  req.Amount,
		Status:  models.PendingStatusPending,
	}
	return nil
}

func (l *mockLedger) Confirm(ctx context.Context, orderID, paymentID, paymentMethod string) (*booking.ConfirmationResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.confirmCalls++
	if l.confirmErr != nil {
		return nil, l.confirmErr
	}
	pending, ok := l.pendings[orderID]
	if !ok {
		return nil, booking.ErrPendingNotFound
	}
	result := l.confirmResult
	if result == nil {
		result = &booking.ConfirmationResult{SlotNumber: 1, Date: pending.Date, Name: pending.Name}
	}
	pending.Status = models.PendingStatusCompleted
	pending.SlotNumber = result.SlotNumber
	l.confirmed[orderID] = &models.ConfirmedBooking{
		SlotNumber: result.SlotNumber,
		Name:       pending.Name,
		OrderID:    orderID,
		PaymentID:  paymentID,
	}
	return result, nil
}

func (l *mockLedger) Cancel(ctx context.Context, orderID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cancelled = append(l.cancelled, orderID)
	if pending, ok := l.pendings[orderID]; ok && pending.Status == models.PendingStatusPending {
		pending.Status = models.PendingStatusFailed
	}
	return nil
}

func (l *mockLedger) GetPending(ctx context.Context, orderID string) (*models.PendingBooking, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	pending, ok := l.pendings[orderID]
	if !ok {
		return nil, booking.ErrPendingNotFound
	}
	return pending, nil
}

func (l *mockLedger) DeletePending(ctx context.Context, orderID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.deleteErr != nil {
		return l.deleteErr
	}
	delete(l.pendings, orderID)
	l.deleted = append(l.deleted, orderID)
	return nil
}

func (l *mockLedger) SweepStalePending(ctx context.Context, retention time.Duration) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sweepCalls++
	return 0, nil
}

func (l *mockLedger) CountConfirmed(ctx context.Context, date string) (int, error) {
	if l.countErr != nil {
		return 0, l.countErr
	}
	return l.count, nil
}

func (l *mockLedger) GetConfirmedByOrder(ctx context.Context, orderID string) (*models.ConfirmedBooking, string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	confirmed, ok := l.confirmed[orderID]
	if !ok {
		return nil, "", bookingRepo.ErrNotFound
	}
	return confirmed, "2025-06-03", nil
}

func (l *mockLedger) Search(ctx context.Context, phone, date string) ([]models.ConfirmedBooking, error) {
	return nil, nil
}

func (l *mockLedger) ListByDate(ctx context.Context, date string) ([]models.ConfirmedBooking, error) {
	return nil, nil
}

type mockAvailability struct {
	mu        sync.Mutex
	open      bool
	reason    string
	lastCheck time.Time
}

func (a *mockAvailability) IsOpen(ctx context.Context, now time.Time) (bool, string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastCheck = now
	return a.open, a.reason
}

func (a *mockAvailability) GetControl(ctx context.Context) (*models.ClinicControl, error) {
	return nil, nil
}

func (a *mockAvailability) UpdateControl(ctx context.Context, control *models.ClinicControl) error {
	return nil
}

type mockTracker struct {
	mu      sync.Mutex
	records map[string]*models.RefundRecord
	manual  []models.FailedRefundRecord
}

func newMockTracker() *mockTracker {
	return &mockTracker{records: make(map[string]*models.RefundRecord)}
}

func (t *mockTracker) CreateRecord(ctx context.Context, rec *models.RefundRecord) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.records[rec.RefundID] = rec
	return nil
}

func (t *mockTracker) UpdateStatus(ctx context.Context, refundID, status string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	rec, ok := t.records[refundID]
	if !ok {
		return refund.ErrNotFound
	}
	if rec.Status == models.RefundStatusInitiated {
		rec.Status = status
	}
	return nil
}

func (t *mockTracker) Get(ctx context.Context, refundID string) (*models.RefundRecord, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	rec, ok := t.records[refundID]
	if !ok {
		return nil, refund.ErrNotFound
	}
	return rec, nil
}

func (t *mockTracker) GetByOrder(ctx context.Context, orderID string) (*models.RefundRecord, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, rec := range t.records {
		if rec.OrderID == orderID {
			return rec, nil
		}
	}
	return nil, refund.ErrNotFound
}

func (t *mockTracker) CreateManualInterventionRecord(ctx context.Context, rec *models.FailedRefundRecord) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.manual = append(t.manual, *rec)
	return nil
}

func (t *mockTracker) ListManualRequired(ctx context.Context) ([]models.FailedRefundRecord, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]models.FailedRefundRecord(nil), t.manual...), nil
}

type mockWebhookLogs struct {
	mu   sync.Mutex
	logs map[string]*models.WebhookLog
}

func newMockWebhookLogs() *mockWebhookLogs {
	return &mockWebhookLogs{logs: make(map[string]*models.WebhookLog)}
}

func (w *mockWebhookLogs) key(transactionID, eventType string) string {
	return transactionID + "|" + eventType
}

func (w *mockWebhookLogs) FindLog(ctx context.Context, transactionID, eventType string) (*models.WebhookLog, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	log, ok := w.logs[w.key(transactionID, eventType)]
	if !ok {
		return nil, fmt.Errorf("webhook log not found")
	}
	return log, nil
}

func (w *mockWebhookLogs) InsertLog(ctx context.Context, log *models.WebhookLog) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.logs[w.key(log.TransactionID, log.EventType)] = log
	return nil
}

type mockPoller struct {
	mu       sync.Mutex
	enqueued []string
}

func (p *mockPoller) EnqueuePoll(refundID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enqueued = append(p.enqueued, refundID)
	return nil
}
