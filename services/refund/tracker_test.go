package refund

import (
	"context"
	"testing"
	"time"

	refundRepo "medibook/database/repository/refund"
	"medibook/models"
	"medibook/utils"

	"go.uber.org/zap"
)

type memRefundRepo struct {
	refunds map[string]*models.RefundRecord
	failed  []models.FailedRefundRecord
}

func newMemRefundRepo() *memRefundRepo {
	return &memRefundRepo{refunds: make(map[string]*models.RefundRecord)}
}

func (m *memRefundRepo) InsertRefund(ctx context.Context, rec *models.RefundRecord) error {
	cp := *rec
	m.refunds[rec.RefundID] = &cp
	return nil
}

func (m *memRefundRepo) GetRefund(ctx context.Context, refundID string) (*models.RefundRecord, error) {
	rec, ok := m.refunds[refundID]
	if !ok {
		return nil, refundRepo.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (m *memRefundRepo) GetRefundByOrder(ctx context.Context, orderID string) (*models.RefundRecord, error) {
	for _, rec := range m.refunds {
		if rec.OrderID == orderID {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, refundRepo.ErrNotFound
}

func (m *memRefundRepo) UpdateRefundStatus(ctx context.Context, refundID, status string, completedAt *time.Time) error {
	rec, ok := m.refunds[refundID]
	if !ok {
		return refundRepo.ErrNotFound
	}
	rec.Status = status
	rec.CompletedAt = completedAt
	return nil
}

func (m *memRefundRepo) InsertFailedRefund(ctx context.Context, rec *models.FailedRefundRecord) error {
	m.failed = append(m.failed, *rec)
	return nil
}

func (m *memRefundRepo) ListFailedRefunds(ctx context.Context) ([]models.FailedRefundRecord, error) {
	return m.failed, nil
}

func newTracker(repo *memRefundRepo) *DefaultTrackerService {
	return &DefaultTrackerService{
		Repo:   repo,
		Clock:  utils.FixedClock(time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC)),
		Logger: zap.NewNop(),
	}
}

func TestTrackerLifecycle(t *testing.T) {
	repo := newMemRefundRepo()
	svc := newTracker(repo)
	ctx := context.Background()

	rec := &models.RefundRecord{RefundID: "re-1", OrderID: "order-1", Amount: 500, Reason: "clinic closed"}
	if err := svc.CreateRecord(ctx, rec); err != nil {
		t.Fatalf("CreateRecord failed: %v", err)
	}

	stored, err := svc.Get(ctx, "re-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if stored.Status != models.RefundStatusInitiated {
		t.Errorf("expected initiated status, got %s", stored.Status)
	}

	if err := svc.UpdateStatus(ctx, "re-1", models.RefundStatusCompleted); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	stored, _ = svc.Get(ctx, "re-1")
	if stored.Status != models.RefundStatusCompleted {
		t.Errorf("expected completed, got %s", stored.Status)
	}
	if stored.CompletedAt == nil {
		t.Error("expected completedAt to be set")
	}
}

func TestTrackerTerminalStatusNeverRegresses(t *testing.T) {
	repo := newMemRefundRepo()
	svc := newTracker(repo)
	ctx := context.Background()

	rec := &models.RefundRecord{RefundID: "re-1", OrderID: "order-1", Amount: 500}
	if err := svc.CreateRecord(ctx, rec); err != nil {
		t.Fatalf("CreateRecord failed: %v", err)
	}
	if err := svc.UpdateStatus(ctx, "re-1", models.RefundStatusCompleted); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	// A late failure signal for a settled refund must not flip it.
	if err := svc.UpdateStatus(ctx, "re-1", models.RefundStatusFailed); err != nil {
		t.Fatalf("late update errored: %v", err)
	}
	stored, _ := svc.Get(ctx, "re-1")
	if stored.Status != models.RefundStatusCompleted {
		t.Errorf("terminal status regressed to %s", stored.Status)
	}
}

func TestTrackerRejectsInvalidStatus(t *testing.T) {
	svc := newTracker(newMemRefundRepo())
	if err := svc.UpdateStatus(context.Background(), "re-1", "pending"); err == nil {
		t.Error("expected error for invalid status")
	}
}

func TestManualInterventionQueue(t *testing.T) {
	repo := newMemRefundRepo()
	svc := newTracker(repo)
	ctx := context.Background()

	rec := &models.FailedRefundRecord{ID: "fr-1", OrderID: "order-1", Amount: 500, Error: "gateway timeout"}
	if err := svc.CreateManualInterventionRecord(ctx, rec); err != nil {
		t.Fatalf("CreateManualInterventionRecord failed: %v", err)
	}
	if rec.Status != models.RefundStatusManualRequired {
		t.Errorf("expected manual_required status, got %s", rec.Status)
	}

	queue, err := svc.ListManualRequired(ctx)
	if err != nil || len(queue) != 1 {
		t.Fatalf("expected one queued record, got %d err %v", len(queue), err)
	}
}
