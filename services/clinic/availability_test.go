package clinic

import (
	"context"
	"errors"
	"testing"
	"time"

	clinicRepo "medibook/database/repository/clinic"
	"medibook/models"

	"go.uber.org/zap"
)

type mockControlRepo struct {
	control *models.ClinicControl
	err     error
	upserts int
}

func (m *mockControlRepo) GetControl(ctx context.Context) (*models.ClinicControl, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.control == nil {
		return nil, clinicRepo.ErrNotFound
	}
	return m.control, nil
}

func (m *mockControlRepo) UpsertControl(ctx context.Context, control *models.ClinicControl) error {
	m.control = control
	m.upserts++
	return nil
}

func newService(repo clinicRepo.ClinicControlRepository) *DefaultAvailabilityService {
	return &DefaultAvailabilityService{Repo: repo, Logger: zap.NewNop()}
}

func at(date string) time.Time {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return t
}

func TestIsOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("no control record means open", func(t *testing.T) {
		svc := newService(&mockControlRepo{})
		open, _ := svc.IsOpen(ctx, at("2025-06-03"))
		if !open {
			t.Error("expected open when no control record exists")
		}
	})

	t.Run("override unset means open", func(t *testing.T) {
		svc := newService(&mockControlRepo{control: &models.ClinicControl{
			ManualOverride: false,
			ClosedFrom:     "2025-06-01",
			ClosedTill:     "2025-06-05",
		}})
		open, _ := svc.IsOpen(ctx, at("2025-06-03"))
		if !open {
			t.Error("expected open when override flag is unset")
		}
	})

	t.Run("closed inside inclusive window", func(t *testing.T) {
		svc := newService(&mockControlRepo{control: &models.ClinicControl{
			ManualOverride: true,
			ClosedFrom:     "2025-06-01",
			ClosedTill:     "2025-06-05",
			Reason:         "renovation",
		}})
		for _, day := range []string{"2025-06-01", "2025-06-03", "2025-06-05"} {
			open, reason := svc.IsOpen(ctx, at(day))
			if open {
				t.Errorf("expected closed on %s", day)
			}
			if reason != "renovation" {
				t.Errorf("expected reason to surface, got %q", reason)
			}
		}
	})

	t.Run("open outside window", func(t *testing.T) {
		svc := newService(&mockControlRepo{control: &models.ClinicControl{
			ManualOverride: true,
			ClosedFrom:     "2025-06-01",
			ClosedTill:     "2025-06-05",
		}})
		for _, day := range []string{"2025-05-31", "2025-06-06"} {
			if open, _ := svc.IsOpen(ctx, at(day)); !open {
				t.Errorf("expected open on %s", day)
			}
		}
	})

	t.Run("missing closedTill means closed indefinitely", func(t *testing.T) {
		svc := newService(&mockControlRepo{control: &models.ClinicControl{
			ManualOverride: true,
			ClosedFrom:     "2025-06-01",
		}})
		if open, _ := svc.IsOpen(ctx, at("2025-12-25")); open {
			t.Error("expected closed with open-ended window")
		}
		if open, _ := svc.IsOpen(ctx, at("2025-05-31")); !open {
			t.Error("expected open before window start")
		}
	})

	t.Run("fails open on store error", func(t *testing.T) {
		svc := newService(&mockControlRepo{err: errors.New("mongo down")})
		if open, _ := svc.IsOpen(ctx, at("2025-06-03")); !open {
			t.Error("expected fail-open on store error")
		}
	})
}

func TestUpdateControl(t *testing.T) {
	repo := &mockControlRepo{}
	svc := newService(repo)
	control := &models.ClinicControl{ManualOverride: true, ClosedFrom: "2025-06-01"}
	if err := svc.UpdateControl(context.Background(), control); err != nil {
		t.Fatalf("UpdateControl failed: %v", err)
	}
	if repo.upserts != 1 {
		t.Errorf("expected one upsert, got %d", repo.upserts)
	}
}
