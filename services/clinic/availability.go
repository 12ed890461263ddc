// File: medibook/services/clinic/availability.go
package clinic

import (
	"context"
	"encoding/json"
	"time"

	clinicRepo "medibook/database/repository/clinic"
	"medibook/models"
	"medibook/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	controlCacheKey = "clinic:control"
	controlCacheTTL = 30 * time.Second
)

// DefaultAvailabilityService implements AvailabilityService.
type DefaultAvailabilityService struct {
	Repo        clinicRepo.ClinicControlRepository
	CacheClient *redis.Client // optional; nil disables caching
	Logger      *zap.Logger
}

// IsOpen reads the singleton control record and compares today's date
// against the closed window (inclusive on both ends, calendar-day
// granularity). Absent record or unset override means open.
func (s *DefaultAvailabilityService) IsOpen(ctx context.Context, now time.Time) (bool, string) {
	control, err := s.loadControl(ctx)
	if err != nil {
		if err != clinicRepo.ErrNotFound {
			// Fail open: an outage must not block all bookings.
			s.Logger.Warn("clinic control read failed, treating clinic as open", zap.Error(err))
		}
		return true, ""
	}
	if !control.ManualOverride {
		return true, ""
	}
	if control.ClosedFrom == "" {
		return true, ""
	}

	today := utils.FormatDate(now)
	if control.ClosedFrom <= today && (control.ClosedTill == "" || control.ClosedTill >= today) {
		reason := control.Reason
		if reason == "" {
			reason = "clinic temporarily closed"
		}
		return false, reason
	}
	return true, ""
}

func (s *DefaultAvailabilityService) GetControl(ctx context.Context) (*models.ClinicControl, error) {
	return s.Repo.GetControl(ctx)
}

func (s *DefaultAvailabilityService) UpdateControl(ctx context.Context, control *models.ClinicControl) error {
	if err := s.Repo.UpsertControl(ctx, control); err != nil {
		return err
	}
	if s.CacheClient != nil {
		if err := s.CacheClient.Del(ctx, controlCacheKey).Err(); err != nil {
			s.Logger.Warn("failed to invalidate clinic control cache", zap.Error(err))
		}
	}
	return nil
}

// loadControl goes through the short-TTL cache when one is configured; the
// control record is read on every order creation.
func (s *DefaultAvailabilityService) loadControl(ctx context.Context) (*models.ClinicControl, error) {
	if s.CacheClient == nil {
		return s.Repo.GetControl(ctx)
	}

	if data, err := s.CacheClient.Get(ctx, controlCacheKey).Result(); err == nil {
		var control models.ClinicControl
		if err := json.Unmarshal([]byte(data), &control); err == nil {
			return &control, nil
		}
	}

	control, err := s.Repo.GetControl(ctx)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(control); err == nil {
		if err := s.CacheClient.Set(ctx, controlCacheKey, data, controlCacheTTL).Err(); err != nil {
			s.Logger.Debug("failed to cache clinic control", zap.Error(err))
		}
	}
	return control, nil
}
