package clinic

import (
	"context"
	"time"

	"medibook/models"
)

// AvailabilityService answers whether booking is currently permitted and
// exposes the administrator-facing control operations.
type AvailabilityService interface {
	// IsOpen reports whether the clinic accepts bookings at the given
	// instant, with a reason when it does not. It fails open: a store
	// error must never block all bookings.
	IsOpen(ctx context.Context, now time.Time) (bool, string)

	GetControl(ctx context.Context) (*models.ClinicControl, error)
	UpdateControl(ctx context.Context, control *models.ClinicControl) error
}
