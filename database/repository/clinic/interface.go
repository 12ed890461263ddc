package clinicRepo

import (
	"context"
	"errors"

	"medibook/models"
)

// ErrNotFound is returned when no clinic control document exists yet.
var ErrNotFound = errors.New("clinic control not found")

// ClinicControlRepository owns the singleton clinic control document.
type ClinicControlRepository interface {
	GetControl(ctx context.Context) (*models.ClinicControl, error)
	UpsertControl(ctx context.Context, control *models.ClinicControl) error
}
