// File: medibook/handlers/admin.go
package handlers

import (
	"errors"
	"net/http"
	"time"

	"medibook/config"
	"medibook/models"
	"medibook/services/booking"
	"medibook/services/clinic"
	"medibook/services/refund"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// adminTokenTTL bounds how long an issued admin session stays valid.
const adminTokenTTL = 12 * time.Hour

// AdminHandler encapsulates elevated admin-level operations.
type AdminHandler struct {
	Availability clinic.AvailabilityService
	Ledger       booking.LedgerService
	Tracker      refund.TrackerService
	Logger       *zap.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(availability clinic.AvailabilityService, ledger booking.LedgerService, tracker refund.TrackerService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		Availability: availability,
		Ledger:       ledger,
		Tracker:      tracker,
		Logger:       logger,
	}
}

// LoginHandler exchanges the shared admin key for a short-lived JWT.
func (ah *AdminHandler) LoginHandler(c *gin.Context) {
	var input struct {
		AdminKey string `json:"adminKey"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.AdminKey == "" {
		utils.JSONError(c, http.StatusBadRequest, "adminKey is required", "VALIDATION_FAILED")
		return
	}
	if input.AdminKey != config.AppConfig.AdminKey {
		utils.JSONError(c, http.StatusUnauthorized, "invalid admin key", "UNAUTHORIZED")
		return
	}

	token, err := utils.GenerateAdminToken(adminTokenTTL)
	if err != nil {
		ah.Logger.Error("failed to mint admin token", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to issue token", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "token": token, "expiresIn": int(adminTokenTTL.Seconds())})
}

// GetClinicControlHandler returns the current availability override.
func (ah *AdminHandler) GetClinicControlHandler(c *gin.Context) {
	control, err := ah.Availability.GetControl(c.Request.Context())
	if err != nil {
		ah.Logger.Error("failed to fetch clinic control", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch clinic control", "")
		return
	}
	if control == nil {
		control = &models.ClinicControl{ID: models.ClinicControlID}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "control": control})
}

// UpdateClinicControlHandler replaces the availability override.
func (ah *AdminHandler) UpdateClinicControlHandler(c *gin.Context) {
	var control models.ClinicControl
	if err := c.ShouldBindJSON(&control); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid clinic control payload", "VALIDATION_FAILED")
		return
	}
	for _, d := range []string{control.ClosedFrom, control.ClosedTill} {
		if d != "" {
			if _, err := utils.ParseDate(d); err != nil {
				utils.JSONError(c, http.StatusBadRequest, "closure dates must be in YYYY-MM-DD format", "VALIDATION_FAILED")
				return
			}
		}
	}

	now := time.Now()
	control.UpdatedAt = now
	if control.CreatedAt.IsZero() {
		control.CreatedAt = now
	}
	if err := ah.Availability.UpdateControl(c.Request.Context(), &control); err != nil {
		ah.Logger.Error("failed to update clinic control", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to update clinic control", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "control": control})
}

// ListAppointmentsHandler returns every confirmed booking for one date.
func (ah *AdminHandler) ListAppointmentsHandler(c *gin.Context) {
	date := c.Param("date")
	if _, err := utils.ParseDate(date); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "date must be in YYYY-MM-DD format", "VALIDATION_FAILED")
		return
	}

	bookings, err := ah.Ledger.ListByDate(c.Request.Context(), date)
	if err != nil {
		ah.Logger.Error("failed to list appointments", zap.String("date", date), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to list appointments", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "date": date, "bookings": bookings})
}

// ListFailedRefundsHandler surfaces the manual-intervention refund queue.
func (ah *AdminHandler) ListFailedRefundsHandler(c *gin.Context) {
	records, err := ah.Tracker.ListManualRequired(c.Request.Context())
	if err != nil {
		ah.Logger.Error("failed to list failed refunds", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to list failed refunds", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "refunds": records})
}

// GetRefundHandler returns one tracked refund by id.
func (ah *AdminHandler) GetRefundHandler(c *gin.Context) {
	rec, err := ah.Tracker.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, refund.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "refund record not found", "NOT_FOUND")
			return
		}
		ah.Logger.Error("failed to fetch refund record", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch refund record", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "refund": rec})
}
