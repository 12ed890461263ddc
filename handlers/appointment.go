// File: medibook/handlers/appointment.go
package handlers

import (
	"net/http"

	"medibook/services/booking"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppointmentHandler exposes patient-facing booking lookups.
type AppointmentHandler struct {
	Ledger booking.LedgerService
	Logger *zap.Logger
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(ledger booking.LedgerService, logger *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{Ledger: ledger, Logger: logger}
}

// SearchHandler looks up confirmed bookings by phone, optionally narrowed to
// one date.
func (ah *AppointmentHandler) SearchHandler(c *gin.Context) {
	var input struct {
		Phone string `json:"phone"`
		Date  string `json:"date"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Phone == "" {
		utils.JSONError(c, http.StatusBadRequest, "phone is required", "VALIDATION_FAILED")
		return
	}
	if input.Date != "" {
		if _, err := utils.ParseDate(input.Date); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "date must be in YYYY-MM-DD format", "VALIDATION_FAILED")
			return
		}
	}

	bookings, err := ah.Ledger.Search(c.Request.Context(), input.Phone, input.Date)
	if err != nil {
		ah.Logger.Error("booking search failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to search bookings", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "bookings": bookings})
}
