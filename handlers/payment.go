// File: medibook/handlers/payment.go
package handlers

import (
	"errors"
	"io"
	"net/http"

	"medibook/models"
	"medibook/services/booking"
	"medibook/services/payment"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler exposes the order creation, status polling and webhook
// endpoints.
type PaymentHandler struct {
	Reconciliation payment.ReconciliationService
	Logger         *zap.Logger
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(svc payment.ReconciliationService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{Reconciliation: svc, Logger: logger}
}

// CreateOrderHandler validates the booking request and opens a payment order.
func (ph *PaymentHandler) CreateOrderHandler(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", "VALIDATION_FAILED")
		return
	}

	order, err := ph.Reconciliation.CreateOrder(c.Request.Context(), req)
	if err != nil {
		var wfErr *payment.WorkflowError
		if errors.As(err, &wfErr) {
			utils.JSONError(c, http.StatusBadRequest, wfErr.Message, wfErr.Code)
			return
		}
		ph.Logger.Error("order creation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to create payment order", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

// CheckStatusHandler polls the gateway and reconciles the booking with the
// payment outcome.
func (ph *PaymentHandler) CheckStatusHandler(c *gin.Context) {
	orderID := c.Param("orderId")
	if orderID == "" {
		utils.JSONError(c, http.StatusBadRequest, "orderId is required", "VALIDATION_FAILED")
		return
	}

	result, err := ph.Reconciliation.CheckStatus(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, booking.ErrPendingNotFound) {
			utils.JSONError(c, http.StatusNotFound, "no booking found for this order", "NOT_FOUND")
			return
		}
		ph.Logger.Error("status check failed", zap.String("orderId", orderID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to check payment status", "")
		return
	}

	// The frontend branches on success plus status: refund-in-progress and
	// hard payment failure both report success=false with distinct statuses.
	success := result.Status == payment.StatusSuccess || result.Status == payment.StatusPending
	c.JSON(http.StatusOK, gin.H{
		"success":     success,
		"status":      result.Status,
		"slotNumber":  result.SlotNumber,
		"bookingData": result.Booking,
		"message":     result.Message,
	})
}

// WebhookHandler ingests gateway deliveries. Only a signature failure is
// rejected; every authenticated delivery is acknowledged with 200 so the
// gateway does not retry-storm on business errors.
func (ph *PaymentHandler) WebhookHandler(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "unreadable payload", "")
		return
	}

	result, err := ph.Reconciliation.ProcessWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		if errors.Is(err, payment.ErrInvalidSignature) {
			utils.JSONError(c, http.StatusUnauthorized, "invalid webhook signature", "INVALID_SIGNATURE")
			return
		}
		ph.Logger.Error("webhook processing failed", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true, "duplicate": result.Duplicate})
}
