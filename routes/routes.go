// File: medibook/routes/routes.go
package routes

import (
	"net/http"
	"time"

	"medibook/handlers"
	"medibook/middleware"
	"medibook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers.
type HandlerBundle struct {
	Payment     *handlers.PaymentHandler
	Appointment *handlers.AppointmentHandler
	Admin       *handlers.AdminHandler
}

// RegisterPaymentRoutes sets up the order and webhook endpoints.
func RegisterPaymentRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/payment")
	{
		api.POST("/create-order", hb.Payment.CreateOrderHandler)
		api.GET("/status/:orderId", hb.Payment.CheckStatusHandler)
		api.POST("/webhook", hb.Payment.WebhookHandler)
	}
}

// RegisterAppointmentRoutes sets up patient-facing booking lookups.
func RegisterAppointmentRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/appointment")
	{
		api.POST("/search", hb.Appointment.SearchHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.POST("/login", hb.Admin.LoginHandler)

		protected := adminGroup.Group("")
		protected.Use(middleware.JWTAuthAdminMiddleware())
		protected.GET("/clinic-control", hb.Admin.GetClinicControlHandler)
		protected.PUT("/clinic-control", hb.Admin.UpdateClinicControlHandler)
		protected.GET("/appointments/:date", hb.Admin.ListAppointmentsHandler)
		protected.GET("/refunds/failed", hb.Admin.ListFailedRefundsHandler)
		protected.GET("/refunds/:id", hb.Admin.GetRefundHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "dependencies": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterPaymentRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
