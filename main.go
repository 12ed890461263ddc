// File: medibook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medibook/config"
	"medibook/cron"
	"medibook/database"
	bookingRepoPkg "medibook/database/repository/booking"
	clinicRepoPkg "medibook/database/repository/clinic"
	refundRepoPkg "medibook/database/repository/refund"
	webhookRepoPkg "medibook/database/repository/webhook"
	"medibook/handlers"
	"medibook/middleware"
	"medibook/routes"
	"medibook/services/booking"
	"medibook/services/clinic"
	"medibook/services/payment"
	"medibook/services/refund"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	clinicRepo := clinicRepoPkg.NewMongoClinicControlRepo()
	refundRepo := refundRepoPkg.NewMongoRefundRepo()
	webhookRepo := webhookRepoPkg.NewMongoWebhookLogRepo()

	clock := utils.SystemClock()

	// services.
	ledgerService := &booking.DefaultLedgerService{
		Repo:   bookingRepo,
		Clock:  clock,
		Logger: logger.Named("ledger"),
	}
	availabilityService := &clinic.DefaultAvailabilityService{
		Repo:        clinicRepo,
		CacheClient: utils.GetCacheClient(),
		Logger:      logger.Named("clinic"),
	}
	trackerService := &refund.DefaultTrackerService{
		Repo:   refundRepo,
		Clock:  clock,
		Logger: logger.Named("refunds"),
	}

	gateway := payment.NewStripeGateway(
		config.AppConfig.StripeWebhookSecret,
		config.AppConfig.PaymentCurrency,
	)
	refundPoller := cron.NewRefundPoller()
	defer refundPoller.Close()

	reconciliation := payment.NewReconciliationService(
		gateway,
		ledgerService,
		availabilityService,
		trackerService,
		webhookRepo,
		refundPoller,
		clock,
	)

	// Background worker for refunds whose completion webhook never arrives.
	cron.InitRefundWorker(gateway, trackerService)

	// Assemble the handler bundle and register routes.
	handlerBundle := &routes.HandlerBundle{
		Payment:     handlers.NewPaymentHandler(reconciliation, logger.Named("payment")),
		Appointment: handlers.NewAppointmentHandler(ledgerService, logger.Named("appointment")),
		Admin:       handlers.NewAdminHandler(availabilityService, ledgerService, trackerService, logger.Named("admin")),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
