// File: turfbook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"turfbook/config"
	"turfbook/cron"
	"turfbook/database"
	bookingRepoPkg "turfbook/database/repository/booking"
	slotRepoPkg "turfbook/database/repository/slot"
	"turfbook/handlers"
	"turfbook/middleware"
	"turfbook/routes"
	"turfbook/services/booking"
	"turfbook/services/notification"
	"turfbook/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	slotRepo := slotRepoPkg.NewMongoSlotRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()

	// notification pipeline: the engine enqueues, the worker delivers.
	dispatcher := notification.NewAsynqDispatcher()
	whatsApp := notification.NewWhatsAppClient(
		config.AppConfig.WhatsAppToken,
		config.AppConfig.WhatsAppPhoneID,
	)
	cron.InitNotifyWorker(whatsApp)

	// the booking engine.
	bookingService := &booking.DefaultBookingService{
		SlotRepo:    slotRepo,
		BookingRepo: bookingRepo,
		Notifier:    dispatcher,
		Cache:       utils.GetCacheClient(),
	}

	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	routes.RegisterRoutes(router, bookingHandler)

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
	if err := dispatcher.Close(); err != nil {
		logger.Sugar().Warnf("main: closing notification dispatcher: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
