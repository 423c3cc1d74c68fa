package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cliniq/config"
	"cliniq/cron"
	"cliniq/database"
	bookingRepoPkg "cliniq/database/repository/booking"
	counterRepoPkg "cliniq/database/repository/counter"
	doctorRepoPkg "cliniq/database/repository/doctor"
	leaveRepoPkg "cliniq/database/repository/leave"
	scheduleRepoPkg "cliniq/database/repository/schedule"
	schedulereqRepoPkg "cliniq/database/repository/schedulereq"
	"cliniq/handlers"
	"cliniq/middleware"
	"cliniq/routes"
	"cliniq/services/scheduling"
	"cliniq/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCounterClient()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	doctorRepo := doctorRepoPkg.NewMongoDoctorRepo()
	scheduleRepo := scheduleRepoPkg.NewMongoScheduleRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	leaveRepo := leaveRepoPkg.NewMongoLeaveRepo()
	requestRepo := schedulereqRepoPkg.NewMongoScheduleRequestRepo()
	counterStore := counterRepoPkg.NewRedisCounterStore(utils.GetCounterClient())

	if err := bookingRepoPkg.EnsureIndexes(bookingRepo); err != nil {
		logger.Sugar().Fatalf("main: failed to create booking indexes: %v", err)
	}
	if err := scheduleRepoPkg.EnsureIndexes(scheduleRepo); err != nil {
		logger.Sugar().Fatalf("main: failed to create schedule indexes: %v", err)
	}

	// services.
	schedulingService := scheduling.NewDefaultSchedulingService(
		doctorRepo,
		scheduleRepo,
		bookingRepo,
		leaveRepo,
		requestRepo,
		counterStore,
	)

	// Background worker for the stale-booking sweep.
	cron.InitSweepWorker(schedulingService)

	// Assemble the handler bundle and register routes.
	handlerBundle := handlers.NewHandlerBundle(schedulingService)
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
